package server

import (
	"errors"
	"net/http"

	"github.com/danielTongu/stockdash/internal/clients/alphavantage"
	"github.com/danielTongu/stockdash/internal/common"
	"github.com/danielTongu/stockdash/internal/models"
	"github.com/danielTongu/stockdash/internal/series"
	"github.com/danielTongu/stockdash/internal/services/snapshot"
)

// handleHealth responds to GET/HEAD /api/health with {"status":"ok"}.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion responds to GET/HEAD /api/version with version info.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handleSnapshot serves GET /api/snapshot?query=...&timeframe=...
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := r.URL.Query().Get("query")
	timeframe := models.NormalizeTimeframe(r.URL.Query().Get("timeframe"))

	snap, err := s.app.Snapshots.GetSnapshot(r.Context(), query, timeframe)
	if err != nil {
		s.writeSnapshotError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, snap)
}

// handleSnapshotChart serves GET /api/snapshot/chart?query=...&timeframe=...
func (s *Server) handleSnapshotChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := r.URL.Query().Get("query")
	timeframe := models.NormalizeTimeframe(r.URL.Query().Get("timeframe"))

	png, err := s.app.Snapshots.RenderChart(r.Context(), query, timeframe)
	if err != nil {
		s.writeSnapshotError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// writeSnapshotError maps engine failures to HTTP statuses with stable
// error codes, keeping rate-limit notices distinguishable from bad symbols.
func (s *Server) writeSnapshotError(w http.ResponseWriter, err error) {
	var apiErr *alphavantage.APIError
	switch {
	case errors.Is(err, series.ErrInvalidTimeframe):
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), "invalid_timeframe")
	case errors.Is(err, snapshot.ErrInvalidQuery):
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), "invalid_query")
	case errors.Is(err, snapshot.ErrNoMatch):
		WriteErrorWithCode(w, http.StatusNotFound, err.Error(), "no_match")
	case errors.Is(err, alphavantage.ErrRateLimited):
		WriteErrorWithCode(w, http.StatusServiceUnavailable, err.Error(), "rate_limited")
	case errors.Is(err, alphavantage.ErrSeriesUnavailable):
		WriteErrorWithCode(w, http.StatusBadGateway, err.Error(), "series_unavailable")
	case errors.Is(err, series.ErrEmptyWindow):
		WriteErrorWithCode(w, http.StatusBadGateway, err.Error(), "empty_series")
	case errors.As(err, &apiErr):
		WriteErrorWithCode(w, http.StatusBadGateway, err.Error(), "transport_failure")
	default:
		s.logger.Error().Err(err).Msg("Snapshot request failed")
		WriteErrorWithCode(w, http.StatusBadGateway, err.Error(), "transport_failure")
	}
}

// handleWatchlist serves GET and POST /api/watchlist
func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		wl, err := s.app.Watchlist.GetWatchlist(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, wl)
	case http.MethodPost:
		var entry models.WatchlistEntry
		if !DecodeJSON(w, r, &entry) {
			return
		}
		wl, err := s.app.Watchlist.AddOrUpdateEntry(r.Context(), &entry)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, wl)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleWatchlistSymbol serves DELETE /api/watchlist/{symbol}
func (s *Server) handleWatchlistSymbol(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	symbol := PathParam(r, "/api/watchlist/", "")
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	wl, err := s.app.Watchlist.RemoveEntry(r.Context(), symbol)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, wl)
}
