// Package snapshot resolves a ticker query and timeframe into an
// analysis-ready price series with derived statistics.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/guregu/null/v6"

	"github.com/danielTongu/stockdash/internal/common"
	"github.com/danielTongu/stockdash/internal/interfaces"
	"github.com/danielTongu/stockdash/internal/models"
	"github.com/danielTongu/stockdash/internal/series"
)

var (
	// ErrInvalidQuery is returned for empty or over-long ticker queries,
	// before any network call.
	ErrInvalidQuery = errors.New("invalid symbol query")

	// ErrNoMatch is returned when the provider's search finds nothing.
	ErrNoMatch = errors.New("no matching symbol found")
)

// maxQueryLength bounds free-text ticker queries.
const maxQueryLength = 32

// Service implements SnapshotService. It is stateless: every snapshot is a
// pure function of (query, timeframe, clock) plus the network collaborator,
// and a new request always builds a new snapshot.
type Service struct {
	client interfaces.MarketDataClient
	logger *common.Logger
	now    func() time.Time // injectable clock for testing
}

// NewService creates a new snapshot service.
func NewService(client interfaces.MarketDataClient, logger *common.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// GetSnapshot resolves query and timeframe into a StockSnapshot. The policy
// lookup runs first so an invalid timeframe never costs a network call.
// A failure in any stage aborts this request only; no partial snapshot is
// ever returned.
func (s *Service) GetSnapshot(ctx context.Context, query string, timeframe models.Timeframe) (*models.StockSnapshot, error) {
	policy, err := series.ResolvePolicy(timeframe)
	if err != nil {
		return nil, err
	}

	q := strings.TrimSpace(query)
	if q == "" || len(q) > maxQueryLength {
		return nil, fmt.Errorf("%w: %q", ErrInvalidQuery, query)
	}

	match, err := s.resolveSymbol(ctx, q)
	if err != nil {
		return nil, err
	}

	raw, overview, err := s.fetchSeries(ctx, match.Symbol, policy)
	if err != nil {
		return nil, fmt.Errorf("series for %s: %w", match.Symbol, err)
	}

	windowed, err := series.ApplyWindow(raw, policy, s.now())
	if err != nil {
		return nil, fmt.Errorf("series for %s: %w", match.Symbol, err)
	}

	stats := series.Compute(windowed, raw)

	snap := &models.StockSnapshot{
		Symbol:        match.Symbol,
		Name:          match.Name,
		Timeframe:     timeframe,
		PercentChange: stats.PercentChange,
		Series:        windowed,
		ChartTimeUnit: policy.ChartTimeUnit,
		ChartTicks:    policy.ChartTicks,
		VolumeKey:     policy.Endpoint.VolumeKey(),
		Stats:         stats,
		Overview:      *overview,
		GeneratedAt:   s.now(),
	}
	if len(windowed) > 0 {
		snap.LatestPrice = null.FloatFrom(windowed[len(windowed)-1].Close)
	}

	s.logger.Info().
		Str("symbol", match.Symbol).
		Str("timeframe", string(timeframe)).
		Int("points", len(windowed)).
		Float64("percent_change", stats.PercentChange).
		Msg("Snapshot assembled")
	return snap, nil
}

// resolveSymbol turns a free-text query into the provider's top-ranked
// (symbol, name) pair. The provider's ranking is taken as-is.
func (s *Service) resolveSymbol(ctx context.Context, query string) (models.SymbolMatch, error) {
	matches, err := s.client.SearchSymbol(ctx, query)
	if err != nil {
		return models.SymbolMatch{}, fmt.Errorf("symbol search for %q: %w", query, err)
	}
	if len(matches) == 0 {
		return models.SymbolMatch{}, fmt.Errorf("%w: %q", ErrNoMatch, query)
	}
	return matches[0], nil
}

// fetchSeries retrieves the raw series and the overview record. Both depend
// only on the resolved symbol, so they run concurrently. A series failure is
// fatal to the request; an overview failure degrades to an empty record with
// a warning since overview fields are supplementary.
func (s *Service) fetchSeries(ctx context.Context, symbol string, policy models.TimeframePolicy) ([]models.SeriesPoint, *models.OverviewRecord, error) {
	overviewCh := make(chan *models.OverviewRecord, 1)
	go func() {
		ov, err := s.client.GetOverview(ctx, symbol)
		if err != nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Overview fetch failed, continuing without")
			overviewCh <- &models.OverviewRecord{}
			return
		}
		overviewCh <- ov
	}()

	raw, err := s.client.GetSeries(ctx, symbol, policy.Endpoint, policy.Interval)
	if err != nil {
		return nil, nil, err
	}

	return raw, <-overviewCh, nil
}

// Ensure Service implements SnapshotService
var _ interfaces.SnapshotService = (*Service)(nil)
