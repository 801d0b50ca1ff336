// Package interfaces defines service contracts for stockdash
package interfaces

import (
	"context"

	"github.com/danielTongu/stockdash/internal/models"
)

// SnapshotService resolves a free-text query and timeframe into an
// analysis-ready snapshot.
type SnapshotService interface {
	// GetSnapshot resolves query, fetches the series and overview, windows
	// the series per the timeframe policy and computes statistics.
	GetSnapshot(ctx context.Context, query string, timeframe models.Timeframe) (*models.StockSnapshot, error)

	// RenderChart renders a snapshot's windowed series as a PNG line chart
	// colored by trend direction.
	RenderChart(ctx context.Context, query string, timeframe models.Timeframe) ([]byte, error)
}

// WatchlistService manages the saved dashboard symbols
type WatchlistService interface {
	// GetWatchlist retrieves the watchlist, empty when none is saved
	GetWatchlist(ctx context.Context) (*models.Watchlist, error)

	// AddOrUpdateEntry upserts an entry keyed on symbol
	AddOrUpdateEntry(ctx context.Context, entry *models.WatchlistEntry) (*models.Watchlist, error)

	// RemoveEntry removes a symbol from the watchlist
	RemoveEntry(ctx context.Context, symbol string) (*models.Watchlist, error)
}
