// Package interfaces defines service contracts for stockdash
package interfaces

import (
	"context"

	"github.com/danielTongu/stockdash/internal/models"
)

// MarketDataClient provides access to the upstream market data API
type MarketDataClient interface {
	// SearchSymbol runs the provider's best-match search for a free-text
	// query and returns matches in provider rank order.
	SearchSymbol(ctx context.Context, query string) ([]models.SymbolMatch, error)

	// GetSeries retrieves the raw OHLCV series for a granularity endpoint,
	// newest-first. interval applies to intraday endpoints only.
	GetSeries(ctx context.Context, symbol string, endpoint models.SeriesEndpoint, interval string) ([]models.SeriesPoint, error)

	// GetOverview retrieves the company overview record.
	GetOverview(ctx context.Context, symbol string) (*models.OverviewRecord, error)
}
