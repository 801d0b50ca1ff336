// Package interfaces defines service contracts for stockdash
package interfaces

import (
	"context"

	"github.com/danielTongu/stockdash/internal/models"
)

// WatchlistStorage persists the dashboard watchlist
type WatchlistStorage interface {
	// GetWatchlist loads the saved watchlist, erroring when none exists
	GetWatchlist(ctx context.Context) (*models.Watchlist, error)

	// SaveWatchlist persists the watchlist atomically
	SaveWatchlist(ctx context.Context, watchlist *models.Watchlist) error

	// Close releases storage resources
	Close() error
}
