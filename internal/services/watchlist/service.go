// Package watchlist manages the saved dashboard symbols
package watchlist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/danielTongu/stockdash/internal/common"
	"github.com/danielTongu/stockdash/internal/interfaces"
	"github.com/danielTongu/stockdash/internal/models"
)

// Compile-time interface check
var _ interfaces.WatchlistService = (*Service)(nil)

// Service implements WatchlistService
type Service struct {
	storage interfaces.WatchlistStorage
	logger  *common.Logger
}

// NewService creates a new watchlist service
func NewService(storage interfaces.WatchlistStorage, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// GetWatchlist retrieves the saved watchlist, empty when none exists yet
func (s *Service) GetWatchlist(ctx context.Context) (*models.Watchlist, error) {
	wl, err := s.storage.GetWatchlist(ctx)
	if err != nil {
		return &models.Watchlist{Entries: []models.WatchlistEntry{}}, nil
	}
	return wl, nil
}

// AddOrUpdateEntry adds a new entry or updates an existing one (upsert keyed on symbol)
func (s *Service) AddOrUpdateEntry(ctx context.Context, entry *models.WatchlistEntry) (*models.Watchlist, error) {
	symbol := strings.ToUpper(strings.TrimSpace(entry.Symbol))
	if symbol == "" {
		return nil, fmt.Errorf("watchlist entry requires a symbol")
	}
	entry.Symbol = symbol

	wl, err := s.storage.GetWatchlist(ctx)
	if err != nil {
		// No existing watchlist, create one
		wl = &models.Watchlist{Entries: []models.WatchlistEntry{}}
	}

	now := time.Now()

	existing, idx := wl.FindBySymbol(symbol)
	if idx >= 0 {
		// Update existing: preserve CreatedAt and slot unless re-slotted
		entry.CreatedAt = existing.CreatedAt
		if entry.Slot == 0 && existing.Slot != 0 {
			entry.Slot = existing.Slot
		}
		entry.UpdatedAt = now
		wl.Entries[idx] = *entry
	} else {
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = now
		}
		if entry.Slot == 0 {
			entry.Slot = wl.NextSlot()
		}
		entry.UpdatedAt = now
		wl.Entries = append(wl.Entries, *entry)
	}
	wl.UpdatedAt = now

	if err := s.storage.SaveWatchlist(ctx, wl); err != nil {
		return nil, fmt.Errorf("failed to save watchlist: %w", err)
	}

	s.logger.Info().Str("symbol", symbol).Int("slot", entry.Slot).Msg("Watchlist entry upserted")
	return wl, nil
}

// RemoveEntry removes a symbol from the watchlist
func (s *Service) RemoveEntry(ctx context.Context, symbol string) (*models.Watchlist, error) {
	wl, err := s.storage.GetWatchlist(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get watchlist: %w", err)
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	_, idx := wl.FindBySymbol(symbol)
	if idx < 0 {
		return nil, fmt.Errorf("symbol '%s' not found in watchlist", symbol)
	}

	wl.Entries = append(wl.Entries[:idx], wl.Entries[idx+1:]...)
	wl.UpdatedAt = time.Now()

	if err := s.storage.SaveWatchlist(ctx, wl); err != nil {
		return nil, fmt.Errorf("failed to save watchlist: %w", err)
	}

	s.logger.Info().Str("symbol", symbol).Msg("Watchlist entry removed")
	return wl, nil
}
