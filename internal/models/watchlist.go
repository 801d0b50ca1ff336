package models

import (
	"strings"
	"time"
)

// WatchlistEntry is one saved dashboard slot.
type WatchlistEntry struct {
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name,omitempty"`
	Slot      int       `json:"slot"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Watchlist is the user's saved set of dashboard symbols.
type Watchlist struct {
	Entries   []WatchlistEntry `json:"entries"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// FindBySymbol returns the entry matching symbol (case-insensitive) and its
// index, or (nil, -1) when absent.
func (w *Watchlist) FindBySymbol(symbol string) (*WatchlistEntry, int) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	for i := range w.Entries {
		if strings.ToUpper(w.Entries[i].Symbol) == symbol {
			return &w.Entries[i], i
		}
	}
	return nil, -1
}

// NextSlot returns the lowest unoccupied slot. Slots are 1-based; zero
// means unassigned.
func (w *Watchlist) NextSlot() int {
	used := make(map[int]bool, len(w.Entries))
	for _, e := range w.Entries {
		used[e.Slot] = true
	}
	slot := 1
	for used[slot] {
		slot++
	}
	return slot
}
