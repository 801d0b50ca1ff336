package watchlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielTongu/stockdash/internal/common"
	"github.com/danielTongu/stockdash/internal/models"
)

// mockStorage is an in-memory WatchlistStorage.
type mockStorage struct {
	watchlist *models.Watchlist
	saveErr   error
	saves     int
}

func (m *mockStorage) GetWatchlist(ctx context.Context) (*models.Watchlist, error) {
	if m.watchlist == nil {
		return nil, errors.New("watchlist not found")
	}
	return m.watchlist, nil
}

func (m *mockStorage) SaveWatchlist(ctx context.Context, wl *models.Watchlist) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.watchlist = wl
	m.saves++
	return nil
}

func (m *mockStorage) Close() error { return nil }

func TestGetWatchlist_EmptyWhenMissing(t *testing.T) {
	svc := NewService(&mockStorage{}, common.NewSilentLogger())

	wl, err := svc.GetWatchlist(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wl.Entries == nil || len(wl.Entries) != 0 {
		t.Errorf("expected an empty list, got %+v", wl.Entries)
	}
}

func TestAddOrUpdateEntry_NewEntry(t *testing.T) {
	storage := &mockStorage{}
	svc := NewService(storage, common.NewSilentLogger())

	wl, err := svc.AddOrUpdateEntry(context.Background(), &models.WatchlistEntry{
		Symbol: " aapl ",
		Name:   "Apple Inc.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(wl.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(wl.Entries))
	}
	entry := wl.Entries[0]
	if entry.Symbol != "AAPL" {
		t.Errorf("symbol should be normalized uppercase, got %q", entry.Symbol)
	}
	if entry.Slot != 1 {
		t.Errorf("first entry should take slot 1, got %d", entry.Slot)
	}
	if entry.CreatedAt.IsZero() || entry.UpdatedAt.IsZero() {
		t.Error("timestamps should be set on insert")
	}
	if storage.saves != 1 {
		t.Errorf("expected 1 save, got %d", storage.saves)
	}
}

func TestAddOrUpdateEntry_UpsertPreservesCreatedAtAndSlot(t *testing.T) {
	created := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	storage := &mockStorage{
		watchlist: &models.Watchlist{
			Entries: []models.WatchlistEntry{
				{Symbol: "AAPL", Name: "Apple Inc.", Slot: 3, CreatedAt: created},
			},
		},
	}
	svc := NewService(storage, common.NewSilentLogger())

	wl, err := svc.AddOrUpdateEntry(context.Background(), &models.WatchlistEntry{
		Symbol: "aapl",
		Name:   "Apple Inc. (updated)",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(wl.Entries) != 1 {
		t.Fatalf("upsert must not duplicate, got %d entries", len(wl.Entries))
	}
	entry := wl.Entries[0]
	if entry.Name != "Apple Inc. (updated)" {
		t.Errorf("name not updated: %q", entry.Name)
	}
	if !entry.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt must survive an update, got %s", entry.CreatedAt)
	}
	if entry.Slot != 3 {
		t.Errorf("slot must survive an update, got %d", entry.Slot)
	}
	if !entry.UpdatedAt.After(created) {
		t.Error("UpdatedAt should advance on update")
	}
}

func TestAddOrUpdateEntry_SlotAssignment(t *testing.T) {
	storage := &mockStorage{
		watchlist: &models.Watchlist{
			Entries: []models.WatchlistEntry{
				{Symbol: "AAPL", Slot: 1},
				{Symbol: "MSFT", Slot: 4},
			},
		},
	}
	svc := NewService(storage, common.NewSilentLogger())

	wl, err := svc.AddOrUpdateEntry(context.Background(), &models.WatchlistEntry{Symbol: "GOOG"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry, _ := wl.FindBySymbol("GOOG")
	if entry == nil {
		t.Fatal("GOOG not added")
	}
	if entry.Slot != 2 {
		t.Errorf("expected the lowest free slot (2), got %d", entry.Slot)
	}
}

func TestAddOrUpdateEntry_RejectsEmptySymbol(t *testing.T) {
	svc := NewService(&mockStorage{}, common.NewSilentLogger())

	_, err := svc.AddOrUpdateEntry(context.Background(), &models.WatchlistEntry{Symbol: "   "})
	if err == nil {
		t.Fatal("expected an error for a blank symbol")
	}
}

func TestRemoveEntry(t *testing.T) {
	storage := &mockStorage{
		watchlist: &models.Watchlist{
			Entries: []models.WatchlistEntry{
				{Symbol: "AAPL", Slot: 1},
				{Symbol: "MSFT", Slot: 2},
			},
		},
	}
	svc := NewService(storage, common.NewSilentLogger())

	wl, err := svc.RemoveEntry(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(wl.Entries) != 1 || wl.Entries[0].Symbol != "MSFT" {
		t.Errorf("unexpected entries after removal: %+v", wl.Entries)
	}
}

func TestRemoveEntry_MissingSymbol(t *testing.T) {
	storage := &mockStorage{
		watchlist: &models.Watchlist{Entries: []models.WatchlistEntry{{Symbol: "AAPL"}}},
	}
	svc := NewService(storage, common.NewSilentLogger())

	if _, err := svc.RemoveEntry(context.Background(), "TSLA"); err == nil {
		t.Fatal("expected an error removing an absent symbol")
	}
}
