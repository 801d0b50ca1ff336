// Package watchlistfs implements file-based JSON storage for the dashboard
// watchlist.
package watchlistfs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/danielTongu/stockdash/internal/common"
	"github.com/danielTongu/stockdash/internal/interfaces"
	"github.com/danielTongu/stockdash/internal/models"
)

const watchlistKey = "watchlist"

// Store provides file-based JSON storage for the watchlist.
type Store struct {
	basePath string
	logger   *common.Logger
}

// NewStore creates a new watchlist file store.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create watchlist store path %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("Watchlist store opened")
	return &Store{
		basePath: path,
		logger:   logger,
	}, nil
}

// GetWatchlist loads the saved watchlist.
func (s *Store) GetWatchlist(_ context.Context) (*models.Watchlist, error) {
	var wl models.Watchlist
	if err := s.readJSON(watchlistKey, &wl); err != nil {
		return nil, fmt.Errorf("watchlist not found")
	}
	return &wl, nil
}

// SaveWatchlist persists the watchlist atomically.
func (s *Store) SaveWatchlist(_ context.Context, wl *models.Watchlist) error {
	if err := s.writeJSON(watchlistKey, wl); err != nil {
		return fmt.Errorf("failed to save watchlist: %w", err)
	}
	s.logger.Debug().Int("entries", len(wl.Entries)).Msg("Watchlist saved")
	return nil
}

// Close is a no-op for file-based storage.
func (s *Store) Close() error {
	return nil
}

// --- helpers ---

func sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(key)
}

func (s *Store) filePath(key string) string {
	return filepath.Join(s.basePath, sanitizeKey(key)+".json")
}

func (s *Store) readJSON(key string, dest interface{}) error {
	path := s.filePath(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("'%s' not found", key)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return fmt.Errorf("'%s' is empty", key)
	}
	return json.Unmarshal(data, dest)
}

func (s *Store) writeJSON(key string, data interface{}) error {
	target := s.filePath(key)
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonData = append(jsonData, '\n')

	tmpFile, err := os.CreateTemp(s.basePath, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(jsonData); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Ensure Store implements WatchlistStorage
var _ interfaces.WatchlistStorage = (*Store)(nil)
