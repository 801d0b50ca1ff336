// Package app wires application dependencies
package app

import (
	"fmt"

	"github.com/danielTongu/stockdash/internal/clients/alphavantage"
	"github.com/danielTongu/stockdash/internal/common"
	"github.com/danielTongu/stockdash/internal/interfaces"
	"github.com/danielTongu/stockdash/internal/services/snapshot"
	"github.com/danielTongu/stockdash/internal/services/watchlist"
	"github.com/danielTongu/stockdash/internal/storage/watchlistfs"
)

// App holds the wired application: config, logger, client, storage and
// services.
type App struct {
	Config    *common.Config
	Logger    *common.Logger
	Client    interfaces.MarketDataClient
	Storage   interfaces.WatchlistStorage
	Snapshots interfaces.SnapshotService
	Watchlist interfaces.WatchlistService
}

// NewApp loads configuration and constructs all services.
func NewApp(configPath string) (*App, error) {
	config, err := common.LoadConfig(configPath, "stockdash.toml")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	apiKey, err := config.ResolveAPIKey()
	if err != nil {
		return nil, err
	}

	client := alphavantage.NewClient(apiKey,
		alphavantage.WithBaseURL(config.Clients.AlphaVantage.BaseURL),
		alphavantage.WithRateLimit(config.Clients.AlphaVantage.RateLimit),
		alphavantage.WithTimeout(config.Clients.AlphaVantage.GetTimeout()),
		alphavantage.WithLogger(logger),
	)

	store, err := watchlistfs.NewStore(logger, config.Storage.Watchlist.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open watchlist store: %w", err)
	}

	return &App{
		Config:    config,
		Logger:    logger,
		Client:    client,
		Storage:   store,
		Snapshots: snapshot.NewService(client, logger),
		Watchlist: watchlist.NewService(store, logger),
	}, nil
}

// Close releases application resources.
func (a *App) Close() {
	if a.Storage != nil {
		a.Storage.Close()
	}
}
