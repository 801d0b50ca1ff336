package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/guregu/null/v6"

	"github.com/danielTongu/stockdash/internal/common"
	"github.com/danielTongu/stockdash/internal/models"
	"github.com/danielTongu/stockdash/internal/series"
)

// mockClient is a hand-written MarketDataClient with per-method call
// counters, so tests can assert which upstream calls a request cost.
type mockClient struct {
	searchFunc   func(ctx context.Context, query string) ([]models.SymbolMatch, error)
	seriesFunc   func(ctx context.Context, symbol string, endpoint models.SeriesEndpoint, interval string) ([]models.SeriesPoint, error)
	overviewFunc func(ctx context.Context, symbol string) (*models.OverviewRecord, error)

	searchCalls   int
	seriesCalls   int
	overviewCalls int
}

func (m *mockClient) SearchSymbol(ctx context.Context, query string) ([]models.SymbolMatch, error) {
	m.searchCalls++
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query)
	}
	return []models.SymbolMatch{{Symbol: "AAPL", Name: "Apple Inc."}}, nil
}

func (m *mockClient) GetSeries(ctx context.Context, symbol string, endpoint models.SeriesEndpoint, interval string) ([]models.SeriesPoint, error) {
	m.seriesCalls++
	if m.seriesFunc != nil {
		return m.seriesFunc(ctx, symbol, endpoint, interval)
	}
	return dailyBars(time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), 30), nil
}

func (m *mockClient) GetOverview(ctx context.Context, symbol string) (*models.OverviewRecord, error) {
	m.overviewCalls++
	if m.overviewFunc != nil {
		return m.overviewFunc(ctx, symbol)
	}
	return &models.OverviewRecord{Name: null.StringFrom("Apple Inc.")}, nil
}

// dailyBars builds n daily points newest-first ending at end, with closes
// climbing toward the newest bar.
func dailyBars(end time.Time, n int) []models.SeriesPoint {
	points := make([]models.SeriesPoint, n)
	for i := 0; i < n; i++ {
		price := 100.0 + float64(n-1-i)
		points[i] = models.SeriesPoint{
			Date:   end.AddDate(0, 0, -i),
			Open:   price - 0.5,
			High:   price + 1,
			Low:    price - 1,
			Close:  price,
			Volume: null.FloatFrom(1000),
		}
	}
	return points
}

func newTestService(client *mockClient, now time.Time) *Service {
	svc := NewService(client, common.NewSilentLogger())
	svc.now = func() time.Time { return now }
	return svc
}

func TestGetSnapshot_InvalidTimeframeCostsNoNetwork(t *testing.T) {
	client := &mockClient{}
	svc := newTestService(client, time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))

	_, err := svc.GetSnapshot(context.Background(), "AAPL", models.NormalizeTimeframe("3M"))
	if !errors.Is(err, series.ErrInvalidTimeframe) {
		t.Fatalf("expected ErrInvalidTimeframe, got %v", err)
	}
	if client.searchCalls != 0 || client.seriesCalls != 0 || client.overviewCalls != 0 {
		t.Errorf("invalid timeframe must not reach the network, calls: %d/%d/%d",
			client.searchCalls, client.seriesCalls, client.overviewCalls)
	}
}

func TestGetSnapshot_InvalidQuery(t *testing.T) {
	client := &mockClient{}
	svc := newTestService(client, time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))

	for _, query := range []string{"", "   ", strings.Repeat("A", 33)} {
		_, err := svc.GetSnapshot(context.Background(), query, models.Timeframe1M)
		if !errors.Is(err, ErrInvalidQuery) {
			t.Errorf("query %q: expected ErrInvalidQuery, got %v", query, err)
		}
	}
	if client.searchCalls != 0 {
		t.Errorf("invalid queries must not reach the network, searches: %d", client.searchCalls)
	}
}

func TestGetSnapshot_NoMatch(t *testing.T) {
	client := &mockClient{
		searchFunc: func(ctx context.Context, query string) ([]models.SymbolMatch, error) {
			return nil, nil
		},
	}
	svc := newTestService(client, time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))

	_, err := svc.GetSnapshot(context.Background(), "ZZZZZZ", models.Timeframe1M)
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
	if client.seriesCalls != 0 {
		t.Error("no-match queries must not fetch a series")
	}
}

func TestGetSnapshot_OneMonth(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	client := &mockClient{}
	svc := newTestService(client, now)

	snap, err := svc.GetSnapshot(context.Background(), " apple ", models.Timeframe1M)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.Symbol != "AAPL" || snap.Name != "Apple Inc." {
		t.Errorf("unexpected resolution: %s / %s", snap.Symbol, snap.Name)
	}
	if snap.Timeframe != models.Timeframe1M {
		t.Errorf("unexpected timeframe: %s", snap.Timeframe)
	}
	if len(snap.Series) == 0 {
		t.Fatal("expected a non-empty series")
	}
	// Windowed series is chronological; latest price is the newest close.
	last := snap.Series[len(snap.Series)-1]
	if !last.Date.After(snap.Series[0].Date) {
		t.Error("windowed series not chronological")
	}
	if !snap.LatestPrice.Valid || snap.LatestPrice.Float64 != last.Close {
		t.Errorf("latest price %+v does not match newest close %f", snap.LatestPrice, last.Close)
	}
	if snap.VolumeKey != "5. volume" {
		t.Errorf("1M daily series should carry %q, got %q", "5. volume", snap.VolumeKey)
	}
	if snap.PercentChange <= 0 {
		t.Errorf("rising closes should give positive change, got %f", snap.PercentChange)
	}
	if !snap.GeneratedAt.Equal(now) {
		t.Errorf("expected injected clock %s, got %s", now, snap.GeneratedAt)
	}
	if !snap.Overview.Name.Valid {
		t.Error("expected overview to be attached")
	}
}

func TestGetSnapshot_IntradayStaleFallback(t *testing.T) {
	// Intraday data three days older than the clock: the 24h cutoff window
	// is empty, so the fallback lookback must still produce bars.
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	stale := time.Date(2026, 8, 28, 16, 0, 0, 0, time.UTC)
	client := &mockClient{
		seriesFunc: func(ctx context.Context, symbol string, endpoint models.SeriesEndpoint, interval string) ([]models.SeriesPoint, error) {
			if endpoint != models.EndpointIntraday || interval != "5min" {
				t.Errorf("1D should request 5min intraday, got %s %s", endpoint, interval)
			}
			points := make([]models.SeriesPoint, 200)
			for i := range points {
				points[i] = models.SeriesPoint{
					Date:  stale.Add(-time.Duration(i) * 5 * time.Minute),
					Open:  100, High: 101, Low: 99, Close: 100,
					Volume: null.FloatFrom(10),
				}
			}
			return points, nil
		},
	}
	svc := newTestService(client, now)

	snap, err := svc.GetSnapshot(context.Background(), "AAPL", models.Timeframe1D)
	if err != nil {
		t.Fatalf("expected fallback to rescue stale data, got %v", err)
	}
	if len(snap.Series) == 0 {
		t.Fatal("fallback produced no bars")
	}
	policy, _ := series.ResolvePolicy(models.Timeframe1D)
	if len(snap.Series) != policy.FallbackBars {
		t.Errorf("expected %d fallback bars, got %d", policy.FallbackBars, len(snap.Series))
	}
}

func TestGetSnapshot_SeriesFailureIsFatal(t *testing.T) {
	wantErr := errors.New("upstream down")
	client := &mockClient{
		seriesFunc: func(ctx context.Context, symbol string, endpoint models.SeriesEndpoint, interval string) ([]models.SeriesPoint, error) {
			return nil, wantErr
		},
	}
	svc := newTestService(client, time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))

	_, err := svc.GetSnapshot(context.Background(), "AAPL", models.Timeframe1M)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected series error to surface, got %v", err)
	}
}

func TestGetSnapshot_OverviewFailureDegrades(t *testing.T) {
	client := &mockClient{
		overviewFunc: func(ctx context.Context, symbol string) (*models.OverviewRecord, error) {
			return nil, errors.New("overview down")
		},
	}
	svc := newTestService(client, time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))

	snap, err := svc.GetSnapshot(context.Background(), "AAPL", models.Timeframe1M)
	if err != nil {
		t.Fatalf("overview failure must not abort the snapshot: %v", err)
	}
	if snap.Overview.Name.Valid || snap.Overview.PERatio.Valid {
		t.Errorf("expected an empty overview record, got %+v", snap.Overview)
	}
	if len(snap.Series) == 0 {
		t.Error("series must survive an overview failure")
	}
}

func TestGetSnapshot_Deterministic(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	client := &mockClient{}
	svc := newTestService(client, now)

	first, err := svc.GetSnapshot(context.Background(), "AAPL", models.Timeframe1M)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.GetSnapshot(context.Background(), "AAPL", models.Timeframe1M)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs under a fixed clock must produce identical snapshots")
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Error("snapshot JSON encodings differ between identical runs")
	}
}
