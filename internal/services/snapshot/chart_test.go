package snapshot

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/danielTongu/stockdash/internal/models"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderChart_ProducesPNG(t *testing.T) {
	client := &mockClient{}
	svc := newTestService(client, time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))

	png, err := svc.RenderChart(context.Background(), "AAPL", models.Timeframe1M)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Errorf("output does not start with the PNG signature: % x", png[:8])
	}
}

func TestRenderSeriesChart_NeedsTwoPoints(t *testing.T) {
	snap := &models.StockSnapshot{
		Symbol: "AAPL",
		Series: []models.SeriesPoint{
			{Date: time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), Close: 100},
		},
	}
	if _, err := renderSeriesChart(snap); err == nil {
		t.Fatal("expected an error for a single-point series")
	}
}

func TestAxisDateFormat(t *testing.T) {
	tests := []struct {
		unit string
		want string
	}{
		{"hour", "15:04"},
		{"day", "02 Jan"},
		{"month", "Jan 06"},
		{"year", "2006"},
		{"unknown", "02 Jan 06"},
	}
	for _, tt := range tests {
		if got := axisDateFormat(tt.unit); got != tt.want {
			t.Errorf("axisDateFormat(%q) = %q, want %q", tt.unit, got, tt.want)
		}
	}
}
