package models

import (
	"time"

	"github.com/guregu/null/v6"
)

// SeriesPoint is a single parsed OHLCV bar. Core prices are parsed from the
// provider's text fields at ingestion; the adjusted-series extras are null
// when the endpoint does not supply them.
type SeriesPoint struct {
	Date             time.Time  `json:"date"`
	Open             float64    `json:"open"`
	High             float64    `json:"high"`
	Low              float64    `json:"low"`
	Close            float64    `json:"close"`
	AdjustedClose    null.Float `json:"adjusted_close"`
	Volume           null.Float `json:"volume"`
	DividendAmount   null.Float `json:"dividend_amount"`
	SplitCoefficient null.Float `json:"split_coefficient"`
}

// SymbolMatch is one entry of the provider's best-match symbol search,
// in provider rank order.
type SymbolMatch struct {
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	Region     string `json:"region,omitempty"`
	Currency   string `json:"currency,omitempty"`
	MatchScore string `json:"match_score,omitempty"`
}

// OverviewRecord is a sparse company overview snapshot. Any field may be
// absent upstream and stays null here, never coerced to zero.
type OverviewRecord struct {
	Name          null.String `json:"name"`
	Sector        null.String `json:"sector"`
	Industry      null.String `json:"industry"`
	MarketCap     null.Float  `json:"market_cap"`
	PERatio       null.Float  `json:"pe_ratio"`
	Beta          null.Float  `json:"beta"`
	EPS           null.Float  `json:"eps"`
	AnalystTarget null.Float  `json:"analyst_target"`
	EarningsDate  null.String `json:"earnings_date"`
}

// StatisticsBundle carries every derived trading statistic for a snapshot.
// Fields are null, not zero, when their precondition is unmet; PercentChange
// reads 0 when no change can be derived.
type StatisticsBundle struct {
	PreviousClose    null.Float `json:"previous_close"`
	OpenPrice        null.Float `json:"open_price"`
	DayHigh          null.Float `json:"day_high"`
	DayLow           null.Float `json:"day_low"`
	WeekHigh52       null.Float `json:"week_52_high"`
	WeekLow52        null.Float `json:"week_52_low"`
	Volume           null.Float `json:"volume"`
	AvgVolume        null.Float `json:"avg_volume"`
	AdjustedClose    null.Float `json:"adjusted_close"`
	DividendAmount   null.Float `json:"dividend_amount"`
	SplitCoefficient null.Float `json:"split_coefficient"`
	PercentChange    float64    `json:"percent_change"`
}

// StockSnapshot is one fully assembled, immutable result of resolving a
// symbol and timeframe. A new request always produces a new snapshot.
type StockSnapshot struct {
	Symbol        string           `json:"symbol"`
	Name          string           `json:"name"`
	Timeframe     Timeframe        `json:"timeframe"`
	LatestPrice   null.Float       `json:"latest_price"`
	PercentChange float64          `json:"percent_change"`
	Series        []SeriesPoint    `json:"series"`
	ChartTimeUnit string           `json:"chart_time_unit"`
	ChartTicks    int              `json:"chart_ticks"`
	VolumeKey     string           `json:"volume_key"`
	Stats         StatisticsBundle `json:"stats"`
	Overview      OverviewRecord   `json:"overview"`
	GeneratedAt   time.Time        `json:"generated_at"`
}
