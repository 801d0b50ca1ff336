// Package models defines data structures for stockdash
package models

import "strings"

// Timeframe is a user-selected window/granularity pairing driving all
// downstream policy for a snapshot request.
type Timeframe string

// Recognized timeframe labels.
const (
	Timeframe1D  Timeframe = "1D"
	Timeframe5D  Timeframe = "5D"
	Timeframe1M  Timeframe = "1M"
	Timeframe6M  Timeframe = "6M"
	TimeframeYTD Timeframe = "YTD"
	Timeframe1Y  Timeframe = "1Y"
	Timeframe5Y  Timeframe = "5Y"
	TimeframeAll Timeframe = "ALL"
)

// Timeframes lists all recognized labels in display order.
var Timeframes = []Timeframe{
	Timeframe1D,
	Timeframe5D,
	Timeframe1M,
	Timeframe6M,
	TimeframeYTD,
	Timeframe1Y,
	Timeframe5Y,
	TimeframeAll,
}

// NormalizeTimeframe maps a raw label string to its canonical uppercase form.
// Validity is decided by the policy table, not here.
func NormalizeTimeframe(s string) Timeframe {
	return Timeframe(strings.ToUpper(strings.TrimSpace(s)))
}

// SeriesEndpoint identifies an upstream time-series granularity function.
type SeriesEndpoint string

// Upstream series functions.
const (
	EndpointIntraday        SeriesEndpoint = "TIME_SERIES_INTRADAY"
	EndpointDaily           SeriesEndpoint = "TIME_SERIES_DAILY"
	EndpointDailyAdjusted   SeriesEndpoint = "TIME_SERIES_DAILY_ADJUSTED"
	EndpointWeeklyAdjusted  SeriesEndpoint = "TIME_SERIES_WEEKLY_ADJUSTED"
	EndpointMonthlyAdjusted SeriesEndpoint = "TIME_SERIES_MONTHLY_ADJUSTED"
)

// Adjusted reports whether the endpoint returns a split/dividend adjusted
// series. Adjusted variants carry extra fields and shift the positional
// volume field from "5. volume" to "6. volume".
func (e SeriesEndpoint) Adjusted() bool {
	switch e {
	case EndpointDailyAdjusted, EndpointWeeklyAdjusted, EndpointMonthlyAdjusted:
		return true
	}
	return false
}

// VolumeKey returns the positional field name holding volume for this
// endpoint. The selector is derived from the endpoint, never guessed from
// the response shape.
func (e SeriesEndpoint) VolumeKey() string {
	if e.Adjusted() {
		return "6. volume"
	}
	return "5. volume"
}

// WindowRule selects how a timeframe's raw series is reduced to the
// displayed window.
type WindowRule string

const (
	// WindowRuleCutoff keeps all points at or after a computed cutoff
	// instant, with a fixed-count lookback fallback when the window would
	// otherwise be empty.
	WindowRuleCutoff WindowRule = "cutoff"
	// WindowRuleCount keeps the first MaxBars raw points as delivered
	// (newest-first), or every point when MaxBars is zero.
	WindowRuleCount WindowRule = "count"
)

// TimeframePolicy fixes every upstream and charting parameter implied by a
// timeframe label. Looked up once per request, never mutated.
type TimeframePolicy struct {
	Label         Timeframe      `json:"label"`
	Endpoint      SeriesEndpoint `json:"endpoint"`
	Interval      string         `json:"interval,omitempty"` // intraday only, e.g. "5min"
	ChartTimeUnit string         `json:"chart_time_unit"`    // hour, day, month, year
	ChartTicks    int            `json:"chart_ticks"`
	Rule          WindowRule     `json:"rule"`
	FallbackBars  int            `json:"fallback_bars,omitempty"` // cutoff fallback lookback
	MaxBars       int            `json:"max_bars,omitempty"`      // count rule truncation, 0 = keep all
}
