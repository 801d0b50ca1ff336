// Package series provides timeframe policy resolution, window filtering and
// statistics over raw OHLCV series. Everything here is pure: raw input in,
// derived output out, no network and no shared state.
package series

import (
	"errors"
	"fmt"

	"github.com/danielTongu/stockdash/internal/models"
)

// ErrInvalidTimeframe is returned for labels outside the recognized set.
var ErrInvalidTimeframe = errors.New("invalid timeframe")

// policies maps every recognized label to its upstream and charting
// parameters. All labels except ALL use the date-cutoff rule with a fixed
// lookback fallback; ALL keeps the full series. Fallback counts approximate
// one "screenful" at the label's granularity: 78 five-minute bars is a US
// trading session, 22 daily bars a calendar month.
var policies = map[models.Timeframe]models.TimeframePolicy{
	models.Timeframe1D: {
		Label:         models.Timeframe1D,
		Endpoint:      models.EndpointIntraday,
		Interval:      "5min",
		ChartTimeUnit: "hour",
		ChartTicks:    6,
		Rule:          models.WindowRuleCutoff,
		FallbackBars:  78,
	},
	models.Timeframe5D: {
		Label:         models.Timeframe5D,
		Endpoint:      models.EndpointIntraday,
		Interval:      "60min",
		ChartTimeUnit: "day",
		ChartTicks:    5,
		Rule:          models.WindowRuleCutoff,
		FallbackBars:  40,
	},
	models.Timeframe1M: {
		Label:         models.Timeframe1M,
		Endpoint:      models.EndpointDaily,
		ChartTimeUnit: "day",
		ChartTicks:    6,
		Rule:          models.WindowRuleCutoff,
		FallbackBars:  22,
	},
	models.Timeframe6M: {
		Label:         models.Timeframe6M,
		Endpoint:      models.EndpointDailyAdjusted,
		ChartTimeUnit: "month",
		ChartTicks:    6,
		Rule:          models.WindowRuleCutoff,
		FallbackBars:  130,
	},
	models.TimeframeYTD: {
		Label:         models.TimeframeYTD,
		Endpoint:      models.EndpointDailyAdjusted,
		ChartTimeUnit: "month",
		ChartTicks:    6,
		Rule:          models.WindowRuleCutoff,
		FallbackBars:  22,
	},
	models.Timeframe1Y: {
		Label:         models.Timeframe1Y,
		Endpoint:      models.EndpointDailyAdjusted,
		ChartTimeUnit: "month",
		ChartTicks:    6,
		Rule:          models.WindowRuleCutoff,
		FallbackBars:  260,
	},
	models.Timeframe5Y: {
		Label:         models.Timeframe5Y,
		Endpoint:      models.EndpointWeeklyAdjusted,
		ChartTimeUnit: "year",
		ChartTicks:    5,
		Rule:          models.WindowRuleCutoff,
		FallbackBars:  260,
	},
	models.TimeframeAll: {
		Label:         models.TimeframeAll,
		Endpoint:      models.EndpointMonthlyAdjusted,
		ChartTimeUnit: "year",
		ChartTicks:    8,
		Rule:          models.WindowRuleCount,
	},
}

// ResolvePolicy returns the policy for a timeframe label. It is total over
// the recognized label set and fails with ErrInvalidTimeframe for anything
// else, before any network call is made.
func ResolvePolicy(label models.Timeframe) (models.TimeframePolicy, error) {
	p, ok := policies[label]
	if !ok {
		return models.TimeframePolicy{}, fmt.Errorf("%w: %q", ErrInvalidTimeframe, string(label))
	}
	return p, nil
}
