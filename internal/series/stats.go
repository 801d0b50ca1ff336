package series

import (
	"math"

	"github.com/guregu/null/v6"

	"github.com/danielTongu/stockdash/internal/models"
)

// WeekWindowBars approximates 52 weeks of trading days. The 52-week range
// always looks at the most recent raw bars, independent of the active
// timeframe's window.
const WeekWindowBars = 260

// Compute derives the statistics bundle from the windowed (chronological)
// series and the raw (newest-first) series. With fewer than two windowed
// points every field stays null and PercentChange stays 0; there is nothing
// meaningful to derive.
func Compute(windowed, raw []models.SeriesPoint) models.StatisticsBundle {
	var b models.StatisticsBundle
	b.PercentChange = PercentChange(windowed)
	if len(windowed) < 2 {
		return b
	}

	last := windowed[len(windowed)-1]
	prev := windowed[len(windowed)-2]

	b.PreviousClose = null.FloatFrom(prev.Close)
	b.OpenPrice = null.FloatFrom(last.Open)
	b.DayHigh = null.FloatFrom(last.High)
	b.DayLow = null.FloatFrom(last.Low)
	b.Volume = last.Volume
	b.AdjustedClose = last.AdjustedClose
	b.DividendAmount = last.DividendAmount
	b.SplitCoefficient = last.SplitCoefficient
	b.AvgVolume = AverageVolume(windowed)
	b.WeekLow52, b.WeekHigh52 = Range52Week(raw)

	return b
}

// PercentChange is the change from the first to the last close of the
// windowed series, in percent. Short or degenerate windows read as 0,
// indistinguishable from a true zero-change reading.
func PercentChange(windowed []models.SeriesPoint) float64 {
	if len(windowed) < 2 {
		return 0
	}
	first := windowed[0].Close
	last := windowed[len(windowed)-1].Close
	if first == 0 {
		return 0
	}
	return (last - first) / first * 100
}

// AverageVolume is the arithmetic mean of volume over the windowed series.
// Missing volume values count as 0 in the sum but stay in the divisor, so
// sparse data biases the average low.
func AverageVolume(windowed []models.SeriesPoint) null.Float {
	if len(windowed) == 0 {
		return null.Float{}
	}
	var sum float64
	for _, p := range windowed {
		if p.Volume.Valid {
			sum += p.Volume.Float64
		}
	}
	return null.FloatFrom(sum / float64(len(windowed)))
}

// Range52Week returns the lowest low and highest high over the most recent
// WeekWindowBars points of the raw, unwindowed series.
func Range52Week(raw []models.SeriesPoint) (low, high null.Float) {
	n := len(raw)
	if n == 0 {
		return null.Float{}, null.Float{}
	}
	if n > WeekWindowBars {
		n = WeekWindowBars
	}

	lo := math.MaxFloat64
	hi := -math.MaxFloat64
	for i := 0; i < n; i++ {
		if raw[i].Low < lo {
			lo = raw[i].Low
		}
		if raw[i].High > hi {
			hi = raw[i].High
		}
	}
	return null.FloatFrom(lo), null.FloatFrom(hi)
}
