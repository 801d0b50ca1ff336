package series

import (
	"errors"
	"time"

	"github.com/danielTongu/stockdash/internal/models"
)

// ErrEmptyWindow is returned when the raw series itself has zero points.
// An empty result after filtering available data triggers the lookback
// fallback instead.
var ErrEmptyWindow = errors.New("raw series is empty")

// ApplyWindow reduces a newest-first raw series to the chronologically
// ordered window a timeframe displays. Pure: identical inputs always produce
// the identical window.
func ApplyWindow(raw []models.SeriesPoint, policy models.TimeframePolicy, now time.Time) ([]models.SeriesPoint, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyWindow
	}

	var kept []models.SeriesPoint
	switch policy.Rule {
	case models.WindowRuleCount:
		n := len(raw)
		if policy.MaxBars > 0 && policy.MaxBars < n {
			n = policy.MaxBars
		}
		kept = append(kept, raw[:n]...)
	default:
		cutoff := windowCutoff(policy.Label, now)
		for _, p := range raw {
			if !p.Date.Before(cutoff) {
				kept = append(kept, p)
			}
		}
		if len(kept) == 0 {
			// The window is empty but data exists (e.g. a 1D request over a
			// long weekend). Show the most recent bars instead of an empty
			// chart.
			n := policy.FallbackBars
			if n <= 0 || n > len(raw) {
				n = len(raw)
			}
			kept = append(kept, raw[:n]...)
		}
	}

	// Upstream delivers newest-first; the window is oldest-first.
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return kept, nil
}

// windowCutoff computes the inclusive lower bound of a cutoff window.
func windowCutoff(label models.Timeframe, now time.Time) time.Time {
	switch label {
	case models.Timeframe1D:
		return now.Add(-24 * time.Hour)
	case models.Timeframe5D:
		return now.AddDate(0, 0, -5)
	case models.Timeframe1M:
		return now.AddDate(0, -1, 0)
	case models.Timeframe6M:
		return now.AddDate(0, -6, 0)
	case models.TimeframeYTD:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	case models.Timeframe1Y:
		return now.AddDate(-1, 0, 0)
	case models.Timeframe5Y:
		return now.AddDate(-5, 0, 0)
	}
	// Count-rule labels never reach here; keep everything if one does.
	return time.Time{}
}
