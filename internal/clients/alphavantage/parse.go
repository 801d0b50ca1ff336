package alphavantage

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/guregu/null/v6"

	"github.com/danielTongu/stockdash/internal/models"
)

// rawPoint carries the provider's positional text fields for one bar. The
// unadjusted variants use "5. volume"; the adjusted variants insert
// "5. adjusted close" and shift volume to "6. volume", adding dividend and
// split fields. Both layouts decode into the one struct since the key
// strings never collide.
type rawPoint struct {
	Open             string `json:"1. open"`
	High             string `json:"2. high"`
	Low              string `json:"3. low"`
	Close            string `json:"4. close"`
	Volume           string `json:"5. volume"`
	AdjustedClose    string `json:"5. adjusted close"`
	AdjVolume        string `json:"6. volume"`
	DividendAmount   string `json:"7. dividend amount"`
	SplitCoefficient string `json:"8. split coefficient"`
}

// dateLayouts covers the provider's two granularities: intraday timestamps
// and plain dates.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseSeries converts the decoded container map into typed points sorted
// newest-first. Text-to-numeric conversion happens here, once, so a bad
// value surfaces as a structured error instead of propagating NaN or a
// silent zero through statistics.
func parseSeries(points map[string]rawPoint, endpoint models.SeriesEndpoint) ([]models.SeriesPoint, error) {
	series := make([]models.SeriesPoint, 0, len(points))
	for date, rp := range points {
		p, err := parsePoint(date, rp, endpoint)
		if err != nil {
			return nil, err
		}
		series = append(series, p)
	}

	// Map iteration order is random; the contract is newest-first.
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.After(series[j].Date)
	})
	return series, nil
}

// parsePoint converts one bar. Core OHLC fields are required; the adjusted
// extras and volume stay null when the endpoint does not carry them.
func parsePoint(date string, rp rawPoint, endpoint models.SeriesEndpoint) (models.SeriesPoint, error) {
	ts, err := parseDate(date)
	if err != nil {
		return models.SeriesPoint{}, err
	}

	p := models.SeriesPoint{Date: ts}
	if p.Open, err = requiredFloat(date, "1. open", rp.Open); err != nil {
		return models.SeriesPoint{}, err
	}
	if p.High, err = requiredFloat(date, "2. high", rp.High); err != nil {
		return models.SeriesPoint{}, err
	}
	if p.Low, err = requiredFloat(date, "3. low", rp.Low); err != nil {
		return models.SeriesPoint{}, err
	}
	if p.Close, err = requiredFloat(date, "4. close", rp.Close); err != nil {
		return models.SeriesPoint{}, err
	}

	volumeText := rp.Volume
	if endpoint.Adjusted() {
		volumeText = rp.AdjVolume
	}
	if p.Volume, err = parsedOptionalFloat(date, endpoint.VolumeKey(), volumeText); err != nil {
		return models.SeriesPoint{}, err
	}
	if p.AdjustedClose, err = parsedOptionalFloat(date, "5. adjusted close", rp.AdjustedClose); err != nil {
		return models.SeriesPoint{}, err
	}
	if p.DividendAmount, err = parsedOptionalFloat(date, "7. dividend amount", rp.DividendAmount); err != nil {
		return models.SeriesPoint{}, err
	}
	if p.SplitCoefficient, err = parsedOptionalFloat(date, "8. split coefficient", rp.SplitCoefficient); err != nil {
		return models.SeriesPoint{}, err
	}

	return p, nil
}

func parseDate(date string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, date); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable point date %q", date)
}

// requiredFloat parses a core price field; anything unparsable is an error,
// never a silent zero.
func requiredFloat(date, field, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("point %s: bad %q value %q", date, field, value)
	}
	return f, nil
}

// parsedOptionalFloat parses an optional field: absence is null, a present
// but malformed value is an error.
func parsedOptionalFloat(date, field, value string) (null.Float, error) {
	if value == "" {
		return null.Float{}, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return null.Float{}, fmt.Errorf("point %s: bad %q value %q", date, field, value)
	}
	return null.FloatFrom(f), nil
}

// optionalFloat parses a sparse overview field. The provider writes "None",
// "-" or an empty string for unknowns; those stay null.
func optionalFloat(value string) null.Float {
	switch value {
	case "", "None", "N/A", "-":
		return null.Float{}
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return null.Float{}
	}
	return null.FloatFrom(f)
}

func optionalString(value string) null.String {
	switch value {
	case "", "None", "N/A", "-":
		return null.String{}
	}
	return null.StringFrom(value)
}
