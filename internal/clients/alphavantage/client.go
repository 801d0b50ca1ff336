// Package alphavantage provides a client for the Alpha Vantage API
package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/danielTongu/stockdash/internal/common"
	"github.com/danielTongu/stockdash/internal/interfaces"
	"github.com/danielTongu/stockdash/internal/models"
)

const (
	DefaultBaseURL   = "https://www.alphavantage.co"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Sentinel errors for payload-shaped failures. The provider signals both
// rate limiting and bad symbols with HTTP 200 bodies, so the two must be
// told apart from the payload, not the status code.
var (
	// ErrSeriesUnavailable means the expected series container key was
	// absent from an otherwise well-formed response.
	ErrSeriesUnavailable = errors.New("time series missing from response")

	// ErrRateLimited means the provider returned a notice/information
	// payload instead of data.
	ErrRateLimited = errors.New("provider rate limit reached")
)

// Client implements the MarketDataClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Alpha Vantage client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a transport-level API failure
type APIError struct {
	StatusCode int
	Message    string
	Function   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Alpha Vantage API error: %s (status: %d, function: %s)", e.Message, e.StatusCode, e.Function)
}

// get performs a rate-limited GET against /query and decodes into result
func (c *Client) get(ctx context.Context, function string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("function", function)
	params.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s/query?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("function", function).Msg("Alpha Vantage API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Function:   function,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// searchResponse is the SYMBOL_SEARCH envelope
type searchResponse struct {
	BestMatches []struct {
		Symbol     string `json:"1. symbol"`
		Name       string `json:"2. name"`
		Type       string `json:"3. type"`
		Region     string `json:"4. region"`
		Currency   string `json:"8. currency"`
		MatchScore string `json:"9. matchScore"`
	} `json:"bestMatches"`
	Note        string `json:"Note"`
	Information string `json:"Information"`
}

// SearchSymbol runs the provider's best-match search. Matches come back in
// provider rank order; the caller takes the top entry, this client never
// re-ranks.
func (c *Client) SearchSymbol(ctx context.Context, query string) ([]models.SymbolMatch, error) {
	params := url.Values{}
	params.Set("keywords", query)

	var resp searchResponse
	if err := c.get(ctx, "SYMBOL_SEARCH", params, &resp); err != nil {
		return nil, err
	}
	if resp.Note != "" || resp.Information != "" {
		return nil, fmt.Errorf("%w: %s", ErrRateLimited, firstNonEmpty(resp.Note, resp.Information))
	}

	matches := make([]models.SymbolMatch, len(resp.BestMatches))
	for i, m := range resp.BestMatches {
		matches[i] = models.SymbolMatch{
			Symbol:     m.Symbol,
			Name:       m.Name,
			Region:     m.Region,
			Currency:   m.Currency,
			MatchScore: m.MatchScore,
		}
	}

	c.logger.Debug().Str("query", query).Int("matches", len(matches)).Msg("Symbol search returned")
	return matches, nil
}

// seriesKey maps an endpoint to the top-level container key of its
// response. The provider uses a different key string per granularity, and
// the intraday key embeds the interval.
func seriesKey(endpoint models.SeriesEndpoint, interval string) string {
	switch endpoint {
	case models.EndpointIntraday:
		return fmt.Sprintf("Time Series (%s)", interval)
	case models.EndpointDaily, models.EndpointDailyAdjusted:
		return "Time Series (Daily)"
	case models.EndpointWeeklyAdjusted:
		return "Weekly Adjusted Time Series"
	case models.EndpointMonthlyAdjusted:
		return "Monthly Adjusted Time Series"
	}
	return ""
}

// GetSeries retrieves the raw OHLCV series for an endpoint, newest-first.
// A response without the expected container key is ErrSeriesUnavailable;
// notice payloads are ErrRateLimited.
func (c *Client) GetSeries(ctx context.Context, symbol string, endpoint models.SeriesEndpoint, interval string) ([]models.SeriesPoint, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("outputsize", "full")
	if endpoint == models.EndpointIntraday {
		params.Set("interval", interval)
	}

	var envelope map[string]json.RawMessage
	if err := c.get(ctx, string(endpoint), params, &envelope); err != nil {
		return nil, err
	}

	if msg := noticeMessage(envelope); msg != "" {
		return nil, fmt.Errorf("%w: %s", ErrRateLimited, msg)
	}
	if raw, ok := envelope["Error Message"]; ok {
		var msg string
		json.Unmarshal(raw, &msg)
		return nil, fmt.Errorf("%w: %s", ErrSeriesUnavailable, msg)
	}

	key := seriesKey(endpoint, interval)
	container, ok := envelope[key]
	if !ok {
		return nil, fmt.Errorf("%w: expected key %q", ErrSeriesUnavailable, key)
	}

	var points map[string]rawPoint
	if err := json.Unmarshal(container, &points); err != nil {
		return nil, fmt.Errorf("failed to decode series container %q: %w", key, err)
	}

	series, err := parseSeries(points, endpoint)
	if err != nil {
		return nil, fmt.Errorf("series for %s: %w", symbol, err)
	}

	c.logger.Debug().
		Str("symbol", symbol).
		Str("function", string(endpoint)).
		Int("points", len(series)).
		Msg("Time series fetched")
	return series, nil
}

// noticeMessage extracts a rate-limit/plan notice from a 200 payload.
func noticeMessage(envelope map[string]json.RawMessage) string {
	for _, key := range []string{"Note", "Information"} {
		if raw, ok := envelope[key]; ok {
			var msg string
			if err := json.Unmarshal(raw, &msg); err == nil && msg != "" {
				return msg
			}
		}
	}
	return ""
}

// overviewResponse is the OVERVIEW payload: a flat map of text fields, any
// of which may be missing, "None" or "-".
type overviewResponse struct {
	Name              string `json:"Name"`
	Sector            string `json:"Sector"`
	Industry          string `json:"Industry"`
	MarketCap         string `json:"MarketCapitalization"`
	PERatio           string `json:"PERatio"`
	Beta              string `json:"Beta"`
	EPS               string `json:"EPS"`
	AnalystTarget     string `json:"AnalystTargetPrice"`
	LatestQuarter     string `json:"LatestQuarter"`
	Note              string `json:"Note"`
	Information       string `json:"Information"`
	ErrorMessageField string `json:"Error Message"`
}

// GetOverview retrieves the company overview record. Missing fields stay
// null. The provider answers unknown symbols with an empty object; that
// comes back as an all-null record, not an error.
func (c *Client) GetOverview(ctx context.Context, symbol string) (*models.OverviewRecord, error) {
	params := url.Values{}
	params.Set("symbol", symbol)

	var resp overviewResponse
	if err := c.get(ctx, "OVERVIEW", params, &resp); err != nil {
		return nil, err
	}
	if resp.Note != "" || resp.Information != "" {
		return nil, fmt.Errorf("%w: %s", ErrRateLimited, firstNonEmpty(resp.Note, resp.Information))
	}

	return &models.OverviewRecord{
		Name:          optionalString(resp.Name),
		Sector:        optionalString(resp.Sector),
		Industry:      optionalString(resp.Industry),
		MarketCap:     optionalFloat(resp.MarketCap),
		PERatio:       optionalFloat(resp.PERatio),
		Beta:          optionalFloat(resp.Beta),
		EPS:           optionalFloat(resp.EPS),
		AnalystTarget: optionalFloat(resp.AnalystTarget),
		EarningsDate:  optionalString(resp.LatestQuarter),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Ensure Client implements MarketDataClient
var _ interfaces.MarketDataClient = (*Client)(nil)
