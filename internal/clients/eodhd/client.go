// Package eodhd provides a client for the EODHD API
package eodhd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/finsight/internal/common"
	"github.com/bobmcallan/finsight/internal/models"
)

const (
	DefaultBaseURL   = "https://eodhd.com/api"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// flexFloat64 handles JSON values that may be either a number or a string.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "N/A" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

// Client fetches quotes and price history from EODHD
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

// NewClient creates a new EODHD client
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

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("EODHD API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	// Wait for rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	// Add API key
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.apiKey)
	params.Set("fmt", "json")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("EODHD API request")

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
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// realTimeResponse represents the API response for real-time quotes
type realTimeResponse struct {
	Code          string      `json:"code"`
	Timestamp     int64       `json:"timestamp"`
	Close         flexFloat64 `json:"close"`
	PreviousClose flexFloat64 `json:"previousClose"`
	ChangePct     flexFloat64 `json:"change_p"`
}

// GetQuote retrieves the current price snapshot for a symbol
func (c *Client) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	symbol = models.NormalizeSymbol(symbol)
	path := fmt.Sprintf("/real-time/%s", symbol)

	var resp realTimeResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	if resp.Close == 0 {
		return nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    fmt.Sprintf("no price data for %s", symbol),
			Endpoint:   path,
		}
	}

	asOf := time.Now()
	if resp.Timestamp > 0 {
		asOf = time.Unix(resp.Timestamp, 0)
	}

	return &models.Quote{
		Symbol:        symbol,
		Price:         float64(resp.Close),
		PreviousClose: float64(resp.PreviousClose),
		ChangePct:     float64(resp.ChangePct),
		AsOf:          asOf,
	}, nil
}

// eodBarResponse represents the API response for EOD data
type eodBarResponse struct {
	Date          string  `json:"date"`
	Close         float64 `json:"close"`
	AdjustedClose float64 `json:"adjusted_close"`
}

// GetHistory retrieves up to days of daily closes, oldest first with
// duplicate dates collapsed (last observation wins).
func (c *Client) GetHistory(ctx context.Context, symbol string, days int) (*models.PriceSeries, error) {
	symbol = models.NormalizeSymbol(symbol)
	now := time.Now()

	params := url.Values{}
	params.Set("period", "d")
	params.Set("order", "a")
	params.Set("from", now.AddDate(0, 0, -days).Format("2006-01-02"))
	params.Set("to", now.Format("2006-01-02"))

	path := fmt.Sprintf("/eod/%s", symbol)

	var bars []eodBarResponse
	if err := c.get(ctx, path, params, &bars); err != nil {
		return nil, err
	}

	byDate := make(map[string]float64, len(bars))
	dates := make([]string, 0, len(bars))
	for _, bar := range bars {
		close := bar.AdjustedClose
		if close == 0 {
			close = bar.Close
		}
		if _, seen := byDate[bar.Date]; !seen {
			dates = append(dates, bar.Date)
		}
		byDate[bar.Date] = close
	}
	sort.Strings(dates)

	series := &models.PriceSeries{
		Symbol: symbol,
		Points: make([]models.PricePoint, 0, len(dates)),
	}
	for _, d := range dates {
		date, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		series.Points = append(series.Points, models.PricePoint{Date: date, Close: byDate[d]})
	}

	if len(series.Points) == 0 {
		return nil, &APIError{
			StatusCode: http.StatusOK,
			Message:    fmt.Sprintf("no history for %s", symbol),
			Endpoint:   path,
		}
	}

	return series, nil
}
