package eodhd

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/real-time/AAPL", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_token"))
		assert.Equal(t, "json", r.URL.Query().Get("fmt"))

		fmt.Fprint(w, `{
			"code": "AAPL",
			"timestamp": 1756100000,
			"close": 185.5,
			"previousClose": "183.20",
			"change_p": 1.2555
		}`)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	quote, err := client.GetQuote(context.Background(), "aapl")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Equal(t, 185.5, quote.Price)
	assert.Equal(t, 183.20, quote.PreviousClose)
	assert.InDelta(t, 1.2555, quote.ChangePct, 1e-9)
	assert.Equal(t, int64(1756100000), quote.AsOf.Unix())
}

func TestGetQuoteNoPriceData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code": "XXXX", "close": "NA"}`)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	_, err := client.GetQuote(context.Background(), "XXXX")
	assert.Error(t, err)
}

func TestGetQuoteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid API key", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("bad-key", WithBaseURL(server.URL))

	_, err := client.GetQuote(context.Background(), "AAPL")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestGetHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/eod/AAPL", r.URL.Path)
		assert.Equal(t, "d", r.URL.Query().Get("period"))

		// Out of order with a duplicate date; adjusted close preferred
		fmt.Fprint(w, `[
			{"date": "2026-08-20", "close": 183.0, "adjusted_close": 182.5},
			{"date": "2026-08-18", "close": 180.0, "adjusted_close": 179.5},
			{"date": "2026-08-19", "close": 181.0, "adjusted_close": 0},
			{"date": "2026-08-18", "close": 180.5, "adjusted_close": 180.1}
		]`)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	series, err := client.GetHistory(context.Background(), "AAPL", 30)
	require.NoError(t, err)

	require.Len(t, series.Points, 3)

	// Ascending dates, last observation wins for the duplicate
	assert.Equal(t, "2026-08-18", series.Points[0].Date.Format("2006-01-02"))
	assert.Equal(t, 180.1, series.Points[0].Close)

	// Zero adjusted close falls back to raw close
	assert.Equal(t, 181.0, series.Points[1].Close)
	assert.Equal(t, 182.5, series.Points[2].Close)

	for i := 1; i < len(series.Points); i++ {
		assert.True(t, series.Points[i].Date.After(series.Points[i-1].Date))
	}
}

func TestGetHistoryEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	_, err := client.GetHistory(context.Background(), "AAPL", 30)
	assert.Error(t, err)
}

func TestFlexFloat64(t *testing.T) {
	var f flexFloat64

	require.NoError(t, f.UnmarshalJSON([]byte(`12.5`)))
	assert.Equal(t, flexFloat64(12.5), f)

	require.NoError(t, f.UnmarshalJSON([]byte(`"13.25"`)))
	assert.Equal(t, flexFloat64(13.25), f)

	require.NoError(t, f.UnmarshalJSON([]byte(`"N/A"`)))
	assert.Equal(t, flexFloat64(0), f)

	require.NoError(t, f.UnmarshalJSON([]byte(`""`)))
	assert.Equal(t, flexFloat64(0), f)
}
