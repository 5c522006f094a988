// Package pricefeed fetches the current spot price from a public HTTP API.
package pricefeed

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Source returns one current price per call.
type Source interface {
	Fetch(ctx context.Context) (float64, error)
}

// FetchError describes why a price could not be obtained. Op is one of
// "request", "status", "decode" or "missing".
type FetchError struct {
	Op  string
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("pricefeed: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

const simplePricePath = "/api/v3/simple/price"

// CoinGecko queries the simple-price endpoint for a single coin/currency
// pair, e.g. GET /api/v3/simple/price?ids=bitcoin&vs_currencies=usd which
// answers {"bitcoin":{"usd":67012.5}}.
type CoinGecko struct {
	baseURL    string
	coinID     string
	vsCurrency string
	hc         *http.Client
}

// NewCoinGecko builds a client. A nil hc gets a client with the given
// timeout.
func NewCoinGecko(baseURL, coinID, vsCurrency string, timeout time.Duration, hc *http.Client) *CoinGecko {
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	return &CoinGecko{
		baseURL:    strings.TrimRight(baseURL, "/"),
		coinID:     strings.ToLower(coinID),
		vsCurrency: strings.ToLower(vsCurrency),
		hc:         hc,
	}
}

// Endpoint returns the fully-qualified request URL.
func (c *CoinGecko) Endpoint() string {
	q := url.Values{}
	q.Set("ids", c.coinID)
	q.Set("vs_currencies", c.vsCurrency)
	return c.baseURL + simplePricePath + "?" + q.Encode()
}

// Fetch performs one request. Every failure is a *FetchError.
func (c *CoinGecko) Fetch(ctx context.Context) (float64, error) {
	u := c.Endpoint()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, &FetchError{Op: "request", URL: u, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, &FetchError{Op: "request", URL: u, Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, &FetchError{Op: "request", URL: u, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return 0, &FetchError{Op: "status", URL: u,
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(b), 256))}
	}
	return c.parse(u, b)
}

func (c *CoinGecko) parse(u string, body []byte) (float64, error) {
	var out map[string]map[string]interface{}
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, &FetchError{Op: "decode", URL: u, Err: err}
	}
	quotes, ok := out[c.coinID]
	if !ok {
		return 0, &FetchError{Op: "missing", URL: u, Err: fmt.Errorf("no entry for %q", c.coinID)}
	}
	raw, ok := quotes[c.vsCurrency]
	if !ok {
		return 0, &FetchError{Op: "missing", URL: u,
			Err: fmt.Errorf("no %q quote for %q", c.vsCurrency, c.coinID)}
	}
	price, ok := raw.(float64)
	if !ok {
		return 0, &FetchError{Op: "decode", URL: u, Err: fmt.Errorf("quote is %T, not a number", raw)}
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, &FetchError{Op: "decode", URL: u, Err: fmt.Errorf("unusable price %v", price)}
	}
	return price, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
