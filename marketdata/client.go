// Package marketdata implements the ledger's PriceProvider against the
// Yahoo Finance v8 chart endpoint.
package marketdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog"

	"github.com/marcward/aivest"
)

const (
	defaultBaseURL  = "https://query2.finance.yahoo.com/v8/finance/chart"
	source          = "yahoo-finance"
	defaultCurrency = "USD"

	defaultQuoteTimeout = 10 * time.Second
	defaultBatchTimeout = 15 * time.Second
	defaultCacheTTL     = 60 * time.Second
)

// Client fetches quotes over HTTP. Quotes are kept in a small TTL cache so
// a buy immediately followed by a valuation does not re-fetch.
type Client struct {
	http         *http.Client
	baseURL      string
	log          zerolog.Logger
	quoteTimeout time.Duration
	batchTimeout time.Duration
	ttl          time.Duration

	mu    sync.RWMutex
	cache map[string]cachedQuote
}

type cachedQuote struct {
	quote   aivest.Quote
	fetched time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the quote endpoint, mostly for tests.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }

// WithTimeouts overrides the single-quote and batch deadlines.
func WithTimeouts(quote, batch time.Duration) Option {
	return func(c *Client) { c.quoteTimeout, c.batchTimeout = quote, batch }
}

// WithTTL overrides how long a fetched quote is served from memory.
func WithTTL(d time.Duration) Option { return func(c *Client) { c.ttl = d } }

// WithDiskCache routes requests through the daily disk cache used by the
// CLI, so repeated invocations within a day reuse responses.
func WithDiskCache() Option {
	return func(c *Client) { c.http.Transport = &diskCache{base: http.DefaultTransport} }
}

// New creates a quote client.
func New(log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		http:         new(http.Client),
		baseURL:      defaultBaseURL,
		log:          log.With().Str("component", "marketdata").Logger(),
		quoteTimeout: defaultQuoteTimeout,
		batchTimeout: defaultBatchTimeout,
		ttl:          defaultCacheTTL,
		cache:        make(map[string]cachedQuote),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentPrice fetches one quote. It fails with a ProviderError when the
// symbol is unknown or the call does not complete within the deadline.
func (c *Client) CurrentPrice(ctx context.Context, symbol string) (aivest.Quote, error) {
	symbol = aivest.NormalizeSymbol(symbol)
	if symbol == "" {
		return aivest.Quote{}, &aivest.ProviderError{Op: "quote", Err: fmt.Errorf("empty symbol")}
	}

	c.mu.RLock()
	if cached, ok := c.cache[symbol]; ok && time.Since(cached.fetched) < c.ttl {
		c.mu.RUnlock()
		return cached.quote, nil
	}
	c.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, c.quoteTimeout)
	defer cancel()

	addr := fmt.Sprintf("%s/%s?interval=1d&range=1d", c.baseURL, url.PathEscape(symbol))
	var jobj any
	if err := c.jwget(ctx, addr, &jobj); err != nil {
		return aivest.Quote{}, &aivest.ProviderError{Op: "quote", Symbol: symbol, Err: err}
	}

	price, err := jfloat(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil || price <= 0 {
		if err == nil {
			err = fmt.Errorf("no market price in response")
		}
		return aivest.Quote{}, &aivest.ProviderError{Op: "quote", Symbol: symbol, Err: err}
	}
	asOf := time.Now()
	if ts, err := jfloat(jobj, "$.chart.result[0].meta.regularMarketTime"); err == nil && ts > 0 {
		asOf = time.Unix(int64(ts), 0)
	}
	// non-US listings quote in their home currency
	cur := defaultCurrency
	if v, err := jstring(jobj, "$.chart.result[0].meta.currency"); err == nil && v != "" {
		cur = v
	}

	quote := aivest.Quote{
		Symbol:    symbol,
		Price:     aivest.M(price, cur),
		Timestamp: asOf,
		Source:    source,
	}

	c.mu.Lock()
	c.cache[symbol] = cachedQuote{quote: quote, fetched: time.Now()}
	c.mu.Unlock()

	return quote, nil
}

// BatchPrices fetches prices for all symbols, best-effort: a symbol that
// cannot be priced is reported in Missed instead of failing the call. Only
// a cancelled context aborts the whole batch.
func (c *Client) BatchPrices(ctx context.Context, symbols []string) (aivest.BatchQuotes, error) {
	ctx, cancel := context.WithTimeout(ctx, c.batchTimeout)
	defer cancel()

	res := aivest.BatchQuotes{Prices: make(map[string]aivest.Money, len(symbols))}
	for _, symbol := range symbols {
		quote, err := c.CurrentPrice(ctx, symbol)
		if err != nil {
			if ctx.Err() != nil {
				return aivest.BatchQuotes{}, &aivest.ProviderError{Op: "batch", Err: ctx.Err()}
			}
			c.log.Warn().Str("symbol", symbol).Err(err).Msg("batch quote miss")
			res.Missed = append(res.Missed, aivest.BatchMiss{Symbol: aivest.NormalizeSymbol(symbol), Err: err})
			continue
		}
		res.Prices[quote.Symbol] = quote.Price
	}
	return res, nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func (c *Client) jwget(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "aivest/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	c.log.Debug().Str("url", req.URL.Path).Int("bytes", buf.Len()).Msg("quote fetched")
	return json.Unmarshal(buf.Bytes(), data)
}

// jfloat extracts a float value from a parsed JSON document.
func jfloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer,
	// or a single answer: keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("error parsing %q: not a float: %v", path, jval)
	}
	return val, nil
}

// jstring extracts a string value from a parsed JSON document.
func jstring(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("error parsing %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("error parsing %q: not a string: %v", path, jval)
	}
	return val, nil
}
