// Package dexscreener implements the trending-pairs source over the
// DexScreener search API.
package dexscreener

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"smartmoney-discovery/internal/domain"
)

// Default configuration values.
const (
	DefaultBaseURL     = "https://api.dexscreener.com"
	DefaultTimeout     = 15 * time.Second
	DefaultMaxRetries  = 3
	DefaultRetryDelay  = 1 * time.Second
	DefaultRateLimit   = rate.Limit(1) // requests per second
	DefaultRateBurst   = 2
	breakerMaxFailures = 5
	breakerOpenFor     = 2 * time.Minute
)

// Client fetches trending pairs from DexScreener.
type Client struct {
	baseURL    string
	client     *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	maxRetries uint64
	retryDelay time.Duration
	logger     zerolog.Logger
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithRateLimit sets the request rate limit.
func WithRateLimit(limit rate.Limit, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithMaxRetries sets maximum retry attempts per request.
func WithMaxRetries(n uint64) ClientOption {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithRetryDelay sets the initial retry delay.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new DexScreener client.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    baseURL,
		client:     &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(DefaultRateLimit, DefaultRateBurst),
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "dexscreener",
		Timeout: breakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerMaxFailures
		},
	})

	return c
}

// searchResponse mirrors the DexScreener search API payload. Absent numeric
// fields decode to zero and fail the hot-token filters downstream.
type searchResponse struct {
	SchemaVersion string    `json:"schemaVersion"`
	Pairs         []rawPair `json:"pairs"`
}

type rawPair struct {
	ChainID   string `json:"chainId"`
	BaseToken struct {
		Address string `json:"address"`
		Name    string `json:"name"`
		Symbol  string `json:"symbol"`
	} `json:"baseToken"`
	PriceChange struct {
		H24 float64 `json:"h24"`
	} `json:"priceChange"`
	Volume struct {
		H24 float64 `json:"h24"`
	} `json:"volume"`
	Liquidity struct {
		USD float64 `json:"usd"`
	} `json:"liquidity"`
	PairCreatedAt int64 `json:"pairCreatedAt"`
}

// Search queries the trending-pairs endpoint and returns validated pairs.
// Pairs without a base-token address are dropped at the boundary.
func (c *Client) Search(ctx context.Context, query string) ([]domain.TrendingPair, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		bo := backoff.NewExponentialBackOff()
		bo.InitialInterval = c.retryDelay

		return backoff.RetryWithData(func() ([]domain.TrendingPair, error) {
			return c.search(ctx, query)
		}, backoff.WithContext(backoff.WithMaxRetries(bo, c.maxRetries), ctx))
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.TrendingPair), nil
}

func (c *Client) search(ctx context.Context, query string) ([]domain.TrendingPair, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, backoff.Permanent(err)
	}

	u := fmt.Sprintf("%s/latest/dex/search?q=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("build search request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, fmt.Errorf("search status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(fmt.Errorf("search status %d", resp.StatusCode))
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode search response: %w", err))
	}

	pairs := make([]domain.TrendingPair, 0, len(parsed.Pairs))
	for _, p := range parsed.Pairs {
		if p.BaseToken.Address == "" {
			c.logger.Debug().Str("chain", p.ChainID).Msg("dropping pair without base token address")
			continue
		}
		pairs = append(pairs, domain.TrendingPair{
			ChainID:        p.ChainID,
			Mint:           p.BaseToken.Address,
			Symbol:         p.BaseToken.Symbol,
			PriceChange24h: p.PriceChange.H24,
			Volume24h:      p.Volume.H24,
			LiquidityUSD:   p.Liquidity.USD,
			PairCreatedAt:  p.PairCreatedAt,
		})
	}
	return pairs, nil
}
