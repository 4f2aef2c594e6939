// Package chain implements the on-chain activity source over the wallet
// indexer's JSON-RPC 2.0 API: readiness, early buyers per token, and
// bounded wallet trade history.
package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"smartmoney-discovery/internal/domain"
)

// Default configuration values.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = 1 * time.Second
)

// Client is an HTTP JSON-RPC 2.0 client for the wallet indexer.
type Client struct {
	endpoint   string
	client     *http.Client
	maxRetries uint64
	retryDelay time.Duration
	requestID  atomic.Uint64
	logger     zerolog.Logger
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithMaxRetries sets maximum retry attempts.
func WithMaxRetries(n uint64) ClientOption {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithRetryDelay sets initial retry delay.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new indexer client.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   endpoint,
		client:     &http.Client{Timeout: DefaultTimeout},
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// rpcRequest represents a JSON-RPC 2.0 request.
type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params,omitempty"`
}

// rpcResponse represents a JSON-RPC 2.0 response.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// call performs a JSON-RPC call with retries and decodes the result.
func (c *Client) call(ctx context.Context, method string, params []interface{}, result interface{}) error {
	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      c.requestID.Add(1),
		Method:  method,
		Params:  params,
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal rpc request: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryDelay

	raw, err := backoff.RetryWithData(func() (json.RawMessage, error) {
		return c.doRequest(ctx, payload)
	}, backoff.WithContext(backoff.WithMaxRetries(bo, c.maxRetries), ctx))
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, payload []byte) (json.RawMessage, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 50<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, fmt.Errorf("http status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(fmt.Errorf("http status %d", resp.StatusCode))
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode response: %w", err))
	}
	if rpcResp.Error != nil {
		return nil, backoff.Permanent(rpcResp.Error)
	}
	return rpcResp.Result, nil
}

// IsReady reports whether the indexer is healthy and caught up. Errors
// count as not ready.
func (c *Client) IsReady(ctx context.Context) bool {
	var status string
	if err := c.call(ctx, "getHealth", nil, &status); err != nil {
		c.logger.Warn().Err(err).Msg("indexer health check failed")
		return false
	}
	return status == "ok"
}

type earlyBuyerJSON struct {
	Wallet      string  `json:"wallet"`
	AmountSOL   float64 `json:"amountSol"`
	Timestamp   int64   `json:"timestamp"`
	TxSignature string  `json:"signature"`
}

// TokenEarlyBuyers returns wallets whose first purchase of mint occurred
// within window after the token's creation, capped at limit.
func (c *Client) TokenEarlyBuyers(ctx context.Context, mint string, window time.Duration, limit int) ([]domain.EarlyBuyer, error) {
	if err := ValidateAddress(mint); err != nil {
		return nil, fmt.Errorf("invalid mint: %w", err)
	}

	var raw []earlyBuyerJSON
	params := []interface{}{mint, int64(window.Seconds()), limit}
	if err := c.call(ctx, "getTokenEarlyBuyers", params, &raw); err != nil {
		return nil, err
	}

	buyers := make([]domain.EarlyBuyer, 0, len(raw))
	for _, b := range raw {
		if b.Wallet == "" {
			continue
		}
		buyers = append(buyers, domain.EarlyBuyer{
			Wallet:      b.Wallet,
			AmountSOL:   b.AmountSOL,
			Timestamp:   b.Timestamp,
			TxSignature: b.TxSignature,
		})
	}
	return buyers, nil
}

type walletTradeJSON struct {
	Signature   string  `json:"signature"`
	Timestamp   int64   `json:"timestamp"`
	Side        string  `json:"side"`
	Mint        string  `json:"mint"`
	TokenAmount float64 `json:"tokenAmount"`
	AmountSOL   float64 `json:"amountSol"`
	Success     bool    `json:"success"`
	Venue       string  `json:"source"`
}

type walletTradesResult struct {
	Trades []walletTradeJSON `json:"trades"`
	Stats  struct {
		TotalTrades int `json:"totalTrades"`
	} `json:"stats"`
}

// WalletTrades returns up to limit recent trades for wallet, newest first.
func (c *Client) WalletTrades(ctx context.Context, wallet string, limit int) ([]domain.WalletTrade, error) {
	if err := ValidateWalletAddress(wallet); err != nil {
		return nil, fmt.Errorf("invalid wallet: %w", err)
	}

	var result walletTradesResult
	if err := c.call(ctx, "getWalletTrades", []interface{}{wallet, limit}, &result); err != nil {
		return nil, err
	}

	trades := make([]domain.WalletTrade, 0, len(result.Trades))
	for _, t := range result.Trades {
		side := domain.TradeSide(t.Side)
		if side != domain.TradeSideBuy && side != domain.TradeSideSell {
			continue
		}
		trades = append(trades, domain.WalletTrade{
			TxSignature: t.Signature,
			Timestamp:   t.Timestamp,
			Side:        side,
			Mint:        t.Mint,
			TokenAmount: t.TokenAmount,
			AmountSOL:   t.AmountSOL,
			Success:     t.Success,
			Venue:       t.Venue,
		})
	}
	return trades, nil
}
