package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxLoggedBody caps how much of an error response ends up in errors and logs
const maxLoggedBody = 256

// Client handles HTTP calls to external services. It is shared by every
// provider adapter and carries no per-provider state.
type Client struct {
	httpClient *http.Client
	settings   *Settings
	logger     *zap.Logger
}

type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new API client. A nil settings uses the defaults.
func NewClient(settings *Settings, opts ...ClientOption) *Client {
	if settings == nil {
		settings = NewSettings()
	}

	c := &Client{
		httpClient: newHTTPClient(),
		settings:   settings,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newHTTPClient() *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	// per-call deadlines come from Settings through the request context
	return &http.Client{Transport: tr}
}

func (c *Client) Settings() *Settings {
	return c.settings
}

func (c *Client) Logger() *zap.Logger {
	return c.logger
}

// GetPrice fetches the current price of a coin (CoinGecko id) in a fiat currency
func (c *Client) GetPrice(ctx context.Context, coinID, fiat string) (*PriceData, error) {
	fiat = strings.ToLower(strings.TrimSpace(fiat))
	if fiat == "" {
		fiat = "usd"
	}

	q := url.Values{}
	q.Set("ids", coinID)
	q.Set("vs_currencies", fiat)

	var result map[string]map[string]json.Number
	if err := c.getJSON(ctx, "coingecko", OpPrice, CoinGeckoAPI+"simple/price?"+q.Encode(), &result); err != nil {
		return nil, err
	}

	if priceData, exists := result[coinID]; exists {
		if p, exists := priceData[fiat]; exists {
			price, err := decimal.NewFromString(p.String())
			if err != nil {
				return nil, protocolError("coingecko", OpPrice, fmt.Errorf("failed to parse price: %w", err))
			}
			return &PriceData{
				Symbol:   coinID,
				Currency: fiat,
				Price:    price,
			}, nil
		}
	}

	return nil, protocolError("coingecko", OpPrice, fmt.Errorf("price not found for %s in %s", coinID, fiat))
}

// do sends one request bounded by the configured timeout and returns the
// status code and body. Only transport failures are errors here.
func (c *Client) do(ctx context.Context, provider, op, method, rawURL string, body io.Reader, contentType string) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.settings.Timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return 0, nil, protocolError(provider, op, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, transientError(provider, op, fmt.Errorf("failed to send request: %w", err))
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, transientError(provider, op, fmt.Errorf("failed to read response: %w", err))
	}

	c.logger.Debug("Client::do",
		zap.String("provider", provider),
		zap.String("op", op),
		zap.String("method", method),
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	return resp.StatusCode, b, nil
}

// getJSON performs a GET and decodes a 2xx response into out
func (c *Client) getJSON(ctx context.Context, provider, op, rawURL string, out interface{}) error {
	status, body, err := c.do(ctx, provider, op, http.MethodGet, rawURL, nil, "")
	if err != nil {
		return err
	}
	if !isSuccess(status) {
		return statusError(provider, op, status, body)
	}
	return decodeJSON(provider, op, body, out)
}

// postForm sends a form-encoded POST
func (c *Client) postForm(ctx context.Context, provider, op, rawURL string, values url.Values) (int, []byte, error) {
	return c.do(ctx, provider, op, http.MethodPost, rawURL,
		strings.NewReader(values.Encode()), "application/x-www-form-urlencoded")
}

// postJSON sends a POST request with JSON payload
func (c *Client) postJSON(ctx context.Context, provider, op, rawURL string, payload interface{}) (int, []byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, protocolError(provider, op, fmt.Errorf("failed to marshal payload: %w", err))
	}
	return c.do(ctx, provider, op, http.MethodPost, rawURL, strings.NewReader(string(jsonData)), "application/json")
}

// accepted interprets a broadcast response: 2xx means the provider took the
// transaction, anything else is an explicit refusal
func (c *Client) accepted(provider string, status int, body []byte) bool {
	if isSuccess(status) {
		return true
	}
	c.logger.Info("Client::broadcast rejected",
		zap.String("provider", provider),
		zap.Int("status", status),
		zap.String("body", truncate(body)))
	return false
}

func isSuccess(status int) bool {
	return status/100 == 2
}

func statusError(provider, op string, status int, body []byte) error {
	return transientError(provider, op, fmt.Errorf("request failed with status %d: %s", status, truncate(body)))
}

func decodeJSON(provider, op string, body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		return protocolError(provider, op, fmt.Errorf("failed to parse response: %w", err))
	}
	return nil
}

func truncate(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxLoggedBody {
		return s[:maxLoggedBody] + "..."
	}
	return s
}
