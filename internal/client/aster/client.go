package aster

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"
)

const DefaultHost = "https://fapi.asterdex.com"

// Client talks to a Binance-futures-compatible exchange REST API.
// Signed endpoints carry an HMAC-SHA256 signature over the query string
// in INSERTION order; the exchange verifies the exact byte sequence, so
// parameters must not be re-sorted before signing.
type Client struct {
	host       string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	recvWindow int64

	// offset between server clock and local clock, in milliseconds.
	timeOffset atomic.Int64
}

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client, host, apiKey, apiSecret string, recvWindow int64) *Client {
	if host == "" {
		host = DefaultHost
	}
	host = strings.TrimRight(host, "/")
	if recvWindow <= 0 {
		recvWindow = 5000
	}
	return &Client{
		host:       host,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		httpClient: httpClient,
		recvWindow: recvWindow,
	}
}

type param struct {
	key   string
	value string
}

func encodeParams(params []param) string {
	var sb strings.Builder
	for i, p := range params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(p.key)
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.value))
	}
	return sb.String()
}

func (c *Client) sign(query string) string {
	mac := hmac.New(sha256.New, []byte(c.apiSecret))
	mac.Write([]byte(query))
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *Client) serverNowMillis() int64 {
	return time.Now().UnixMilli() + c.timeOffset.Load()
}

func (c *Client) doPublic(ctx context.Context, path string, params []param) ([]byte, error) {
	fullURL := c.host + path
	if query := encodeParams(params); query != "" {
		fullURL = fullURL + "?" + query
	}
	return c.do(ctx, fullURL, false)
}

func (c *Client) doSigned(ctx context.Context, path string, params []param) ([]byte, error) {
	params = append(params,
		param{"recvWindow", fmt.Sprintf("%d", c.recvWindow)},
		param{"timestamp", fmt.Sprintf("%d", c.serverNowMillis())},
	)
	query := encodeParams(params)
	query = query + "&signature=" + c.sign(query)
	return c.do(ctx, c.host+path+"?"+query, true)
}

func (c *Client) do(ctx context.Context, fullURL string, signed bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if signed {
		req.Header.Set("X-MBX-APIKEY", c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// SyncTime fetches the server clock and records the offset used for
// signed request timestamps. Call once at startup and periodically after.
func (c *Client) SyncTime(ctx context.Context) error {
	body, err := c.doPublic(ctx, "/fapi/v1/time", nil)
	if err != nil {
		return err
	}
	var payload struct {
		ServerTime int64 `json:"serverTime"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("failed to parse server time: %w", err)
	}
	c.timeOffset.Store(payload.ServerTime - time.Now().UnixMilli())
	return nil
}

// GetAccount returns the futures account balance summary.
func (c *Client) GetAccount(ctx context.Context) (*Account, error) {
	body, err := c.doSigned(ctx, "/fapi/v2/account", nil)
	if err != nil {
		return nil, err
	}
	var account Account
	if err := json.Unmarshal(body, &account); err != nil {
		return nil, fmt.Errorf("failed to parse account: %w", err)
	}
	return &account, nil
}

// GetPositionRisk returns position risk rows for every symbol, or for
// one symbol when given.
func (c *Client) GetPositionRisk(ctx context.Context, symbol string) ([]Position, error) {
	var params []param
	if symbol = strings.TrimSpace(symbol); symbol != "" {
		params = append(params, param{"symbol", symbol})
	}
	body, err := c.doSigned(ctx, "/fapi/v2/positionRisk", params)
	if err != nil {
		return nil, err
	}
	var positions []Position
	if err := json.Unmarshal(body, &positions); err != nil {
		return nil, fmt.Errorf("failed to parse positions: %w", err)
	}
	return positions, nil
}
