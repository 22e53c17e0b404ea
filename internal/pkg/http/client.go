package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/piresc/smartlocker/internal/pkg/circuitbreaker"
	"github.com/piresc/smartlocker/internal/pkg/logger"
	nrpkg "github.com/piresc/smartlocker/internal/pkg/newrelic"
	"github.com/piresc/smartlocker/internal/pkg/retry"
)

const (
	DefaultTimeout = 10 * time.Second

	APIKeyHeader         = "X-API-Key"
	IdempotencyKeyHeader = "Idempotency-Key"
)

// Config describes one upstream collaborator
type Config struct {
	Name    string
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client calls an upstream over HTTP behind a circuit breaker and a transient-error retrier
type Client struct {
	name       string
	baseURL    string
	apiKey     string
	httpClient *nethttp.Client
	breaker    *circuitbreaker.CircuitBreaker
	retrier    *retry.Retrier
	logger     *logger.ZapLogger
}

// NewClient creates a client with default breaker and retry policies
func NewClient(config Config, log *logger.ZapLogger) *Client {
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	if config.Name == "" {
		config.Name = config.BaseURL
	}

	breakerCfg := circuitbreaker.DefaultConfig(config.Name)
	breakerCfg.IsFailure = isUpstreamFailure

	retryCfg := retry.DefaultConfig()
	retryCfg.RetryableFunc = isRetryable

	return &Client{
		name:       config.Name,
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		apiKey:     config.APIKey,
		httpClient: &nethttp.Client{Timeout: config.Timeout},
		breaker:    circuitbreaker.New(breakerCfg, log),
		retrier:    retry.New(retryCfg, log),
		logger:     log,
	}
}

// Breaker exposes the client's circuit breaker for health reporting
func (c *Client) Breaker() *circuitbreaker.CircuitBreaker {
	return c.breaker
}

// HTTPError is a non-2xx upstream reply
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Body)
}

// isUpstreamFailure counts transport errors and 5xx replies against the breaker.
// 4xx replies mean the upstream is healthy and rejected the request.
func isUpstreamFailure(err error) bool {
	if err == nil {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}
	return true
}

func isRetryable(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}
	return retry.IsTransient(err)
}

// GetJSON performs a GET with query parameters and decodes a JSON reply into result
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, result interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return c.do(ctx, nethttp.MethodGet, endpoint, nil, "", result)
}

// PostJSON performs a POST with a JSON body. A non-empty idempotencyKey is sent so the upstream can drop replays.
func (c *Client) PostJSON(ctx context.Context, path string, body interface{}, idempotencyKey string, result interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	return c.do(ctx, nethttp.MethodPost, c.baseURL+path, payload, idempotencyKey, result)
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte, idempotencyKey string, result interface{}) error {
	return c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.retrier.Execute(ctx, func(ctx context.Context) error {
			var body io.Reader
			if payload != nil {
				body = bytes.NewReader(payload)
			}
			req, err := nethttp.NewRequestWithContext(ctx, method, endpoint, body)
			if err != nil {
				return retry.Permanent(fmt.Errorf("failed to create request: %w", err))
			}
			req.Header.Set("Accept", "application/json")
			if payload != nil {
				req.Header.Set("Content-Type", "application/json")
			}
			if c.apiKey != "" {
				req.Header.Set(APIKeyHeader, c.apiKey)
			}
			if idempotencyKey != "" {
				req.Header.Set(IdempotencyKeyHeader, idempotencyKey)
			}

			resp, err := nrpkg.InstrumentHTTPRequest(ctx, req, func() (*nethttp.Response, error) {
				return c.httpClient.Do(req)
			})
			if err != nil {
				logger.WarnCtx(ctx, "Upstream request failed",
					logger.String("upstream", c.name),
					logger.String("method", method),
					logger.Err(err))
				return err
			}
			defer resp.Body.Close()

			raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			if err != nil {
				return fmt.Errorf("failed to read response body: %w", err)
			}

			if resp.StatusCode >= 300 {
				httpErr := &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
				if resp.StatusCode >= 500 {
					return httpErr
				}
				return retry.Permanent(httpErr)
			}

			if result == nil || len(raw) == 0 {
				return nil
			}
			if err := json.Unmarshal(raw, result); err != nil {
				return retry.Permanent(fmt.Errorf("failed to decode response: %w", err))
			}
			return nil
		})
	})
}
