package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/johnquangdev/joyability/pkg/config"
	"github.com/johnquangdev/joyability/pkg/jobcontext"
)

const apiKeyHeader = "x-goog-api-key"

// Client talks to the generative AI REST API. It is safe for concurrent use.
type Client struct {
	apiKey        string
	baseURL       string
	uploadBaseURL string
	httpClient    *http.Client
	limiter       *rate.Limiter
	logger        *zap.Logger
	policy        Policy
	cfg           config.GeminiConfig
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for every call
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithPolicy replaces the retry policy built from configuration
func WithPolicy(p Policy) Option {
	return func(c *Client) { c.policy = p }
}

// WithLimiter replaces the outbound rate limiter
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// NewClient creates a client from configuration
func NewClient(cfg config.GeminiConfig, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}

	c := &Client{
		apiKey:        cfg.APIKey,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		uploadBaseURL: strings.TrimRight(cfg.UploadBaseURL, "/"),
		httpClient:    &http.Client{Timeout: timeout},
		limiter:       rate.NewLimiter(limit, burst),
		logger:        logger,
		policy:        Policy{MaxRetries: cfg.MaxRetries, Delay: cfg.RetryDelay},
		cfg:           cfg,
	}
	if c.uploadBaseURL == "" {
		c.uploadBaseURL = c.baseURL
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases idle connections
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// retryPolicy returns the client policy with attempt logging attached
func (c *Client) retryPolicy(ctx context.Context) Policy {
	p := c.policy
	next := p.Notify
	attempt := 0
	p.Notify = func(err error, d time.Duration) {
		attempt++
		fields := append(jobcontext.Fields(jobcontext.SetRetryAttempt(ctx, attempt)),
			zap.Duration("delay", d),
			zap.Error(err),
		)
		c.logger.Warn("⚠️ Transient AI failure, retrying", fields...)
		if next != nil {
			next(err, d)
		}
	}
	return p
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	return req, nil
}

// do waits for the rate limiter, sends req and turns non-2xx answers into *APIError.
// The caller closes the body of a successful response.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, parseAPIError(resp)
	}
	return resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, url string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, url, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

func parseAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var body struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Message != "" {
		apiErr.Message = body.Error.Message
		apiErr.Status = body.Error.Status
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
	}
	return apiErr
}

func (c *Client) modelURL(model, method string) string {
	return fmt.Sprintf("%s/v1beta/models/%s:%s", c.baseURL, model, method)
}
