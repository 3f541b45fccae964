package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Default endpoints.
const (
	DefaultAPIBaseURL     = "https://easyeda.com"
	DefaultModelBaseURL   = "https://easyeda.com"
	DefaultProductBaseURL = "https://www.lcsc.com"
	DefaultUserAgent      = "easyeda-mcp"

	// APIVersion is the components API version the CAD payload format is
	// known for.
	APIVersion = "6.4.19.5"

	// DefaultMaxBodyBytes caps response bodies read into memory.
	DefaultMaxBodyBytes = 16 << 20
)

// Client is an EasyEDA components API and LCSC product page client.
type Client struct {
	apiBaseURL     string
	modelBaseURL   string
	productBaseURL string
	userAgent      string
	maxBodyBytes   int64
	httpClient     *http.Client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithAPIBaseURL sets the base URL of the components API.
func WithAPIBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.apiBaseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithModelBaseURL sets the base URL of the 3D model endpoint.
func WithModelBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.modelBaseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithProductBaseURL sets the base URL of the LCSC product pages.
func WithProductBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.productBaseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent sets the User-Agent sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithMaxBodyBytes caps the size of response bodies. Larger bodies are
// truncated.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// New creates a new client.
func New(opts ...Option) *Client {
	c := &Client{
		apiBaseURL:     DefaultAPIBaseURL,
		modelBaseURL:   DefaultModelBaseURL,
		productBaseURL: DefaultProductBaseURL,
		userAgent:      DefaultUserAgent,
		maxBodyBytes:   DefaultMaxBodyBytes,
		httpClient:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// response is a fully read HTTP response.
type response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// get performs a GET request and reads the whole body. Status codes are
// left to the caller.
func (c *Client) get(ctx context.Context, rawURL string, query url.Values, header http.Header) (*response, error) {
	start := time.Now()

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing URL: %w", err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("HTTP request failed",
			slog.String("method", "GET"),
			slog.String("url", u.String()),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	slog.Debug("HTTP request completed",
		slog.String("method", "GET"),
		slog.String("url", u.String()),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return &response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// apiError builds an APIError from an unsuccessful response.
func apiError(resp *response) *APIError {
	msg := strings.TrimSpace(string(resp.Body))
	if len(msg) > 512 {
		msg = msg[:512] + "..."
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
