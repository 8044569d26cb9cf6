// Package transport turns (method, path, body, query) tuples into
// authenticated HTTP requests against the Atrium API and normalizes every
// response into an envelope or an *APIError. It owns three cross-cutting
// concerns: session freshness, verbose diagnostics, and error shape.
//
// Retries are deliberately not implemented at this layer; backoff policy is
// a caller concern.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/atriumhq/atrium-go/pkg/auth"
	"github.com/atriumhq/atrium-go/pkg/config"
	"github.com/atriumhq/atrium-go/pkg/models"
)

const defaultUserAgent = "atrium-go"

// Envelope is a normalized successful response. The wire-level bookkeeping
// fields (meta, error) are stripped before the envelope reaches callers.
type Envelope struct {
	// Data is the substantive payload: a single entity or an entity array,
	// left raw for the collection engine to hydrate. Nil for 204 responses
	// and envelopes without a data field.
	Data json.RawMessage

	// Paging is the optional pagination metadata returned with lists.
	Paging *models.Paging

	// Raw holds the body of non-JSON 2xx responses verbatim.
	Raw string
}

// wireEnvelope is the on-the-wire response shape.
type wireEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Paging *models.Paging  `json:"paging"`
	Meta   json.RawMessage `json:"meta"`
	Error  json.RawMessage `json:"error"`
}

// Client issues authenticated requests against the Atrium API.
type Client struct {
	store     *config.Store
	refresher auth.Refresher
	http      *http.Client
	logger    hclog.Logger
	userAgent string

	// refreshMu serializes token refreshes so that concurrent requests
	// hitting an expired session trigger exactly one refresh call.
	refreshMu sync.Mutex

	now func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for verbose diagnostics.
func WithLogger(logger hclog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithRefresher sets the session refresher invoked when the configured
// session token has expired.
func WithRefresher(r auth.Refresher) Option {
	return func(c *Client) { c.refresher = r }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a transport client reading its configuration from store.
func NewClient(store *config.Store, opts ...Option) *Client {
	c := &Client{
		store: store,
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:    hclog.NewNullLogger(),
		userAgent: defaultUserAgent,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("transport")
	return c
}

// HTTPClient returns the underlying HTTP client, for callers that need to
// issue requests outside the API (e.g. presigned storage uploads).
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// Do issues one request against the API. The path is relative to the
// versioned base URL ("/agents", "/drives/abc/items"). A non-nil body is
// JSON-encoded; params are serialized into the query string with nil values
// omitted.
func (c *Client) Do(ctx context.Context, method, path string, body any, params Params) (*Envelope, error) {
	cfg, err := c.freshConfig(ctx)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	var bodyBytes []byte
	if body != nil {
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := c.newRequest(ctx, cfg, method, path, bodyReader, params)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	if cfg.Verbose {
		c.logRequest(req, string(bodyBytes))
	}
	return c.roundTrip(req, cfg)
}

// DoMultipart issues a multipart POST against the API, used by upload
// creation requests.
func (c *Client) DoMultipart(ctx context.Context, path string, form *MultipartForm) (*Envelope, error) {
	cfg, err := c.freshConfig(ctx)
	if err != nil {
		return nil, err
	}

	body, contentType, err := form.encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode multipart form: %w", err)
	}

	req, err := c.newRequest(ctx, cfg, http.MethodPost, path, body, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	if cfg.Verbose {
		c.logRequest(req, fmt.Sprintf("<multipart form, %d files>", len(form.files)))
	}
	return c.roundTrip(req, cfg)
}

// freshConfig returns the current configuration, refreshing the session
// first when it has expired. Refreshes are serialized: concurrent requests
// arriving mid-refresh wait and re-read the store instead of racing their
// own refresh calls.
func (c *Client) freshConfig(ctx context.Context) (config.Config, error) {
	cfg := c.store.Get()
	if c.refresher == nil || !cfg.SessionExpired(c.now()) {
		return cfg, nil
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Another request may have completed the refresh while we waited.
	cfg = c.store.Get()
	if !cfg.SessionExpired(c.now()) {
		return cfg, nil
	}

	c.logger.Debug("session expired, refreshing token", "expiry", cfg.SessionExpiry)
	refreshed, err := c.refresher.Refresh(ctx)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to refresh session token: %w", err)
	}
	c.store.Set(refreshed)
	return refreshed, nil
}

// DoURL issues a request against an absolute URL (the API hands those out as
// job callback and status endpoints) through the same authentication and
// normalization pipeline as Do.
func (c *Client) DoURL(ctx context.Context, method, absoluteURL string, body any) (*Envelope, error) {
	cfg, err := c.freshConfig(ctx)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	var bodyBytes []byte
	if body != nil {
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := c.newRequest(ctx, cfg, method, absoluteURL, bodyReader, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	if cfg.Verbose {
		c.logRequest(req, string(bodyBytes))
	}
	return c.roundTrip(req, cfg)
}

func (c *Client) newRequest(ctx context.Context, cfg config.Config, method, path string, body io.Reader, params Params) (*http.Request, error) {
	endpoint := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		endpoint = cfg.BaseURL() + path
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if len(params) > 0 {
		req.URL.RawQuery = EncodeParams(params).Encode()
	}
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// roundTrip executes the request and normalizes the response. Network-level
// errors propagate unmodified; HTTP and logical errors become *APIError.
func (c *Client) roundTrip(req *http.Request, cfg config.Config) (*Envelope, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// 204 carries no body; skip parsing entirely.
	if resp.StatusCode == http.StatusNoContent {
		if cfg.Verbose {
			c.logger.Debug("response", "status", resp.StatusCode, "request_id", req.Header.Get("X-Request-ID"))
		}
		return &Envelope{}, nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if cfg.Verbose {
		c.logger.Debug("response",
			"status", resp.StatusCode,
			"request_id", req.Header.Get("X-Request-ID"),
			"body", string(respBody))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeHTTPError(respBody, resp)
	}

	if !isJSON(resp.Header.Get("Content-Type")) {
		return &Envelope{Raw: string(respBody)}, nil
	}

	var wire wireEnvelope
	if err := json.Unmarshal(respBody, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode response envelope: %w", err)
	}

	// A 2xx response can still carry a server-reported logical error.
	if len(wire.Error) > 0 && !bytes.Equal(wire.Error, []byte("null")) {
		return nil, decodeLogicalError(wire.Error, resp.StatusCode)
	}

	// An explicit null data field means the same as an absent one. Dropping
	// it here keeps the collection engine's missing-data checks honest: a
	// nil entity must never hydrate into a zero-value model.
	if bytes.Equal(wire.Data, []byte("null")) {
		wire.Data = nil
	}

	return &Envelope{Data: wire.Data, Paging: wire.Paging}, nil
}

// decodeHTTPError maps a non-2xx response to an *APIError, falling back to
// the status text when the body is not a parseable error object.
func decodeHTTPError(body []byte, resp *http.Response) *APIError {
	apiErr := &APIError{
		Code:   ErrCodeUnknown,
		Status: resp.StatusCode,
	}
	var wire struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(body, &wire); err == nil && wire.Message != "" {
		apiErr.Message = wire.Message
		if wire.Code != "" {
			apiErr.Code = wire.Code
		}
		return apiErr
	}
	apiErr.Message = http.StatusText(resp.StatusCode)
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("unexpected status %d", resp.StatusCode)
	}
	return apiErr
}

// decodeLogicalError maps the error field of a 2xx envelope to an *APIError.
// The field may be an object or a bare string.
func decodeLogicalError(raw json.RawMessage, status int) *APIError {
	apiErr := &APIError{
		Code:   ErrCodeUnknown,
		Status: status,
	}
	var wire struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(raw, &wire); err == nil && wire.Message != "" {
		apiErr.Message = wire.Message
		if wire.Code != "" {
			apiErr.Code = wire.Code
		}
		return apiErr
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err == nil && msg != "" {
		apiErr.Message = msg
		return apiErr
	}
	apiErr.Message = string(raw)
	return apiErr
}

func (c *Client) logRequest(req *http.Request, body string) {
	headers := make([]any, 0, 8)
	for name := range req.Header {
		value := req.Header.Get(name)
		if strings.EqualFold(name, "Authorization") {
			value = "Bearer <redacted>"
		}
		headers = append(headers, name, value)
	}
	c.logger.Debug("request",
		append([]any{"method", req.Method, "url", req.URL.String(), "body", body}, headers...)...)
}

func isJSON(contentType string) bool {
	return strings.Contains(contentType, "application/json")
}
