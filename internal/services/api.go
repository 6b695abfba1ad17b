// API client for the Spotter backend
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotter/internal/shared"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:5001/api"

// RequestIDHeader carries a per-request identifier so client and server logs can be correlated.
const RequestIDHeader = "X-Request-ID"

// APIError is returned for any non-2xx response.
//
// Message is the server's JSON "error" field when present, otherwise "HTTP <code>: <status text>".
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Is lets callers match any API failure with errors.Is(err, shared.ErrAPIRequest).
func (e *APIError) Is(target error) bool { return target == shared.ErrAPIRequest }

// ConnectError is returned when the backend could not be reached at all.
type ConnectError struct {
	BaseURL string
	Err     error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("Cannot connect to server. Please make sure the backend server is running on %s", serverRoot(e.BaseURL))
}

func (e *ConnectError) Unwrap() error { return e.Err }

func (e *ConnectError) Is(target error) bool { return target == shared.ErrCannotConnect }

// serverRoot strips the trailing "/api" path so the message names the server, not the API prefix.
func serverRoot(baseURL string) string {
	return strings.TrimSuffix(strings.TrimSuffix(baseURL, "/"), "/api")
}

// APIService performs JSON requests against one fixed base URL.
type APIService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// Option configures an [APIService].
type Option func(*APIService)

// WithRateLimit paces requests to at most rps per second. Values <= 0 disable pacing.
func WithRateLimit(rps float64) Option {
	return func(a *APIService) {
		if rps > 0 {
			a.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(a *APIService) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAPIService creates a new API service instance for the Spotter backend.
func NewAPIService(baseURL string, client *http.Client, opts ...Option) *APIService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	a := &APIService{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: client,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BaseURL returns the configured base URL without a trailing slash.
func (a *APIService) BaseURL() string { return a.baseURL }

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// OK reports whether the status is 2xx.
func (r *APIResponse) OK() bool { return r.StatusCode >= 200 && r.StatusCode < 300 }

// Call sends a JSON request to baseURL+endpoint and decodes a successful response into result.
//
// data is encoded as the body for non-GET methods when non-nil. result may be nil.
// Failures are always one of [*APIError], [*ConnectError], a context error or a wrapped [shared.ErrAPIRequest].
func (a *APIService) Call(ctx context.Context, method, endpoint string, data, result any) error {
	var body []byte
	if data != nil && method != http.MethodGet {
		encoded, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", shared.ErrAPIRequest, err)
		}
		body = encoded
	}

	resp, err := a.Raw(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	if !resp.OK() {
		return newAPIError(resp)
	}

	if result == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, result); err != nil {
		return fmt.Errorf("%w: invalid JSON response from %s: %v", shared.ErrAPIRequest, endpoint, err)
	}
	return nil
}

// Get performs a GET request and decodes the response into result.
func (a *APIService) Get(ctx context.Context, endpoint string, result any) error {
	return a.Call(ctx, http.MethodGet, endpoint, nil, result)
}

// Post performs a POST request with data as the JSON body and decodes the response into result.
func (a *APIService) Post(ctx context.Context, endpoint string, data, result any) error {
	return a.Call(ctx, http.MethodPost, endpoint, data, result)
}

// Raw performs a request and returns the response regardless of its status code.
//
// Only transport failures are returned as errors.
func (a *APIService) Raw(ctx context.Context, method, endpoint string, body []byte) (*APIResponse, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.url(endpoint), reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", shared.ErrAPIRequest, err)
	}

	requestID := shared.GenerateID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	a.logger.Debug("api request", "method", method, "url", req.URL.String(), "request_id", requestID)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ConnectError{BaseURL: a.baseURL, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrAPIRequest, err)
	}

	a.logger.Debug("api response", "status", resp.StatusCode, "request_id", requestID, "bytes", len(respBody))

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}

	var jsonData any
	if err := json.Unmarshal(respBody, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

func (a *APIService) url(endpoint string) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return a.baseURL + endpoint
}

// newAPIError builds the error for a non-2xx response.
func newAPIError(resp *APIResponse) *APIError {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err == nil && payload.Error != "" {
		return &APIError{Status: resp.StatusCode, Message: payload.Error}
	}
	return &APIError{
		Status:  resp.StatusCode,
		Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an [*APIError].
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
