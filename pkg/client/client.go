package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"backendprobe/pkg/log"
	"backendprobe/pkg/models"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	HealthPath   = "/health"
	RegisterPath = "/api/v1/auth/register"

	// DefaultTimeout matches the platform default request timeout of the mobile client.
	DefaultTimeout = 60 * time.Second

	maxBodySize     = 1 << 20
	maxDetailLength = 256
	contentTypeJSON = "application/json"
	requestIDHeader = "X-Request-ID"
)

// Client talks to the backend under test. Every call makes exactly one attempt.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
}

// New creates a client for baseURL with the given per-request timeout.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: newSingleAttemptClient(timeout),
	}, nil
}

// newSingleAttemptClient builds a retryablehttp client that never retries and
// returns transport errors untouched.
func newSingleAttemptClient(timeout time.Duration) *retryablehttp.Client {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = timeout

	client := retryablehttp.NewClient()
	client.HTTPClient = httpClient
	client.RetryMax = 0
	client.CheckRetry = neverRetry
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = log.NewLeveled("backend-client")
	return client
}

func neverRetry(_ context.Context, _ *http.Response, _ error) (bool, error) {
	return false, nil
}

// BaseURL returns the normalized backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health calls GET /health and expects 200 with a JSON object.
// Only "status" is decoded.
func (c *Client) Health(ctx context.Context) (*models.HealthStatus, error) {
	var health models.HealthStatus
	if err := c.doJSON(ctx, http.MethodGet, HealthPath, nil, http.StatusOK, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Register calls POST /api/v1/auth/register and expects 201 with a JSON object.
// Only data.user.name is decoded.
func (c *Client) Register(ctx context.Context, input models.RegistrationInput) (*models.Registration, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("encode request: %w", err)}
	}

	var registration models.Registration
	if err := c.doJSON(ctx, http.MethodPost, RegisterPath, body, http.StatusCreated, &registration); err != nil {
		return nil, err
	}
	return &registration, nil
}

// doJSON performs one request and decodes a JSON object response into result.
func (c *Client) doJSON(ctx context.Context, method, path string, body []byte, expectStatus int, result interface{}) error {
	respBody, err := c.doRequest(ctx, method, path, body, expectStatus)
	if err != nil {
		return err
	}

	trimmed := bytes.TrimSpace(respBody)
	if err := json.Unmarshal(trimmed, result); err != nil {
		return &ParseError{Err: err}
	}

	// "null" decodes into a struct without error.
	if trimmed[0] != '{' {
		return &ParseError{Err: ErrNotJSONObject}
	}

	return nil
}

// doRequest performs one request and returns the body when the status matches.
func (c *Client) doRequest(ctx context.Context, method, path string, body []byte, expectStatus int) ([]byte, error) {
	var rawBody interface{}
	if body != nil {
		rawBody = body
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, rawBody)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("create request: %w", err)}
	}

	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)
	req.Header.Set("Accept", contentTypeJSON)
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().
			Err(err).
			Str("request_id", requestID).
			Str("method", method).
			Str("path", path).
			Msg("Backend request failed")
		return nil, &TransportError{Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close response body")
		}
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("Backend request completed")

	if resp.StatusCode != expectStatus {
		return nil, &StatusError{StatusCode: resp.StatusCode, Detail: errorDetail(respBody)}
	}
	if len(respBody) > maxBodySize {
		return nil, &ParseError{Err: fmt.Errorf("%w: over %d bytes", ErrResponseTooLarge, maxBodySize)}
	}

	return respBody, nil
}

// errorDetail extracts the backend's "detail" message, falling back to the raw body.
func errorDetail(body []byte) string {
	var apiErr models.APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Detail != "" {
		return apiErr.Detail
	}

	detail := strings.TrimSpace(string(body))
	if len(detail) > maxDetailLength {
		detail = detail[:maxDetailLength]
	}
	return detail
}
