// Package api is the HTTP client for the WidgetChat backend. It does typed
// parsing of the wire records and nothing else; all data shaping happens
// server-side.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const userAgent = "widgetchat/1.0"

// Client talks to the backend REST API.
type Client struct {
	http *resty.Client
}

// APIError is a non-2xx response from the backend. Message carries the
// server's human-readable detail when one was provided.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the backend, typically a
// stale session or config id.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsValidation reports whether err is a 400, e.g. a rejected widget config.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	httpClient := resty.New()
	httpClient.SetBaseURL(strings.TrimRight(baseURL, "/"))
	httpClient.SetTimeout(timeout)
	httpClient.SetHeader("User-Agent", userAgent)
	httpClient.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		req.SetHeader("X-Request-ID", uuid.NewString())
		return nil
	})

	return &Client{http: httpClient}
}

// SetBaseURL repoints the client at a new backend, e.g. after a config
// reload. In-flight requests keep the old target.
func (c *Client) SetBaseURL(baseURL string) {
	c.http.SetBaseURL(strings.TrimRight(baseURL, "/"))
}

// SetTimeout replaces the per-request timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.http.SetTimeout(timeout)
}

// errorBody matches FastAPI's {"detail": "..."} error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

// checkResponse converts a non-2xx response into an *APIError.
func checkResponse(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	msg := http.StatusText(resp.StatusCode())
	var body errorBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Detail != "" {
		msg = body.Detail
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: msg}
}
