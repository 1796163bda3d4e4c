package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/risegum/internal/content"
	"github.com/risegum/internal/metrics"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds every backend call.
const DefaultTimeout = 10 * time.Second

// Error codes returned by the waitlist backend.
const (
	CodeDuplicateEmail   = "duplicate_email"
	CodeValidationFailed = "validation_failed"
)

const (
	msgJoinFailed     = "Failed to join waitlist. Please try again."
	msgListFailed     = "Failed to fetch waitlist entries"
	msgContentFailed  = "Failed to load content"
	msgBackendOffline = "Backend unavailable"
)

// ErrUnavailable wraps transport failures: the request never produced a response.
var ErrUnavailable = errors.New("backend unavailable")

// Entry is the payload of a waitlist submission.
type Entry struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	City  string `json:"city"`
}

// StoredEntry is an entry as returned by the backend.
type StoredEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	City      string `json:"city"`
	Status    string `json:"status"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

// FieldError is one field-level rejection reported by the backend.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result is the normalized outcome shared by every operation: either
// Success with an optional Message, or a failure with Error, Code and Details.
type Result struct {
	Success    bool
	StatusCode int
	Message    string
	Error      string
	Code       string
	Details    []FieldError
}

// SubmitResult is the outcome of SubmitEntry.
type SubmitResult struct {
	Result
	Entry *StoredEntry
}

// EntriesResult is the outcome of ListEntries.
type EntriesResult struct {
	Result
	Entries []StoredEntry
	Count   int
}

// ContentResult is the outcome of FetchContent.
type ContentResult struct {
	Result
	Content content.Model
}

// Client talks to the waitlist backend. It never retries and never caches.
type Client struct {
	http  *resty.Client
	token string
}

// Option customizes a Client.
type Option func(*Client)

// WithAdminToken sets the bearer token sent by ListEntries.
func WithAdminToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

// New builds a client for backendURL. The "/api" prefix is appended unless
// already present.
func New(backendURL string, opts ...Option) *Client {
	base := strings.TrimRight(strings.TrimSpace(backendURL), "/")
	if !strings.HasSuffix(base, "/api") {
		base += "/api"
	}

	hc := resty.New().
		SetBaseURL(base).
		SetTimeout(DefaultTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "risegum-landing/1.0")

	c := &Client{http: hc}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL reports the resolved API base.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// SubmitEntry posts a waitlist entry. A non-nil error means the request never
// completed; it wraps ErrUnavailable and the returned result carries a generic
// failure message.
func (c *Client) SubmitEntry(ctx context.Context, entry Entry) (SubmitResult, error) {
	var body struct {
		Data    *StoredEntry `json:"data"`
		Message string       `json:"message"`
	}

	resp, err := c.do(ctx, "submit_entry", func(req *resty.Request) (*resty.Response, error) {
		return req.SetBody(entry).SetResult(&body).Post("/waitlist")
	})
	if err != nil {
		return SubmitResult{Result: Result{Error: msgJoinFailed}}, err
	}
	if resp.IsError() {
		return SubmitResult{Result: failure(resp, msgJoinFailed)}, nil
	}

	return SubmitResult{
		Result: Result{Success: true, StatusCode: resp.StatusCode(), Message: body.Message},
		Entry:  body.Data,
	}, nil
}

// ListEntries fetches a page of waitlist entries. Admin only: the backend
// rejects the call unless an admin token is configured.
func (c *Client) ListEntries(ctx context.Context, skip, limit int) (EntriesResult, error) {
	var body struct {
		Data  []StoredEntry `json:"data"`
		Count int           `json:"count"`
	}

	resp, err := c.do(ctx, "list_entries", func(req *resty.Request) (*resty.Response, error) {
		if c.token != "" {
			req.SetAuthToken(c.token)
		}
		return req.
			SetQueryParams(map[string]string{
				"skip":  strconv.Itoa(skip),
				"limit": strconv.Itoa(limit),
			}).
			SetResult(&body).
			Get("/waitlist")
	})
	if err != nil {
		return EntriesResult{Result: Result{Error: msgListFailed}}, err
	}
	if resp.IsError() {
		return EntriesResult{Result: failure(resp, msgListFailed)}, nil
	}

	return EntriesResult{
		Result:  Result{Success: true, StatusCode: resp.StatusCode()},
		Entries: body.Data,
		Count:   body.Count,
	}, nil
}

// FetchContent loads the landing page content model.
func (c *Client) FetchContent(ctx context.Context) (ContentResult, error) {
	var body struct {
		Data *content.Model `json:"data"`
	}

	resp, err := c.do(ctx, "fetch_content", func(req *resty.Request) (*resty.Response, error) {
		return req.SetResult(&body).Get("/content")
	})
	if err != nil {
		return ContentResult{Result: Result{Error: msgContentFailed}}, err
	}
	if resp.IsError() {
		return ContentResult{Result: failure(resp, msgContentFailed)}, nil
	}
	if body.Data == nil {
		return ContentResult{Result: Result{StatusCode: resp.StatusCode(), Error: msgContentFailed}}, nil
	}

	return ContentResult{
		Result:  Result{Success: true, StatusCode: resp.StatusCode()},
		Content: *body.Data,
	}, nil
}

// Health calls the backend liveness probe.
func (c *Client) Health(ctx context.Context) (Result, error) {
	var body struct {
		Message string `json:"message"`
	}

	resp, err := c.do(ctx, "health", func(req *resty.Request) (*resty.Response, error) {
		return req.SetResult(&body).Get("/")
	})
	if err != nil {
		return Result{Error: msgBackendOffline}, err
	}
	if resp.IsError() {
		return Result{StatusCode: resp.StatusCode(), Error: msgBackendOffline}, nil
	}
	return Result{Success: true, StatusCode: resp.StatusCode(), Message: body.Message}, nil
}

func (c *Client) do(ctx context.Context, operation string, send func(*resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	start := time.Now()
	resp, err := send(c.http.R().SetContext(ctx))
	metrics.GatewayDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.GatewayRequests.WithLabelValues(operation, "error").Inc()
		log.Error().Err(err).Str("operation", operation).Msg("API Error")
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, operation, err)
	}

	if resp.IsError() {
		metrics.GatewayRequests.WithLabelValues(operation, "rejected").Inc()
		logExchange(operation, resp.StatusCode(), string(resp.Body()))
		return resp, nil
	}

	metrics.GatewayRequests.WithLabelValues(operation, "ok").Inc()
	return resp, nil
}

type errorBody struct {
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Detail  json.RawMessage `json:"detail"`
	Details []FieldError    `json:"details"`
}

type fastAPIDetail struct {
	Loc []interface{} `json:"loc"`
	Msg string        `json:"msg"`
}

// failure extracts a readable message from an error response: "error" first,
// then "detail" (plain string or a list of {loc, msg}), else fallback.
func failure(resp *resty.Response, fallback string) Result {
	result := Result{StatusCode: resp.StatusCode(), Error: fallback}

	var body errorBody
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return result
	}

	result.Code = strings.TrimSpace(body.Code)
	result.Details = body.Details

	detailText, detailFields := parseDetail(body.Detail)
	if len(result.Details) == 0 {
		result.Details = detailFields
	}

	switch {
	case strings.TrimSpace(body.Error) != "":
		result.Error = strings.TrimSpace(body.Error)
	case detailText != "":
		result.Error = detailText
	}
	return result
}

func parseDetail(raw json.RawMessage) (string, []FieldError) {
	if len(raw) == 0 {
		return "", nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text), nil
	}

	var items []fastAPIDetail
	if err := json.Unmarshal(raw, &items); err != nil {
		return "", nil
	}

	fields := make([]FieldError, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Msg) == "" {
			continue
		}
		field := ""
		if n := len(item.Loc); n > 0 {
			field = fmt.Sprint(item.Loc[n-1])
		}
		fields = append(fields, FieldError{Field: field, Message: item.Msg})
	}
	return "", fields
}
