package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/logbook/internal/domain"
	"github.com/google/uuid"
)

// DefaultBaseURL is where the Daily Activity Log backend listens by default.
const DefaultBaseURL = "http://127.0.0.1:8000"

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the Daily Activity Log REST API. Every method issues
// exactly one request; nothing is retried.
type Client struct {
	baseURL  string
	timeout  time.Duration
	http     *http.Client
	observer Observer
}

// New creates a Client. A nil observer discards call events.
func New(opts Options, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: base,
		timeout: timeout,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// BaseURL returns the API root the client was configured with.
func (c *Client) BaseURL() string { return c.baseURL }

// WorkUpdateResponse is the reply to POST /api/work-updates.
type WorkUpdateResponse struct {
	Success            bool     `json:"success"`
	Message            string   `json:"message"`
	UserID             string   `json:"user_id"`
	RedirectToFollowup bool     `json:"redirectToFollowup"`
	QualityScore       *float64 `json:"qualityScore"`
	IsOnLeave          bool     `json:"isOnLeave"`
	Status             string   `json:"status"`
}

// StartFollowupResponse is the reply to POST /api/followups/start.
type StartFollowupResponse struct {
	Success      bool     `json:"success"`
	Message      string   `json:"message"`
	UserID       string   `json:"user_id"`
	SessionID    string   `json:"sessionId"`
	Questions    []string `json:"questions"`
	QuestionType string   `json:"questionType"`
	QualityScore *float64 `json:"qualityScore"`
}

// CompleteFollowupResponse is the reply to PUT /api/followup/{id}/complete.
type CompleteFollowupResponse struct {
	Success       bool     `json:"success"`
	Message       string   `json:"message"`
	UserID        string   `json:"user_id"`
	SessionID     string   `json:"sessionId"`
	DailyRecordID string   `json:"dailyRecordId"`
	QualityScore  *float64 `json:"qualityScore"`
}

// WeeklyReportResponse is the reply to POST /api/reports/weekly.
type WeeklyReportResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	domain.WeeklyReport
}

// HealthResponse is the reply to GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error"`
}

type startFollowupRequest struct {
	UserID string `json:"user_id"`
}

// SubmitWorkUpdate posts a daily update.
func (c *Client) SubmitWorkUpdate(ctx context.Context, p domain.WorkUpdatePayload) (*WorkUpdateResponse, error) {
	var resp WorkUpdateResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/work-updates", p, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return &resp, &ServerError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return &resp, nil
}

// StartFollowup opens a follow-up session for the user's pending update.
func (c *Client) StartFollowup(ctx context.Context, userID string) (*StartFollowupResponse, error) {
	var resp StartFollowupResponse
	body := startFollowupRequest{UserID: strings.TrimSpace(userID)}
	if err := c.doJSON(ctx, http.MethodPost, "/api/followups/start", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return &resp, &ServerError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return &resp, nil
}

// CompleteFollowup submits every answer of a session at once.
func (c *Client) CompleteFollowup(ctx context.Context, sessionID string, p domain.CompleteFollowupPayload) (*CompleteFollowupResponse, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, errors.New("session id is required")
	}
	var resp CompleteFollowupResponse
	path := "/api/followup/" + url.PathEscape(sessionID) + "/complete"
	if err := c.doJSON(ctx, http.MethodPut, path, p, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return &resp, &ServerError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return &resp, nil
}

// WeeklyReport requests an AI-generated report over a date range.
func (c *Client) WeeklyReport(ctx context.Context, p domain.WeeklyReportPayload) (*WeeklyReportResponse, error) {
	var resp WeeklyReportResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/reports/weekly", p, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return &resp, &ServerError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return &resp, nil
}

// Health reports backend and database status.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	start := time.Now()
	requestID := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	status, err := c.do(ctx, method, path, requestID, body, out)

	event := CallEvent{
		Method:     method,
		Path:       path,
		RequestID:  requestID,
		StatusCode: status,
		LatencyMs:  time.Since(start).Milliseconds(),
		Success:    err == nil,
	}
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %w", ErrNetwork, ErrTimeout)
	}
	event.ErrorCode = errorCode(err)
	c.observer.OnCallComplete(event)
	return err
}

func (c *Client) do(ctx context.Context, method, path, requestID string, body any, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, networkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, networkError(fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, decodeAPIError(resp.StatusCode, data)
	}
	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, networkError(fmt.Errorf("decoding response: %w", err))
	}
	return resp.StatusCode, nil
}

// decodeAPIError turns a non-2xx reply into a ServerError. FastAPI reports
// failures as {"detail": "..."}; some handlers use {"message": "..."}.
// Validation failures carry a list of {"msg": "..."} under detail. A reply
// without a JSON message (proxy error pages, empty bodies) is a network error.
func decodeAPIError(status int, data []byte) error {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return networkError(fmt.Errorf("HTTP %d: undecodable body", status))
	}
	msg := detailMessage(payload.Detail)
	if msg == "" {
		msg = payload.Message
	}
	if msg == "" {
		msg = payload.Error
	}
	if msg == "" {
		return networkError(fmt.Errorf("HTTP %d: no error message", status))
	}
	return &ServerError{StatusCode: status, Message: msg}
}

func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrNetwork):
		return "NETWORK"
	case AsServerError(err) != nil:
		return "SERVER"
	default:
		return "UNKNOWN"
	}
}
