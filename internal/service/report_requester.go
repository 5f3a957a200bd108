package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/logbook/internal/api"
	"github.com/alexanderramin/logbook/internal/domain"
)

// ReportRequester collects a date range for the shared user id and
// requests a weekly report. Results are never cached.
type ReportRequester struct {
	gw       ReportGateway
	observer UseCaseObserver
	now      func() time.Time

	query   domain.WeeklyReportQuery
	result  *domain.WeeklyReport
	message Message
	loading bool
	open    bool
	guard   inflight
	gen     uint64
}

// NewReportRequester creates a closed requester.
func NewReportRequester(gw ReportGateway, observer UseCaseObserver) *ReportRequester {
	return &ReportRequester{
		gw:       gw,
		observer: observerOrNoop(observer),
		now:      time.Now,
		guard:    newInflight(),
	}
}

// Open starts a fresh request for userID with the default range of the
// last seven days. It refuses an empty user id.
func (r *ReportRequester) Open(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return &domain.ValidationError{Field: domain.FieldUserID, Message: domain.MsgReportNeedsUser}
	}
	r.gen++
	r.open = true
	r.query = domain.DefaultReportQuery(userID, r.now())
	r.result = nil
	r.message = Message{}
	return nil
}

// Close drops the current result. A response still in flight is ignored.
func (r *ReportRequester) Close() {
	r.gen++
	r.open = false
	r.result = nil
	r.message = Message{}
}

func (r *ReportRequester) IsOpen() bool { return r.open }
func (r *ReportRequester) Query() domain.WeeklyReportQuery { return r.query }
func (r *ReportRequester) Result() *domain.WeeklyReport { return r.result }
func (r *ReportRequester) Message() Message { return r.message }
func (r *ReportRequester) Loading() bool { return r.loading }

// SetRange replaces the start and end dates (YYYY-MM-DD).
func (r *ReportRequester) SetRange(start, end string) {
	r.query.StartDate = start
	r.query.EndDate = end
}

// ReportRequest is a validated report request claimed by BeginGenerate.
type ReportRequest struct {
	gen     uint64
	payload domain.WeeklyReportPayload
	started time.Time
}

// Payload returns the body that will be posted.
func (q *ReportRequest) Payload() domain.WeeklyReportPayload { return q.payload }

// ReportResult carries the response of Send back to Apply.
type ReportResult struct {
	req  *ReportRequest
	resp *api.WeeklyReportResponse
	err  error
}

// ReportOutcome is what the caller needs after Apply.
type ReportOutcome struct {
	Report  *domain.WeeklyReport
	Message Message
	Stale   bool
}

// BeginGenerate checks that both dates are present and ordered, then
// claims the generate action.
func (r *ReportRequester) BeginGenerate() (*ReportRequest, error) {
	if err := r.query.Validate(); err != nil {
		r.message = errorMessage(err.Error())
		return nil, err
	}
	return r.claim(r.query.Payload())
}

// BeginDefaultRange claims a request without dates so the server applies
// its own default range.
func (r *ReportRequester) BeginDefaultRange() (*ReportRequest, error) {
	return r.claim(domain.WeeklyReportQuery{UserID: r.query.UserID}.Payload())
}

func (r *ReportRequester) claim(p domain.WeeklyReportPayload) (*ReportRequest, error) {
	if !r.guard.tryAcquire() {
		return nil, ErrBusy
	}
	r.loading = true
	r.message = Message{}
	r.result = nil
	return &ReportRequest{gen: r.gen, payload: p, started: r.now()}, nil
}

// Send requests the report. It does not modify the requester.
func (r *ReportRequester) Send(ctx context.Context, req *ReportRequest) ReportResult {
	resp, err := r.gw.WeeklyReport(ctx, req.payload)
	return ReportResult{req: req, resp: resp, err: err}
}

// Apply folds a result into the requester and releases the generate action.
func (r *ReportRequester) Apply(res ReportResult) ReportOutcome {
	r.guard.release()
	r.loading = false

	r.observer.ObserveUseCase(UseCaseEvent{
		Name:     "generate_weekly_report",
		Duration: r.now().Sub(res.req.started),
		Success:  res.err == nil,
		Err:      res.err,
		Fields: map[string]any{
			"start_date": res.req.payload.StartDate,
			"end_date":   res.req.payload.EndDate,
		},
	})

	if res.req.gen != r.gen {
		return ReportOutcome{Stale: true}
	}
	if res.err != nil {
		r.message = messageFor(res.err, MsgReportFailed, MsgNetwork)
		return ReportOutcome{Message: r.message}
	}
	report := res.resp.WeeklyReport
	r.result = &report
	return ReportOutcome{Report: r.result}
}

// Generate validates, sends and applies in one call.
func (r *ReportRequester) Generate(ctx context.Context) (ReportOutcome, error) {
	req, err := r.BeginGenerate()
	if err != nil {
		return ReportOutcome{Message: r.message}, err
	}
	return r.Apply(r.Send(ctx, req)), nil
}
