package service

import (
	"context"
	"time"

	"github.com/alexanderramin/logbook/internal/api"
	"github.com/alexanderramin/logbook/internal/domain"
)

// FollowupWizard steps through a follow-up session one question at a time
// and submits every answer together from the last question.
type FollowupWizard struct {
	gw       FollowupGateway
	observer UseCaseObserver
	now      func() time.Time

	userID     string
	session    *domain.FollowupSession
	message    Message
	submitting bool
	done       bool
	closed     bool
	guard      inflight
	gen        uint64
	onComplete func(*api.CompleteFollowupResponse)
}

// NewFollowupWizard creates a wizard positioned on the first question.
func NewFollowupWizard(gw FollowupGateway, userID, sessionID string, questions []string, observer UseCaseObserver) (*FollowupWizard, error) {
	session, err := domain.NewFollowupSession(sessionID, questions)
	if err != nil {
		return nil, err
	}
	return &FollowupWizard{
		gw:       gw,
		observer: observerOrNoop(observer),
		now:      time.Now,
		userID:   userID,
		session:  session,
		guard:    newInflight(),
	}, nil
}

// OnComplete registers the callback run after the server accepts the answers.
func (w *FollowupWizard) OnComplete(fn func(*api.CompleteFollowupResponse)) {
	w.onComplete = fn
}

func (w *FollowupWizard) SessionID() string { return w.session.SessionID }
func (w *FollowupWizard) UserID() string { return w.userID }
func (w *FollowupWizard) Len() int { return w.session.Len() }
func (w *FollowupWizard) Index() int { return w.session.Index() }
func (w *FollowupWizard) Question() string { return w.session.Question() }
func (w *FollowupWizard) Answer() string { return w.session.Answer() }
func (w *FollowupWizard) IsLast() bool { return w.session.IsLast() }
func (w *FollowupWizard) Progress() float64 { return w.session.Progress() }
func (w *FollowupWizard) Message() Message { return w.message }
func (w *FollowupWizard) Submitting() bool { return w.submitting }
func (w *FollowupWizard) Done() bool { return w.done }
func (w *FollowupWizard) Closed() bool { return w.closed }
func (w *FollowupWizard) CanPrevious() bool { return w.session.CanPrevious() }
func (w *FollowupWizard) CanNext() bool { return w.session.CanNext() }
func (w *FollowupWizard) Questions() []string {
	return append([]string(nil), w.session.Questions...)
}
func (w *FollowupWizard) Answers() []string { return append([]string(nil), w.session.Answers...) }

// CanSubmit reports whether the submit control is enabled.
func (w *FollowupWizard) CanSubmit() bool {
	return !w.closed && !w.submitting && w.session.CanSubmit()
}

// SetAnswer stores the answer for the current question. It is ignored once
// the wizard is closed.
func (w *FollowupWizard) SetAnswer(v string) {
	if w.closed {
		return
	}
	w.session.SetAnswer(v)
}

// Next moves to the following question.
func (w *FollowupWizard) Next() error {
	if w.closed {
		return ErrClosed
	}
	return w.session.Next()
}

// Previous moves back one question.
func (w *FollowupWizard) Previous() error {
	if w.closed {
		return ErrClosed
	}
	return w.session.Previous()
}

// CompleteRequest is a validated submission claimed by BeginSubmit.
type CompleteRequest struct {
	gen       uint64
	sessionID string
	payload   domain.CompleteFollowupPayload
	started   time.Time
}

// CompleteResult carries the response of Send back to Apply.
type CompleteResult struct {
	req  *CompleteRequest
	resp *api.CompleteFollowupResponse
	err  error
}

// CompleteOutcome is what the caller needs after Apply.
type CompleteOutcome struct {
	Message  Message
	Response *api.CompleteFollowupResponse
	Done     bool
	Stale    bool
}

// BeginSubmit checks that the wizard is open, that the last question is
// showing and that every answer is non-empty, then claims the submit action.
func (w *FollowupWizard) BeginSubmit() (*CompleteRequest, error) {
	if w.closed {
		return nil, ErrClosed
	}
	if !w.session.IsLast() {
		return nil, domain.ErrCannotAdvance
	}
	if err := w.session.Validate(); err != nil {
		w.message = errorMessage(err.Error())
		return nil, err
	}
	if !w.guard.tryAcquire() {
		return nil, ErrBusy
	}
	w.submitting = true
	w.message = Message{}
	return &CompleteRequest{
		gen:       w.gen,
		sessionID: w.session.SessionID,
		payload: domain.CompleteFollowupPayload{
			UserID:  w.userID,
			Answers: w.Answers(),
		},
		started: w.now(),
	}, nil
}

// Send submits the answers. It does not modify the wizard.
func (w *FollowupWizard) Send(ctx context.Context, req *CompleteRequest) CompleteResult {
	resp, err := w.gw.CompleteFollowup(ctx, req.sessionID, req.payload)
	return CompleteResult{req: req, resp: resp, err: err}
}

// Apply folds a result into the wizard and releases the submit action.
// On success the completion callback runs and the wizard closes; on
// failure the wizard stays open with the error as its message.
func (w *FollowupWizard) Apply(res CompleteResult) CompleteOutcome {
	w.guard.release()
	w.submitting = false

	w.observer.ObserveUseCase(UseCaseEvent{
		Name:     "complete_followup",
		Duration: w.now().Sub(res.req.started),
		Success:  res.err == nil,
		Err:      res.err,
		Fields:   map[string]any{"session_id": res.req.sessionID, "answers": len(res.req.payload.Answers)},
	})

	if w.closed || res.req.gen != w.gen {
		return CompleteOutcome{Stale: true}
	}
	if res.err != nil {
		w.message = messageFor(res.err, MsgFollowupSubmitFailed, MsgNetwork)
		return CompleteOutcome{Message: w.message}
	}

	w.done = true
	if w.onComplete != nil {
		w.onComplete(res.resp)
	}
	w.Close()
	return CompleteOutcome{Response: res.resp, Done: true}
}

// Submit validates, sends and applies in one call.
func (w *FollowupWizard) Submit(ctx context.Context) (CompleteOutcome, error) {
	req, err := w.BeginSubmit()
	if err != nil {
		return CompleteOutcome{Message: w.message}, err
	}
	return w.Apply(w.Send(ctx, req)), nil
}

// Close discards every answer. Responses arriving afterwards are dropped.
func (w *FollowupWizard) Close() {
	w.closed = true
	w.gen++
	w.session.Discard()
}
