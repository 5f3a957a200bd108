package service

import (
	"context"
	"time"

	"github.com/alexanderramin/logbook/internal/api"
	"github.com/alexanderramin/logbook/internal/domain"
)

// FormController owns the daily-update draft and its submission lifecycle.
//
// Submission is split in three steps so a UI event loop can run the
// network part off the loop: BeginSubmit validates and claims the action,
// Send performs the requests without touching controller state, and Apply
// folds the result back in. Submit runs all three in sequence.
type FormController struct {
	gw       WorkUpdateGateway
	followup FollowupGateway
	observer UseCaseObserver
	now      func() time.Time

	draft      domain.WorkUpdateDraft
	message    Message
	submitting bool
	guard      inflight
	gen        uint64
}

// NewFormController creates a controller over gw. The user id seeds the draft.
func NewFormController(gw Gateway, userID string, observer UseCaseObserver) *FormController {
	return &FormController{
		gw:       gw,
		followup: gw,
		observer: observerOrNoop(observer),
		now:      time.Now,
		draft:    domain.NewWorkUpdateDraft(userID),
		guard:    newInflight(),
	}
}

// Draft returns a copy of the current field values.
func (c *FormController) Draft() domain.WorkUpdateDraft { return c.draft }

// UserID returns the shared user identifier.
func (c *FormController) UserID() string { return c.draft.UserID }

// Message returns the current banner.
func (c *FormController) Message() Message { return c.message }

// SetMessage replaces the banner.
func (c *FormController) SetMessage(m Message) { c.message = m }

// Submitting reports whether a submission is awaiting its response.
func (c *FormController) Submitting() bool { return c.submitting }

// UpdateField sets one field. Choosing leave clears the work details.
func (c *FormController) UpdateField(name, value string) error {
	return c.draft.Set(name, value)
}

// SubmitRequest is a validated submission claimed by BeginSubmit.
type SubmitRequest struct {
	gen     uint64
	userID  string
	payload domain.WorkUpdatePayload
	started time.Time
}

// Payload returns the body that will be posted.
func (r *SubmitRequest) Payload() domain.WorkUpdatePayload { return r.payload }

// SubmitResult carries the responses of Send back to Apply.
type SubmitResult struct {
	req      *SubmitRequest
	update   *api.WorkUpdateResponse
	start    *api.StartFollowupResponse
	err      error
	startErr error
}

// SubmitOutcome is what the caller needs after Apply.
type SubmitOutcome struct {
	Message      Message
	Followup     *FollowupWizard // non-nil when the follow-up flow should open
	QualityScore *float64
	Reset        bool // the draft was cleared after a terminal success
	Stale        bool // the response arrived after the form was closed
}

// BeginSubmit validates the draft (user id, then task, then stack) and
// claims the submit action. A validation failure sets the banner and
// returns a domain.ValidationError; ErrBusy means a submission is
// already outstanding. Neither case touches the network.
func (c *FormController) BeginSubmit() (*SubmitRequest, error) {
	if err := c.draft.Validate(); err != nil {
		c.message = errorMessage(err.Error())
		return nil, err
	}
	if !c.guard.tryAcquire() {
		return nil, ErrBusy
	}
	c.submitting = true
	c.message = Message{}
	now := c.now()
	return &SubmitRequest{
		gen:     c.gen,
		userID:  c.draft.UserID,
		payload: c.draft.Payload(now),
		started: now,
	}, nil
}

// Send posts the update and, when the server asks for a follow-up, opens
// the follow-up session. It does not modify the controller.
func (c *FormController) Send(ctx context.Context, req *SubmitRequest) SubmitResult {
	res := SubmitResult{req: req}
	res.update, res.err = c.gw.SubmitWorkUpdate(ctx, req.payload)
	if res.err != nil || !res.update.RedirectToFollowup {
		return res
	}
	res.start, res.startErr = c.gw.StartFollowup(ctx, req.userID)
	return res
}

// Apply folds a result into the controller and releases the submit action.
func (c *FormController) Apply(res SubmitResult) SubmitOutcome {
	c.guard.release()
	c.submitting = false

	err := res.err
	if err == nil {
		err = res.startErr
	}
	c.observer.ObserveUseCase(UseCaseEvent{
		Name:     "submit_work_update",
		Duration: c.now().Sub(res.req.started),
		Success:  err == nil,
		Err:      err,
		Fields: map[string]any{
			"status":   string(res.req.payload.Status),
			"followup": res.update != nil && res.update.RedirectToFollowup,
		},
	})

	if res.req.gen != c.gen {
		return SubmitOutcome{Stale: true}
	}

	var out SubmitOutcome
	switch {
	case res.err != nil:
		c.message = messageFor(res.err, MsgSubmitFailed, MsgNetwork)

	case res.update.RedirectToFollowup:
		out.QualityScore = res.update.QualityScore
		if res.startErr != nil {
			c.message = messageFor(res.startErr, MsgStartFollowupFailed, MsgStartFollowupFailed)
			break
		}
		wizard, err := NewFollowupWizard(c.followup, res.req.userID, res.start.SessionID, res.start.Questions, c.observer)
		if err != nil {
			c.message = errorMessage(MsgStartFollowupFailed)
			break
		}
		if out.QualityScore == nil {
			out.QualityScore = res.start.QualityScore
		}
		wizard.OnComplete(func(*api.CompleteFollowupResponse) { c.CompleteFollowup() })
		out.Followup = wizard
		c.message = qualityMessage(out.QualityScore)

	default:
		text := res.update.Message
		if text == "" {
			text = MsgSubmitted
		}
		c.message = successMessage(text)
		c.reset()
		out.Reset = true
	}
	out.Message = c.message
	return out
}

// Submit validates, sends and applies in one call.
func (c *FormController) Submit(ctx context.Context) (SubmitOutcome, error) {
	req, err := c.BeginSubmit()
	if err != nil {
		return SubmitOutcome{Message: c.message}, err
	}
	out := c.Apply(c.Send(ctx, req))
	return out, nil
}

// CompleteFollowup is the follow-up wizard's completion callback: it
// confirms the save and resets the form.
func (c *FormController) CompleteFollowup() {
	c.message = successMessage(MsgFollowupCompleted)
	c.reset()
}

// Close invalidates any outstanding response. The draft is kept.
func (c *FormController) Close() {
	c.gen++
}

func (c *FormController) reset() {
	c.draft.Reset()
	c.gen++
}
