package service

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/logbook/internal/api"
	"github.com/alexanderramin/logbook/internal/domain"
	"golang.org/x/sync/semaphore"
)

// ErrBusy is returned when an action is started while the same action is
// still waiting for its response.
var ErrBusy = errors.New("a request is already in progress")

// ErrClosed is returned by a follow-up wizard after it has been closed.
var ErrClosed = errors.New("follow-up session is closed")

// MessageKind classifies a user-facing banner.
type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageSuccess
	MessageError
	MessageInfo
)

// Message is the banner a view shows after an action.
type Message struct {
	Kind MessageKind
	Text string
}

// IsZero reports whether there is nothing to show.
func (m Message) IsZero() bool { return m.Kind == MessageNone && m.Text == "" }

func errorMessage(text string) Message   { return Message{Kind: MessageError, Text: text} }
func successMessage(text string) Message { return Message{Kind: MessageSuccess, Text: text} }
func infoMessage(text string) Message    { return Message{Kind: MessageInfo, Text: text} }

const (
	MsgNetwork              = "Network error. Please try again."
	MsgSubmitFailed         = "Submission failed"
	MsgSubmitted            = "Work update submitted successfully"
	MsgStartFollowupFailed  = "Failed to start follow-up session"
	MsgFollowupSubmitFailed = "Failed to submit follow-up answers"
	MsgFollowupCompleted    = "Follow-up completed successfully! Your work update has been saved to the LogBook system."
	MsgReportFailed         = "Failed to generate report"
)

// messageFor maps an action error onto the banner text: validation and
// server messages verbatim, transport failures as networkText, anything
// else as fallback.
func messageFor(err error, fallback, networkText string) Message {
	if domain.IsValidation(err) {
		return errorMessage(err.Error())
	}
	if se := api.AsServerError(err); se != nil {
		if se.Message != "" {
			return errorMessage(se.Message)
		}
		return errorMessage(fallback)
	}
	if errors.Is(err, api.ErrNetwork) {
		return errorMessage(networkText)
	}
	return errorMessage(fallback)
}

func qualityMessage(score *float64) Message {
	if score == nil {
		return infoMessage("Please complete follow-up questions.")
	}
	return infoMessage(fmt.Sprintf("Quality Score: %s/10. Please complete follow-up questions.", FormatScore(*score)))
}

// FormatScore renders a quality score without trailing zeros.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// inflight admits one outstanding request per action.
type inflight struct {
	sem *semaphore.Weighted
}

func newInflight() inflight {
	return inflight{sem: semaphore.NewWeighted(1)}
}

func (g inflight) tryAcquire() bool { return g.sem.TryAcquire(1) }

func (g inflight) release() { g.sem.Release(1) }
