package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/logbook/internal/api"
	"github.com/alexanderramin/logbook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWizard(t *testing.T, gw *fakeGateway) *FollowupWizard {
	t.Helper()
	w, err := NewFollowupWizard(gw, "intern123", "intern123_s1", scenarioQuestions, nil)
	require.NoError(t, err)
	return w
}

func answerAll(t *testing.T, w *FollowupWizard) {
	t.Helper()
	for i := 0; i < w.Len(); i++ {
		w.SetAnswer(fmt.Sprintf("a%d", i+1))
		if !w.IsLast() {
			require.NoError(t, w.Next())
		}
	}
}

func TestFollowupWizard_ControlsFollowAnswerState(t *testing.T) {
	w := newTestWizard(t, &fakeGateway{})

	assert.False(t, w.CanPrevious())
	assert.False(t, w.CanNext())
	assert.False(t, w.CanSubmit())

	w.SetAnswer("a1")
	assert.True(t, w.CanNext())
	require.NoError(t, w.Next())
	assert.True(t, w.CanPrevious())

	w.SetAnswer("a2")
	require.NoError(t, w.Next())
	assert.True(t, w.IsLast())
	assert.False(t, w.CanNext(), "no next on the last question")
	assert.False(t, w.CanSubmit())

	w.SetAnswer("a3")
	assert.True(t, w.CanSubmit())
	assert.InDelta(t, 1.0, w.Progress(), 1e-9)
}

func TestFollowupWizard_PreviousDoesNotRevalidate(t *testing.T) {
	w := newTestWizard(t, &fakeGateway{})
	answerAll(t, w)

	w.SetAnswer("")
	require.NoError(t, w.Previous())
	assert.Equal(t, 1, w.Index())
	assert.Equal(t, "a2", w.Answer())

	w.SetAnswer(" ")
	require.ErrorIs(t, w.Next(), domain.ErrCannotAdvance)
}

func TestFollowupWizard_SubmitRejectsBlankEarlierAnswer(t *testing.T) {
	gw := &fakeGateway{completeResp: &api.CompleteFollowupResponse{Success: true}}
	w := newTestWizard(t, gw)
	answerAll(t, w)
	w.session.Answers[1] = "  "

	out, err := w.Submit(context.Background())

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, domain.MsgAnswerAll, out.Message.Text)
	assert.Zero(t, gw.calls())
	assert.False(t, w.Closed())
}

func TestFollowupWizard_SubmitOnlyFromLastQuestion(t *testing.T) {
	gw := &fakeGateway{}
	w := newTestWizard(t, gw)
	w.SetAnswer("a1")

	_, err := w.Submit(context.Background())

	assert.ErrorIs(t, err, domain.ErrCannotAdvance)
	assert.Zero(t, gw.calls())
}

func TestFollowupWizard_SuccessRunsCallbackAndCloses(t *testing.T) {
	resp := &api.CompleteFollowupResponse{Success: true, Message: "saved", DailyRecordID: "r1"}
	gw := &fakeGateway{completeResp: resp}
	w := newTestWizard(t, gw)
	var got *api.CompleteFollowupResponse
	w.OnComplete(func(r *api.CompleteFollowupResponse) { got = r })
	answerAll(t, w)

	out, err := w.Submit(context.Background())

	require.NoError(t, err)
	assert.True(t, out.Done)
	assert.Same(t, resp, got)
	assert.True(t, w.Done())
	assert.True(t, w.Closed())
	assert.Equal(t, []string{"", "", ""}, w.Answers(), "answers are discarded on close")
	assert.Equal(t, []string{"a1", "a2", "a3"}, gw.completed[0].Answers)
}

func TestFollowupWizard_ServerFailureStaysOpen(t *testing.T) {
	gw := &fakeGateway{completeErr: &api.ServerError{StatusCode: 200, Message: "Session expired"}}
	w := newTestWizard(t, gw)
	answerAll(t, w)

	out, err := w.Submit(context.Background())

	require.NoError(t, err)
	assert.False(t, out.Done)
	assert.Equal(t, Message{Kind: MessageError, Text: "Session expired"}, w.Message())
	assert.False(t, w.Closed())
	assert.Equal(t, []string{"a1", "a2", "a3"}, w.Answers())
	assert.True(t, w.CanSubmit(), "retry is allowed")
}

func TestFollowupWizard_ServerFailureWithoutMessage(t *testing.T) {
	gw := &fakeGateway{completeErr: &api.ServerError{StatusCode: 200}}
	w := newTestWizard(t, gw)
	answerAll(t, w)

	out, _ := w.Submit(context.Background())

	assert.Equal(t, MsgFollowupSubmitFailed, out.Message.Text)
}

func TestFollowupWizard_NetworkFailureStaysOpen(t *testing.T) {
	gw := &fakeGateway{completeErr: fmt.Errorf("%w: EOF", api.ErrNetwork)}
	w := newTestWizard(t, gw)
	answerAll(t, w)

	out, err := w.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, MsgNetwork, out.Message.Text)
	assert.False(t, w.Closed())
}

func TestFollowupWizard_CloseDropsLateResponse(t *testing.T) {
	gw := &fakeGateway{completeResp: &api.CompleteFollowupResponse{Success: true}}
	w := newTestWizard(t, gw)
	called := false
	w.OnComplete(func(*api.CompleteFollowupResponse) { called = true })
	answerAll(t, w)

	req, err := w.BeginSubmit()
	require.NoError(t, err)
	assert.False(t, w.CanSubmit(), "submit is disabled while in flight")
	_, err = w.BeginSubmit()
	assert.ErrorIs(t, err, ErrBusy)

	res := w.Send(context.Background(), req)
	w.Close()
	out := w.Apply(res)

	assert.True(t, out.Stale)
	assert.False(t, called)
	assert.False(t, w.Done())
}

func TestFollowupWizard_ClosedWizardSendsNothing(t *testing.T) {
	gw := &fakeGateway{completeResp: &api.CompleteFollowupResponse{Success: true}}
	w := newTestWizard(t, gw)
	answerAll(t, w)
	w.Close()

	w.SetAnswer("late edit")
	assert.Empty(t, w.Answer())
	assert.ErrorIs(t, w.Next(), ErrClosed)
	assert.ErrorIs(t, w.Previous(), ErrClosed)
	assert.False(t, w.CanSubmit())

	_, err := w.BeginSubmit()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	assert.Empty(t, gw.completed)
}

func TestNewFollowupWizard_NoQuestions(t *testing.T) {
	_, err := NewFollowupWizard(&fakeGateway{}, "u", "s", nil, nil)
	assert.ErrorIs(t, err, domain.ErrNoQuestions)
}
