package service

import (
	"context"
	"sync"

	"github.com/alexanderramin/logbook/internal/api"
	"github.com/alexanderramin/logbook/internal/domain"
)

// fakeGateway records every call and answers from canned responses.
type fakeGateway struct {
	mu sync.Mutex

	submitted  []domain.WorkUpdatePayload
	started    []string
	completed  []domain.CompleteFollowupPayload
	sessionIDs []string
	reports    []domain.WeeklyReportPayload

	updateResp   *api.WorkUpdateResponse
	updateErr    error
	startResp    *api.StartFollowupResponse
	startErr     error
	completeResp *api.CompleteFollowupResponse
	completeErr  error
	reportResp   *api.WeeklyReportResponse
	reportErr    error
}

func (f *fakeGateway) SubmitWorkUpdate(_ context.Context, p domain.WorkUpdatePayload) (*api.WorkUpdateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, p)
	return f.updateResp, f.updateErr
}

func (f *fakeGateway) StartFollowup(_ context.Context, userID string) (*api.StartFollowupResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = append(f.started, userID)
	return f.startResp, f.startErr
}

func (f *fakeGateway) CompleteFollowup(_ context.Context, sessionID string, p domain.CompleteFollowupPayload) (*api.CompleteFollowupResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessionIDs = append(f.sessionIDs, sessionID)
	f.completed = append(f.completed, p)
	return f.completeResp, f.completeErr
}

func (f *fakeGateway) WeeklyReport(_ context.Context, p domain.WeeklyReportPayload) (*api.WeeklyReportResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, p)
	return f.reportResp, f.reportErr
}

func (f *fakeGateway) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submitted) + len(f.started) + len(f.completed) + len(f.reports)
}

func score(v float64) *float64 { return &v }

var scenarioQuestions = []string{
	"Which module did the bug live in?",
	"How did you verify the fix?",
	"What will you pick up tomorrow?",
}
