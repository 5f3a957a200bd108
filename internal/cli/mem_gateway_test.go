package cli

import (
	"context"
	"sync"

	"github.com/alexanderramin/logbook/internal/api"
	"github.com/alexanderramin/logbook/internal/domain"
	"github.com/alexanderramin/logbook/internal/service"
)

// memGateway answers instantly from canned responses so the TUI driver
// drains request commands well inside its command timeout.
type memGateway struct {
	mu sync.Mutex

	submitted []domain.WorkUpdatePayload
	completed []domain.CompleteFollowupPayload
	reports   []domain.WeeklyReportPayload

	updateResp   *api.WorkUpdateResponse
	updateErr    error
	startResp    *api.StartFollowupResponse
	completeResp *api.CompleteFollowupResponse
	completeErr  error
	reportResp   *api.WeeklyReportResponse
	reportErr    error
}

func (g *memGateway) SubmitWorkUpdate(_ context.Context, p domain.WorkUpdatePayload) (*api.WorkUpdateResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.submitted = append(g.submitted, p)
	return g.updateResp, g.updateErr
}

func (g *memGateway) StartFollowup(context.Context, string) (*api.StartFollowupResponse, error) {
	return g.startResp, nil
}

func (g *memGateway) CompleteFollowup(_ context.Context, _ string, p domain.CompleteFollowupPayload) (*api.CompleteFollowupResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.completed = append(g.completed, p)
	return g.completeResp, g.completeErr
}

func (g *memGateway) WeeklyReport(_ context.Context, p domain.WeeklyReportPayload) (*api.WeeklyReportResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reports = append(g.reports, p)
	return g.reportResp, g.reportErr
}

func memApp(g *memGateway) *App {
	return &App{
		Gateway:      g,
		Observer:     service.NoopUseCaseObserver{},
		StackOptions: domain.DefaultStackOptions,
	}
}

func followupGateway(questions ...string) *memGateway {
	six := 6.0
	return &memGateway{
		updateResp:   &api.WorkUpdateResponse{Success: true, RedirectToFollowup: true, QualityScore: &six},
		startResp:    &api.StartFollowupResponse{Success: true, SessionID: "s-1", Questions: questions},
		completeResp: &api.CompleteFollowupResponse{Success: true, SessionID: "s-1"},
	}
}
