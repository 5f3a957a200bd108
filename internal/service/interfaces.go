package service

import (
	"context"

	"github.com/alexanderramin/logbook/internal/api"
	"github.com/alexanderramin/logbook/internal/domain"
)

// WorkUpdateGateway submits daily updates and opens follow-up sessions.
type WorkUpdateGateway interface {
	SubmitWorkUpdate(ctx context.Context, p domain.WorkUpdatePayload) (*api.WorkUpdateResponse, error)
	StartFollowup(ctx context.Context, userID string) (*api.StartFollowupResponse, error)
}

// FollowupGateway completes follow-up sessions.
type FollowupGateway interface {
	CompleteFollowup(ctx context.Context, sessionID string, p domain.CompleteFollowupPayload) (*api.CompleteFollowupResponse, error)
}

// ReportGateway generates weekly reports.
type ReportGateway interface {
	WeeklyReport(ctx context.Context, p domain.WeeklyReportPayload) (*api.WeeklyReportResponse, error)
}

// Gateway is the full backend surface used by the controllers.
// *api.Client satisfies it.
type Gateway interface {
	WorkUpdateGateway
	FollowupGateway
	ReportGateway
}

var _ Gateway = (*api.Client)(nil)
