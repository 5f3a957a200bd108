package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// defaultReportDays is how far back the report range starts by default.
const defaultReportDays = 7

// WeeklyReportQuery selects a user's entries over a date range. Dates are
// YYYY-MM-DD strings as typed.
type WeeklyReportQuery struct {
	UserID    string
	StartDate string
	EndDate   string
}

// DefaultReportQuery returns today minus seven days through today on the
// local calendar of now.
func DefaultReportQuery(userID string, now time.Time) WeeklyReportQuery {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return WeeklyReportQuery{
		UserID:    userID,
		StartDate: today.AddDate(0, 0, -defaultReportDays).Format(DateLayout),
		EndDate:   today.Format(DateLayout),
	}
}

// Validate checks that both dates are present, parse, and are ordered.
func (q WeeklyReportQuery) Validate() error {
	start := strings.TrimSpace(q.StartDate)
	end := strings.TrimSpace(q.EndDate)
	if start == "" || end == "" {
		return invalid("dates", MsgBothDatesRequired)
	}
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return invalid("start_date", "Start date must use YYYY-MM-DD format")
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return invalid("end_date", "End date must use YYYY-MM-DD format")
	}
	if s.After(e) {
		return invalid("dates", MsgStartAfterEnd)
	}
	return nil
}

// WeeklyReportPayload is the JSON body of POST /api/reports/weekly. Empty
// dates are omitted so the server applies its own default range.
type WeeklyReportPayload struct {
	UserID    string `json:"user_id"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// Payload builds the request body.
func (q WeeklyReportQuery) Payload() WeeklyReportPayload {
	return WeeklyReportPayload{
		UserID:    strings.TrimSpace(q.UserID),
		StartDate: strings.TrimSpace(q.StartDate),
		EndDate:   strings.TrimSpace(q.EndDate),
	}
}

// WeeklyReport is the result document of a report request.
type WeeklyReport struct {
	Report   string         `json:"report"`
	UserID   string         `json:"user_id"`
	Metadata ReportMetadata `json:"metadata"`
}

// ReportMetadata describes how and over what the report was generated.
type ReportMetadata struct {
	DateRange   DateRange   `json:"date_range"`
	GeneratedAt string      `json:"generated_at,omitempty"`
	DataSummary DataSummary `json:"data_summary"`
}

// DataSummary carries the aggregate counters. Every field is optional.
type DataSummary struct {
	TotalDays             *int     `json:"total_days,omitempty"`
	WorkDays              *int     `json:"work_days,omitempty"`
	LeaveDays             *int     `json:"leave_days,omitempty"`
	WorkUpdatesCount      *int     `json:"work_updates_count,omitempty"`
	FollowupSessionsCount *int     `json:"followup_sessions_count,omitempty"`
	AvgQualityScore       *float64 `json:"avg_quality_score,omitempty"`
}

// DateRange is the reported period. The server sends either an object
// {"start","end"} or a preformatted "start to end" string.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
	Text  string `json:"-"`
}

func (r *DateRange) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.Text)
	}
	type plain DateRange
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decoding date_range: %w", err)
	}
	*r = DateRange(p)
	return nil
}

// String renders the range for display.
func (r DateRange) String() string {
	if r.Start != "" || r.End != "" {
		return r.Start + " to " + r.End
	}
	return r.Text
}
