package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/logbook/internal/domain"
	"github.com/charmbracelet/glamour"
)

var (
	rendererMu      sync.Mutex
	renderersByWide = map[int]*glamour.TermRenderer{}
)

// RenderMarkdown renders markdown for the terminal at the given width.
// The content is returned unchanged when rendering fails.
func RenderMarkdown(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := markdownRenderer(width)
	if r == nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(rendered, "\n")
}

func markdownRenderer(width int) *glamour.TermRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if r, ok := renderersByWide[width]; ok {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderersByWide[width] = r
	return r
}

// SummaryRows lists the data-summary counters the server actually sent.
func SummaryRows(s domain.DataSummary) [][]string {
	var rows [][]string
	addInt := func(label string, v *int) {
		if v != nil {
			rows = append(rows, []string{label, strconv.Itoa(*v)})
		}
	}
	addInt("Total days", s.TotalDays)
	addInt("Work days", s.WorkDays)
	addInt("Leave days", s.LeaveDays)
	addInt("Work updates", s.WorkUpdatesCount)
	addInt("Follow-up sessions", s.FollowupSessionsCount)
	if s.AvgQualityScore != nil {
		rows = append(rows, []string{"Avg quality score", strconv.FormatFloat(*s.AvgQualityScore, 'f', 1, 64) + "/10"})
	}
	return rows
}

// FormatWeeklyReport renders a report document: period, generation time,
// whichever summary counters are present, then the narrative as markdown.
func FormatWeeklyReport(r *domain.WeeklyReport, width int, now time.Time) string {
	if r == nil {
		return ""
	}
	var b strings.Builder

	b.WriteString(Header("Weekly report"))
	b.WriteString("\n")
	if r.UserID != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("User:"), Bold(r.UserID))
	}
	if period := r.Metadata.DateRange.String(); period != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Period:"), StyleFg.Render(period))
	}
	if gen := HumanTimestamp(r.Metadata.GeneratedAt, now); gen != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Generated:"), StyleFg.Render(gen))
	}

	if rows := SummaryRows(r.Metadata.DataSummary); len(rows) > 0 {
		b.WriteString("\n")
		b.WriteString(RenderTable([]string{"SUMMARY", ""}, rows, AlignLeft, AlignRight))
	}

	if narrative := RenderMarkdown(r.Report, width); narrative != "" {
		b.WriteString("\n")
		b.WriteString(narrative)
		b.WriteString("\n")
	} else {
		b.WriteString("\n")
		b.WriteString(Dim("No report text was returned."))
		b.WriteString("\n")
	}
	return b.String()
}
