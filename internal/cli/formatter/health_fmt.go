package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/logbook/internal/api"
)

// FormatHealth renders the backend health check.
func FormatHealth(baseURL string, h *api.HealthResponse, now time.Time) string {
	var b strings.Builder

	status := StyleRed.Render("● " + orUnknown(h.Status))
	if strings.EqualFold(h.Status, "healthy") {
		status = StyleGreen.Render("● healthy")
	}
	db := StyleRed.Render(orUnknown(h.Database))
	if strings.EqualFold(h.Database, "connected") {
		db = StyleGreen.Render(h.Database)
	}

	fmt.Fprintf(&b, "%s %s\n", Dim("Backend: "), StyleFg.Render(baseURL))
	fmt.Fprintf(&b, "%s %s\n", Dim("Status:  "), status)
	fmt.Fprintf(&b, "%s %s\n", Dim("Database:"), db)
	if ts := HumanTimestamp(h.Timestamp, now); ts != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Checked: "), StyleFg.Render(ts))
	}
	if h.Error != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Error:   "), StyleRed.Render(h.Error))
	}
	return RenderBox("Health", strings.TrimRight(b.String(), "\n"))
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
