package report

import (
	"context"
	"io"
)

// ReportService computes attendance statistics and calendar views. The
// caller may always query themselves; querying another employee requires
// the management role.
type ReportService interface {
	// Statistics aggregates one employee's month into summary numbers,
	// trailing weekly hours and insights.
	Statistics(ctx context.Context, employeeID string, m Month) (StatisticsResponse, error)

	// Calendar renders the month view for the history page.
	Calendar(ctx context.Context, employeeID string, m Month) (CalendarResponse, error)

	// DailyRoster lists every employee's presence for one day.
	// Management only.
	DailyRoster(ctx context.Context, date string) (DailyRosterResponse, error)

	// ExportCSV streams one employee's month as CSV.
	ExportCSV(ctx context.Context, w io.Writer, employeeID string, m Month) error
}
