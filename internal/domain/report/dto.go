package report

import (
	"time"

	"github.com/aarambh-hq/attendance-backend-go/internal/domain/attendance"
)

// MonthlySummary aggregates one employee's attendance for a calendar month.
type MonthlySummary struct {
	EmployeeID     string  `json:"employee_id"`
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	WorkingDays    int     `json:"working_days"`
	FullDays       int     `json:"full_days"`
	HalfDays       int     `json:"half_days"`
	AbsentDays     int     `json:"absent_days"`
	TotalHours     float64 `json:"total_hours"`
	AvgHours       float64 `json:"avg_hours"`
	PresentPercent int     `json:"present_percent"`
	HalfPercent    int     `json:"half_percent"`
	AbsentPercent  int     `json:"absent_percent"`
	AttendanceRate int     `json:"attendance_rate"`
}

// WeeklyHours is the worked hours for one of the trailing four weeks.
type WeeklyHours struct {
	WeekStart string  `json:"week_start"`
	Hours     float64 `json:"hours"`
}

// Insight is a human-readable observation derived from the monthly numbers.
type Insight struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type StatisticsResponse struct {
	Summary     MonthlySummary `json:"summary"`
	WeeklyHours []WeeklyHours  `json:"weekly_hours"`
	Insights    []Insight      `json:"insights"`
}

// CalendarDay is one cell of the month view.
type CalendarDay struct {
	Date       string              `json:"date"`
	Weekend    bool                `json:"weekend"`
	Future     bool                `json:"future"`
	Class      attendance.DayClass `json:"class"`
	CheckIn    *string             `json:"check_in,omitempty"`
	CheckOut   *string             `json:"check_out,omitempty"`
	Hours      *float64            `json:"hours,omitempty"`
	SelfieURL  *string             `json:"selfie_url,omitempty"`
	Address    *string             `json:"address,omitempty"`
}

type CalendarResponse struct {
	EmployeeID string        `json:"employee_id"`
	Year       int           `json:"year"`
	Month      int           `json:"month"`
	Days       []CalendarDay `json:"days"`
}

// DailyRosterRow is one employee's presence for a given day, used by the
// management daily report.
type DailyRosterRow struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	Department   string  `json:"department"`
	Present      bool    `json:"present"`
	CheckIn      *string `json:"check_in,omitempty"`
	CheckOut     *string `json:"check_out,omitempty"`
}

type DailyRosterResponse struct {
	Date         string           `json:"date"`
	TotalCount   int              `json:"total_count"`
	PresentCount int              `json:"present_count"`
	Rows         []DailyRosterRow `json:"rows"`
}

// Month addresses a calendar month in the application timezone.
type Month struct {
	Year  int
	Month time.Month
}
