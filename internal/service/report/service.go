package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/aarambh-hq/attendance-backend-go/internal/config"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/employee"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/report"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

type ReportServiceImpl struct {
	cfg *config.Config
	attendance.AttendanceRepository
	employee.EmployeeRepository

	// now is injectable for tests.
	now func() time.Time
}

func NewReportService(
	cfg *config.Config,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) report.ReportService {
	return &ReportServiceImpl{
		cfg:                  cfg,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		now:                  time.Now,
	}
}

// authorizeEmployeeAccess allows self access always and cross-employee
// access for management.
func authorizeEmployeeAccess(ctx context.Context, employeeID string) error {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract claims from context: %w", err)
	}

	if role, _ := claims["role"].(string); user.Role(role) == user.RoleManagement {
		return nil
	}

	if selfID, _ := claims["employee_id"].(string); selfID == employeeID && selfID != "" {
		return nil
	}

	return employee.ErrUnauthorized
}

func requireManagement(ctx context.Context) error {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract claims from context: %w", err)
	}
	if role, _ := claims["role"].(string); user.Role(role) != user.RoleManagement {
		return employee.ErrUnauthorized
	}
	return nil
}

func (s *ReportServiceImpl) localToday() time.Time {
	now := s.now().In(s.cfg.Location())
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *ReportServiceImpl) isWorkingDay(d time.Time) bool {
	if s.cfg.Attendance.WeekendsAreWorkingDays {
		return true
	}
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// monthRecords loads one employee's records for a month keyed by day.
func (s *ReportServiceImpl) monthRecords(ctx context.Context, employeeID string, m report.Month) (map[string]*attendance.Attendance, time.Time, time.Time, error) {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	records, err := s.AttendanceRepository.ListByEmployeeAndDateRange(ctx, employeeID, first, last)
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}

	byDay := make(map[string]*attendance.Attendance, len(records))
	for i := range records {
		byDay[records[i].Date.Format("2006-01-02")] = &records[i]
	}

	return byDay, first, last, nil
}

func roundPercent(numerator, denominator float64) int {
	if denominator <= 0 {
		return 0
	}
	return int(math.Round(numerator / denominator * 100))
}

// round1 keeps one decimal, matching the presentation of hours elsewhere.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Statistics implements report.ReportService.
func (s *ReportServiceImpl) Statistics(ctx context.Context, employeeID string, m report.Month) (report.StatisticsResponse, error) {
	if err := authorizeEmployeeAccess(ctx, employeeID); err != nil {
		return report.StatisticsResponse{}, err
	}

	byDay, first, last, err := s.monthRecords(ctx, employeeID, m)
	if err != nil {
		return report.StatisticsResponse{}, err
	}

	today := s.localToday()
	fullDayMinutes := s.cfg.Attendance.FullDayMinutes

	summary := report.MonthlySummary{
		EmployeeID: employeeID,
		Year:       m.Year,
		Month:      int(m.Month),
	}
	weekly := [4]float64{}

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if !s.isWorkingDay(d) {
			continue
		}
		summary.WorkingDays++

		// Days that have not happened yet are neither present nor absent.
		if d.After(today) {
			continue
		}

		rec := byDay[d.Format("2006-01-02")]
		switch attendance.ClassifyRecord(rec, fullDayMinutes) {
		case attendance.ClassFullDay:
			summary.FullDays++
		case attendance.ClassHalfDay:
			summary.HalfDays++
		default:
			summary.AbsentDays++
		}

		if rec != nil && rec.DurationMinutes != nil {
			hours := float64(*rec.DurationMinutes) / 60
			summary.TotalHours += hours

			// Trailing four weeks, newest bucket last.
			daysAgo := int(today.Sub(d).Hours() / 24)
			weekIndex := daysAgo / 7
			if weekIndex < 4 {
				weekly[3-weekIndex] += hours
			}
		}
	}

	summary.TotalHours = round1(summary.TotalHours)
	if summary.FullDays > 0 {
		summary.AvgHours = round1(summary.TotalHours / float64(summary.FullDays))
	}

	workingDays := float64(summary.WorkingDays)
	summary.PresentPercent = roundPercent(float64(summary.FullDays), workingDays)
	summary.HalfPercent = roundPercent(float64(summary.HalfDays), workingDays)
	summary.AbsentPercent = roundPercent(float64(summary.AbsentDays), workingDays)
	summary.AttendanceRate = roundPercent(float64(summary.FullDays)+0.5*float64(summary.HalfDays), workingDays)

	weeklyHours := make([]report.WeeklyHours, 0, 4)
	for i := 0; i < 4; i++ {
		weekStart := today.AddDate(0, 0, -7*(4-i)+1)
		weeklyHours = append(weeklyHours, report.WeeklyHours{
			WeekStart: weekStart.Format("2006-01-02"),
			Hours:     round1(weekly[i]),
		})
	}

	return report.StatisticsResponse{
		Summary:     summary,
		WeeklyHours: weeklyHours,
		Insights:    buildInsights(summary),
	}, nil
}

// buildInsights turns the monthly numbers into the three feed items shown
// on the statistics page.
func buildInsights(s report.MonthlySummary) []report.Insight {
	insights := make([]report.Insight, 0, 3)

	switch {
	case s.PresentPercent >= 90:
		insights = append(insights, report.Insight{
			Kind:    "good",
			Message: fmt.Sprintf("Excellent performance! You've maintained %d%% attendance this month.", s.PresentPercent),
		})
	case s.PresentPercent >= 75:
		insights = append(insights, report.Insight{
			Kind:    "warning",
			Message: fmt.Sprintf("Your attendance is %d%%. Try to reach 90%% for better performance.", s.PresentPercent),
		})
	default:
		insights = append(insights, report.Insight{
			Kind:    "warning",
			Message: fmt.Sprintf("Your attendance is %d%%. Regular attendance is important for productivity.", s.PresentPercent),
		})
	}

	switch {
	case s.AvgHours >= 8:
		insights = append(insights, report.Insight{
			Kind:    "good",
			Message: fmt.Sprintf("You're averaging %.1f hours per day. Great time management!", s.AvgHours),
		})
	case s.AvgHours >= 6:
		insights = append(insights, report.Insight{
			Kind:    "info",
			Message: fmt.Sprintf("Your average is %.1f hours. Standard full-time is 8 hours.", s.AvgHours),
		})
	default:
		insights = append(insights, report.Insight{
			Kind:    "warning",
			Message: fmt.Sprintf("Average %.1f hours/day detected. Check your check-out times.", s.AvgHours),
		})
	}

	if s.AbsentDays == 0 {
		insights = append(insights, report.Insight{
			Kind:    "good",
			Message: "No absences this month! You have a perfect attendance streak.",
		})
	} else {
		plural := ""
		if s.AbsentDays > 1 {
			plural = "s"
		}
		insights = append(insights, report.Insight{
			Kind:    "info",
			Message: fmt.Sprintf("You've been absent %d day%s this month.", s.AbsentDays, plural),
		})
	}

	return insights
}

// Calendar implements report.ReportService.
func (s *ReportServiceImpl) Calendar(ctx context.Context, employeeID string, m report.Month) (report.CalendarResponse, error) {
	if err := authorizeEmployeeAccess(ctx, employeeID); err != nil {
		return report.CalendarResponse{}, err
	}

	byDay, first, last, err := s.monthRecords(ctx, employeeID, m)
	if err != nil {
		return report.CalendarResponse{}, err
	}

	today := s.localToday()
	fullDayMinutes := s.cfg.Attendance.FullDayMinutes

	days := make([]report.CalendarDay, 0, 31)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		day := report.CalendarDay{
			Date:    d.Format("2006-01-02"),
			Weekend: wd == time.Saturday || wd == time.Sunday,
			Future:  d.After(today),
			Class:   attendance.ClassAbsent,
		}

		if rec := byDay[day.Date]; rec != nil {
			day.Class = attendance.ClassifyRecord(rec, fullDayMinutes)
			day.CheckIn = formatClock(rec.CheckIn)
			day.CheckOut = formatClock(rec.CheckOut)
			day.SelfieURL = rec.SelfieURL
			day.Address = rec.CheckInAddress
			if rec.DurationMinutes != nil {
				hours := round1(float64(*rec.DurationMinutes) / 60)
				day.Hours = &hours
			}
		} else if day.Future || (day.Weekend && !s.cfg.Attendance.WeekendsAreWorkingDays) {
			// No class for days that cannot be absent.
			day.Class = ""
		}

		days = append(days, day)
	}

	return report.CalendarResponse{
		EmployeeID: employeeID,
		Year:       m.Year,
		Month:      int(m.Month),
		Days:       days,
	}, nil
}

func formatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("15:04")
	return &formatted
}

// DailyRoster implements report.ReportService.
func (s *ReportServiceImpl) DailyRoster(ctx context.Context, date string) (report.DailyRosterResponse, error) {
	if err := requireManagement(ctx); err != nil {
		return report.DailyRosterResponse{}, err
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return report.DailyRosterResponse{}, fmt.Errorf("invalid date: %w", err)
	}

	employees, _, err := s.EmployeeRepository.List(ctx, employee.EmployeeFilter{Limit: 1000})
	if err != nil {
		return report.DailyRosterResponse{}, err
	}

	requireCheckout := s.cfg.Attendance.PresentRequiresCheckout

	resp := report.DailyRosterResponse{
		Date:       date,
		TotalCount: len(employees),
	}

	for i := range employees {
		e := &employees[i]
		row := report.DailyRosterRow{
			EmployeeID:   e.ID,
			EmployeeCode: e.EmployeeCode,
			FullName:     e.FullName,
			Department:   e.Department,
		}

		rec, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, e.ID, day)
		if err != nil {
			return report.DailyRosterResponse{}, err
		}
		if rec != nil && rec.CheckIn != nil {
			row.Present = !requireCheckout || rec.CheckOut != nil
			row.CheckIn = formatClock(rec.CheckIn)
			row.CheckOut = formatClock(rec.CheckOut)
		}
		if row.Present {
			resp.PresentCount++
		}

		resp.Rows = append(resp.Rows, row)
	}

	return resp, nil
}

// ExportCSV implements report.ReportService.
func (s *ReportServiceImpl) ExportCSV(ctx context.Context, w io.Writer, employeeID string, m report.Month) error {
	if err := authorizeEmployeeAccess(ctx, employeeID); err != nil {
		return err
	}

	byDay, first, last, err := s.monthRecords(ctx, employeeID, m)
	if err != nil {
		return err
	}

	today := s.localToday()
	fullDayMinutes := s.cfg.Attendance.FullDayMinutes

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Status", "Check In", "Check Out", "Duration (hours)"}); err != nil {
		return err
	}

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if !s.isWorkingDay(d) || d.After(today) {
			continue
		}

		rec := byDay[d.Format("2006-01-02")]
		row := []string{d.Format("2006-01-02"), string(attendance.ClassifyRecord(rec, fullDayMinutes)), "", "", ""}
		if rec != nil {
			if v := formatClock(rec.CheckIn); v != nil {
				row[2] = *v
			}
			if v := formatClock(rec.CheckOut); v != nil {
				row[3] = *v
			}
			if rec.DurationMinutes != nil {
				row[4] = fmt.Sprintf("%.1f", float64(*rec.DurationMinutes)/60)
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
