package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aarambh-hq/attendance-backend-go/internal/config"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/employee"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/report"
	"github.com/go-chi/jwtauth/v5"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	records []attendance.Attendance
}

func (f *fakeAttendanceRepo) ListByEmployeeAndDateRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && !rec.Date.Before(from) && !rec.Date.After(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	for i := range f.records {
		if f.records[i].EmployeeID == employeeID && f.records[i].Date.Equal(date) {
			return &f.records[i], nil
		}
	}
	return nil, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return f.employees, int64(len(f.employees)), nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Timezone: "UTC"},
		Attendance: config.AttendanceConfig{
			FullDayMinutes: 240,
		},
	}
}

func claimsContext(t *testing.T, role, employeeID string) context.Context {
	t.Helper()
	tok := jwxjwt.New()
	require.NoError(t, tok.Set("user_id", "user-1"))
	require.NoError(t, tok.Set("role", role))
	if employeeID != "" {
		require.NoError(t, tok.Set("employee_id", employeeID))
	}
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func completedRecord(employeeID string, date time.Time, minutes int) attendance.Attendance {
	in := date.Add(9 * time.Hour)
	out := in.Add(time.Duration(minutes) * time.Minute)
	return attendance.Attendance{
		EmployeeID:      employeeID,
		Date:            date,
		CheckIn:         &in,
		CheckOut:        &out,
		DurationMinutes: &minutes,
		Status:          attendance.StatusCompleted,
	}
}

// workingDays returns the weekdays of the month in order.
func workingDays(year int, month time.Month) []time.Time {
	var days []time.Time
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days = append(days, d)
		}
	}
	return days
}

func newTestService(attRepo *fakeAttendanceRepo, empRepo *fakeEmployeeRepo, now time.Time) *ReportServiceImpl {
	return &ReportServiceImpl{
		cfg:                  testConfig(),
		AttendanceRepository: attRepo,
		EmployeeRepository:   empRepo,
		now:                  func() time.Time { return now },
	}
}

func TestStatistics(t *testing.T) {
	// March 2026 has 22 weekdays: 18 full days, 2 half days, 2 absences.
	days := workingDays(2026, time.March)
	require.Len(t, days, 22)

	repo := &fakeAttendanceRepo{}
	for _, d := range days[:18] {
		repo.records = append(repo.records, completedRecord("emp-1", d, 480))
	}
	for _, d := range days[18:20] {
		repo.records = append(repo.records, completedRecord("emp-1", d, 120))
	}

	svc := newTestService(repo, &fakeEmployeeRepo{}, time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC))
	ctx := claimsContext(t, "employee", "emp-1")

	resp, err := svc.Statistics(ctx, "emp-1", report.Month{Year: 2026, Month: time.March})
	require.NoError(t, err)

	s := resp.Summary
	assert.Equal(t, 22, s.WorkingDays)
	assert.Equal(t, 18, s.FullDays)
	assert.Equal(t, 2, s.HalfDays)
	assert.Equal(t, 2, s.AbsentDays)
	assert.InDelta(t, 148.0, s.TotalHours, 0.01)
	assert.InDelta(t, 8.2, s.AvgHours, 0.01)
	assert.Equal(t, 82, s.PresentPercent)
	assert.Equal(t, 9, s.HalfPercent)
	assert.Equal(t, 9, s.AbsentPercent)
	assert.Equal(t, 86, s.AttendanceRate)

	assert.Len(t, resp.WeeklyHours, 4)
	require.Len(t, resp.Insights, 3)
	assert.Equal(t, "warning", resp.Insights[0].Kind)
	assert.Contains(t, resp.Insights[0].Message, "82%")
	assert.Equal(t, "good", resp.Insights[1].Kind)
	assert.Contains(t, resp.Insights[2].Message, "absent 2 days")
}

func TestStatisticsSkipsFutureDays(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	// Mid-month: only days up to the 13th have happened.
	svc := newTestService(repo, &fakeEmployeeRepo{}, time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC))
	ctx := claimsContext(t, "employee", "emp-1")

	resp, err := svc.Statistics(ctx, "emp-1", report.Month{Year: 2026, Month: time.March})
	require.NoError(t, err)

	s := resp.Summary
	assert.Equal(t, 22, s.WorkingDays)
	// March 2-6 and 9-13 are in the past with no records.
	assert.Equal(t, 10, s.AbsentDays)
	assert.Equal(t, 0, s.FullDays)
	assert.Equal(t, 0, s.HalfDays)
}

func TestStatisticsPerfectMonthInsights(t *testing.T) {
	days := workingDays(2026, time.March)
	repo := &fakeAttendanceRepo{}
	for _, d := range days {
		repo.records = append(repo.records, completedRecord("emp-1", d, 480))
	}

	svc := newTestService(repo, &fakeEmployeeRepo{}, time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC))
	ctx := claimsContext(t, "employee", "emp-1")

	resp, err := svc.Statistics(ctx, "emp-1", report.Month{Year: 2026, Month: time.March})
	require.NoError(t, err)

	assert.Equal(t, 100, resp.Summary.PresentPercent)
	require.Len(t, resp.Insights, 3)
	assert.Equal(t, "good", resp.Insights[0].Kind)
	assert.Contains(t, resp.Insights[0].Message, "Excellent performance")
	assert.Contains(t, resp.Insights[2].Message, "perfect attendance streak")
}

func TestStatisticsAuthorization(t *testing.T) {
	svc := newTestService(&fakeAttendanceRepo{}, &fakeEmployeeRepo{}, time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC))

	t.Run("employee cannot read another employee", func(t *testing.T) {
		ctx := claimsContext(t, "employee", "emp-1")
		_, err := svc.Statistics(ctx, "emp-2", report.Month{Year: 2026, Month: time.March})
		assert.ErrorIs(t, err, employee.ErrUnauthorized)
	})

	t.Run("management can read anyone", func(t *testing.T) {
		ctx := claimsContext(t, "management", "")
		_, err := svc.Statistics(ctx, "emp-2", report.Month{Year: 2026, Month: time.March})
		assert.NoError(t, err)
	})
}

func TestCalendar(t *testing.T) {
	mar2 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	repo := &fakeAttendanceRepo{
		records: []attendance.Attendance{completedRecord("emp-1", mar2, 480)},
	}

	svc := newTestService(repo, &fakeEmployeeRepo{}, time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC))
	ctx := claimsContext(t, "employee", "emp-1")

	resp, err := svc.Calendar(ctx, "emp-1", report.Month{Year: 2026, Month: time.March})
	require.NoError(t, err)
	require.Len(t, resp.Days, 31)

	// March 1st is a Sunday with no record.
	sunday := resp.Days[0]
	assert.True(t, sunday.Weekend)
	assert.Empty(t, sunday.Class)

	monday := resp.Days[1]
	assert.Equal(t, attendance.ClassFullDay, monday.Class)
	require.NotNil(t, monday.CheckIn)
	assert.Equal(t, "09:00", *monday.CheckIn)
	require.NotNil(t, monday.Hours)
	assert.InDelta(t, 8.0, *monday.Hours, 0.01)

	// The 3rd has passed with no record.
	assert.Equal(t, attendance.ClassAbsent, resp.Days[2].Class)

	// The 20th has not happened yet.
	future := resp.Days[19]
	assert.True(t, future.Future)
	assert.Empty(t, future.Class)
}

func TestDailyRoster(t *testing.T) {
	day := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	attRepo := &fakeAttendanceRepo{
		records: []attendance.Attendance{completedRecord("emp-1", day, 480)},
	}
	empRepo := &fakeEmployeeRepo{
		employees: []employee.Employee{
			{ID: "emp-1", EmployeeCode: "EMP001", FullName: "Asha Verma", Department: "Engineering"},
			{ID: "emp-2", EmployeeCode: "EMP002", FullName: "Ravi Kumar", Department: "Sales"},
		},
	}

	svc := newTestService(attRepo, empRepo, time.Date(2026, 3, 12, 18, 0, 0, 0, time.UTC))

	t.Run("requires management", func(t *testing.T) {
		ctx := claimsContext(t, "employee", "emp-1")
		_, err := svc.DailyRoster(ctx, "2026-03-12")
		assert.ErrorIs(t, err, employee.ErrUnauthorized)
	})

	t.Run("counts present employees", func(t *testing.T) {
		ctx := claimsContext(t, "management", "")
		resp, err := svc.DailyRoster(ctx, "2026-03-12")
		require.NoError(t, err)

		assert.Equal(t, 2, resp.TotalCount)
		assert.Equal(t, 1, resp.PresentCount)
		require.Len(t, resp.Rows, 2)
		assert.True(t, resp.Rows[0].Present)
		assert.False(t, resp.Rows[1].Present)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		ctx := claimsContext(t, "management", "")
		_, err := svc.DailyRoster(ctx, "12-03-2026")
		assert.Error(t, err)
	})
}

func TestExportCSV(t *testing.T) {
	mar2 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	repo := &fakeAttendanceRepo{
		records: []attendance.Attendance{completedRecord("emp-1", mar2, 480)},
	}

	svc := newTestService(repo, &fakeEmployeeRepo{}, time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC))
	ctx := claimsContext(t, "employee", "emp-1")

	var buf bytes.Buffer
	err := svc.ExportCSV(ctx, &buf, "emp-1", report.Month{Year: 2026, Month: time.March})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// Header plus the three elapsed weekdays (March 2-4).
	require.Len(t, lines, 4)
	assert.Equal(t, "Date,Status,Check In,Check Out,Duration (hours)", lines[0])
	assert.Equal(t, "2026-03-02,full_day,09:00,17:00,8.0", lines[1])
	assert.Equal(t, "2026-03-03,absent,,,", lines[2])
}
