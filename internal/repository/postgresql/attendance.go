package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aarambh-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `a.id, a.employee_id, a.date, a.check_in, a.check_out, a.duration_minutes,
		a.selfie_url, a.check_in_latitude, a.check_in_longitude, a.check_in_address, a.status,
		a.created_at, a.updated_at`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func scanAttendance(row pgx.Row, withEmployeeName bool) (attendance.Attendance, error) {
	var a attendance.Attendance
	dest := []interface{}{
		&a.ID,
		&a.EmployeeID,
		&a.Date,
		&a.CheckIn,
		&a.CheckOut,
		&a.DurationMinutes,
		&a.SelfieURL,
		&a.CheckInLatitude,
		&a.CheckInLongitude,
		&a.CheckInAddress,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	}
	if withEmployeeName {
		dest = append(dest, &a.EmployeeName)
	}
	err := row.Scan(dest...)
	return a, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a *attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (employee_id, date, check_in, selfie_url,
			check_in_latitude, check_in_longitude, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.EmployeeID,
		a.Date,
		a.CheckIn,
		a.SelfieURL,
		a.CheckInLatitude,
		a.CheckInLongitude,
		a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create attendance: %w", err)
	}

	return nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance a WHERE a.id = $1`

	a, err := scanAttendance(q.QueryRow(ctx, query, id), false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, attendance.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}

	return &a, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
// Returns (nil, nil) when no record exists for the day.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		WHERE a.employee_id = $1 AND a.date = $2
	`

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date), false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by date: %w", err)
	}

	return &a, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, a *attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance
		SET check_out = $1, duration_minutes = $2, status = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query, a.CheckOut, a.DurationMinutes, a.Status, a.ID).Scan(&a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	return nil
}

// UpdateCheckInAddress implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpdateCheckInAddress(ctx context.Context, id, address string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance
		SET check_in_address = $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := q.Exec(ctx, query, address, id); err != nil {
		return fmt.Errorf("failed to update check-in address: %w", err)
	}

	return nil
}

func buildAttendanceFilter(filter attendance.AttendanceFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf(`a.employee_id = $%d`, len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf(`a.date >= $%d`, len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conditions = append(conditions, fmt.Sprintf(`a.date <= $%d`, len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf(`a.status = $%d`, len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}
	return where, args
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	where, args := buildAttendanceFilter(filter)

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	query := `
		SELECT ` + attendanceColumns + `, e.full_name
		FROM attendance a
		JOIN employees e ON e.id = a.employee_id` + where + fmt.Sprintf(`
		ORDER BY a.date DESC, a.check_in DESC
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}

	return records, nil
}

// Count implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Count(ctx context.Context, filter attendance.AttendanceFilter) (int64, error) {
	q := GetQuerier(ctx, r.db)

	where, args := buildAttendanceFilter(filter)

	var total int64
	query := `SELECT COUNT(*) FROM attendance a` + where
	if err := q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	return total, nil
}

// ListByEmployeeAndDateRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployeeAndDateRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		WHERE a.employee_id = $1 AND a.date >= $2 AND a.date <= $3
		ORDER BY a.date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance range: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}

	return records, nil
}

// GetStaleOpenSessions implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetStaleOpenSessions(ctx context.Context, before time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		WHERE a.status = $1 AND a.date < $2
		ORDER BY a.date ASC
	`

	rows, err := q.Query(ctx, query, attendance.StatusCheckedIn, before)
	if err != nil {
		return nil, fmt.Errorf("failed to get stale sessions: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stale sessions: %w", err)
	}

	return records, nil
}

// DeleteByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM attendance WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to delete attendance for employee: %w", err)
	}

	return nil
}

// CountCheckedInOnDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CountCheckedInOnDate(ctx context.Context, date time.Time, requireCheckout bool) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*) FROM attendance WHERE date = $1`
	if requireCheckout {
		query += ` AND check_out IS NOT NULL`
	}

	var total int64
	if err := q.QueryRow(ctx, query, date).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count present employees: %w", err)
	}

	return total, nil
}
