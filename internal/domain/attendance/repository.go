package attendance

import (
	"context"
	"time"
)

type AttendanceFilter struct {
	EmployeeID *string
	DateFrom   *time.Time
	DateTo     *time.Time
	Status     *Status
	Page       int
	Limit      int
}

type AttendanceRepository interface {
	Create(ctx context.Context, a *Attendance) error

	GetByID(ctx context.Context, id string) (*Attendance, error)

	// GetByEmployeeAndDate returns (nil, nil) when the employee has no
	// record for the given day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	Update(ctx context.Context, a *Attendance) error

	UpdateCheckInAddress(ctx context.Context, id, address string) error

	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, error)

	Count(ctx context.Context, filter AttendanceFilter) (int64, error)

	// ListByEmployeeAndDateRange returns records ordered by date ascending.
	ListByEmployeeAndDateRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)

	// GetStaleOpenSessions returns open check-ins dated before the given day.
	GetStaleOpenSessions(ctx context.Context, before time.Time) ([]Attendance, error)

	DeleteByEmployee(ctx context.Context, employeeID string) error

	// CountCheckedInOnDate counts employees with a check-in on the given day.
	// When requireCheckout is true only completed records are counted.
	CountCheckedInOnDate(ctx context.Context, date time.Time, requireCheckout bool) (int64, error)
}
