package attendance

import "time"

// Status reflects the lifecycle of a single attendance record.
type Status string

const (
	StatusCheckedIn Status = "checked_in"
	StatusCompleted Status = "completed"
)

// State describes where an employee stands for a given day.
type State string

const (
	StateNoRecord  State = "not_checked_in"
	StateCheckedIn State = "checked_in"
	StateCompleted State = "completed"
)

type Attendance struct {
	ID               string
	EmployeeID       string
	Date             time.Time
	CheckIn          *time.Time
	CheckOut         *time.Time
	DurationMinutes  *int
	SelfieURL        *string
	CheckInLatitude  *float64
	CheckInLongitude *float64
	CheckInAddress   *string
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// EmployeeName is populated by listing queries that join the roster.
	EmployeeName *string
}

// State derives the day state from the record. A nil record means the
// employee has not checked in yet.
func (a *Attendance) State() State {
	if a == nil || a.CheckIn == nil {
		return StateNoRecord
	}
	if a.CheckOut != nil {
		return StateCompleted
	}
	return StateCheckedIn
}
