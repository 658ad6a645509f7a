package activity

import "time"

// Type enumerates the events surfaced on the management dashboard feed.
type Type string

const (
	TypeCheckIn         Type = "check_in"
	TypeCheckOut        Type = "check_out"
	TypeEmployeeAdded   Type = "employee_added"
	TypeEmployeeRemoved Type = "employee_removed"
)

type Activity struct {
	ID         string
	Type       Type
	EmployeeID *string
	Message    string
	CreatedAt  time.Time
}

type ActivityResponse struct {
	ID         string  `json:"id"`
	Type       Type    `json:"type"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Message    string  `json:"message"`
	CreatedAt  string  `json:"created_at"`
}
