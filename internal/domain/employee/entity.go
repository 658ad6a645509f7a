package employee

import "time"

type Employee struct {
	ID           string
	UserID       *string
	EmployeeCode string
	FullName     string
	Department   string
	Designation  string
	Email        *string
	Mobile       *string
	AvatarURL    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined from users for roster views
	Username *string
}
