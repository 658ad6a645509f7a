package user

import "time"

type User struct {
	ID              string
	Username        string
	Email           *string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Role is the server-issued access role carried in the session token.
type Role string

const (
	// RoleEmployee can check in/out and view their own history and reports.
	RoleEmployee Role = "employee"
	// RoleManagement can additionally manage the roster and view all
	// attendance data.
	RoleManagement Role = "management"
)

func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleManagement
}
