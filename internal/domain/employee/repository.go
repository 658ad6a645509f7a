package employee

import "context"

// EmployeeFilter narrows roster listings. Search is a case-insensitive
// substring match over name, username, employee code and department.
type EmployeeFilter struct {
	Search     *string
	Department *string
	Page       int
	Limit      int
}

type EmployeeRepository interface {
	// Create inserts a new employee row
	Create(ctx context.Context, newEmployee Employee) (Employee, error)

	// GetByID retrieves an employee, including the login username
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByUserID retrieves the employee linked to a login user
	GetByUserID(ctx context.Context, userID string) (Employee, error)

	// List retrieves employees newest-first with filtering and pagination
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)

	// ExistsByEmployeeCode is the write-time uniqueness check for codes
	ExistsByEmployeeCode(ctx context.Context, employeeCode string) (bool, error)

	// Count returns the total headcount
	Count(ctx context.Context) (int64, error)

	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) error
	UpdateAvatar(ctx context.Context, id string, avatarURL string) error

	// Delete removes the employee row. Attendance cleanup is the service's
	// responsibility and must happen in the same transaction.
	Delete(ctx context.Context, id string) error
}
