package employee

import "context"

// EmployeeService defines roster management operations
type EmployeeService interface {
	// Create validates the request, enforces username/employee-code
	// uniqueness and creates the login user plus the employee row
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// List retrieves the roster newest-first
	List(ctx context.Context, filter EmployeeFilter) (ListEmployeesResponse, error)

	// Get retrieves a single employee by ID
	Get(ctx context.Context, id string) (EmployeeResponse, error)

	// GetMyProfile retrieves the caller's own employee profile
	GetMyProfile(ctx context.Context) (EmployeeResponse, error)

	// UpdateMyProfile updates the caller's own employee profile
	UpdateMyProfile(ctx context.Context, req UpdateProfileRequest) (EmployeeResponse, error)

	// UploadMyAvatar stores a new profile image for the caller
	UploadMyAvatar(ctx context.Context, req UploadAvatarRequest) (EmployeeResponse, error)

	// Delete removes an employee together with all their attendance records
	Delete(ctx context.Context, id string) error
}
