package employee

import (
	"mime/multipart"
	"strings"

	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName     string  `json:"full_name"`
	EmployeeCode string  `json:"employee_code"`
	Username     string  `json:"username"`
	Password     string  `json:"password"`
	Department   string  `json:"department"`
	Designation  string  `json:"designation"`
	Email        *string `json:"email,omitempty"`
	Mobile       *string `json:"mobile,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.FullName = strings.TrimSpace(r.FullName)
	r.EmployeeCode = strings.TrimSpace(r.EmployeeCode)
	r.Username = strings.TrimSpace(r.Username)
	r.Department = strings.TrimSpace(r.Department)
	r.Designation = strings.TrimSpace(r.Designation)

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full name is required",
		})
	}

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee ID is required",
		})
	} else if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee ID must be 3-20 characters of A-Z, 0-9 or dash",
		})
	}

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	} else if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username must be 3-50 characters of letters, digits, '.', '_' or '-'",
		})
	}

	if !validator.IsValidPassword(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 6 characters",
		})
	}

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}

	if validator.IsEmpty(r.Designation) {
		errs = append(errs, validator.ValidationError{
			Field:   "designation",
			Message: "designation is required",
		})
	}

	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email address",
		})
	}

	if r.Mobile != nil && *r.Mobile != "" && !validator.IsValidMobileNumber(*r.Mobile) {
		errs = append(errs, validator.ValidationError{
			Field:   "mobile",
			Message: "mobile number must be 10-13 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateProfileRequest struct {
	FullName    *string `json:"full_name,omitempty"`
	Designation *string `json:"designation,omitempty"`
	Email       *string `json:"email,omitempty"`
	Mobile      *string `json:"mobile,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full name cannot be empty",
		})
	}

	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email address",
		})
	}

	if r.Mobile != nil && *r.Mobile != "" && !validator.IsValidMobileNumber(*r.Mobile) {
		errs = append(errs, validator.ValidationError{
			Field:   "mobile",
			Message: "mobile number must be 10-13 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	Username     *string `json:"username,omitempty"`
	Department   string  `json:"department"`
	Designation  string  `json:"designation"`
	Email        *string `json:"email,omitempty"`
	Mobile       *string `json:"mobile,omitempty"`
	AvatarURL    *string `json:"avatar_url,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type ListEmployeesResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}

type UploadAvatarRequest struct {
	File       multipart.File
	FileHeader *multipart.FileHeader
}

func (r *UploadAvatarRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.File == nil || r.FileHeader == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "avatar file is required",
		})
		return errs
	}

	if r.FileHeader.Size > 5*1024*1024 {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "avatar file must not exceed 5MB",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
