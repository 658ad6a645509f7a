package attendance

import (
	"mime/multipart"
	"time"

	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Selfie       multipart.File        `json:"-"`
	SelfieHeader *multipart.FileHeader `json:"-"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Selfie == nil || r.SelfieHeader == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "selfie",
			Message: "check-in selfie is required",
		})
	} else if r.SelfieHeader.Size > 10*1024*1024 {
		errs = append(errs, validator.ValidationError{
			Field:   "selfie",
			Message: "selfie must not exceed 10MB",
		})
	}

	// Coordinates are optional but must arrive as a pair.
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude and longitude must be provided together",
		})
	}

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID              string   `json:"id"`
	EmployeeID      string   `json:"employee_id"`
	EmployeeName    *string  `json:"employee_name,omitempty"`
	Date            string   `json:"date"`
	CheckIn         *string  `json:"check_in,omitempty"`
	CheckOut        *string  `json:"check_out,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	SelfieURL       *string  `json:"selfie_url,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	Address         *string  `json:"address,omitempty"`
	Status          Status   `json:"status"`
}

type TodayResponse struct {
	State      State               `json:"state"`
	Attendance *AttendanceResponse `json:"attendance,omitempty"`
}

type ListAttendanceResponse struct {
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
	Records    []AttendanceResponse `json:"records"`
}

type HistoryRequest struct {
	EmployeeID string
	From       time.Time
	To         time.Time
}
