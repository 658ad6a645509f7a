package attendance

import "errors"

var (
	ErrAttendanceNotFound     = errors.New("attendance record not found")
	ErrAlreadyCheckedIn       = errors.New("already checked in today")
	ErrAlreadyCompletedToday  = errors.New("attendance already completed for today")
	ErrNotCheckedIn           = errors.New("not checked in today")
	ErrAlreadyCheckedOut      = errors.New("already checked out today")
	ErrSelfieRequired         = errors.New("check-in selfie is required")
	ErrNotAnEmployee          = errors.New("account has no employee profile")
)
