package attendance

import "context"

// AttendanceService drives the daily check-in / check-out cycle. The
// acting employee is resolved from the JWT claims on the context.
type AttendanceService interface {
	// CheckIn opens today's session. The selfie is stored before the
	// record is written so a failed upload never leaves a record behind.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes today's open session and computes the duration.
	CheckOut(ctx context.Context) (AttendanceResponse, error)

	// Today reports the caller's current day state.
	Today(ctx context.Context) (TodayResponse, error)

	// History returns the caller's records for a date range, oldest first.
	History(ctx context.Context, from, to string) ([]AttendanceResponse, error)

	// HistoryFor returns another employee's records. Management only.
	HistoryFor(ctx context.Context, employeeID, from, to string) ([]AttendanceResponse, error)

	// List returns attendance records across the roster. Management only.
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
}
