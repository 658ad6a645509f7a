package activity

import "context"

// ActivityService records dashboard feed entries and fans them out to
// live subscribers.
type ActivityService interface {
	Record(ctx context.Context, typ Type, employeeID *string, message string)
	ListRecent(ctx context.Context, limit int) ([]ActivityResponse, error)
}
