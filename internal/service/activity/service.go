package activity

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/aarambh-hq/attendance-backend-go/internal/domain/activity"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/sse"
)

// TopicActivities is the hub topic the dashboard stream subscribes to.
const TopicActivities = "activities"

type ActivityServiceImpl struct {
	activity.ActivityRepository
	hub *sse.Hub
}

func NewActivityService(repo activity.ActivityRepository, hub *sse.Hub) activity.ActivityService {
	return &ActivityServiceImpl{
		ActivityRepository: repo,
		hub:                hub,
	}
}

func mapActivityToResponse(a *activity.Activity) activity.ActivityResponse {
	return activity.ActivityResponse{
		ID:         a.ID,
		Type:       a.Type,
		EmployeeID: a.EmployeeID,
		Message:    a.Message,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}

// Record implements activity.ActivityService. Feed entries are best
// effort and never fail the operation that produced them.
func (s *ActivityServiceImpl) Record(ctx context.Context, typ activity.Type, employeeID *string, message string) {
	entry := &activity.Activity{
		Type:       typ,
		EmployeeID: employeeID,
		Message:    message,
	}

	if err := s.ActivityRepository.Create(ctx, entry); err != nil {
		slog.Warn("failed to record activity", "type", typ, "error", err)
		return
	}

	payload, err := json.Marshal(mapActivityToResponse(entry))
	if err != nil {
		slog.Warn("failed to marshal activity event", "error", err)
		return
	}

	s.hub.Publish(sse.Event{
		Topic: TopicActivities,
		Event: string(typ),
		Data:  string(payload),
	})
}

// ListRecent implements activity.ActivityService.
func (s *ActivityServiceImpl) ListRecent(ctx context.Context, limit int) ([]activity.ActivityResponse, error) {
	entries, err := s.ActivityRepository.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]activity.ActivityResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, mapActivityToResponse(&entries[i]))
	}

	return responses, nil
}
