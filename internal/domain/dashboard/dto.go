package dashboard

import "github.com/aarambh-hq/attendance-backend-go/internal/domain/activity"

type OverviewResponse struct {
	TotalEmployees   int64                       `json:"total_employees"`
	PresentToday     int64                       `json:"present_today"`
	AbsentToday      int64                       `json:"absent_today"`
	RecentActivities []activity.ActivityResponse `json:"recent_activities"`
}
