package dashboard

import (
	"context"
	"time"

	"github.com/aarambh-hq/attendance-backend-go/internal/config"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/activity"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/dashboard"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/employee"
)

const recentActivityLimit = 10

type DashboardServiceImpl struct {
	cfg *config.Config
	employee.EmployeeRepository
	attendance.AttendanceRepository
	activityService activity.ActivityService
}

func NewDashboardService(
	cfg *config.Config,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	activityService activity.ActivityService,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		cfg:                  cfg,
		EmployeeRepository:   employeeRepo,
		AttendanceRepository: attendanceRepo,
		activityService:      activityService,
	}
}

// Overview implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Overview(ctx context.Context) (dashboard.OverviewResponse, error) {
	total, err := s.EmployeeRepository.Count(ctx)
	if err != nil {
		return dashboard.OverviewResponse{}, err
	}

	now := time.Now().In(s.cfg.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	present, err := s.AttendanceRepository.CountCheckedInOnDate(ctx, today, s.cfg.Attendance.PresentRequiresCheckout)
	if err != nil {
		return dashboard.OverviewResponse{}, err
	}

	activities, err := s.activityService.ListRecent(ctx, recentActivityLimit)
	if err != nil {
		return dashboard.OverviewResponse{}, err
	}

	return dashboard.OverviewResponse{
		TotalEmployees:   total,
		PresentToday:     present,
		AbsentToday:      total - present,
		RecentActivities: activities,
	}, nil
}
