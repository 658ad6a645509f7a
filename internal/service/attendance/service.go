package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aarambh-hq/attendance-backend-go/internal/config"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/activity"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/employee"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/user"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/geocode"
	"github.com/aarambh-hq/attendance-backend-go/internal/service/file"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	cfg *config.Config
	attendance.AttendanceRepository
	employee.EmployeeRepository
	fileService     file.FileService
	geocodeClient   geocode.Client
	activityService activity.ActivityService
}

func NewAttendanceService(
	cfg *config.Config,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	fileService file.FileService,
	geocodeClient geocode.Client,
	activityService activity.ActivityService,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		cfg:                  cfg,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		fileService:          fileService,
		geocodeClient:        geocodeClient,
		activityService:      activityService,
	}
}

// claimsFromContext pulls the acting identity out of the verified token.
func claimsFromContext(ctx context.Context) (userID string, employeeID *string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", nil, "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", nil, "", fmt.Errorf("user_id claim is missing or invalid")
	}

	if id, ok := claims["employee_id"].(string); ok && id != "" {
		employeeID = &id
	}

	roleStr, _ := claims["role"].(string)
	role = user.Role(roleStr)
	if !role.Valid() {
		return "", nil, "", fmt.Errorf("role claim is missing or invalid")
	}

	return userID, employeeID, role, nil
}

// today truncates now to the calendar day in the application timezone.
func (s *AttendanceServiceImpl) today() (time.Time, time.Time) {
	now := time.Now().In(s.cfg.Location())
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return now, day
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

func mapAttendanceToResponse(a *attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:              a.ID,
		EmployeeID:      a.EmployeeID,
		EmployeeName:    a.EmployeeName,
		Date:            a.Date.Format("2006-01-02"),
		CheckIn:         timePtrToString(a.CheckIn),
		CheckOut:        timePtrToString(a.CheckOut),
		DurationMinutes: a.DurationMinutes,
		SelfieURL:       a.SelfieURL,
		Latitude:        a.CheckInLatitude,
		Longitude:       a.CheckInLongitude,
		Address:         a.CheckInAddress,
		Status:          a.Status,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	_, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if employeeID == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotAnEmployee
	}

	now, day := s.today()

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, *employeeID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	switch existing.State() {
	case attendance.StateCheckedIn:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	case attendance.StateCompleted:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCompletedToday
	}

	// Store the selfie first so a failed upload never leaves a record behind.
	selfieURL, err := s.fileService.UploadSelfie(ctx, *employeeID, day, req.Selfie, req.SelfieHeader.Filename)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	checkIn := now
	record := &attendance.Attendance{
		EmployeeID:       *employeeID,
		Date:             day,
		CheckIn:          &checkIn,
		SelfieURL:        &selfieURL,
		CheckInLatitude:  req.Latitude,
		CheckInLongitude: req.Longitude,
		Status:           attendance.StatusCheckedIn,
	}

	if err := s.AttendanceRepository.Create(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.Latitude != nil && req.Longitude != nil {
		s.resolveAddress(record.ID, *req.Latitude, *req.Longitude)
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, *employeeID)
	if err == nil {
		s.activityService.Record(ctx, activity.TypeCheckIn, employeeID,
			fmt.Sprintf("%s checked in", emp.FullName))
	}

	return mapAttendanceToResponse(record), nil
}

// resolveAddress reverse geocodes in the background. The record is already
// committed, so failures only cost the address field.
func (s *AttendanceServiceImpl) resolveAddress(recordID string, lat, lng float64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		address, err := s.geocodeClient.ReverseGeocode(ctx, lat, lng)
		if err != nil {
			slog.Warn("reverse geocode failed", "attendance_id", recordID, "error", err)
			return
		}

		if err := s.AttendanceRepository.UpdateCheckInAddress(ctx, recordID, address); err != nil {
			slog.Warn("failed to store check-in address", "attendance_id", recordID, "error", err)
		}
	}()
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.AttendanceResponse, error) {
	_, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if employeeID == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotAnEmployee
	}

	now, day := s.today()

	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, *employeeID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}
	switch record.State() {
	case attendance.StateNoRecord:
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	case attendance.StateCompleted:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	checkOut := now
	duration := attendance.Duration(*record.CheckIn, checkOut)
	record.CheckOut = &checkOut
	record.DurationMinutes = &duration
	record.Status = attendance.StatusCompleted

	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, *employeeID)
	if err == nil {
		s.activityService.Record(ctx, activity.TypeCheckOut, employeeID,
			fmt.Sprintf("%s checked out", emp.FullName))
	}

	return mapAttendanceToResponse(record), nil
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context) (attendance.TodayResponse, error) {
	_, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}
	if employeeID == nil {
		return attendance.TodayResponse{}, attendance.ErrNotAnEmployee
	}

	_, day := s.today()

	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, *employeeID, day)
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to load today's attendance: %w", err)
	}

	resp := attendance.TodayResponse{State: record.State()}
	if record != nil {
		mapped := mapAttendanceToResponse(record)
		resp.Attendance = &mapped
	}

	return resp, nil
}

func parseDateRange(from, to string) (time.Time, time.Time, error) {
	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid from date: %w", err)
	}
	toDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid to date: %w", err)
	}
	if toDate.Before(fromDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("to date is before from date")
	}
	return fromDate, toDate, nil
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, from, to string) ([]attendance.AttendanceResponse, error) {
	_, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if employeeID == nil {
		return nil, attendance.ErrNotAnEmployee
	}

	return s.historyFor(ctx, *employeeID, from, to)
}

// HistoryFor implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) HistoryFor(ctx context.Context, employeeID, from, to string) ([]attendance.AttendanceResponse, error) {
	_, selfID, role, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if role != user.RoleManagement && (selfID == nil || *selfID != employeeID) {
		return nil, employee.ErrUnauthorized
	}

	return s.historyFor(ctx, employeeID, from, to)
}

func (s *AttendanceServiceImpl) historyFor(ctx context.Context, employeeID, from, to string) ([]attendance.AttendanceResponse, error) {
	fromDate, toDate, err := parseDateRange(from, to)
	if err != nil {
		return nil, err
	}

	records, err := s.AttendanceRepository.ListByEmployeeAndDateRange(ctx, employeeID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for i := range records {
		responses = append(responses, mapAttendanceToResponse(&records[i]))
	}

	return responses, nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	_, _, role, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if role != user.RoleManagement {
		return attendance.ListAttendanceResponse{}, employee.ErrUnauthorized
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	total, err := s.AttendanceRepository.Count(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for i := range records {
		responses = append(responses, mapAttendanceToResponse(&records[i]))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return attendance.ListAttendanceResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Records:    responses,
	}, nil
}
