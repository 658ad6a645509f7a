package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aarambh-hq/attendance-backend-go/internal/domain/activity"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/employee"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/user"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/database"
	"github.com/aarambh-hq/attendance-backend-go/internal/repository/postgresql"
	"github.com/aarambh-hq/attendance-backend-go/internal/service/file"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	db *database.DB
	user.UserRepository
	employee.EmployeeRepository
	attendance.AttendanceRepository
	fileService     file.FileService
	activityService activity.ActivityService
}

func NewEmployeeService(
	db *database.DB,
	userRepo user.UserRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	fileService file.FileService,
	activityService activity.ActivityService,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:                   db,
		UserRepository:       userRepo,
		EmployeeRepository:   employeeRepo,
		AttendanceRepository: attendanceRepo,
		fileService:          fileService,
		activityService:      activityService,
	}
}

func mapEmployeeToResponse(e *employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName,
		Username:     e.Username,
		Department:   e.Department,
		Designation:  e.Designation,
		Email:        e.Email,
		Mobile:       e.Mobile,
		AvatarURL:    e.AvatarURL,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
	}
}

// callerEmployeeID resolves the acting employee from the verified claims.
func callerEmployeeID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", employee.ErrNotAnEmployee
	}

	return employeeID, nil
}

// Create implements employee.EmployeeService. The uniqueness checks and
// both inserts run in one transaction so a partial roster entry can never
// be observed.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var created employee.Employee
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		usernameTaken, err := s.UserRepository.ExistsByUsername(txCtx, req.Username)
		if err != nil {
			return err
		}
		if usernameTaken {
			return employee.ErrUsernameExists
		}

		codeTaken, err := s.EmployeeRepository.ExistsByEmployeeCode(txCtx, req.EmployeeCode)
		if err != nil {
			return err
		}
		if codeTaken {
			return employee.ErrEmployeeCodeExists
		}

		hashStr := string(hash)
		newUser, err := s.UserRepository.Create(txCtx, user.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: &hashStr,
			Role:         user.RoleEmployee,
		})
		if err != nil {
			return err
		}

		created, err = s.EmployeeRepository.Create(txCtx, employee.Employee{
			UserID:       &newUser.ID,
			EmployeeCode: req.EmployeeCode,
			FullName:     req.FullName,
			Department:   req.Department,
			Designation:  req.Designation,
			Email:        req.Email,
			Mobile:       req.Mobile,
		})
		if err != nil {
			return err
		}
		created.Username = &newUser.Username

		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.activityService.Record(ctx, activity.TypeEmployeeAdded, &created.ID,
		fmt.Sprintf("%s joined the team", created.FullName))

	return mapEmployeeToResponse(&created), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeesResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	employees, total, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for i := range employees {
		responses = append(responses, mapEmployeeToResponse(&employees[i]))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return employee.ListEmployeesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Employees:  responses,
	}, nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapEmployeeToResponse(&e), nil
}

// GetMyProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetMyProfile(ctx context.Context) (employee.EmployeeResponse, error) {
	employeeID, err := callerEmployeeID(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.Get(ctx, employeeID)
}

// UpdateMyProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateMyProfile(ctx context.Context, req employee.UpdateProfileRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	employeeID, err := callerEmployeeID(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.EmployeeRepository.UpdateProfile(ctx, employeeID, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.Get(ctx, employeeID)
}

// UploadMyAvatar implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UploadMyAvatar(ctx context.Context, req employee.UploadAvatarRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	employeeID, err := callerEmployeeID(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	avatarURL, err := s.fileService.UploadAvatar(ctx, employeeID, req.File, req.FileHeader.Filename)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.EmployeeRepository.UpdateAvatar(ctx, employeeID, avatarURL); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.Get(ctx, employeeID)
}

// Delete implements employee.EmployeeService. The attendance history, the
// employee row and the login user go together or not at all.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		if err := s.AttendanceRepository.DeleteByEmployee(txCtx, id); err != nil {
			return err
		}

		if err := s.EmployeeRepository.Delete(txCtx, id); err != nil {
			return err
		}

		if e.UserID != nil {
			if err := s.UserRepository.Delete(txCtx, *e.UserID); err != nil && !errors.Is(err, user.ErrUserNotFound) {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.activityService.Record(ctx, activity.TypeEmployeeRemoved, nil,
		fmt.Sprintf("%s was removed from the team", e.FullName))

	return nil
}
