package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/aarambh-hq/attendance-backend-go/internal/domain/employee"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `e.id, e.user_id, e.employee_code, e.full_name, e.department, e.designation,
		e.email, e.mobile, e.avatar_url, e.created_at, e.updated_at, u.username`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// escapeLikePattern escapes LIKE metacharacters so search input matches as
// a literal substring.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.EmployeeCode,
		&e.FullName,
		&e.Department,
		&e.Designation,
		&e.Email,
		&e.Mobile,
		&e.AvatarURL,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.Username,
	)
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (user_id, employee_code, full_name, department, designation, email, mobile)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	created := newEmployee
	err := q.QueryRow(ctx, query,
		newEmployee.UserID,
		newEmployee.EmployeeCode,
		newEmployee.FullName,
		newEmployee.Department,
		newEmployee.Designation,
		newEmployee.Email,
		newEmployee.Mobile,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN users u ON u.id = e.user_id
		WHERE e.id = $1
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN users u ON u.id = e.user_id
		WHERE e.user_id = $1
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by user: %w", err)
	}

	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}

	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+escapeLikePattern(*filter.Search)+"%")
		idx := len(args)
		conditions = append(conditions, fmt.Sprintf(
			`(e.full_name ILIKE $%d OR e.employee_code ILIKE $%d OR e.department ILIKE $%d OR u.username ILIKE $%d)`,
			idx, idx, idx, idx,
		))
	}

	if filter.Department != nil && *filter.Department != "" {
		args = append(args, *filter.Department)
		conditions = append(conditions, fmt.Sprintf(`e.department = $%d`, len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := `
		SELECT COUNT(*)
		FROM employees e
		LEFT JOIN users u ON u.id = e.user_id` + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	listQuery := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN users u ON u.id = e.user_id` + where + fmt.Sprintf(`
		ORDER BY e.created_at DESC
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, total, nil
}

// ExistsByEmployeeCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByEmployeeCode(ctx context.Context, employeeCode string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM employees WHERE employee_code = $1)`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeCode).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check employee code: %w", err)
	}

	return exists, nil
}

// Count implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}

	return total, nil
}

// UpdateProfile implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateProfile(ctx context.Context, id string, req employee.UpdateProfileRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = COALESCE($1, full_name),
			designation = COALESCE($2, designation),
			email = COALESCE($3, email),
			mobile = COALESCE($4, mobile),
			updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, req.FullName, req.Designation, req.Email, req.Mobile, id)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// UpdateAvatar implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateAvatar(ctx context.Context, id string, avatarURL string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET avatar_url = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, query, avatarURL, id)
	if err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
