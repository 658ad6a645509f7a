package postgresql

import (
	"context"
	"fmt"

	"github.com/aarambh-hq/attendance-backend-go/internal/domain/activity"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/database"
)

type activityRepositoryImpl struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) activity.ActivityRepository {
	return &activityRepositoryImpl{db: db}
}

// Create implements activity.ActivityRepository.
func (r *activityRepositoryImpl) Create(ctx context.Context, a *activity.Activity) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO activities (type, employee_id, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, a.Type, a.EmployeeID, a.Message).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}

	return nil
}

// ListRecent implements activity.ActivityRepository.
func (r *activityRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]activity.Activity, error) {
	q := GetQuerier(ctx, r.db)

	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, type, employee_id, message, created_at
		FROM activities
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []activity.Activity
	for rows.Next() {
		var a activity.Activity
		if err := rows.Scan(&a.ID, &a.Type, &a.EmployeeID, &a.Message, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}

	return activities, nil
}
