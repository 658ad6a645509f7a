package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aarambh-hq/attendance-backend-go/internal/config"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staleSessionRepo struct {
	attendance.AttendanceRepository

	stale     []attendance.Attendance
	updated   []attendance.Attendance
	listErr   error
	updateErr error
}

func (r *staleSessionRepo) GetStaleOpenSessions(ctx context.Context, before time.Time) ([]attendance.Attendance, error) {
	return r.stale, r.listErr
}

func (r *staleSessionRepo) Update(ctx context.Context, a *attendance.Attendance) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = append(r.updated, *a)
	return nil
}

func TestAutoCloseStaleSessions(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Timezone: "UTC"}}

	t.Run("closes open sessions at end of their day", func(t *testing.T) {
		in := time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC)
		repo := &staleSessionRepo{
			stale: []attendance.Attendance{{
				ID:         "att-1",
				EmployeeID: "emp-1",
				Date:       time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
				CheckIn:    &in,
				Status:     attendance.StatusCheckedIn,
			}},
		}

		jobs := NewAttendanceJobs(cfg, repo)
		require.NoError(t, jobs.AutoCloseStaleSessions(context.Background()))

		require.Len(t, repo.updated, 1)
		rec := repo.updated[0]
		assert.Equal(t, attendance.StatusCompleted, rec.Status)
		require.NotNil(t, rec.CheckOut)
		assert.Equal(t, time.Date(2026, 3, 11, 23, 59, 59, 0, time.UTC), *rec.CheckOut)
		require.NotNil(t, rec.DurationMinutes)
		// 09:30 to 23:59:59 is just about 870 minutes.
		assert.Equal(t, 870, *rec.DurationMinutes)
	})

	t.Run("skips records without a check-in", func(t *testing.T) {
		repo := &staleSessionRepo{
			stale: []attendance.Attendance{{ID: "att-2", EmployeeID: "emp-1"}},
		}

		jobs := NewAttendanceJobs(cfg, repo)
		require.NoError(t, jobs.AutoCloseStaleSessions(context.Background()))
		assert.Empty(t, repo.updated)
	})

	t.Run("propagates listing errors", func(t *testing.T) {
		repo := &staleSessionRepo{listErr: errors.New("boom")}

		jobs := NewAttendanceJobs(cfg, repo)
		assert.Error(t, jobs.AutoCloseStaleSessions(context.Background()))
	})

	t.Run("continues past update failures", func(t *testing.T) {
		in := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
		repo := &staleSessionRepo{
			stale: []attendance.Attendance{{
				ID:      "att-3",
				CheckIn: &in,
				Status:  attendance.StatusCheckedIn,
			}},
			updateErr: errors.New("db down"),
		}

		jobs := NewAttendanceJobs(cfg, repo)
		assert.NoError(t, jobs.AutoCloseStaleSessions(context.Background()))
	})
}
