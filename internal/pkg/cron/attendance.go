package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/aarambh-hq/attendance-backend-go/internal/config"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/attendance"
)

type AttendanceJobs struct {
	cfg            *config.Config
	attendanceRepo attendance.AttendanceRepository
}

func NewAttendanceJobs(cfg *config.Config, attendanceRepo attendance.AttendanceRepository) *AttendanceJobs {
	return &AttendanceJobs{
		cfg:            cfg,
		attendanceRepo: attendanceRepo,
	}
}

// AutoCloseStaleSessions closes check-ins left open past their calendar
// day. The checkout is capped at the end of the day the session was
// opened, so a forgotten checkout never bleeds into the next day.
func (j *AttendanceJobs) AutoCloseStaleSessions(ctx context.Context) error {
	now := time.Now().In(j.cfg.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	stale, err := j.attendanceRepo.GetStaleOpenSessions(ctx, today)
	if err != nil {
		return err
	}

	for i := range stale {
		rec := &stale[i]
		if rec.CheckIn == nil {
			continue
		}

		in := rec.CheckIn.In(j.cfg.Location())
		checkOut := time.Date(in.Year(), in.Month(), in.Day(), 23, 59, 59, 0, in.Location())
		if checkOut.Before(in) {
			checkOut = in
		}
		duration := attendance.Duration(*rec.CheckIn, checkOut)
		rec.CheckOut = &checkOut
		rec.DurationMinutes = &duration
		rec.Status = attendance.StatusCompleted

		if err := j.attendanceRepo.Update(ctx, rec); err != nil {
			slog.Error("failed to auto-close attendance session",
				"attendance_id", rec.ID,
				"employee_id", rec.EmployeeID,
				"error", err,
			)
			continue
		}

		slog.Info("auto-closed stale attendance session",
			"attendance_id", rec.ID,
			"employee_id", rec.EmployeeID,
			"date", rec.Date.Format("2006-01-02"),
		)
	}

	return nil
}
