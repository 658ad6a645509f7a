package attendance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/aarambh-hq/attendance-backend-go/internal/config"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/activity"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/aarambh-hq/attendance-backend-go/internal/domain/employee"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memAttendanceRepo struct {
	attendance.AttendanceRepository

	mu      sync.Mutex
	nextID  int
	records []*attendance.Attendance
}

func (m *memAttendanceRepo) Create(ctx context.Context, a *attendance.Attendance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	a.ID = fmt.Sprintf("att-%d", m.nextID)
	m.records = append(m.records, a)
	return nil
}

func (m *memAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.records {
		if rec.EmployeeID == employeeID && rec.Date.Equal(date) {
			return rec, nil
		}
	}
	return nil, nil
}

func (m *memAttendanceRepo) Update(ctx context.Context, a *attendance.Attendance) error {
	return nil
}

func (m *memAttendanceRepo) UpdateCheckInAddress(ctx context.Context, id, address string) error {
	return nil
}

func (m *memAttendanceRepo) ListByEmployeeAndDateRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Attendance
	for _, rec := range m.records {
		if rec.EmployeeID == employeeID && !rec.Date.Before(from) && !rec.Date.After(to) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *memAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []attendance.Attendance
	for _, rec := range m.records {
		out = append(out, *rec)
	}
	return out, nil
}

func (m *memAttendanceRepo) Count(ctx context.Context, filter attendance.AttendanceFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.records)), nil
}

type stubEmployeeRepo struct {
	employee.EmployeeRepository
}

func (s *stubEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return employee.Employee{ID: id, FullName: "Asha Verma"}, nil
}

type stubFileService struct{}

func (stubFileService) UploadSelfie(ctx context.Context, employeeID string, date time.Time, file io.Reader, filename string) (string, error) {
	return "http://localhost:8080/uploads/selfies/test.jpg", nil
}
func (stubFileService) UploadAvatar(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	return "", nil
}
func (stubFileService) DeleteFile(ctx context.Context, path string) error { return nil }
func (stubFileService) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "", nil
}

type stubGeocoder struct{}

func (stubGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	return "221B Baker Street", nil
}

type recordingActivityService struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingActivityService) Record(ctx context.Context, typ activity.Type, employeeID *string, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *recordingActivityService) ListRecent(ctx context.Context, limit int) ([]activity.ActivityResponse, error) {
	return nil, nil
}

type nopCloserFile struct {
	*bytes.Reader
}

func (nopCloserFile) Close() error { return nil }

func newTestService(repo *memAttendanceRepo, acts *recordingActivityService) attendance.AttendanceService {
	cfg := &config.Config{
		App:        config.AppConfig{Timezone: "UTC"},
		Attendance: config.AttendanceConfig{FullDayMinutes: 240},
	}
	return NewAttendanceService(cfg, repo, &stubEmployeeRepo{}, stubFileService{}, stubGeocoder{}, acts)
}

func claimsContext(t *testing.T, role, employeeID string) context.Context {
	t.Helper()
	tok := jwxjwt.New()
	require.NoError(t, tok.Set("user_id", "user-1"))
	require.NoError(t, tok.Set("role", role))
	if employeeID != "" {
		require.NoError(t, tok.Set("employee_id", employeeID))
	}
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func validCheckInRequest() attendance.CheckInRequest {
	return attendance.CheckInRequest{
		Selfie:       nopCloserFile{bytes.NewReader([]byte("fake image bytes"))},
		SelfieHeader: &multipart.FileHeader{Filename: "selfie.jpg", Size: 16},
	}
}

func TestCheckIn(t *testing.T) {
	t.Run("first check-in of the day succeeds", func(t *testing.T) {
		repo := &memAttendanceRepo{}
		acts := &recordingActivityService{}
		svc := newTestService(repo, acts)
		ctx := claimsContext(t, "employee", "emp-1")

		resp, err := svc.CheckIn(ctx, validCheckInRequest())
		require.NoError(t, err)

		assert.Equal(t, "emp-1", resp.EmployeeID)
		assert.Equal(t, attendance.StatusCheckedIn, resp.Status)
		require.NotNil(t, resp.CheckIn)
		require.NotNil(t, resp.SelfieURL)
		assert.Contains(t, *resp.SelfieURL, "/uploads/selfies/")

		acts.mu.Lock()
		defer acts.mu.Unlock()
		require.Len(t, acts.messages, 1)
		assert.Equal(t, "Asha Verma checked in", acts.messages[0])
	})

	t.Run("second check-in is rejected", func(t *testing.T) {
		repo := &memAttendanceRepo{}
		svc := newTestService(repo, &recordingActivityService{})
		ctx := claimsContext(t, "employee", "emp-1")

		_, err := svc.CheckIn(ctx, validCheckInRequest())
		require.NoError(t, err)

		_, err = svc.CheckIn(ctx, validCheckInRequest())
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	})

	t.Run("check-in after completing the day is rejected", func(t *testing.T) {
		repo := &memAttendanceRepo{}
		svc := newTestService(repo, &recordingActivityService{})
		ctx := claimsContext(t, "employee", "emp-1")

		_, err := svc.CheckIn(ctx, validCheckInRequest())
		require.NoError(t, err)
		_, err = svc.CheckOut(ctx)
		require.NoError(t, err)

		_, err = svc.CheckIn(ctx, validCheckInRequest())
		assert.ErrorIs(t, err, attendance.ErrAlreadyCompletedToday)
	})

	t.Run("management account without employee record cannot check in", func(t *testing.T) {
		svc := newTestService(&memAttendanceRepo{}, &recordingActivityService{})
		ctx := claimsContext(t, "management", "")

		_, err := svc.CheckIn(ctx, validCheckInRequest())
		assert.ErrorIs(t, err, attendance.ErrNotAnEmployee)
	})

	t.Run("missing selfie fails validation", func(t *testing.T) {
		svc := newTestService(&memAttendanceRepo{}, &recordingActivityService{})
		ctx := claimsContext(t, "employee", "emp-1")

		_, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("lone latitude fails validation", func(t *testing.T) {
		svc := newTestService(&memAttendanceRepo{}, &recordingActivityService{})
		ctx := claimsContext(t, "employee", "emp-1")

		req := validCheckInRequest()
		lat := 12.97
		req.Latitude = &lat

		_, err := svc.CheckIn(ctx, req)
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})
}

func TestCheckOut(t *testing.T) {
	t.Run("without a check-in is rejected", func(t *testing.T) {
		svc := newTestService(&memAttendanceRepo{}, &recordingActivityService{})
		ctx := claimsContext(t, "employee", "emp-1")

		_, err := svc.CheckOut(ctx)
		assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
	})

	t.Run("completes the open session", func(t *testing.T) {
		repo := &memAttendanceRepo{}
		acts := &recordingActivityService{}
		svc := newTestService(repo, acts)
		ctx := claimsContext(t, "employee", "emp-1")

		_, err := svc.CheckIn(ctx, validCheckInRequest())
		require.NoError(t, err)

		resp, err := svc.CheckOut(ctx)
		require.NoError(t, err)

		assert.Equal(t, attendance.StatusCompleted, resp.Status)
		require.NotNil(t, resp.CheckOut)
		require.NotNil(t, resp.DurationMinutes)

		_, err = svc.CheckOut(ctx)
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
	})
}

func TestToday(t *testing.T) {
	repo := &memAttendanceRepo{}
	svc := newTestService(repo, &recordingActivityService{})
	ctx := claimsContext(t, "employee", "emp-1")

	resp, err := svc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateNoRecord, resp.State)
	assert.Nil(t, resp.Attendance)

	_, err = svc.CheckIn(ctx, validCheckInRequest())
	require.NoError(t, err)

	resp, err = svc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateCheckedIn, resp.State)
	require.NotNil(t, resp.Attendance)

	_, err = svc.CheckOut(ctx)
	require.NoError(t, err)

	resp, err = svc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateCompleted, resp.State)
}

func TestHistoryFor(t *testing.T) {
	repo := &memAttendanceRepo{}
	svc := newTestService(repo, &recordingActivityService{})

	t.Run("employee cannot read someone else's history", func(t *testing.T) {
		ctx := claimsContext(t, "employee", "emp-1")
		_, err := svc.HistoryFor(ctx, "emp-2", "2026-03-01", "2026-03-31")
		assert.ErrorIs(t, err, employee.ErrUnauthorized)
	})

	t.Run("management can read anyone's history", func(t *testing.T) {
		ctx := claimsContext(t, "management", "")
		_, err := svc.HistoryFor(ctx, "emp-2", "2026-03-01", "2026-03-31")
		assert.NoError(t, err)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		ctx := claimsContext(t, "employee", "emp-1")
		_, err := svc.History(ctx, "2026-03-31", "2026-03-01")
		assert.Error(t, err)
	})
}

func TestList(t *testing.T) {
	repo := &memAttendanceRepo{}
	svc := newTestService(repo, &recordingActivityService{})

	t.Run("requires management", func(t *testing.T) {
		ctx := claimsContext(t, "employee", "emp-1")
		_, err := svc.List(ctx, attendance.AttendanceFilter{})
		assert.ErrorIs(t, err, employee.ErrUnauthorized)
	})

	t.Run("applies pagination defaults", func(t *testing.T) {
		ctx := claimsContext(t, "management", "")
		resp, err := svc.List(ctx, attendance.AttendanceFilter{})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Page)
		assert.Equal(t, 20, resp.Limit)
	})
}
