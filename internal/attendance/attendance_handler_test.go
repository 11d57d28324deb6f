package attendance_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"swiftpay/internal/attendance"
	attendanceerrors "swiftpay/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	timeInFn    func(ctx context.Context, actorID, employeeID string, at, onDate time.Time) (attendance.AttendanceResponse, error)
	timeOutFn   func(ctx context.Context, actorID, employeeID string, at, onDate time.Time) (attendance.AttendanceResponse, error)
	summaryFn   func(ctx context.Context, employeeID string, start, end time.Time) (attendance.PeriodSummary, error)
	listRangeFn func(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.AttendanceResponse, error)
}

func (f *fakeService) TimeIn(ctx context.Context, actorID, employeeID string, at, onDate time.Time) (attendance.AttendanceResponse, error) {
	return f.timeInFn(ctx, actorID, employeeID, at, onDate)
}
func (f *fakeService) TimeOut(ctx context.Context, actorID, employeeID string, at, onDate time.Time) (attendance.AttendanceResponse, error) {
	return f.timeOutFn(ctx, actorID, employeeID, at, onDate)
}
func (f *fakeService) RecordAbsence(ctx context.Context, actorID, employeeID string, date time.Time, remarks *string) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}
func (f *fakeService) RecordLeave(ctx context.Context, actorID, employeeID string, date time.Time, remarks *string) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}
func (f *fakeService) Update(ctx context.Context, actorID, id string, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}
func (f *fakeService) Delete(ctx context.Context, actorID, id string) error { return nil }
func (f *fakeService) Get(ctx context.Context, employeeID string, date time.Time) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}
func (f *fakeService) ListRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.AttendanceResponse, error) {
	return f.listRangeFn(ctx, employeeID, start, end)
}
func (f *fakeService) Summary(ctx context.Context, employeeID string, start, end time.Time) (attendance.PeriodSummary, error) {
	return f.summaryFn(ctx, employeeID, start, end)
}

func TestHandler_TimeIn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		timeInFn: func(ctx context.Context, actorID, eid string, at, onDate time.Time) (attendance.AttendanceResponse, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, 8, at.Hour())
			assert.Equal(t, 30, at.Minute())
			assert.Equal(t, "2026-03-02", onDate.Format("2006-01-02"))
			return attendance.AttendanceResponse{ID: uuid.New().String(), EmployeeID: eid, Status: attendance.StatusPresent}, nil
		},
	}

	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("actor_id", "operator")
	body := fmt.Sprintf(`{"employee_id":%q,"time":"08:30","date":"2026-03-02"}`, employeeID)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances/time-in", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.TimeIn(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), attendance.StatusPresent)
}

func TestHandler_TimeOut_Conflict(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		timeOutFn: func(ctx context.Context, actorID, eid string, at, onDate time.Time) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
		},
	}

	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := fmt.Sprintf(`{"employee_id":%q}`, uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances/time-out", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.TimeOut(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already clocked out")
}

func TestHandler_TimeIn_BadTime(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := attendance.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := fmt.Sprintf(`{"employee_id":%q,"time":"8 thirty"}`, uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances/time-in", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.TimeIn(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Summary(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		summaryFn: func(ctx context.Context, eid string, start, end time.Time) (attendance.PeriodSummary, error) {
			return attendance.PeriodSummary{DaysWorked: 10, HoursWorked: 80, LateMinutes: 20}, nil
		},
	}

	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "employee_id", Value: employeeID}}
	c.Request = httptest.NewRequest(http.MethodGet,
		"/attendances/employees/"+employeeID+"/summary?start_date=2026-03-01&end_date=2026-03-15", nil)
	h.Summary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"days_worked":10`)
}
