package attendance

import (
	"context"
	"net/http"
	"time"

	attendanceerrors "swiftpay/internal/attendance/errors"
	"swiftpay/internal/shared/apperror"
	"swiftpay/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

type clockOp func(ctx context.Context, actorID, employeeID string, at, onDate time.Time) (AttendanceResponse, error)

func (h *Handler) TimeIn(c *gin.Context) {
	h.clock(c, h.service.TimeIn)
}

func (h *Handler) TimeOut(c *gin.Context) {
	h.clock(c, h.service.TimeOut)
}

func (h *Handler) clock(c *gin.Context, op clockOp) {
	actorID := c.GetString("actor_id")

	var req ClockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	at, onDate, err := parseClockInstant(req.Time, req.Date)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := op(c.Request.Context(), actorID, req.EmployeeID, at, onDate)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RecordAbsence(c *gin.Context) {
	h.dayStatus(c, h.service.RecordAbsence)
}

func (h *Handler) RecordLeave(c *gin.Context) {
	h.dayStatus(c, h.service.RecordLeave)
}

type dayStatusOp func(ctx context.Context, actorID, employeeID string, date time.Time, remarks *string) (AttendanceResponse, error)

func (h *Handler) dayStatus(c *gin.Context, op dayStatusOp) {
	actorID := c.GetString("actor_id")

	var req DayStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.writeServiceError(c, attendanceerrors.ErrInvalidDateFormat)
		return
	}

	resp, err := op(c.Request.Context(), actorID, req.EmployeeID, date, req.Remarks)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	actorID := c.GetString("actor_id")

	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), actorID, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	actorID := c.GetString("actor_id")

	if err := h.service.Delete(c.Request.Context(), actorID, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) GetByEmployeeAndDate(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		h.writeServiceError(c, attendanceerrors.ErrInvalidDateFormat)
		return
	}

	resp, err := h.service.Get(c.Request.Context(), c.Param("employee_id"), date)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListRange(c *gin.Context) {
	start, end, err := parsePeriod(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.ListRange(c.Request.Context(), c.Query("employee_id"), start, end)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Summary(c *gin.Context) {
	start, end, err := parsePeriod(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	employeeID := c.Param("employee_id")
	summary, err := h.service.Summary(c.Request.Context(), employeeID, start, end)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, PeriodSummaryResponse{
		EmployeeID:    employeeID,
		StartDate:     start.Format("2006-01-02"),
		EndDate:       end.Format("2006-01-02"),
		DaysWorked:    summary.DaysWorked,
		HoursWorked:   summary.HoursWorked,
		OvertimeHours: summary.OvertimeHours,
		LateMinutes:   summary.LateMinutes,
		Absences:      summary.Absences,
	}, nil)
}

// parseClockInstant resolves the optional time ("15:04" or "15:04:05") and
// date ("2006-01-02") fields, defaulting to now and today.
func parseClockInstant(timeStr, dateStr string) (at, onDate time.Time, err error) {
	now := time.Now().UTC()

	onDate = now
	if dateStr != "" {
		onDate, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDateFormat
		}
	}

	at = now
	if timeStr != "" {
		at, err = time.Parse("15:04:05", timeStr)
		if err != nil {
			at, err = time.Parse("15:04", timeStr)
			if err != nil {
				return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidTimeFormat
			}
		}
	}

	return at, onDate, nil
}

func parsePeriod(startStr, endStr string) (start, end time.Time, err error) {
	start, err = time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDateFormat
	}
	end, err = time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, attendanceerrors.ErrInvalidDateFormat
	}
	return start, end, nil
}
