package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	attendanceerrors "swiftpay/internal/attendance/errors"
	"swiftpay/internal/audit"
	"swiftpay/internal/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	TimeIn(ctx context.Context, actorID, employeeID string, at, onDate time.Time) (AttendanceResponse, error)
	TimeOut(ctx context.Context, actorID, employeeID string, at, onDate time.Time) (AttendanceResponse, error)
	RecordAbsence(ctx context.Context, actorID, employeeID string, date time.Time, remarks *string) (AttendanceResponse, error)
	RecordLeave(ctx context.Context, actorID, employeeID string, date time.Time, remarks *string) (AttendanceResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, actorID, id string) error
	Get(ctx context.Context, employeeID string, date time.Time) (AttendanceResponse, error)
	ListRange(ctx context.Context, employeeID string, start, end time.Time) ([]AttendanceResponse, error)

	// Summary feeds the payroll generator.
	Summary(ctx context.Context, employeeID string, start, end time.Time) (PeriodSummary, error)
}

// keyedMutex serializes clock operations per (employee, date) so concurrent
// time-in/time-out calls for the same day never interleave. Entries are tiny
// and bounded by roster size times distinct days touched per process.
type keyedMutex struct {
	locks sync.Map
}

func (k *keyedMutex) lock(key string) func() {
	v, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	m := v.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

type service struct {
	db        *sql.DB
	repo      Repository
	clock     ClockConfig
	recorder  audit.Recorder
	publisher EventPublisher
	locks     keyedMutex
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	clock ClockConfig,
	recorder audit.Recorder,
	publisher EventPublisher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	if publisher == nil {
		publisher = noopEventPublisher{}
	}
	return &service{
		db:        db,
		repo:      repo,
		clock:     clock,
		recorder:  recorder,
		publisher: publisher,
		logger:    l,
	}
}

func (s *service) TimeIn(ctx context.Context, actorID, employeeID string, at, onDate time.Time) (AttendanceResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	day := normalizeDate(onDate)
	unlock := s.locks.lock(lockKey(employeeID, day))
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	lateMinutes := s.clock.CalculateLateMinutes(at)
	timeIn := combine(day, at)

	var row *Attendance
	if existing != nil && err == nil {
		if existing.TimeIn != nil {
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
		}
		// Absence/leave row for the day gets converted into a present one.
		existing.TimeIn = &timeIn
		existing.LateMinutes = lateMinutes
		existing.Status = StatusPresent
		if err := qtx.Update(ctx, existing); err != nil {
			return AttendanceResponse{}, mapRepositoryError(err)
		}
		row = existing
	} else {
		row = &Attendance{
			ID:             uuid.New(),
			EmployeeID:     employeeUUID,
			AttendanceDate: day,
			TimeIn:         &timeIn,
			LateMinutes:    lateMinutes,
			Status:         StatusPresent,
		}
		if err := qtx.Create(ctx, row); err != nil {
			return AttendanceResponse{}, mapRepositoryError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	s.recorder.Record(ctx, audit.Entry{
		ActorID:     actorID,
		Action:      audit.ActionTimeIn,
		EntityType:  audit.EntityAttendance,
		EntityID:    row.ID.String(),
		Description: fmt.Sprintf("Time-in recorded for employee %s on %s", employeeID, day.Format("2006-01-02")),
		After:       map[string]any{"time_in": timeIn.Format(time.RFC3339), "late_minutes": lateMinutes},
	})
	s.publishClockEvent(ctx, "attendance.timed_in", row)

	return mapToResponse(*row), nil
}

func (s *service) TimeOut(ctx context.Context, actorID, employeeID string, at, onDate time.Time) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	day := normalizeDate(onDate)
	unlock := s.locks.lock(lockKey(employeeID, day))
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNoTimeInRecord
		}
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if row.TimeIn == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNoTimeInRecord
	}
	if row.TimeOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}

	dur, err := s.clock.CalculateDuration(*row.TimeIn, at, row.AttendanceDate, day)
	if err != nil {
		return AttendanceResponse{}, err
	}

	timeOut := combine(day, at)
	row.TimeOut = &timeOut
	row.HoursWorked = dur.RegularHours
	row.OvertimeHours = dur.OvertimeHours
	row.UndertimeMinutes = dur.UndertimeMinutes

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	s.recorder.Record(ctx, audit.Entry{
		ActorID:     actorID,
		Action:      audit.ActionTimeOut,
		EntityType:  audit.EntityAttendance,
		EntityID:    row.ID.String(),
		Description: fmt.Sprintf("Time-out recorded for employee %s on %s (%.2f hours worked)", employeeID, day.Format("2006-01-02"), dur.RegularHours),
		After: map[string]any{
			"time_out":       timeOut.Format(time.RFC3339),
			"hours_worked":   dur.RegularHours,
			"overtime_hours": dur.OvertimeHours,
		},
	})
	s.publishClockEvent(ctx, "attendance.timed_out", row)

	return mapToResponse(*row), nil
}

func (s *service) RecordAbsence(ctx context.Context, actorID, employeeID string, date time.Time, remarks *string) (AttendanceResponse, error) {
	return s.recordDayStatus(ctx, actorID, employeeID, date, StatusAbsent, remarks)
}

func (s *service) RecordLeave(ctx context.Context, actorID, employeeID string, date time.Time, remarks *string) (AttendanceResponse, error) {
	return s.recordDayStatus(ctx, actorID, employeeID, date, StatusLeave, remarks)
}

// recordDayStatus is the idempotent upsert behind absence and leave marking:
// an existing row for the day keeps its identity and time fields, only status
// and remarks are overwritten.
func (s *service) recordDayStatus(ctx context.Context, actorID, employeeID string, date time.Time, status string, remarks *string) (AttendanceResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	day := normalizeDate(date)
	unlock := s.locks.lock(lockKey(employeeID, day))
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID, day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	var row *Attendance
	action := audit.ActionCreate
	if existing != nil && err == nil {
		existing.Status = status
		existing.Remarks = remarks
		if err := qtx.Update(ctx, existing); err != nil {
			return AttendanceResponse{}, mapRepositoryError(err)
		}
		row = existing
		action = audit.ActionUpdate
	} else {
		row = &Attendance{
			ID:             uuid.New(),
			EmployeeID:     employeeUUID,
			AttendanceDate: day,
			Status:         status,
			Remarks:        remarks,
		}
		if err := qtx.Create(ctx, row); err != nil {
			return AttendanceResponse{}, mapRepositoryError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	s.recorder.Record(ctx, audit.Entry{
		ActorID:     actorID,
		Action:      action,
		EntityType:  audit.EntityAttendance,
		EntityID:    row.ID.String(),
		Description: fmt.Sprintf("Marked employee %s as %s on %s", employeeID, status, day.Format("2006-01-02")),
		After:       map[string]any{"status": status},
	})

	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, actorID, id string, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	before := map[string]any{"status": row.Status, "hours_worked": row.HoursWorked}

	if req.Status != nil {
		switch *req.Status {
		case StatusPresent, StatusAbsent, StatusLeave, StatusHalfDay:
			row.Status = *req.Status
		default:
			return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
		}
	}
	if req.Remarks != nil {
		row.Remarks = req.Remarks
	}
	if req.LateMinutes != nil {
		if *req.LateMinutes < 0 {
			return AttendanceResponse{}, attendanceerrors.ErrInvalidAdjustment
		}
		row.LateMinutes = *req.LateMinutes
	}
	if req.HoursWorked != nil {
		if *req.HoursWorked < 0 || *req.HoursWorked > 24 {
			return AttendanceResponse{}, attendanceerrors.ErrInvalidAdjustment
		}
		row.HoursWorked = *req.HoursWorked
	}
	if req.OvertimeHours != nil {
		if *req.OvertimeHours < 0 {
			return AttendanceResponse{}, attendanceerrors.ErrInvalidAdjustment
		}
		row.OvertimeHours = *req.OvertimeHours
	}
	if req.UndertimeMinutes != nil {
		if *req.UndertimeMinutes < 0 {
			return AttendanceResponse{}, attendanceerrors.ErrInvalidAdjustment
		}
		row.UndertimeMinutes = *req.UndertimeMinutes
	}

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	s.recorder.Record(ctx, audit.Entry{
		ActorID:     actorID,
		Action:      audit.ActionUpdate,
		EntityType:  audit.EntityAttendance,
		EntityID:    row.ID.String(),
		Description: fmt.Sprintf("Updated attendance record for employee %s on %s", row.EmployeeID, row.AttendanceDate.Format("2006-01-02")),
		Before:      before,
		After:       map[string]any{"status": row.Status, "hours_worked": row.HoursWorked},
	})

	return mapToResponse(*row), nil
}

// Delete removes a record permanently. Only an explicit operator action gets
// here; nothing in the engine deletes attendance implicitly.
func (s *service) Delete(ctx context.Context, actorID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return attendanceerrors.ErrAttendanceNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return mapRepositoryError(err)
	}

	s.recorder.Record(ctx, audit.Entry{
		ActorID:     actorID,
		Action:      audit.ActionDelete,
		EntityType:  audit.EntityAttendance,
		EntityID:    id,
		Description: fmt.Sprintf("Deleted attendance record for employee %s on %s", row.EmployeeID, row.AttendanceDate.Format("2006-01-02")),
		Before:      map[string]any{"status": row.Status, "attendance_date": row.AttendanceDate.Format("2006-01-02")},
	})

	return nil
}

func (s *service) Get(ctx context.Context, employeeID string, date time.Time) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	row, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, normalizeDate(date))
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) ListRange(ctx context.Context, employeeID string, start, end time.Time) ([]AttendanceResponse, error) {
	if employeeID != "" {
		if _, err := uuid.Parse(employeeID); err != nil {
			return nil, attendanceerrors.ErrInvalidEmployeeID
		}
	}
	if start.After(end) {
		return nil, attendanceerrors.ErrInvalidPeriod
	}

	rows, err := s.repo.FindRange(ctx, employeeID, normalizeDate(start), normalizeDate(end))
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]AttendanceResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, nil
}

func (s *service) Summary(ctx context.Context, employeeID string, start, end time.Time) (PeriodSummary, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return PeriodSummary{}, attendanceerrors.ErrInvalidEmployeeID
	}
	if start.After(end) {
		return PeriodSummary{}, attendanceerrors.ErrInvalidPeriod
	}

	rows, err := s.repo.FindRange(ctx, employeeID, normalizeDate(start), normalizeDate(end))
	if err != nil {
		return PeriodSummary{}, mapRepositoryError(err)
	}
	return Summarize(rows), nil
}

func (s *service) publishClockEvent(ctx context.Context, eventType string, row *Attendance) {
	event := events.AttendanceClockedEvent{
		EventType:      eventType,
		AttendanceID:   row.ID.String(),
		EmployeeID:     row.EmployeeID.String(),
		AttendanceDate: row.AttendanceDate.Format("2006-01-02"),
		OccurredAt:     time.Now().UTC(),
	}
	if err := s.publisher.PublishClockEvent(ctx, event); err != nil {
		s.logger.Warn("clock event publish failed",
			zap.String("attendance_id", event.AttendanceID),
			zap.Error(err),
		)
	}
}

func lockKey(employeeID string, day time.Time) string {
	return employeeID + "|" + day.Format("2006-01-02")
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
