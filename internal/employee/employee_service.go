package employee

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"swiftpay/internal/audit"
	employeeerrors "swiftpay/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, statusFilter string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, actorID, id string) error

	// Directory surface consumed by the payroll generator.
	GetActiveEmployees(ctx context.Context) ([]Employee, error)
	Get(ctx context.Context, id string) (*Employee, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	return &service{db: db, repo: repo, recorder: recorder, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateEmployeeRequest) (EmployeeResponse, error) {
	comp, err := parseCompensation(
		req.RatePerHour, req.DailyRate, req.Allowance,
		req.SSSDeduction, req.PhilhealthDeduction, req.PagibigDeduction, req.TaxDeduction,
	)
	if err != nil {
		return EmployeeResponse{}, err
	}

	row := &Employee{
		ID:                  uuid.New(),
		EmployeeNumber:      req.EmployeeNumber,
		FullName:            req.FullName,
		Position:            req.Position,
		Department:          req.Department,
		RatePerHour:         comp[0],
		DailyRate:           comp[1],
		Allowance:           comp[2],
		SSSDeduction:        comp[3],
		PhilhealthDeduction: comp[4],
		PagibigDeduction:    comp[5],
		TaxDeduction:        comp[6],
		Status:              StatusActive,
	}

	if req.HireDate != "" {
		hireDate, err := time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidDateFormat
		}
		row.HireDate = &hireDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, row); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.recorder.Record(ctx, audit.Entry{
		ActorID:     actorID,
		Action:      audit.ActionCreate,
		EntityType:  audit.EntityEmployee,
		EntityID:    row.ID.String(),
		Description: fmt.Sprintf("Created employee %s (%s)", row.FullName, row.EmployeeNumber),
		After:       map[string]any{"employee_number": row.EmployeeNumber, "status": row.Status},
	})

	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, statusFilter string) ([]EmployeeResponse, error) {
	switch statusFilter {
	case "", StatusActive, StatusInactive:
	default:
		return nil, employeeerrors.ErrInvalidStatusFilter
	}

	rows, err := s.repo.FindAll(ctx, statusFilter)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, actorID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	comp, err := parseCompensation(
		req.RatePerHour, req.DailyRate, req.Allowance,
		req.SSSDeduction, req.PhilhealthDeduction, req.PagibigDeduction, req.TaxDeduction,
	)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	oldStatus := row.Status

	row.FullName = req.FullName
	row.Position = req.Position
	row.Department = req.Department
	row.RatePerHour = comp[0]
	row.DailyRate = comp[1]
	row.Allowance = comp[2]
	row.SSSDeduction = comp[3]
	row.PhilhealthDeduction = comp[4]
	row.PagibigDeduction = comp[5]
	row.TaxDeduction = comp[6]

	if req.Status != "" {
		switch req.Status {
		case StatusActive, StatusInactive:
			row.Status = req.Status
		default:
			return EmployeeResponse{}, employeeerrors.ErrInvalidStatusFilter
		}
	}

	if err := qtx.Update(ctx, row); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.recorder.Record(ctx, audit.Entry{
		ActorID:     actorID,
		Action:      audit.ActionUpdate,
		EntityType:  audit.EntityEmployee,
		EntityID:    row.ID.String(),
		Description: fmt.Sprintf("Updated employee %s (%s)", row.FullName, row.EmployeeNumber),
		Before:      map[string]any{"status": oldStatus},
		After:       map[string]any{"status": row.Status},
	})

	return mapToResponse(*row), nil
}

// Deactivate marks the employee inactive; rows are never hard-deleted so
// historical payroll line items keep a valid reference.
func (s *service) Deactivate(ctx context.Context, actorID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
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
	if row.Status == StatusInactive {
		return employeeerrors.ErrEmployeeInactive
	}

	row.Status = StatusInactive
	if err := qtx.Update(ctx, row); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return mapRepositoryError(err)
	}

	s.recorder.Record(ctx, audit.Entry{
		ActorID:     actorID,
		Action:      audit.ActionUpdate,
		EntityType:  audit.EntityEmployee,
		EntityID:    row.ID.String(),
		Description: fmt.Sprintf("Deactivated employee %s (%s)", row.FullName, row.EmployeeNumber),
		Before:      map[string]any{"status": StatusActive},
		After:       map[string]any{"status": StatusInactive},
	})

	return nil
}

func (s *service) GetActiveEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id string) (*Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, employeeerrors.ErrInvalidEmployeeID
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return row, nil
}

func parseCompensation(values ...string) ([]decimal.Decimal, error) {
	parsed := make([]decimal.Decimal, len(values))
	for i, v := range values {
		if v == "" {
			parsed[i] = decimal.Zero
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, employeeerrors.ErrInvalidMoneyValue
		}
		if d.IsNegative() {
			return nil, employeeerrors.ErrNegativeCompensation
		}
		parsed[i] = d
	}
	return parsed, nil
}
