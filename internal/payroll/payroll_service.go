package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"swiftpay/internal/attendance"
	"swiftpay/internal/audit"
	"swiftpay/internal/employee"
	"swiftpay/internal/events"
	"swiftpay/internal/messaging/kafka"
	payrollerrors "swiftpay/internal/payroll/errors"
	"swiftpay/internal/shared/apperror"
	"swiftpay/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// EmployeeDirectory is the read side of the employee roster the generator
// iterates over.
type EmployeeDirectory interface {
	GetActiveEmployees(ctx context.Context) ([]employee.Employee, error)
	Get(ctx context.Context, id string) (*employee.Employee, error)
}

// AttendanceSource yields one employee's period summary.
type AttendanceSource interface {
	Summary(ctx context.Context, employeeID string, start, end time.Time) (attendance.PeriodSummary, error)
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, actorID string, req GeneratePayrollRequest) (GeneratePayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollRunResponse, error)
	GetLineItems(ctx context.Context, runID string) ([]LineItemResponse, error)
	Payslip(ctx context.Context, runID, employeeID string) (PayslipResponse, error)
	List(ctx context.Context, status string) ([]PayrollRunResponse, error)
	UpdateStatus(ctx context.Context, actorID, id, status string) (PayrollRunResponse, error)
	Delete(ctx context.Context, actorID, id string) error
	Summary(ctx context.Context) (RunsSummaryResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	outbox      kafka.OutboxRepository
	directory   EmployeeDirectory
	attendances AttendanceSource
	transitions TransitionPolicy
	recorder    audit.Recorder
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	directory EmployeeDirectory,
	attendances AttendanceSource,
	transitions TransitionPolicy,
	recorder audit.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if transitions == nil {
		transitions = DefaultTransitionPolicy()
	}
	if recorder == nil {
		recorder = audit.NopRecorder{}
	}
	return &service{
		db:          db,
		repo:        repo,
		outbox:      outbox,
		directory:   directory,
		attendances: attendances,
		transitions: transitions,
		recorder:    recorder,
		logger:      l,
	}
}

func (s *service) Generate(ctx context.Context, actorID string, req GeneratePayrollRequest) (GeneratePayrollResponse, error) {
	start, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		return GeneratePayrollResponse{}, payrollerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		return GeneratePayrollResponse{}, payrollerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return GeneratePayrollResponse{}, payrollerrors.ErrInvalidPeriod
	}

	roster, err := s.directory.GetActiveEmployees(ctx)
	if err != nil {
		return GeneratePayrollResponse{}, mapRepositoryError(err)
	}

	items, failures, err := s.computeLineItems(ctx, roster, start, end)
	if err != nil {
		return GeneratePayrollResponse{}, err
	}

	now := time.Now().UTC()
	run := &PayrollRun{
		ID:          uuid.New(),
		PeriodStart: start,
		PeriodEnd:   end,
		Label:       req.Label,
		Status:      StatusDraft,
		ProcessedBy: &actorID,
		ProcessedAt: &now,
	}
	run.TotalEmployees = len(items)
	for i := range items {
		items[i].PayrollRunID = run.ID
		run.TotalGross = run.TotalGross.Add(items[i].GrossPay)
		run.TotalDeductions = run.TotalDeductions.Add(items[i].TotalDeductions)
		run.TotalNet = run.TotalNet.Add(items[i].NetPay)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return GeneratePayrollResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, run, items); err != nil {
		return GeneratePayrollResponse{}, mapRepositoryError(err)
	}

	payload, err := json.Marshal(events.PayrollRunGeneratedEvent{
		EventType:      "payroll.run.generated",
		PayrollRunID:   run.ID.String(),
		Label:          run.Label,
		PeriodStart:    run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:      run.PeriodEnd.Format("2006-01-02"),
		TotalEmployees: run.TotalEmployees,
		TotalNet:       run.TotalNet.StringFixed(2),
		ProcessedBy:    actorID,
		OccurredAt:     now,
	})
	if err != nil {
		return GeneratePayrollResponse{}, mapRepositoryError(err)
	}

	outboxEvent := kafka.NewEvent(
		contextutil.GetRequestID(ctx),
		"payroll_run",
		run.ID.String(),
		"payroll.run.generated",
		events.PayrollRunGeneratedTopic,
		payload,
	)
	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		return GeneratePayrollResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return GeneratePayrollResponse{}, mapRepositoryError(err)
	}

	s.recorder.Record(ctx, audit.Entry{
		ActorID:     actorID,
		Action:      audit.ActionGenerate,
		EntityType:  audit.EntityPayroll,
		EntityID:    run.ID.String(),
		Description: fmt.Sprintf("Generated payroll run %q for %s to %s (%d employees)", run.Label, req.PeriodStart, req.PeriodEnd, run.TotalEmployees),
		After: map[string]any{
			"total_employees": run.TotalEmployees,
			"total_net":       run.TotalNet.StringFixed(2),
			"skipped":         len(failures),
		},
	})

	return GeneratePayrollResponse{
		Run:      mapRunToResponse(*run),
		Failures: failures,
	}, nil
}

// computeLineItems fans the calculator out across the roster. A validation
// or not-found failure for one employee skips that employee and is reported
// back; any other failure aborts the batch.
func (s *service) computeLineItems(ctx context.Context, roster []employee.Employee, start, end time.Time) ([]PayrollLineItem, []GenerationFailure, error) {
	results := make([]*PayrollLineItem, len(roster))

	var mu sync.Mutex
	var failures []GenerationFailure

	g, gctx := errgroup.WithContext(ctx)
	for i := range roster {
		i := i
		g.Go(func() error {
			emp := roster[i]

			sum, err := s.attendances.Summary(gctx, emp.ID.String(), start, end)
			if err != nil {
				if isSkippable(err) {
					mu.Lock()
					failures = append(failures, GenerationFailure{
						EmployeeID: emp.ID.String(),
						Reason:     err.Error(),
					})
					mu.Unlock()
					return nil
				}
				return err
			}

			figures := Calculate(CompensationFromEmployee(emp), sum)
			results[i] = &PayrollLineItem{
				ID:         uuid.New(),
				EmployeeID: emp.ID,

				DaysWorked:    figures.DaysWorked,
				HoursWorked:   figures.HoursWorked,
				OvertimeHours: figures.OvertimeHours,
				LateMinutes:   figures.LateMinutes,
				Absences:      figures.Absences,

				BasicPay:    figures.BasicPay,
				OvertimePay: figures.OvertimePay,
				Allowance:   figures.Allowance,
				GrossPay:    figures.GrossPay,

				SSSDeduction:        figures.SSSDeduction,
				PhilhealthDeduction: figures.PhilhealthDeduction,
				PagibigDeduction:    figures.PagibigDeduction,
				TaxDeduction:        figures.TaxDeduction,
				LateDeduction:       figures.LateDeduction,
				AbsenceDeduction:    figures.AbsenceDeduction,
				TotalDeductions:     figures.TotalDeductions,

				NetPay: figures.NetPay,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, mapRepositoryError(err)
	}

	// Roster order is preserved so identical inputs always produce the same
	// run regardless of goroutine scheduling.
	items := make([]PayrollLineItem, 0, len(roster))
	for _, item := range results {
		if item != nil {
			items = append(items, *item)
		}
	}
	return items, failures, nil
}

func isSkippable(err error) bool {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == apperror.CodeInvalidInput || appErr.Code == apperror.CodeNotFound
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollRunResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidRunID
	}

	run, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}
	return mapRunToResponse(*run), nil
}

func (s *service) GetLineItems(ctx context.Context, runID string) ([]LineItemResponse, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return nil, payrollerrors.ErrInvalidRunID
	}

	if _, err := s.repo.FindByID(ctx, runID); err != nil {
		return nil, mapRepositoryError(err)
	}

	items, err := s.repo.FindLineItems(ctx, runID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]LineItemResponse, len(items))
	for i, item := range items {
		resp[i] = mapLineItemToResponse(item)
	}
	return resp, nil
}

func (s *service) Payslip(ctx context.Context, runID, employeeID string) (PayslipResponse, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return PayslipResponse{}, payrollerrors.ErrInvalidRunID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return PayslipResponse{}, payrollerrors.ErrInvalidEmployeeID
	}

	run, err := s.repo.FindByID(ctx, runID)
	if err != nil {
		return PayslipResponse{}, mapRepositoryError(err)
	}

	item, err := s.repo.FindLineItem(ctx, runID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, payrollerrors.ErrLineItemNotFound
		}
		return PayslipResponse{}, mapRepositoryError(err)
	}

	var emp *EmployeePayslipInfo
	if row, err := s.directory.Get(ctx, employeeID); err == nil && row != nil {
		emp = &EmployeePayslipInfo{
			EmployeeNumber: row.EmployeeNumber,
			FullName:       row.FullName,
			Position:       row.Position,
		}
	}

	return PayslipResponse{
		Run:      mapRunToResponse(*run),
		LineItem: mapLineItemToResponse(*item),
		Employee: emp,
	}, nil
}

func (s *service) List(ctx context.Context, status string) ([]PayrollRunResponse, error) {
	if status != "" && !validStatus(status) {
		return nil, payrollerrors.ErrInvalidStatus
	}

	runs, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]PayrollRunResponse, len(runs))
	for i, run := range runs {
		resp[i] = mapRunToResponse(run)
	}
	return resp, nil
}

func (s *service) UpdateStatus(ctx context.Context, actorID, id, status string) (PayrollRunResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidRunID
	}
	if !validStatus(status) {
		return PayrollRunResponse{}, payrollerrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindByID(ctx, id)
	if err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}

	if !s.transitions.Allows(run.Status, status) {
		return PayrollRunResponse{}, payrollerrors.ErrTransitionNotAllowed
	}

	previous := run.Status
	now := time.Now().UTC()
	run.Status = status
	run.ProcessedBy = &actorID
	run.ProcessedAt = &now

	if err := qtx.UpdateStatus(ctx, run); err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return PayrollRunResponse{}, mapRepositoryError(err)
	}

	action := audit.ActionUpdate
	if status == StatusApproved {
		action = audit.ActionApprove
	}
	s.recorder.Record(ctx, audit.Entry{
		ActorID:     actorID,
		Action:      action,
		EntityType:  audit.EntityPayroll,
		EntityID:    run.ID.String(),
		Description: fmt.Sprintf("Payroll run %q moved from %s to %s", run.Label, previous, status),
		Before:      map[string]any{"status": previous},
		After:       map[string]any{"status": status},
	})

	return mapRunToResponse(*run), nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return payrollerrors.ErrInvalidRunID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if run.Status != StatusDraft {
		return payrollerrors.ErrRunNotDeletable
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
		EntityType:  audit.EntityPayroll,
		EntityID:    id,
		Description: fmt.Sprintf("Deleted draft payroll run %q", run.Label),
		Before:      map[string]any{"status": run.Status, "label": run.Label},
	})

	return nil
}

// Summary aggregates header figures across all runs.
func (s *service) Summary(ctx context.Context) (RunsSummaryResponse, error) {
	runs, err := s.repo.FindAll(ctx, "")
	if err != nil {
		return RunsSummaryResponse{}, mapRepositoryError(err)
	}

	resp := RunsSummaryResponse{
		ByStatus: map[string]int{},
	}
	totalNet := decimal.Zero
	totalGross := decimal.Zero
	for _, run := range runs {
		resp.TotalRuns++
		resp.ByStatus[run.Status]++
		totalNet = totalNet.Add(run.TotalNet)
		totalGross = totalGross.Add(run.TotalGross)
	}
	resp.TotalGross = totalGross.StringFixed(2)
	resp.TotalNet = totalNet.StringFixed(2)
	return resp, nil
}
