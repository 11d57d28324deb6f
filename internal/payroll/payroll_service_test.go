package payroll

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"swiftpay/internal/attendance"
	attendanceerrors "swiftpay/internal/attendance/errors"
	"swiftpay/internal/audit"
	"swiftpay/internal/employee"
	"swiftpay/internal/messaging/kafka"
	payrollerrors "swiftpay/internal/payroll/errors"
	"swiftpay/internal/shared/apperror"
)

type fakeRepo struct {
	withTxFn       func(tx *sql.Tx) Repository
	createFn       func(ctx context.Context, run *PayrollRun, items []PayrollLineItem) error
	updateStatusFn func(ctx context.Context, run *PayrollRun) error
	findByIDFn     func(ctx context.Context, id string) (*PayrollRun, error)
	findItemsFn    func(ctx context.Context, runID string) ([]PayrollLineItem, error)
	findItemFn     func(ctx context.Context, runID, employeeID string) (*PayrollLineItem, error)
	findAllFn      func(ctx context.Context, status string) ([]PayrollRun, error)
	deleteFn       func(ctx context.Context, id string) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}
func (f *fakeRepo) Create(ctx context.Context, run *PayrollRun, items []PayrollLineItem) error {
	return f.createFn(ctx, run, items)
}
func (f *fakeRepo) UpdateStatus(ctx context.Context, run *PayrollRun) error {
	return f.updateStatusFn(ctx, run)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*PayrollRun, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindLineItems(ctx context.Context, runID string) ([]PayrollLineItem, error) {
	return f.findItemsFn(ctx, runID)
}
func (f *fakeRepo) FindLineItem(ctx context.Context, runID, employeeID string) (*PayrollLineItem, error) {
	return f.findItemFn(ctx, runID, employeeID)
}
func (f *fakeRepo) FindAll(ctx context.Context, status string) ([]PayrollRun, error) {
	return f.findAllFn(ctx, status)
}
func (f *fakeRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error           { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, reason string) error { return nil }

type fakeDirectory struct {
	active []employee.Employee
	err    error
}

func (f *fakeDirectory) GetActiveEmployees(ctx context.Context) ([]employee.Employee, error) {
	return f.active, f.err
}
func (f *fakeDirectory) Get(ctx context.Context, id string) (*employee.Employee, error) {
	for i := range f.active {
		if f.active[i].ID.String() == id {
			return &f.active[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeAttendanceSource struct {
	summaries map[string]attendance.PeriodSummary
	errs      map[string]error
}

func (f *fakeAttendanceSource) Summary(ctx context.Context, employeeID string, start, end time.Time) (attendance.PeriodSummary, error) {
	if err, ok := f.errs[employeeID]; ok {
		return attendance.PeriodSummary{}, err
	}
	return f.summaries[employeeID], nil
}

type capturingRecorder struct {
	entries []audit.Entry
}

func (r *capturingRecorder) Record(_ context.Context, entry audit.Entry) {
	r.entries = append(r.entries, entry)
}

func testEmployee(rate, daily string) employee.Employee {
	return employee.Employee{
		ID:                  uuid.New(),
		RatePerHour:         dec(rate),
		DailyRate:           dec(daily),
		Allowance:           dec("500"),
		SSSDeduction:        dec("100"),
		PhilhealthDeduction: dec("50"),
		PagibigDeduction:    dec("50"),
		TaxDeduction:        dec("200"),
		Status:              employee.StatusActive,
	}
}

func TestService_Generate_TotalsMatchLineItems(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	empA := testEmployee("100", "800")
	empB := testEmployee("150", "1200")
	empC := testEmployee("90", "720")

	source := &fakeAttendanceSource{
		summaries: map[string]attendance.PeriodSummary{
			empA.ID.String(): {DaysWorked: 10, HoursWorked: 80, OvertimeHours: 4, LateMinutes: 30},
			empB.ID.String(): {DaysWorked: 9, HoursWorked: 72, Absences: 1},
			// empC has no attendance at all; still gets a line item.
		},
	}

	var createdRun *PayrollRun
	var createdItems []PayrollLineItem
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, run *PayrollRun, items []PayrollLineItem) error {
		createdRun = run
		createdItems = items
		return nil
	}

	outbox := &fakeOutbox{}
	recorder := &capturingRecorder{}
	svc := NewService(db, repo, outbox, &fakeDirectory{active: []employee.Employee{empA, empB, empC}}, source, nil, recorder)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Generate(context.Background(), "operator", GeneratePayrollRequest{
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-15",
		Label:       "March 1-15",
	})
	assert.NoError(t, err)
	assert.Empty(t, resp.Failures)
	assert.Equal(t, StatusDraft, createdRun.Status)
	assert.Equal(t, 3, createdRun.TotalEmployees)
	assert.Len(t, createdItems, 3)

	netSum := decimal.Zero
	grossSum := decimal.Zero
	for _, item := range createdItems {
		assert.Equal(t, createdRun.ID, item.PayrollRunID)
		netSum = netSum.Add(item.NetPay)
		grossSum = grossSum.Add(item.GrossPay)
	}
	assert.True(t, createdRun.TotalNet.Equal(netSum))
	assert.True(t, createdRun.TotalGross.Equal(grossSum))

	// Line items follow roster order.
	assert.Equal(t, empA.ID, createdItems[0].EmployeeID)
	assert.Equal(t, empB.ID, createdItems[1].EmployeeID)
	assert.Equal(t, empC.ID, createdItems[2].EmployeeID)

	assert.Len(t, outbox.created, 1)
	assert.Equal(t, "payroll_run", outbox.created[0].AggregateType)
	assert.Equal(t, createdRun.ID.String(), outbox.created[0].AggregateID)

	assert.Len(t, recorder.entries, 1)
	assert.Equal(t, audit.ActionGenerate, recorder.entries[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Generate_EmptyRoster(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var createdRun *PayrollRun
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, run *PayrollRun, items []PayrollLineItem) error {
		createdRun = run
		assert.Empty(t, items)
		return nil
	}

	svc := NewService(db, repo, &fakeOutbox{}, &fakeDirectory{}, &fakeAttendanceSource{}, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Generate(context.Background(), "operator", GeneratePayrollRequest{
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-15",
		Label:       "Empty",
	})
	assert.NoError(t, err)
	assert.Equal(t, 0, createdRun.TotalEmployees)
	assert.Equal(t, "0.00", createdRun.TotalNet.StringFixed(2))
	assert.Equal(t, 0, resp.Run.TotalEmployees)
}

func TestService_Generate_SkipsValidationFailures(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	empA := testEmployee("100", "800")
	empB := testEmployee("150", "1200")

	source := &fakeAttendanceSource{
		summaries: map[string]attendance.PeriodSummary{
			empA.ID.String(): {DaysWorked: 10, HoursWorked: 80},
		},
		errs: map[string]error{
			empB.ID.String(): attendanceerrors.ErrInvalidEmployeeID,
		},
	}

	var createdItems []PayrollLineItem
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, run *PayrollRun, items []PayrollLineItem) error {
		createdItems = items
		return nil
	}

	svc := NewService(db, repo, &fakeOutbox{}, &fakeDirectory{active: []employee.Employee{empA, empB}}, source, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Generate(context.Background(), "operator", GeneratePayrollRequest{
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-15",
		Label:       "Partial",
	})
	assert.NoError(t, err)
	assert.Len(t, createdItems, 1)
	assert.Equal(t, empA.ID, createdItems[0].EmployeeID)
	assert.Len(t, resp.Failures, 1)
	assert.Equal(t, empB.ID.String(), resp.Failures[0].EmployeeID)
}

func TestService_Generate_PersistenceFailureAborts(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	empA := testEmployee("100", "800")

	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, run *PayrollRun, items []PayrollLineItem) error {
		return errors.New("connection reset")
	}

	outbox := &fakeOutbox{}
	svc := NewService(db, repo, outbox, &fakeDirectory{active: []employee.Employee{empA}}, &fakeAttendanceSource{}, nil, nil)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Generate(context.Background(), "operator", GeneratePayrollRequest{
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-15",
		Label:       "Doomed",
	})
	assert.Error(t, err)

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodePersistenceError, appErr.Code)
	assert.Empty(t, outbox.created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Generate_InvalidPeriod(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, &fakeOutbox{}, &fakeDirectory{}, &fakeAttendanceSource{}, nil, nil)

	_, err := svc.Generate(context.Background(), "operator", GeneratePayrollRequest{
		PeriodStart: "2026-03-15",
		PeriodEnd:   "2026-03-01",
		Label:       "Backwards",
	})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)
}

func TestService_UpdateStatus_Transitions(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	runID := uuid.New()
	stored := &PayrollRun{ID: runID, Label: "March", Status: StatusDraft}

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*PayrollRun, error) {
		row := *stored
		return &row, nil
	}
	repo.updateStatusFn = func(ctx context.Context, run *PayrollRun) error {
		stored.Status = run.Status
		return nil
	}

	recorder := &capturingRecorder{}
	svc := NewService(db, repo, &fakeOutbox{}, &fakeDirectory{}, &fakeAttendanceSource{}, nil, recorder)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.UpdateStatus(ctx, "operator", runID.String(), StatusProcessed)
	assert.NoError(t, err)
	assert.Equal(t, StatusProcessed, resp.Status)

	// Draft to Paid skips the flow and is rejected.
	stored.Status = StatusDraft
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.UpdateStatus(ctx, "operator", runID.String(), StatusPaid)
	assert.ErrorIs(t, err, payrollerrors.ErrTransitionNotAllowed)

	stored.Status = StatusApproved
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err = svc.UpdateStatus(ctx, "operator", runID.String(), StatusPaid)
	assert.NoError(t, err)
	assert.Equal(t, StatusPaid, resp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Delete_DraftOnly(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	runID := uuid.New()
	status := StatusProcessed

	deleted := false
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*PayrollRun, error) {
		return &PayrollRun{ID: runID, Status: status}, nil
	}
	repo.deleteFn = func(ctx context.Context, id string) error {
		deleted = true
		return nil
	}

	svc := NewService(db, repo, &fakeOutbox{}, &fakeDirectory{}, &fakeAttendanceSource{}, nil, nil)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectRollback()
	err := svc.Delete(ctx, "operator", runID.String())
	assert.ErrorIs(t, err, payrollerrors.ErrRunNotDeletable)
	assert.False(t, deleted)

	status = StatusDraft
	mock.ExpectBegin()
	mock.ExpectCommit()
	err = svc.Delete(ctx, "operator", runID.String())
	assert.NoError(t, err)
	assert.True(t, deleted)
}

func TestService_Summary(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findAllFn = func(ctx context.Context, status string) ([]PayrollRun, error) {
		return []PayrollRun{
			{Status: StatusDraft, TotalGross: dec("1000"), TotalNet: dec("900")},
			{Status: StatusPaid, TotalGross: dec("2000"), TotalNet: dec("1800")},
			{Status: StatusPaid, TotalGross: dec("500"), TotalNet: dec("450")},
		}, nil
	}

	svc := NewService(db, repo, &fakeOutbox{}, &fakeDirectory{}, &fakeAttendanceSource{}, nil, nil)

	resp, err := svc.Summary(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 3, resp.TotalRuns)
	assert.Equal(t, 2, resp.ByStatus[StatusPaid])
	assert.Equal(t, "3500.00", resp.TotalGross)
	assert.Equal(t, "3150.00", resp.TotalNet)
}
