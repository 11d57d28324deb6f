package employee

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"swiftpay/internal/audit"
	employeeerrors "swiftpay/internal/employee/errors"
)

type fakeRepo struct {
	withTxFn        func(tx *sql.Tx) Repository
	createFn        func(ctx context.Context, e *Employee) error
	updateFn        func(ctx context.Context, e *Employee) error
	findByIDFn      func(ctx context.Context, id string) (*Employee, error)
	findAllFn       func(ctx context.Context, status string) ([]Employee, error)
	findAllActiveFn func(ctx context.Context) ([]Employee, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}
func (f *fakeRepo) Create(ctx context.Context, e *Employee) error { return f.createFn(ctx, e) }
func (f *fakeRepo) Update(ctx context.Context, e *Employee) error { return f.updateFn(ctx, e) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindAll(ctx context.Context, status string) ([]Employee, error) {
	return f.findAllFn(ctx, status)
}
func (f *fakeRepo) FindAllActive(ctx context.Context) ([]Employee, error) {
	return f.findAllActiveFn(ctx)
}

type capturingRecorder struct {
	entries []audit.Entry
}

func (r *capturingRecorder) Record(_ context.Context, entry audit.Entry) {
	r.entries = append(r.entries, entry)
}

func validCreateRequest() CreateEmployeeRequest {
	return CreateEmployeeRequest{
		EmployeeNumber: "EMP-0001",
		FullName:       "Maria Santos",
		RatePerHour:    "100.00",
		DailyRate:      "800.00",
		Allowance:      "500.00",
		SSSDeduction:   "100.00",
		TaxDeduction:   "200.00",
		HireDate:       "2025-06-01",
	}
}

func TestService_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved Employee
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, e *Employee) error { saved = *e; return nil }

	recorder := &capturingRecorder{}
	svc := NewService(db, repo, recorder)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), "operator", validCreateRequest())
	assert.NoError(t, err)
	assert.Equal(t, StatusActive, resp.Status)
	assert.Equal(t, "100.00", resp.RatePerHour)
	assert.Equal(t, "0.00", resp.PhilhealthDeduction)
	assert.NotNil(t, saved.HireDate)

	assert.Len(t, recorder.entries, 1)
	assert.Equal(t, audit.ActionCreate, recorder.entries[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_RejectsBadMoney(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, nil)

	req := validCreateRequest()
	req.DailyRate = "eight hundred"
	_, err := svc.Create(context.Background(), "operator", req)
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidMoneyValue)

	req = validCreateRequest()
	req.RatePerHour = "-100"
	_, err = svc.Create(context.Background(), "operator", req)
	assert.ErrorIs(t, err, employeeerrors.ErrNegativeCompensation)

	req = validCreateRequest()
	req.HireDate = "01/06/2025"
	_, err = svc.Create(context.Background(), "operator", req)
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidDateFormat)
}

func TestService_Deactivate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	id := uuid.New()
	stored := Employee{ID: id, FullName: "Maria Santos", Status: StatusActive}

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, lookupID string) (*Employee, error) {
		row := stored
		return &row, nil
	}
	repo.updateFn = func(ctx context.Context, e *Employee) error {
		stored = *e
		return nil
	}

	svc := NewService(db, repo, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	err := svc.Deactivate(context.Background(), "operator", id.String())
	assert.NoError(t, err)
	assert.Equal(t, StatusInactive, stored.Status)

	// Already inactive rows are rejected, not re-written.
	mock.ExpectBegin()
	mock.ExpectRollback()
	err = svc.Deactivate(context.Background(), "operator", id.String())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeInactive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetAll_StatusFilter(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findAllFn = func(ctx context.Context, status string) ([]Employee, error) {
		assert.Equal(t, StatusInactive, status)
		return []Employee{{ID: uuid.New(), Status: StatusInactive}}, nil
	}

	svc := NewService(db, repo, nil)

	rows, err := svc.GetAll(context.Background(), StatusInactive)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = svc.GetAll(context.Background(), "RETIRED")
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidStatusFilter)
}
