package payroll

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	// Create persists the header and every line item together. Callers run
	// it inside a transaction via WithTx so the batch commits or not at all.
	Create(ctx context.Context, run *PayrollRun, items []PayrollLineItem) error
	UpdateStatus(ctx context.Context, run *PayrollRun) error
	FindByID(ctx context.Context, id string) (*PayrollRun, error)
	FindLineItems(ctx context.Context, runID string) ([]PayrollLineItem, error)
	FindLineItem(ctx context.Context, runID, employeeID string) (*PayrollLineItem, error)
	FindAll(ctx context.Context, status string) ([]PayrollRun, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, run *PayrollRun, items []PayrollLineItem) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) UpdateStatus(ctx context.Context, run *PayrollRun) error {
	return r.db.WithContext(ctx).
		Model(&PayrollRun{}).
		Where("id = ?", run.ID).
		Updates(map[string]any{
			"status":       run.Status,
			"processed_by": run.ProcessedBy,
			"processed_at": run.ProcessedAt,
		}).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&run).Error
	return &run, err
}

func (r *repository) FindLineItems(ctx context.Context, runID string) ([]PayrollLineItem, error) {
	var items []PayrollLineItem
	err := r.db.WithContext(ctx).
		Where("payroll_run_id = ?", runID).
		Order("employee_id ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindLineItem(ctx context.Context, runID, employeeID string) (*PayrollLineItem, error) {
	var item PayrollLineItem
	err := r.db.WithContext(ctx).
		Where("payroll_run_id = ?", runID).
		Where("employee_id = ?", employeeID).
		First(&item).Error
	return &item, err
}

func (r *repository) FindAll(ctx context.Context, status string) ([]PayrollRun, error) {
	q := r.db.WithContext(ctx).Model(&PayrollRun{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var runs []PayrollRun
	err := q.Order("period_start DESC").Find(&runs).Error
	return runs, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).
		Where("payroll_run_id = ?", id).
		Delete(&PayrollLineItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&PayrollRun{}).Error
}
