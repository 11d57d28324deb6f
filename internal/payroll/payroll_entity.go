package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "DRAFT"
	StatusProcessed = "PROCESSED"
	StatusApproved  = "APPROVED"
	StatusPaid      = "PAID"
)

// PayrollRun is the header of one generation batch. Runs are immutable after
// creation except for status; regeneration always produces a new run.
type PayrollRun struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	PeriodStart time.Time `gorm:"column:period_start;type:date;not null"`
	PeriodEnd   time.Time `gorm:"column:period_end;type:date;not null"`
	Label       string    `gorm:"column:label;type:varchar(100);not null"`
	Status      string    `gorm:"column:status;type:varchar(20);not null;default:DRAFT;index"`

	TotalEmployees  int             `gorm:"column:total_employees;not null;default:0"`
	TotalGross      decimal.Decimal `gorm:"column:total_gross;type:numeric(14,2);not null;default:0"`
	TotalDeductions decimal.Decimal `gorm:"column:total_deductions;type:numeric(14,2);not null;default:0"`
	TotalNet        decimal.Decimal `gorm:"column:total_net;type:numeric(14,2);not null;default:0"`

	ProcessedBy *string    `gorm:"column:processed_by;type:varchar(100)"`
	ProcessedAt *time.Time `gorm:"column:processed_at;type:timestamptz"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (PayrollRun) TableName() string {
	return "payroll_runs"
}

type PayrollLineItem struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	PayrollRunID uuid.UUID `gorm:"column:payroll_run_id;type:uuid;not null;uniqueIndex:uq_line_item_run_employee"`
	EmployeeID   uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_line_item_run_employee"`

	DaysWorked    float64 `gorm:"column:days_worked;type:numeric(5,2);not null;default:0"`
	HoursWorked   float64 `gorm:"column:hours_worked;type:numeric(7,2);not null;default:0"`
	OvertimeHours float64 `gorm:"column:overtime_hours;type:numeric(7,2);not null;default:0"`
	LateMinutes   int     `gorm:"column:late_minutes;not null;default:0"`
	Absences      int     `gorm:"column:absences;not null;default:0"`

	BasicPay    decimal.Decimal `gorm:"column:basic_pay;type:numeric(12,2);not null;default:0"`
	OvertimePay decimal.Decimal `gorm:"column:overtime_pay;type:numeric(12,2);not null;default:0"`
	Allowance   decimal.Decimal `gorm:"column:allowance;type:numeric(12,2);not null;default:0"`
	GrossPay    decimal.Decimal `gorm:"column:gross_pay;type:numeric(12,2);not null;default:0"`

	SSSDeduction        decimal.Decimal `gorm:"column:sss_deduction;type:numeric(12,2);not null;default:0"`
	PhilhealthDeduction decimal.Decimal `gorm:"column:philhealth_deduction;type:numeric(12,2);not null;default:0"`
	PagibigDeduction    decimal.Decimal `gorm:"column:pagibig_deduction;type:numeric(12,2);not null;default:0"`
	TaxDeduction        decimal.Decimal `gorm:"column:tax_deduction;type:numeric(12,2);not null;default:0"`
	LateDeduction       decimal.Decimal `gorm:"column:late_deduction;type:numeric(12,2);not null;default:0"`
	AbsenceDeduction    decimal.Decimal `gorm:"column:absence_deduction;type:numeric(12,2);not null;default:0"`
	TotalDeductions     decimal.Decimal `gorm:"column:total_deductions;type:numeric(12,2);not null;default:0"`

	// NetPay may be negative when deductions exceed gross. Stored as-is.
	NetPay decimal.Decimal `gorm:"column:net_pay;type:numeric(12,2);not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (PayrollLineItem) TableName() string {
	return "payroll_line_items"
}
