package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type Employee struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNumber string    `gorm:"column:employee_number;type:varchar(30);not null;uniqueIndex:uq_employee_number"`
	FullName       string    `gorm:"column:full_name;type:varchar(150);not null"`
	Position       *string   `gorm:"column:position;type:varchar(100)"`
	Department     *string   `gorm:"column:department;type:varchar(100)"`

	// Compensation settings read by the payroll calculator.
	RatePerHour         decimal.Decimal `gorm:"column:rate_per_hour;type:numeric(12,2);not null;default:0"`
	DailyRate           decimal.Decimal `gorm:"column:daily_rate;type:numeric(12,2);not null;default:0"`
	Allowance           decimal.Decimal `gorm:"column:allowance;type:numeric(12,2);not null;default:0"`
	SSSDeduction        decimal.Decimal `gorm:"column:sss_deduction;type:numeric(12,2);not null;default:0"`
	PhilhealthDeduction decimal.Decimal `gorm:"column:philhealth_deduction;type:numeric(12,2);not null;default:0"`
	PagibigDeduction    decimal.Decimal `gorm:"column:pagibig_deduction;type:numeric(12,2);not null;default:0"`
	TaxDeduction        decimal.Decimal `gorm:"column:tax_deduction;type:numeric(12,2);not null;default:0"`

	Status    string         `gorm:"column:status;type:varchar(20);not null;default:ACTIVE;index"`
	HireDate  *time.Time     `gorm:"column:hire_date;type:date"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Employee) TableName() string {
	return "employees"
}
