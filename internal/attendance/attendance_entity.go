package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusLeave   = "LEAVE"
	StatusHalfDay = "HALF_DAY"
)

// Attendance is one employee-day. The unique index enforces the
// zero-or-one-record-per-(employee,date) invariant at the storage boundary.
type Attendance struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate time.Time  `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date"`
	TimeIn         *time.Time `gorm:"column:time_in;type:timestamptz"`
	TimeOut        *time.Time `gorm:"column:time_out;type:timestamptz"`

	Status           string  `gorm:"column:status;type:varchar(20);not null;default:PRESENT;index"`
	LateMinutes      int     `gorm:"column:late_minutes;not null;default:0"`
	HoursWorked      float64 `gorm:"column:hours_worked;type:numeric(5,2);not null;default:0"`
	OvertimeHours    float64 `gorm:"column:overtime_hours;type:numeric(5,2);not null;default:0"`
	UndertimeMinutes int     `gorm:"column:undertime_minutes;not null;default:0"`
	Remarks          *string `gorm:"column:remarks;type:text"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Attendance) TableName() string {
	return "attendances"
}
