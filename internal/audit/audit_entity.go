package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action types
const (
	ActionCreate   = "CREATE"
	ActionUpdate   = "UPDATE"
	ActionDelete   = "DELETE"
	ActionApprove  = "APPROVE"
	ActionTimeIn   = "TIME_IN"
	ActionTimeOut  = "TIME_OUT"
	ActionGenerate = "GENERATE"
	ActionShutdown = "SERVER_SHUTDOWN"
)

// Entity types
const (
	EntityEmployee   = "EMPLOYEE"
	EntityAttendance = "ATTENDANCE"
	EntityPayroll    = "PAYROLL"
	EntitySystem     = "SYSTEM"
)

type AuditLog struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ActorID     *uuid.UUID `gorm:"type:uuid;index"`
	Action      string     `gorm:"type:varchar(30);not null;index"`
	EntityType  string     `gorm:"type:varchar(30);not null;index"`
	EntityID    *string    `gorm:"type:varchar(64)"`
	Description string     `gorm:"type:text"`
	OldValues   []byte     `gorm:"type:jsonb"`
	NewValues   []byte     `gorm:"type:jsonb"`
	CreatedAt   time.Time  `gorm:"index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
