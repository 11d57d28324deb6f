package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Entry is one traceability record for a state-changing operation.
// Before/After carry the mutated fields, not whole rows.
type Entry struct {
	ActorID     string
	Action      string
	EntityType  string
	EntityID    string
	Description string
	Before      map[string]any
	After       map[string]any
}

// Recorder receives notifications after successful state changes. It is a
// best-effort side channel: implementations must swallow their own failures
// and must never roll back or fail the operation being recorded.
//
//go:generate mockgen -source=audit_recorder.go -destination=mock/audit_recorder_mock.go -package=mock
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

type recorder struct {
	repo   Repository
	logger *zap.Logger
}

func NewRecorder(repo Repository, logger ...*zap.Logger) Recorder {
	l := zap.L().Named("audit.recorder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.recorder")
	}
	return &recorder{repo: repo, logger: l}
}

func (r *recorder) Record(ctx context.Context, entry Entry) {
	row := &AuditLog{
		Action:      entry.Action,
		EntityType:  entry.EntityType,
		Description: entry.Description,
	}

	if actorID, err := uuid.Parse(entry.ActorID); err == nil {
		row.ActorID = &actorID
	}
	if entry.EntityID != "" {
		v := entry.EntityID
		row.EntityID = &v
	}
	if entry.Before != nil {
		if payload, err := json.Marshal(entry.Before); err == nil {
			row.OldValues = payload
		}
	}
	if entry.After != nil {
		if payload, err := json.Marshal(entry.After); err == nil {
			row.NewValues = payload
		}
	}

	if err := r.repo.Create(ctx, row); err != nil {
		r.logger.Warn("audit record dropped",
			zap.String("action", entry.Action),
			zap.String("entity_type", entry.EntityType),
			zap.String("entity_id", entry.EntityID),
			zap.Error(err),
		)
	}
}

// NopRecorder discards every entry. Used in tests and in wiring paths where
// the audit store is not configured.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Entry) {}

// LogRecorder writes entries to the process log instead of the audit store.
// Used at bootstrap, before or after the database is available.
type LogRecorder struct{}

func NewLogRecorder() LogRecorder {
	return LogRecorder{}
}

func (LogRecorder) Record(_ context.Context, entry Entry) {
	zap.L().Named("audit").Info("audit event",
		zap.String("action", entry.Action),
		zap.String("entity_type", entry.EntityType),
		zap.String("description", entry.Description),
		zap.Any("after", entry.After),
	)
}
