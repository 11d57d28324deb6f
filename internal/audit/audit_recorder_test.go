package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	created []*AuditLog
	err     error
}

func (f *fakeRepo) Create(_ context.Context, entry *AuditLog) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, entry)
	return nil
}

func (f *fakeRepo) FindAll(context.Context, ListFilter) ([]AuditLog, error) {
	return nil, nil
}

func TestRecorder_Record(t *testing.T) {
	repo := &fakeRepo{}
	rec := NewRecorder(repo)

	actorID := uuid.New()
	rec.Record(context.Background(), Entry{
		ActorID:     actorID.String(),
		Action:      ActionTimeIn,
		EntityType:  EntityAttendance,
		EntityID:    "rec-1",
		Description: "Time-in recorded",
		After:       map[string]any{"late_minutes": 15},
	})

	assert.Len(t, repo.created, 1)
	row := repo.created[0]
	assert.Equal(t, ActionTimeIn, row.Action)
	assert.Equal(t, EntityAttendance, row.EntityType)
	assert.Equal(t, actorID, *row.ActorID)
	assert.Equal(t, "rec-1", *row.EntityID)
	assert.NotEmpty(t, row.NewValues)
}

func TestRecorder_NonUUIDActorKept(t *testing.T) {
	repo := &fakeRepo{}
	rec := NewRecorder(repo)

	rec.Record(context.Background(), Entry{
		ActorID:    "system",
		Action:     ActionShutdown,
		EntityType: EntitySystem,
	})

	assert.Len(t, repo.created, 1)
	assert.Nil(t, repo.created[0].ActorID)
}

func TestRecorder_SoftFailsOnStoreError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection refused")}
	rec := NewRecorder(repo)

	assert.NotPanics(t, func() {
		rec.Record(context.Background(), Entry{
			Action:     ActionGenerate,
			EntityType: EntityPayroll,
		})
	})
	assert.Empty(t, repo.created)
}
