package kafka

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestNewEvent(t *testing.T) {
	event := NewEvent("req-1", "payroll_run", "run-1", "payroll.run.generated", "payroll.run.generated.v1", []byte(`{}`))

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, OutboxStatusPending, event.Status)
	assert.Equal(t, "payroll_run", event.AggregateType)
	assert.Equal(t, "run-1", event.AggregateID)
}

func TestOutboxRepository_CreateUsesTx(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	event := NewEvent("req-1", "payroll_run", "run-1", "payroll.run.generated", "payroll.run.generated.v1", []byte(`{}`))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox_events").
		WithArgs(
			event.ID, event.RequestID, event.AggregateType,
			event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	assert.NoError(t, err)

	repo := NewOutboxRepository(db).WithTx(tx)
	assert.NoError(t, repo.Create(context.Background(), event))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkSent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	mock.ExpectExec("UPDATE outbox_events").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewOutboxRepository(db)
	assert.NoError(t, repo.MarkSent(context.Background(), "evt-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
