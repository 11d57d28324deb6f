package attendance

import (
	"context"
	"encoding/json"

	"swiftpay/internal/events"

	"github.com/segmentio/kafka-go"
)

type EventPublisher interface {
	PublishClockEvent(ctx context.Context, event events.AttendanceClockedEvent) error
}

type noopEventPublisher struct{}

func (noopEventPublisher) PublishClockEvent(context.Context, events.AttendanceClockedEvent) error {
	return nil
}

func NewNoopEventPublisher() EventPublisher {
	return noopEventPublisher{}
}

type kafkaEventPublisher struct {
	writer *kafka.Writer
}

func NewKafkaEventPublisher(writer *kafka.Writer) EventPublisher {
	return &kafkaEventPublisher{writer: writer}
}

func (p *kafkaEventPublisher) PublishClockEvent(
	ctx context.Context,
	event events.AttendanceClockedEvent,
) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: events.AttendanceClockTopic,
		Key:   []byte(event.EmployeeID),
		Value: payload,
	})
}
