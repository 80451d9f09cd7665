package producer

import (
	"github.com/sourabhverman/people-hub-pro/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// outboxMessage shapes an outbox row into the message consumers expect. The
// aggregate id keys the message so events for one entity stay ordered within
// a partition; routing metadata travels in headers, not the payload.
func outboxMessage(event kafka.OutboxEvent) kafkago.Message {
	headers := []kafkago.Header{
		{Key: "event_type", Value: []byte(event.EventType)},
		{Key: "aggregate_type", Value: []byte(event.AggregateType)},
	}
	if event.RequestID != "" {
		headers = append(headers, kafkago.Header{Key: "request_id", Value: []byte(event.RequestID)})
	}

	return kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
	}
}
