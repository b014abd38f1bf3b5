package producer

import (
	kafkago "github.com/segmentio/kafka-go"

	"leavehub/internal/messaging/kafka"
)

// buildMessage keys on the aggregate id so all events for one aggregate land
// on the same partition, in order. Routing metadata rides in headers, not the
// payload.
func buildMessage(event kafka.OutboxEvent) kafkago.Message {
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
