// FILE: internal/service/consumer_service.go
package service

import (
	"context"

	"simple-notes-be/internal/pkg/logger"
	"simple-notes-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// EventRelay forwards events to an external bus. *nats.Publisher satisfies it.
type EventRelay interface {
	Publish(ctx context.Context, event events.Event) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	relay      EventRelay
	logger     logger.ILogger
}

// NewConsumerService builds the audit consumer. relay may be nil, in which case
// events are only logged.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	relay EventRelay,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		relay:      relay,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Events are never retried, so every message is acked.
	defer msg.Ack()

	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		cs.logger.Error("ConsumerService", "Dropping undecodable event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	details := map[string]interface{}{
		"type":        event.EventType(),
		"occurred_at": event.Timestamp(),
	}
	for k, v := range event.Payload() {
		details[k] = v
	}
	cs.logger.Info("ConsumerService", "Event received", details)

	if cs.relay == nil {
		return
	}
	if err := cs.relay.Publish(ctx, event); err != nil {
		cs.logger.Warn("ConsumerService", "Failed to relay event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}
