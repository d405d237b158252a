package service

import (
	"context"
	"encoding/json"

	"notelite-be/internal/pkg/logger"
	"notelite-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// IActivityService drains the domain event topic and writes each event
// to the activity log. It is the only consumer on the bus today.
type IActivityService interface {
	Consume(ctx context.Context) error
}

type activityService struct {
	subscriber message.Subscriber
	topic      string
	logger     logger.ILogger
}

func NewActivityService(subscriber message.Subscriber, topic string, sysLogger logger.ILogger) IActivityService {
	return &activityService{
		subscriber: subscriber,
		topic:      topic,
		logger:     sysLogger,
	}
}

func (s *activityService) Consume(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, s.topic)
	if err != nil {
		return err
	}

	for msg := range messages {
		var envelope events.Envelope
		if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
			s.logger.Warn("activity", "dropping malformed event payload", map[string]interface{}{
				"error":      err.Error(),
				"message_id": msg.UUID,
			})
			msg.Ack()
			continue
		}

		s.logger.Info("activity", envelope.Type, envelope.Data)
		msg.Ack()
	}

	return nil
}
