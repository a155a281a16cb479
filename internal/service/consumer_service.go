package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"insightsmith-be/internal/pkg/logger"
	"insightsmith-be/internal/websocket"
	"insightsmith-be/pkg/events"
	pktNats "insightsmith-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	hub           *websocket.Hub
	natsPublisher *pktNats.Publisher
	transcriptLog logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	hub *websocket.Hub,
	natsPublisher *pktNats.Publisher,
	transcriptLog logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		hub:           hub,
		natsPublisher: natsPublisher,
		transcriptLog: transcriptLog,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
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
	var payload chatEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal event message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	// Keep an audit trail of every lifecycle event in the dedicated log file.
	if cs.transcriptLog != nil {
		cs.transcriptLog.Info("ChatEvent", payload.Type, payload.Data)
	}

	// Push to websocket viewers. Sweep events have no session, so they go
	// out as a broadcast.
	if cs.hub != nil {
		if sid, ok := cs.sessionId(payload); ok {
			cs.hub.Send(sid, payload.Type, payload.Data)
		} else {
			cs.hub.Broadcast(payload.Type, payload.Data)
		}
	}

	// Mirror to NATS for external consumers. Failures are logged, never
	// retried; the bus is advisory.
	if cs.natsPublisher != nil {
		occurredAt, err := time.Parse(time.RFC3339, payload.OccurredAt)
		if err != nil {
			occurredAt = time.Now()
		}
		event := events.BaseEvent{
			Type:       payload.Type,
			Data:       payload.Data,
			OccurredAt: occurredAt,
		}
		if err := cs.natsPublisher.Publish(ctx, event); err != nil {
			log.Printf("[WARN] Failed to mirror event %s to NATS: %v", payload.Type, err)
		}
	}

	msg.Ack()
}

func (cs *consumerService) sessionId(payload chatEventMessage) (uuid.UUID, bool) {
	raw, ok := payload.Data["session_id"].(string)
	if !ok {
		return uuid.Nil, false
	}
	sid, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return sid, true
}
