package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/IBM/sarama"

	"motorent/internal/app/services/notify"
)

// Dedupe marks event ids as seen so redelivered messages are skipped.
type Dedupe interface {
	Seen(ctx context.Context, eventID string) (bool, error)
}

// FleetNotifyBridge feeds fleet topic messages into the notification service.
type FleetNotifyBridge struct {
	Service *notify.Service
	Inbox   Dedupe
	Logger  *slog.Logger
}

func (b FleetNotifyBridge) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	if b.Service == nil {
		return nil
	}
	if b.Inbox != nil {
		if id := eventID(msg.Value); id != "" {
			seen, err := b.Inbox.Seen(ctx, id)
			if err != nil {
				return err
			}
			if seen {
				return nil
			}
		}
	}
	if err := b.Service.HandleEvent(ctx, msg.Value); err != nil {
		if b.Logger != nil {
			b.Logger.Error("fleet event rejected", "topic", msg.Topic, "offset", msg.Offset, "error", err)
		}
		return err
	}
	return nil
}

func eventID(payload []byte) string {
	var envelope struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return ""
	}
	return envelope.ID
}

var _ MessageHandler = FleetNotifyBridge{}
