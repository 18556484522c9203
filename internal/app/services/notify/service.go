package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"motorent/internal/domain/notification"
)

// NotableYear marks motorcycles the back office wants flagged on registration.
const NotableYear = 2024

// Service consumes fleet events and materializes notifications for
// motorcycles of the notable model year. Unknown event types are skipped.
type Service struct {
	Store  notification.Store
	Logger *slog.Logger
}

type cloudEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type motoRegisteredData struct {
	MotoID string    `json:"moto_id"`
	Year   int       `json:"year"`
	Model  string    `json:"model"`
	Plate  string    `json:"plate"`
	At     time.Time `json:"at"`
}

// HandleEvent processes one CloudEvents-encoded message from the fleet topic.
func (s *Service) HandleEvent(ctx context.Context, payload []byte) error {
	var evt cloudEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return fmt.Errorf("notify: decode event: %w", err)
	}
	if evt.Type != "moto.registered.v1" {
		return nil
	}
	var data motoRegisteredData
	if err := json.Unmarshal(evt.Data, &data); err != nil {
		return fmt.Errorf("notify: decode moto.registered payload: %w", err)
	}
	if data.Year != NotableYear {
		return nil
	}
	n := notification.Notification{
		ID:        uuid.NewString(),
		MotoID:    data.MotoID,
		Year:      data.Year,
		Model:     data.Model,
		Plate:     data.Plate,
		Message:   fmt.Sprintf("motorcycle %s (%d) registered", data.Plate, data.Year),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.Save(ctx, n); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("fleet notification stored", "moto_id", data.MotoID, "plate", data.Plate)
	}
	return nil
}
