package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"motorent/internal/domain/notification"
)

type MockNotificationStore struct {
	mock.Mock
}

func (m *MockNotificationStore) Save(ctx context.Context, n notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationStore) All(ctx context.Context) ([]notification.Notification, error) {
	args := m.Called(ctx)
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func fleetEvent(t *testing.T, eventType string, data map[string]any) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"specversion": "1.0",
		"id":          "evt-1",
		"type":        eventType,
		"data":        data,
	})
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return payload
}

func TestHandleEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a notification for the notable year", func(t *testing.T) {
		store := new(MockNotificationStore)
		svc := &Service{Store: store}

		store.On("Save", ctx, mock.MatchedBy(func(n notification.Notification) bool {
			return n.MotoID == "moto-1" && n.Year == 2024 && n.Plate == "ABC1234"
		})).Return(nil)

		err := svc.HandleEvent(ctx, fleetEvent(t, "moto.registered.v1", map[string]any{
			"moto_id": "moto-1",
			"year":    2024,
			"model":   "Honda CG 160",
			"plate":   "ABC1234",
			"at":      time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		}))
		assert.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("other model years are ignored", func(t *testing.T) {
		store := new(MockNotificationStore)
		svc := &Service{Store: store}

		err := svc.HandleEvent(ctx, fleetEvent(t, "moto.registered.v1", map[string]any{
			"moto_id": "moto-2",
			"year":    2023,
			"plate":   "XYZ9876",
		}))
		assert.NoError(t, err)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown event types are skipped", func(t *testing.T) {
		store := new(MockNotificationStore)
		svc := &Service{Store: store}

		err := svc.HandleEvent(ctx, fleetEvent(t, "rent.requested.v1", map[string]any{"rent_id": "rent-1"}))
		assert.NoError(t, err)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("malformed payloads error out", func(t *testing.T) {
		svc := &Service{Store: new(MockNotificationStore)}
		err := svc.HandleEvent(ctx, []byte("not-json"))
		assert.Error(t, err)
	})
}
