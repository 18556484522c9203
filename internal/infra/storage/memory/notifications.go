package memory

import (
	"context"
	"sync"

	"motorent/internal/domain/notification"
)

type NotificationStore struct {
	mu    sync.RWMutex
	items []notification.Notification
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{}
}

func (s *NotificationStore) Save(_ context.Context, n notification.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, n)
	return nil
}

func (s *NotificationStore) All(_ context.Context) ([]notification.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]notification.Notification, len(s.items))
	copy(out, s.items)
	return out, nil
}
