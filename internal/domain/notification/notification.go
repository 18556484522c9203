package notification

import (
	"context"
	"time"
)

// Notification is a back-office alert materialized from fleet events.
type Notification struct {
	ID        string
	MotoID    string
	Year      int
	Model     string
	Plate     string
	Message   string
	CreatedAt time.Time
}

type Store interface {
	Save(ctx context.Context, n Notification) error
	All(ctx context.Context) ([]Notification, error)
}
