package memory

import (
	"context"
	"sync"

	appoutbox "motorent/internal/app/outbox"
)

// Outbox collects event records in memory. Nothing drains it; it exists so
// services can run with the same wiring when Kafka is absent.
type Outbox struct {
	mu      sync.RWMutex
	records []appoutbox.EventRecord
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Add(_ context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.records = append(o.records, record)
	return nil
}

func (o *Outbox) Records() []appoutbox.EventRecord {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]appoutbox.EventRecord, len(o.records))
	copy(out, o.records)
	return out
}
