package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	sharedDomain "github.com/ugelhub/convocatorias/internal/shared/domain"
)

// InMemoryOutboxRepo simula la tabla outbox para el worker relayer.
type InMemoryOutboxRepo struct {
	Events []sharedDomain.OutboxEvent
	mu     sync.Mutex
}

var _ sharedDomain.OutboxRepository = (*InMemoryOutboxRepo)(nil)

func NewInMemoryOutboxRepo() *InMemoryOutboxRepo {
	return &InMemoryOutboxRepo{}
}

func (r *InMemoryOutboxRepo) Add(evt sharedDomain.OutboxEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, evt)
}

func (r *InMemoryOutboxRepo) FetchPendingOutbox(ctx context.Context, limit int) ([]sharedDomain.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pending []sharedDomain.OutboxEvent
	for _, evt := range r.Events {
		if evt.Processed {
			continue
		}
		pending = append(pending, evt)
		if len(pending) >= limit {
			break
		}
	}
	return pending, nil
}

func (r *InMemoryOutboxRepo) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.Events {
		if r.Events[i].ID == id {
			r.Events[i].Processed = true
			return nil
		}
	}
	return errors.New("outbox event not found")
}

// Pendientes devuelve cuántos eventos siguen sin procesar.
func (r *InMemoryOutboxRepo) Pendientes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, evt := range r.Events {
		if !evt.Processed {
			n++
		}
	}
	return n
}
