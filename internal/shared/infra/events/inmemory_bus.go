package events

import (
	"context"
	"encoding/json"
	"sync"

	sharedBus "github.com/ugelhub/convocatorias/internal/shared/platform/bus"
)

// InMemoryEventBus implementa un bus de eventos para UN solo topic,
// con canales de Go. Se usa cuando Kafka está deshabilitado.
type InMemoryEventBus struct {
	subscribers []chan []byte
	mu          sync.RWMutex
	topic       string
}

var _ sharedBus.EventPublisher = (*InMemoryEventBus)(nil)

// NewInMemoryEventBus crea un bus de eventos para un topic específico.
func NewInMemoryEventBus(topic string) *InMemoryEventBus {
	return &InMemoryEventBus{
		subscribers: make([]chan []byte, 0),
		topic:       topic,
	}
}

// Publish envía un evento serializado a todos los suscriptores del bus.
func (b *InMemoryEventBus) Publish(ctx context.Context, event interface{}) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if len(b.subscribers) > 0 {
		go b.distribute(b.subscribers, payload)
	}
	return nil
}

func (b *InMemoryEventBus) distribute(subs []chan []byte, payload []byte) {
	for _, subChan := range subs {
		select {
		case subChan <- payload:
		default:
			// suscriptor saturado: se descarta el mensaje
		}
	}
}

// Subscribe suscribe un nuevo oyente a este bus.
func (b *InMemoryEventBus) Subscribe(bufferSize int) <-chan []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	subChan := make(chan []byte, bufferSize)
	b.subscribers = append(b.subscribers, subChan)
	return subChan
}
