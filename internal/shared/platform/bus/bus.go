package bus

import "context"

// Keyer expone la clave de partición del mensaje (Kafka).
type Keyer interface {
	PartitionKey() string
}

// EventPublisher publica eventos de integración. La semántica de
// topic/nombre y el formato del payload la deciden los adapters.
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}
