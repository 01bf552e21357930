package mocks

import (
	"context"
	"encoding/json"
	"sync"

	sharedBus "github.com/ugelhub/convocatorias/internal/shared/platform/bus"
	sharedCache "github.com/ugelhub/convocatorias/internal/shared/platform/cache"
)

// DummyCache es un mock de caché en memoria, genérico y seguro para
// concurrencia. Almacena JSON para poder poblar cualquier destino.
type DummyCache struct {
	store map[string][]byte
	mu    sync.RWMutex
}

var _ sharedCache.Cache = (*DummyCache)(nil)

func NewDummyCache() *DummyCache {
	return &DummyCache{store: make(map[string][]byte)}
}

// SetForTest inserta un valor directamente, sin pasar por el servicio.
func (c *DummyCache) SetForTest(key string, val interface{}) {
	_ = c.Set(context.Background(), key, val, 0)
}

func (c *DummyCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *DummyCache) Set(ctx context.Context, key string, val interface{}, ttlSecs int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.store[key] = data
	return nil
}

func (c *DummyCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

// Has permite a los tests comprobar si una clave sigue en caché.
func (c *DummyCache) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.store[key]
	return ok
}

// ------------------- EventPublisher -------------------

// DummyPublisher registra los eventos publicados; con Fail activo simula
// un broker caído.
type DummyPublisher struct {
	Published []interface{}
	Fail      error
	mu        sync.Mutex
}

var _ sharedBus.EventPublisher = (*DummyPublisher)(nil)

func (p *DummyPublisher) Publish(ctx context.Context, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Fail != nil {
		return p.Fail
	}
	p.Published = append(p.Published, event)
	return nil
}

func (p *DummyPublisher) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Published)
}
