package relayer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	postDomain "github.com/ugelhub/convocatorias/internal/postulacion/domain"
	sharedDomain "github.com/ugelhub/convocatorias/internal/shared/domain"
	sharedEvents "github.com/ugelhub/convocatorias/internal/shared/domain/events"
	"github.com/ugelhub/convocatorias/tests/mocks"
)

func eventoRegistrado() sharedDomain.OutboxEvent {
	return sharedDomain.NewOutboxEvent("postulacion", uuid.New().String(),
		sharedEvents.PostulacionRegistradaType,
		sharedEvents.PostulacionRegistrada{
			PostulacionID: uuid.New(),
			UsuarioID:     uuid.New(),
			Numero:        "POS-2026-00001",
		})
}

func TestProcessBatch_PublicaYMarca(t *testing.T) {
	repo := mocks.NewInMemoryOutboxRepo()
	publisher := &mocks.DummyPublisher{}
	worker := NewOutboxWorker(repo, publisher, postDomain.NewEventRegistry(), time.Second, 10, zap.NewNop())

	repo.Add(eventoRegistrado())
	repo.Add(eventoRegistrado())

	worker.ProcessBatch(context.Background())

	assert.Equal(t, 2, publisher.Count())
	assert.Equal(t, 0, repo.Pendientes())

	// Lo publicado es el evento de integración con el payload decodificado.
	integration, ok := publisher.Published[0].(sharedEvents.IntegrationEvent)
	assert.True(t, ok)
	assert.Equal(t, sharedEvents.PostulacionRegistradaType, integration.Type)

	var payload sharedEvents.PostulacionRegistrada
	assert.NoError(t, json.Unmarshal(integration.Data, &payload))
	assert.Equal(t, "POS-2026-00001", payload.Numero)
}

func TestProcessBatch_TipoDesconocidoNoSeMarca(t *testing.T) {
	repo := mocks.NewInMemoryOutboxRepo()
	publisher := &mocks.DummyPublisher{}
	worker := NewOutboxWorker(repo, publisher, postDomain.NewEventRegistry(), time.Second, 10, zap.NewNop())

	repo.Add(sharedDomain.NewOutboxEvent("postulacion", uuid.New().String(),
		"postulacion.tipo_inexistente", map[string]interface{}{"x": 1}))

	worker.ProcessBatch(context.Background())

	assert.Equal(t, 0, publisher.Count())
	assert.Equal(t, 1, repo.Pendientes())
}

func TestProcessBatch_FalloDePublicacionReintenta(t *testing.T) {
	repo := mocks.NewInMemoryOutboxRepo()
	publisher := &mocks.DummyPublisher{Fail: errors.New("broker caido")}
	worker := NewOutboxWorker(repo, publisher, postDomain.NewEventRegistry(), time.Second, 10, zap.NewNop())

	repo.Add(eventoRegistrado())
	worker.ProcessBatch(context.Background())

	// Sigue pendiente; un lote posterior lo vuelve a intentar.
	assert.Equal(t, 1, repo.Pendientes())

	publisher.Fail = nil
	worker.ProcessBatch(context.Background())
	assert.Equal(t, 0, repo.Pendientes())
	assert.Equal(t, 1, publisher.Count())
}

func TestProcessBatch_RespetaElLimite(t *testing.T) {
	repo := mocks.NewInMemoryOutboxRepo()
	publisher := &mocks.DummyPublisher{}
	worker := NewOutboxWorker(repo, publisher, postDomain.NewEventRegistry(), time.Second, 2, zap.NewNop())

	for i := 0; i < 5; i++ {
		repo.Add(eventoRegistrado())
	}

	worker.ProcessBatch(context.Background())
	assert.Equal(t, 2, publisher.Count())
	assert.Equal(t, 3, repo.Pendientes())
}
