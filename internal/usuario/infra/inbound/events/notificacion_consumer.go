package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	sharedEvents "github.com/ugelhub/convocatorias/internal/shared/domain/events"
	sharedUtils "github.com/ugelhub/convocatorias/internal/shared/infra/utils"
	"github.com/ugelhub/convocatorias/internal/usuario/application"
	"github.com/ugelhub/convocatorias/internal/usuario/domain"
)

// NotificacionConsumer convierte los eventos del flujo de postulaciones
// en notificaciones para el docente.
type NotificacionConsumer struct {
	usuarios *application.UsuarioService
	log      *zap.Logger
}

func NewNotificacionConsumer(usuarios *application.UsuarioService, log *zap.Logger) *NotificacionConsumer {
	return &NotificacionConsumer{usuarios: usuarios, log: log}
}

func (c *NotificacionConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var evt sharedEvents.IntegrationEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		c.log.Warn("Evento con formato invalido", zap.Error(err))
		return
	}

	switch evt.Type {
	case sharedEvents.PostulacionRegistradaType:
		sharedUtils.UnmarshalAndHandle(c.log, evt.Data, func(e sharedEvents.PostulacionRegistrada) {
			c.notificar(ctx, e.UsuarioID, domain.NotifSuccess, "Postulación registrada",
				fmt.Sprintf("Tu postulación %s fue registrada correctamente.", e.Numero))
		})
	case sharedEvents.PostulacionRetiradaType:
		sharedUtils.UnmarshalAndHandle(c.log, evt.Data, func(e sharedEvents.PostulacionRetirada) {
			c.notificar(ctx, e.UsuarioID, domain.NotifInfo, "Postulación retirada",
				"Tu postulación fue retirada.")
		})
	case sharedEvents.EvaluacionRegistradaType:
		sharedUtils.UnmarshalAndHandle(c.log, evt.Data, func(e sharedEvents.EvaluacionRegistrada) {
			c.notificar(ctx, e.UsuarioID, domain.NotifInfo, "Evaluación registrada",
				fmt.Sprintf("Tu postulación fue evaluada con un puntaje de %.2f.", e.PuntajeTotal))
		})
	case sharedEvents.SeleccionPublicadaType:
		sharedUtils.UnmarshalAndHandle(c.log, evt.Data, func(e sharedEvents.SeleccionPublicada) {
			c.notificar(ctx, e.UsuarioID, domain.NotifSuccess, "Resultado publicado",
				fmt.Sprintf("Fuiste seleccionado en la posición de mérito %d.", e.Posicion))
		})
	default:
		c.log.Debug("Evento ignorado", zap.String("type", evt.Type))
	}
}

func (c *NotificacionConsumer) notificar(ctx context.Context, usuarioID uuid.UUID, tipo domain.TipoNotificacion, titulo, mensaje string) {
	if _, err := c.usuarios.NotificarUsuario(ctx, usuarioID, tipo, titulo, mensaje); err != nil {
		c.log.Error("No se pudo crear la notificacion",
			zap.String("usuario_id", usuarioID.String()),
			zap.Error(err))
	}
}
