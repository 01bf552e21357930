package domain

import (
	"reflect"

	sharedEvents "github.com/ugelhub/convocatorias/internal/shared/domain/events"
)

// NewEventRegistry mapea cada tipo de evento del contexto con su struct de
// payload y el topic al que se publica. Lo consume el relayer de outbox.
func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	return map[string]sharedEvents.EventMetadata{
		sharedEvents.PostulacionRegistradaType: {
			Type:  reflect.TypeOf(sharedEvents.PostulacionRegistrada{}),
			Topic: sharedEvents.TopicPostulaciones,
		},
		sharedEvents.PostulacionRetiradaType: {
			Type:  reflect.TypeOf(sharedEvents.PostulacionRetirada{}),
			Topic: sharedEvents.TopicPostulaciones,
		},
		sharedEvents.EvaluacionRegistradaType: {
			Type:  reflect.TypeOf(sharedEvents.EvaluacionRegistrada{}),
			Topic: sharedEvents.TopicPostulaciones,
		},
		sharedEvents.SeleccionPublicadaType: {
			Type:  reflect.TypeOf(sharedEvents.SeleccionPublicada{}),
			Topic: sharedEvents.TopicPostulaciones,
		},
	}
}
