package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EstadoPostulacion es el ciclo de vida de una postulación.
type EstadoPostulacion string

const (
	Postulado      EstadoPostulacion = "postulado"
	Evaluado       EstadoPostulacion = "evaluado"
	Seleccionado   EstadoPostulacion = "seleccionado"
	NoSeleccionado EstadoPostulacion = "no_seleccionado"
	Retirado       EstadoPostulacion = "retirado"
)

// Postulacion es la solicitud de un docente a una plaza concreta.
type Postulacion struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	PlazaID        uuid.UUID `json:"plaza_id"`
	ConvocatoriaID uuid.UUID `json:"convocatoria_id"`
	// Numero es el correlativo visible, único por convocatoria y año.
	Numero           string            `json:"numero_postulacion"`
	FechaPostulacion time.Time         `json:"fecha_postulacion"`
	OrdenPreferencia int               `json:"orden_preferencia"`
	PuntajeFinal     *float64          `json:"puntaje_final,omitempty"`
	PosicionMerito   *int              `json:"posicion_merito,omitempty"`
	Estado           EstadoPostulacion `json:"estado"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func (p *Postulacion) Retirar() error {
	if p.Estado != Postulado {
		return fmt.Errorf("%w: de %s a %s", ErrTransicionInvalida, p.Estado, Retirado)
	}
	p.Estado = Retirado
	return nil
}

// MarcarEvaluada registra el puntaje final; la postulación queda evaluada.
func (p *Postulacion) MarcarEvaluada(puntaje float64) error {
	if p.Estado != Postulado {
		return fmt.Errorf("%w: de %s a %s", ErrTransicionInvalida, p.Estado, Evaluado)
	}
	p.Estado = Evaluado
	p.PuntajeFinal = &puntaje
	return nil
}

func (p *Postulacion) Seleccionar(posicion int) error {
	if p.Estado != Evaluado {
		return fmt.Errorf("%w: de %s a %s", ErrTransicionInvalida, p.Estado, Seleccionado)
	}
	p.Estado = Seleccionado
	p.PosicionMerito = &posicion
	return nil
}

func (p *Postulacion) DescartarSeleccion(posicion int) error {
	if p.Estado != Evaluado {
		return fmt.Errorf("%w: de %s a %s", ErrTransicionInvalida, p.Estado, NoSeleccionado)
	}
	p.Estado = NoSeleccionado
	p.PosicionMerito = &posicion
	return nil
}

// Activa indica si la postulación sigue compitiendo por la plaza.
func (p *Postulacion) Activa() bool {
	return p.Estado == Postulado || p.Estado == Evaluado
}

// NumeroPostulacion genera el correlativo visible: POS-{año}-{secuencia}.
func NumeroPostulacion(anio int, secuencia int64) string {
	return fmt.Sprintf("POS-%d-%05d", anio, secuencia)
}

// PostulacionListado adjunta el postulante y la plaza para los listados
// administrativos.
type PostulacionListado struct {
	Postulacion
	UsuarioNombre      string `json:"usuario_nombre"`
	PlazaCodigo        string `json:"plaza_codigo"`
	ConvocatoriaTitulo string `json:"convocatoria_titulo"`
}
