package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EstadoConvocatoria es el ciclo de vida de una convocatoria.
type EstadoConvocatoria string

const (
	ConvocatoriaBorrador  EstadoConvocatoria = "draft"
	ConvocatoriaPublicada EstadoConvocatoria = "published"
	ConvocatoriaActiva    EstadoConvocatoria = "active"
	ConvocatoriaCerrada   EstadoConvocatoria = "closed"
	ConvocatoriaCancelada EstadoConvocatoria = "cancelled"
)

// TipoProceso es la modalidad del proceso de contratación docente.
type TipoProceso string

const (
	ProcesoContratacion TipoProceso = "contratacion"
	ProcesoNombramiento TipoProceso = "nombramiento"
)

// Convocatoria es una campaña de contratación docente publicada por una
// UGEL, con una ventana de vigencia y otra de inscripción.
type Convocatoria struct {
	ID               uuid.UUID          `json:"id"`
	UgelID           uuid.UUID          `json:"ugel_id"`
	CreatedBy        uuid.UUID          `json:"created_by"`
	Titulo           string             `json:"titulo"`
	Descripcion      string             `json:"descripcion"`
	Anio             int                `json:"anio"`
	TipoProceso      TipoProceso        `json:"tipo_proceso"`
	FechaInicio      time.Time          `json:"fecha_inicio"`
	FechaFin         time.Time          `json:"fecha_fin"`
	InscripcionDesde time.Time          `json:"inscripcion_desde"`
	InscripcionHasta time.Time          `json:"inscripcion_hasta"`
	Estado           EstadoConvocatoria `json:"estado"`
	// TotalPlazas es la meta declarada; es independiente del número real
	// de plazas registradas como hijas.
	TotalPlazas int       `json:"total_plazas"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Transiciones válidas del ciclo de vida. Cancelar está permitido desde
// cualquier estado no terminal.

func (c *Convocatoria) Publicar() error {
	if c.Estado != ConvocatoriaBorrador {
		return fmt.Errorf("%w: de %s a %s", ErrTransicionInvalida, c.Estado, ConvocatoriaPublicada)
	}
	c.Estado = ConvocatoriaPublicada
	return nil
}

func (c *Convocatoria) Activar() error {
	if c.Estado != ConvocatoriaPublicada {
		return fmt.Errorf("%w: de %s a %s", ErrTransicionInvalida, c.Estado, ConvocatoriaActiva)
	}
	c.Estado = ConvocatoriaActiva
	return nil
}

func (c *Convocatoria) Cerrar() error {
	if c.Estado != ConvocatoriaPublicada && c.Estado != ConvocatoriaActiva {
		return fmt.Errorf("%w: de %s a %s", ErrTransicionInvalida, c.Estado, ConvocatoriaCerrada)
	}
	c.Estado = ConvocatoriaCerrada
	return nil
}

func (c *Convocatoria) Cancelar() error {
	if c.Estado == ConvocatoriaCerrada || c.Estado == ConvocatoriaCancelada {
		return fmt.Errorf("%w: de %s a %s", ErrTransicionInvalida, c.Estado, ConvocatoriaCancelada)
	}
	c.Estado = ConvocatoriaCancelada
	return nil
}

// InscripcionAbierta indica si la ventana de inscripción admite
// postulaciones en el instante dado.
func (c *Convocatoria) InscripcionAbierta(now time.Time) bool {
	if c.Estado != ConvocatoriaPublicada && c.Estado != ConvocatoriaActiva {
		return false
	}
	return !now.Before(c.InscripcionDesde) && !now.After(c.InscripcionHasta)
}

// Jornada laboral semanal en horas de una plaza.
type Jornada int

const (
	Jornada25 Jornada = 25
	Jornada30 Jornada = 30
	Jornada40 Jornada = 40
)

func (j Jornada) Valida() bool {
	return j == Jornada25 || j == Jornada30 || j == Jornada40
}

// EstadoPlaza es el estado de ocupación de una plaza.
type EstadoPlaza string

const (
	PlazaActiva    EstadoPlaza = "active"
	PlazaCubierta  EstadoPlaza = "filled"
	PlazaCancelada EstadoPlaza = "cancelled"
)

// Plaza es un puesto concreto (cargo + institución + nivel) dentro de una
// convocatoria, con su cupo de vacantes.
type Plaza struct {
	ID             uuid.UUID   `json:"id"`
	ConvocatoriaID uuid.UUID   `json:"convocatoria_id"`
	InstitucionID  uuid.UUID   `json:"institucion_id"`
	CodigoPlaza    string      `json:"codigo_plaza"`
	Cargo          string      `json:"cargo"`
	Nivel          string      `json:"nivel"`
	Especialidad   string      `json:"especialidad"`
	Jornada        Jornada     `json:"jornada"`
	MontoPago      float64     `json:"monto_pago"`
	Vacantes       int         `json:"vacantes"`
	MotivoVacante  string      `json:"motivo_vacante"`
	Requisitos     string      `json:"requisitos"`
	Estado         EstadoPlaza `json:"estado"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func (p *Plaza) Cubrir() error {
	if p.Estado != PlazaActiva {
		return fmt.Errorf("%w: de %s a %s", ErrTransicionInvalida, p.Estado, PlazaCubierta)
	}
	p.Estado = PlazaCubierta
	return nil
}

func (p *Plaza) CancelarPlaza() error {
	if p.Estado == PlazaCancelada {
		return fmt.Errorf("%w: de %s a %s", ErrTransicionInvalida, p.Estado, PlazaCancelada)
	}
	p.Estado = PlazaCancelada
	return nil
}

// ---------------- Filas de listado ----------------

// ConvocatoriaListado adjunta el nombre de la UGEL y el cupo restante
// calculado por consulta: total_plazas menos el número de plazas hijas.
// Se calcula en cada listado, nunca se almacena.
type ConvocatoriaListado struct {
	Convocatoria
	UgelNombre        string `json:"ugel_nombre"`
	PlazasDisponibles int    `json:"plazas_disponibles"`
}

type PlazaListado struct {
	Plaza
	ConvocatoriaTitulo string `json:"convocatoria_titulo"`
	InstitucionNombre  string `json:"institucion_nombre"`
}
