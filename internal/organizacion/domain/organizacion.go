package domain

import (
	"time"

	"github.com/google/uuid"
)

// Estado es el estado administrativo común de la jerarquía organizativa.
type Estado string

const (
	EstadoActivo   Estado = "activo"
	EstadoInactivo Estado = "inactivo"
)

// Nivel educativo que atiende una institución.
type Nivel string

const (
	NivelInicial    Nivel = "inicial"
	NivelPrimaria   Nivel = "primaria"
	NivelSecundaria Nivel = "secundaria"
)

// Modalidad del servicio educativo.
type Modalidad string

const (
	ModalidadEBR Modalidad = "EBR"
	ModalidadEBA Modalidad = "EBA"
	ModalidadEBE Modalidad = "EBE"
)

// Region es la raíz de la jerarquía: Región → UGEL → Distrito → Institución.
type Region struct {
	ID        uuid.UUID `json:"id"`
	Nombre    string    `json:"nombre"`
	Codigo    string    `json:"codigo"`
	Estado    Estado    `json:"estado"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Region) Activa() bool { return r.Estado == EstadoActivo }

// Ugel es la unidad de gestión educativa local, dueña de convocatorias.
type Ugel struct {
	ID        uuid.UUID `json:"id"`
	RegionID  uuid.UUID `json:"region_id"`
	Nombre    string    `json:"nombre"`
	Codigo    string    `json:"codigo"`
	Direccion string    `json:"direccion"`
	Telefono  string    `json:"telefono"`
	Email     string    `json:"email"`
	Estado    Estado    `json:"estado"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *Ugel) Activa() bool { return u.Estado == EstadoActivo }

type Distrito struct {
	ID        uuid.UUID `json:"id"`
	UgelID    uuid.UUID `json:"ugel_id"`
	Nombre    string    `json:"nombre"`
	Codigo    string    `json:"codigo"`
	Estado    Estado    `json:"estado"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Distrito) Activo() bool { return d.Estado == EstadoActivo }

// Institucion es el colegio donde se abren plazas.
type Institucion struct {
	ID         uuid.UUID `json:"id"`
	DistritoID uuid.UUID `json:"distrito_id"`
	Nombre     string    `json:"nombre"`
	Codigo     string    `json:"codigo"`
	Nivel      Nivel     `json:"nivel"`
	Modalidad  Modalidad `json:"modalidad"`
	Direccion  string    `json:"direccion"`
	Estado     Estado    `json:"estado"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (i *Institucion) Activa() bool { return i.Estado == EstadoActivo }

// ---------------- Filas de listado con sus padres ----------------
// Los listados adjuntan los nombres de las entidades padre para pintarlos
// sin consultas adicionales.

type UgelListado struct {
	Ugel
	RegionNombre string `json:"region_nombre"`
}

type DistritoListado struct {
	Distrito
	UgelNombre string `json:"ugel_nombre"`
}

type InstitucionListado struct {
	Institucion
	DistritoNombre string `json:"distrito_nombre"`
	UgelNombre     string `json:"ugel_nombre"`
	RegionNombre   string `json:"region_nombre"`
}
