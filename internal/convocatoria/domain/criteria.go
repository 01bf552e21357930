package domain

import (
	"github.com/google/uuid"

	shared "github.com/ugelhub/convocatorias/internal/shared/domain"
)

// Alias de tabla en los listados: c=convocatorias, p=plazas, u=ugels,
// i=instituciones.

// --- Filtros exactos ---

type UgelIDCriteria struct {
	ID uuid.UUID
}

func (c UgelIDCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "c.ugel_id", Op: shared.OpEq, Value: c.ID}}
}

type AnioCriteria struct {
	Anio int
}

func (c AnioCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "c.anio", Op: shared.OpEq, Value: c.Anio}}
}

type TipoProcesoCriteria struct {
	Tipo TipoProceso
}

func (c TipoProcesoCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "c.tipo_proceso", Op: shared.OpEq, Value: string(c.Tipo)}}
}

// EstadoCriteria aplica al estado de convocatoria o de plaza según Column.
type EstadoCriteria struct {
	Column string
	Estado string
}

func (c EstadoCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: c.Column, Op: shared.OpEq, Value: c.Estado}}
}

type ConvocatoriaIDCriteria struct {
	ID uuid.UUID
}

func (c ConvocatoriaIDCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "p.convocatoria_id", Op: shared.OpEq, Value: c.ID}}
}

type InstitucionIDCriteria struct {
	ID uuid.UUID
}

func (c InstitucionIDCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "p.institucion_id", Op: shared.OpEq, Value: c.ID}}
}

type NivelCriteria struct {
	Nivel string
}

func (c NivelCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "p.nivel", Op: shared.OpEq, Value: c.Nivel}}
}

type JornadaCriteria struct {
	Jornada Jornada
}

func (c JornadaCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "p.jornada", Op: shared.OpEq, Value: int(c.Jornada)}}
}

// --- Búsqueda de texto libre ---

func like(field, pattern string) shared.Criterion {
	return shared.Criterion{Field: field, Op: shared.OpILike, Value: pattern}
}

// ConvocatoriaSearch busca en título y descripción propios, y en el
// nombre de la UGEL dueña.
func ConvocatoriaSearch(term string) shared.Criteria {
	p := shared.SearchPattern(term)
	return shared.Or(
		like("c.titulo", p), like("c.descripcion", p),
		like("u.nombre", p),
	)
}

// PlazaSearch busca en los campos propios de la plaza y en el título de
// su convocatoria y el nombre de su institución.
func PlazaSearch(term string) shared.Criteria {
	pat := shared.SearchPattern(term)
	return shared.Or(
		like("p.codigo_plaza", pat), like("p.cargo", pat), like("p.especialidad", pat),
		like("c.titulo", pat),
		like("i.nombre", pat),
	)
}
