package domain

import (
	"github.com/google/uuid"

	shared "github.com/ugelhub/convocatorias/internal/shared/domain"
)

// Los campos van cualificados con el alias de tabla que usan los
// repositorios en sus listados con JOIN: r=regiones, u=ugels,
// d=distritos, i=instituciones.

// --- Filtros exactos ---

// EstadoCriteria filtra por estado administrativo; Column permite aplicarlo
// a cualquier nivel de la jerarquía.
type EstadoCriteria struct {
	Column string
	Estado Estado
}

func (c EstadoCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: c.Column, Op: shared.OpEq, Value: string(c.Estado)}}
}

// RegionIDCriteria filtra UGELs por su región.
type RegionIDCriteria struct {
	ID uuid.UUID
}

func (c RegionIDCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "u.region_id", Op: shared.OpEq, Value: c.ID}}
}

// UgelIDCriteria filtra distritos por su UGEL.
type UgelIDCriteria struct {
	ID uuid.UUID
}

func (c UgelIDCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "d.ugel_id", Op: shared.OpEq, Value: c.ID}}
}

// DistritoIDCriteria filtra instituciones por su distrito.
type DistritoIDCriteria struct {
	ID uuid.UUID
}

func (c DistritoIDCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "i.distrito_id", Op: shared.OpEq, Value: c.ID}}
}

// NivelCriteria filtra instituciones por nivel educativo.
type NivelCriteria struct {
	Nivel Nivel
}

func (c NivelCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "i.nivel", Op: shared.OpEq, Value: string(c.Nivel)}}
}

// ModalidadCriteria filtra instituciones por modalidad.
type ModalidadCriteria struct {
	Modalidad Modalidad
}

func (c ModalidadCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "i.modalidad", Op: shared.OpEq, Value: string(c.Modalidad)}}
}

// --- Búsqueda de texto libre ---
// Cada búsqueda es un grupo OR sobre los campos propios y los de las
// entidades padre alcanzables por FK; el traductor lo deja entre
// paréntesis para que componga en AND con los filtros exactos.

func like(field, pattern string) shared.Criterion {
	return shared.Criterion{Field: field, Op: shared.OpILike, Value: pattern}
}

func RegionSearch(term string) shared.Criteria {
	p := shared.SearchPattern(term)
	return shared.Or(like("r.nombre", p), like("r.codigo", p))
}

func UgelSearch(term string) shared.Criteria {
	p := shared.SearchPattern(term)
	return shared.Or(
		like("u.nombre", p), like("u.codigo", p),
		like("r.nombre", p), like("r.codigo", p),
	)
}

func DistritoSearch(term string) shared.Criteria {
	p := shared.SearchPattern(term)
	return shared.Or(
		like("d.nombre", p), like("d.codigo", p),
		like("u.nombre", p), like("u.codigo", p),
	)
}

func InstitucionSearch(term string) shared.Criteria {
	p := shared.SearchPattern(term)
	return shared.Or(
		like("i.nombre", p), like("i.codigo", p),
		like("d.nombre", p),
		like("u.nombre", p),
		like("r.nombre", p),
	)
}
