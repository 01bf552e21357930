package domain

import (
	"github.com/google/uuid"

	shared "github.com/ugelhub/convocatorias/internal/shared/domain"
)

// Alias de tabla: po=postulaciones, us=usuarios, pl=plazas, c=convocatorias.

type ConvocatoriaIDCriteria struct {
	ID uuid.UUID
}

func (c ConvocatoriaIDCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "po.convocatoria_id", Op: shared.OpEq, Value: c.ID}}
}

type PlazaIDCriteria struct {
	ID uuid.UUID
}

func (c PlazaIDCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "po.plaza_id", Op: shared.OpEq, Value: c.ID}}
}

type UserIDCriteria struct {
	ID uuid.UUID
}

func (c UserIDCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "po.user_id", Op: shared.OpEq, Value: c.ID}}
}

type EstadoCriteria struct {
	Estado EstadoPostulacion
}

func (c EstadoCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "po.estado", Op: shared.OpEq, Value: string(c.Estado)}}
}

// PostulacionSearch busca por el correlativo y por el postulante o la
// plaza, vía los JOIN del listado.
func PostulacionSearch(term string) shared.Criteria {
	p := shared.SearchPattern(term)
	like := func(field string) shared.Criterion {
		return shared.Criterion{Field: field, Op: shared.OpILike, Value: p}
	}
	return shared.Or(
		like("po.numero_postulacion"),
		like("us.nombres"), like("us.apellidos"), like("us.dni"),
		like("pl.codigo_plaza"),
		like("c.titulo"),
	)
}
