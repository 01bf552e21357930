package domain

import (
	shared "github.com/ugelhub/convocatorias/internal/shared/domain"
)

// Alias de tabla: us=usuarios, i=instituciones.

type TipoUsuarioCriteria struct {
	Tipo TipoUsuario
}

func (c TipoUsuarioCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "us.user_type", Op: shared.OpEq, Value: string(c.Tipo)}}
}

type EstadoCriteria struct {
	Estado EstadoUsuario
}

func (c EstadoCriteria) ToConditions() []shared.Criterion {
	return []shared.Criterion{{Field: "us.estado", Op: shared.OpEq, Value: string(c.Estado)}}
}

// UsuarioSearch busca en nombres, apellidos, DNI y correo.
func UsuarioSearch(term string) shared.Criteria {
	p := shared.SearchPattern(term)
	like := func(field string) shared.Criterion {
		return shared.Criterion{Field: field, Op: shared.OpILike, Value: p}
	}
	return shared.Or(like("us.nombres"), like("us.apellidos"), like("us.dni"), like("us.email"))
}
