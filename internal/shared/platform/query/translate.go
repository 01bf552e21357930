package query

import (
	"fmt"
	"strings"

	sharedDomain "github.com/ugelhub/convocatorias/internal/shared/domain"
	sharedUtils "github.com/ugelhub/convocatorias/internal/shared/infra/utils"
)

// Dialect identifica el backend SQL para placeholders y operadores.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

// Placeholder devuelve el marcador de parámetro 1-indexado del dialecto.
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Translate traduce el árbol de criterios a una cláusula WHERE (sin la
// palabra WHERE) y sus argumentos. A diferencia de aplanar y unir con AND,
// respeta la agrupación: un grupo OR queda entre paréntesis, de modo que
// (filtros exactos) AND (grupo de búsqueda OR) se componen correctamente.
func Translate(c sharedDomain.Criteria, d Dialect) (string, []interface{}) {
	var args []interface{}
	clause := translateNode(c, d, &args)
	return clause, args
}

func translateNode(c sharedDomain.Criteria, d Dialect, args *[]interface{}) string {
	switch node := c.(type) {
	case sharedDomain.CompositeCriteria:
		var parts []string
		for _, child := range node.Criterias {
			if part := translateNode(child, d, args); part != "" {
				parts = append(parts, part)
			}
		}
		if len(parts) == 0 {
			return ""
		}
		if len(parts) == 1 {
			return parts[0]
		}
		return "(" + strings.Join(parts, " "+string(node.Operator)+" ") + ")"
	default:
		// Un criterio hoja puede aportar varias condiciones (rangos);
		// se combinan siempre con AND.
		var parts []string
		for _, cond := range c.ToConditions() {
			parts = append(parts, renderCriterion(cond, d, args))
		}
		if len(parts) == 0 {
			return ""
		}
		if len(parts) == 1 {
			return parts[0]
		}
		return "(" + strings.Join(parts, " AND ") + ")"
	}
}

func renderCriterion(cond sharedDomain.Criterion, d Dialect, args *[]interface{}) string {
	op := cond.Op
	// SQLite no tiene ILIKE; su LIKE ya es case-insensitive para ASCII.
	if d == SQLite && op == sharedDomain.OpILike {
		op = sharedDomain.OpLike
	}

	*args = append(*args, cond.Value)
	clause := fmt.Sprintf("%s %s %s", cond.Field, op, d.Placeholder(len(*args)))

	// Los patrones de búsqueda se escapan con EscapeLike; ESCAPE fija el
	// carácter para que % y _ del usuario se comparen literalmente.
	if op == sharedDomain.OpLike || op == sharedDomain.OpILike {
		clause += ` ESCAPE '\'`
	}
	return clause
}

// OrderBy arma la cláusula ORDER BY con "id ASC" como desempate estable.
// idColumn permite cualificar la columna cuando la consulta lleva JOINs
// (ej. "i.id").
func OrderBy(s Sort, idColumn string) string {
	if idColumn == "" {
		idColumn = "id"
	}

	var keys []string
	tieBroken := false
	for _, k := range s.Keys {
		keys = append(keys, k.Field+" "+sharedUtils.Ternary(k.Desc, "DESC", "ASC"))
		if k.Field == idColumn {
			tieBroken = true
		}
	}
	if !tieBroken {
		keys = append(keys, idColumn+" ASC")
	}
	return "ORDER BY " + strings.Join(keys, ", ")
}

// Paginate añade LIMIT/OFFSET con placeholders del dialecto.
func Paginate(p OffsetPagination, d Dialect, args *[]interface{}) string {
	*args = append(*args, p.Limit)
	limit := d.Placeholder(len(*args))
	*args = append(*args, p.Offset)
	offset := d.Placeholder(len(*args))
	return fmt.Sprintf("LIMIT %s OFFSET %s", limit, offset)
}
