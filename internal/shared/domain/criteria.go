package domain

import "strings"

// ---------------- Operadores ----------------

type Operator string

const (
	OpEq    Operator = "="
	OpNeq   Operator = "<>"
	OpGt    Operator = ">"
	OpGte   Operator = ">="
	OpLt    Operator = "<"
	OpLte   Operator = "<="
	OpLike  Operator = "LIKE"
	OpILike Operator = "ILIKE"
)

type LogicalOperator string

const (
	OpAnd LogicalOperator = "AND"
	OpOr  LogicalOperator = "OR"
)

// ---------------- Criterion ----------------

// Criterion describe una condición neutral de filtrado.
// Field puede ir cualificado con alias de tabla ("i.nombre") cuando el
// repositorio hace JOINs para búsqueda sobre entidades padre.
type Criterion struct {
	Field string
	Op    Operator
	Value interface{}
}

func (c Criterion) ToConditions() []Criterion { return []Criterion{c} }

// ---------------- Criteria interface ----------------

// Criteria permite transformar filtros a condiciones neutrales.
// Los adapters de persistencia traducen el árbol completo (ver
// internal/shared/platform/query), respetando la agrupación AND/OR;
// ToConditions aplana el árbol para consumidores que no necesitan grupos
// (p. ej. repos en memoria de los tests).
type Criteria interface {
	ToConditions() []Criterion
}

// ---------------- Composite Criteria ----------------

// CompositeCriteria agrupa sub-criterios bajo un operador lógico. Un grupo
// OR se traduce entre paréntesis, de modo que la búsqueda de texto libre
// no rompa la conjunción con el resto de filtros exactos.
type CompositeCriteria struct {
	Operator  LogicalOperator
	Criterias []Criteria
}

func (c CompositeCriteria) ToConditions() []Criterion {
	var all []Criterion
	for _, crit := range c.Criterias {
		all = append(all, crit.ToConditions()...)
	}
	return all
}

// IsEmpty indica que el grupo no aporta ninguna condición.
func (c CompositeCriteria) IsEmpty() bool {
	return len(c.ToConditions()) == 0
}

// ---------------- Helpers ----------------

// And crea un CompositeCriteria con operador AND
func And(criterias ...Criteria) CompositeCriteria {
	return CompositeCriteria{Operator: OpAnd, Criterias: criterias}
}

// Or crea un CompositeCriteria con operador OR
func Or(criterias ...Criteria) CompositeCriteria {
	return CompositeCriteria{Operator: OpOr, Criterias: criterias}
}

// EscapeLike escapa los metacaracteres de LIKE para que la búsqueda del
// usuario sea literal: "25%" debe encontrar la subcadena "25%", no usar
// el comodín. Las cláusulas LIKE generadas llevan ESCAPE '\'.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// SearchPattern construye el patrón de subcadena literal para una búsqueda
// de texto libre.
func SearchPattern(term string) string {
	return "%" + EscapeLike(term) + "%"
}
