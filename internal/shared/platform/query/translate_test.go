package query

import (
	"testing"

	sharedDomain "github.com/ugelhub/convocatorias/internal/shared/domain"
	"github.com/stretchr/testify/assert"
)

func eq(field string, value interface{}) sharedDomain.Criterion {
	return sharedDomain.Criterion{Field: field, Op: sharedDomain.OpEq, Value: value}
}

func ilike(field, pattern string) sharedDomain.Criterion {
	return sharedDomain.Criterion{Field: field, Op: sharedDomain.OpILike, Value: pattern}
}

func TestTranslate_ExactFiltersAnd(t *testing.T) {
	criteria := sharedDomain.And(eq("ugel_id", "u-1"), eq("estado", "activo"))

	clause, args := Translate(criteria, Postgres)
	assert.Equal(t, "(ugel_id = $1 AND estado = $2)", clause)
	assert.Equal(t, []interface{}{"u-1", "activo"}, args)
}

func TestTranslate_SearchOrGroupKeepsConjunction(t *testing.T) {
	// (estado = ?) AND (nombre ILIKE ? OR codigo ILIKE ?): el grupo OR
	// debe quedar entre paréntesis para no romper el AND exterior.
	criteria := sharedDomain.And(
		eq("estado", "activo"),
		sharedDomain.Or(
			ilike("nombre", "%lima%"),
			ilike("codigo", "%lima%"),
		),
	)

	clause, args := Translate(criteria, Postgres)
	assert.Equal(t, `(estado = $1 AND (nombre ILIKE $2 ESCAPE '\' OR codigo ILIKE $3 ESCAPE '\'))`, clause)
	assert.Len(t, args, 3)
}

func TestTranslate_EmptyComposite(t *testing.T) {
	clause, args := Translate(sharedDomain.And(), Postgres)
	assert.Equal(t, "", clause)
	assert.Empty(t, args)
}

func TestTranslate_SQLiteDialect(t *testing.T) {
	criteria := sharedDomain.And(eq("estado", "activo"), ilike("nombre", "%ana%"))

	clause, args := Translate(criteria, SQLite)
	// SQLite usa ? y no tiene ILIKE.
	assert.Equal(t, `(estado = ? AND nombre LIKE ? ESCAPE '\')`, clause)
	assert.Len(t, args, 2)
}

func TestEscapeLike_LiteralWildcards(t *testing.T) {
	assert.Equal(t, `25\%`, sharedDomain.EscapeLike("25%"))
	assert.Equal(t, `a\_b`, sharedDomain.EscapeLike("a_b"))
	assert.Equal(t, `c\\d`, sharedDomain.EscapeLike(`c\d`))
	assert.Equal(t, `%25\%%`, sharedDomain.SearchPattern("25%"))
}

func TestOrderBy_AppendsStableTieBreak(t *testing.T) {
	sort := By("anio", true).Then("created_at", true)
	assert.Equal(t, "ORDER BY anio DESC, created_at DESC, id ASC", OrderBy(sort, ""))
}

func TestOrderBy_QualifiedIDNotDuplicated(t *testing.T) {
	sort := By("nombre", false).Then("i.id", false)
	assert.Equal(t, "ORDER BY nombre ASC, i.id ASC", OrderBy(sort, "i.id"))
}

func TestPaginate_Placeholders(t *testing.T) {
	var args []interface{}
	args = append(args, "activo")
	clause := Paginate(OffsetPagination{Limit: 10, Offset: 20}, Postgres, &args)
	assert.Equal(t, "LIMIT $2 OFFSET $3", clause)
	assert.Equal(t, []interface{}{"activo", 10, 20}, args)
}

func TestFromPage_Bounds(t *testing.T) {
	assert.Equal(t, OffsetPagination{Limit: 10, Offset: 0}, FromPage(0, 0))
	assert.Equal(t, OffsetPagination{Limit: 25, Offset: 50}, FromPage(3, 25))
	assert.Equal(t, OffsetPagination{Limit: MaxPerPage, Offset: 0}, FromPage(1, 1000))
}

func TestNewPage_Metadata(t *testing.T) {
	p := NewPage([]string{"a", "b", "c"}, 23, 2, 10)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 3, p.LastPage)
	assert.Equal(t, 11, p.From)
	assert.Equal(t, 13, p.To)
	assert.Equal(t, int64(23), p.Total)
}

func TestNewPage_OutOfRangeIsEmptyNotError(t *testing.T) {
	p := NewPage([]string{}, 23, 99, 10)
	assert.Empty(t, p.Items)
	assert.Equal(t, 99, p.CurrentPage)
	assert.Equal(t, 3, p.LastPage)
	assert.Equal(t, 0, p.From)
	assert.Equal(t, 0, p.To)
}

func TestNewPage_EmptyDataset(t *testing.T) {
	p := NewPage([]int{}, 0, 1, 10)
	assert.Equal(t, 1, p.LastPage)
	assert.Equal(t, 0, p.From)
}
