package query

// ---------- Tipos de filtrado / paginación / ordenamiento ----------

// DefaultPerPage es el tamaño de página cuando el cliente no envía per_page.
const DefaultPerPage = 10

// MaxPerPage acota per_page para no permitir páginas arbitrariamente grandes.
const MaxPerPage = 100

// OffsetPagination para paginación clásica
type OffsetPagination struct {
	Limit  int
	Offset int
}

// FromPage construye la paginación de una página 1-indexada.
func FromPage(page, perPage int) OffsetPagination {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	if page < 1 {
		page = 1
	}
	return OffsetPagination{Limit: perPage, Offset: (page - 1) * perPage}
}

// SortKey indica campo y dirección.
type SortKey struct {
	Field string // ej. "created_at", "nombre"; puede ser una expresión del repo
	Desc  bool
}

// Sort es una lista ordenada de claves. La traducción a SQL añade siempre
// "id" como desempate estable: sin él, la paginación por offset puede
// saltar o duplicar filas cuando hay empates en la clave principal.
type Sort struct {
	Keys []SortKey
}

// By crea un Sort de una sola clave.
func By(field string, desc bool) Sort {
	return Sort{Keys: []SortKey{{Field: field, Desc: desc}}}
}

// Then añade una clave secundaria.
func (s Sort) Then(field string, desc bool) Sort {
	s.Keys = append(s.Keys, SortKey{Field: field, Desc: desc})
	return s
}

// ---------- Página de resultados ----------

// Page agrupa una página de resultados con los metadatos que necesita la
// UI para pintar la paginación conservando los filtros activos.
type Page[T any] struct {
	Items       []T   `json:"data"`
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	From        int   `json:"from"`
	To          int   `json:"to"`
}

// NewPage calcula los metadatos de la página. Una página fuera de rango
// produce Items vacío con metadatos correctos, nunca un error.
func NewPage[T any](items []T, total int64, page, perPage int) *Page[T] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page < 1 {
		page = 1
	}

	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	from, to := 0, 0
	if len(items) > 0 {
		from = (page-1)*perPage + 1
		to = from + len(items) - 1
	}

	return &Page[T]{
		Items:       items,
		Total:       total,
		PerPage:     perPage,
		CurrentPage: page,
		LastPage:    lastPage,
		From:        from,
		To:          to,
	}
}

// Map convierte una página de un tipo a otro conservando los metadatos.
func Map[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, fn(it))
	}
	return &Page[U]{
		Items:       items,
		Total:       p.Total,
		PerPage:     p.PerPage,
		CurrentPage: p.CurrentPage,
		LastPage:    p.LastPage,
		From:        p.From,
		To:          p.To,
	}
}
