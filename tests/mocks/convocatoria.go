package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	convDomain "github.com/ugelhub/convocatorias/internal/convocatoria/domain"
	sharedDomain "github.com/ugelhub/convocatorias/internal/shared/domain"
	sharedQuery "github.com/ugelhub/convocatorias/internal/shared/platform/query"
)

// InMemoryConvocatoriaRepo simula ConvocatoriaRepository. Postulaciones
// lleva el conteo de dependientes por convocatoria para el guard de
// borrado; las plazas hijas se cuentan desde el repo de plazas enlazado.
type InMemoryConvocatoriaRepo struct {
	Convocatorias map[uuid.UUID]*convDomain.Convocatoria
	Plazas        *InMemoryPlazaRepo
	mu            sync.Mutex
}

var _ convDomain.ConvocatoriaRepository = (*InMemoryConvocatoriaRepo)(nil)

func NewInMemoryConvocatoriaRepo(plazas *InMemoryPlazaRepo) *InMemoryConvocatoriaRepo {
	return &InMemoryConvocatoriaRepo{
		Convocatorias: make(map[uuid.UUID]*convDomain.Convocatoria),
		Plazas:        plazas,
	}
}

func (r *InMemoryConvocatoriaRepo) Create(ctx context.Context, c *convDomain.Convocatoria) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Convocatorias[c.ID] = c
	return nil
}

func (r *InMemoryConvocatoriaRepo) Update(ctx context.Context, c *convDomain.Convocatoria) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Convocatorias[c.ID]; !ok {
		return convDomain.ErrConvocatoriaNotFound
	}
	r.Convocatorias[c.ID] = c
	return nil
}

func (r *InMemoryConvocatoriaRepo) GetByID(ctx context.Context, id uuid.UUID) (*convDomain.Convocatoria, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.Convocatorias[id]
	if !ok {
		return nil, convDomain.ErrConvocatoriaNotFound
	}
	return c, nil
}

func (r *InMemoryConvocatoriaRepo) List(ctx context.Context, criteria sharedDomain.Criteria, p sharedQuery.OffsetPagination, s sharedQuery.Sort) (*sharedQuery.Page[*convDomain.ConvocatoriaListado], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var list []*convDomain.ConvocatoriaListado
	for _, c := range r.Convocatorias {
		if matchConvocatoria(c, criteria) {
			list = append(list, r.listado(c))
		}
	}

	total := int64(len(list))
	start := p.Offset
	if start > len(list) {
		start = len(list)
	}
	end := start + p.Limit
	if end > len(list) {
		end = len(list)
	}

	page := p.Offset/p.Limit + 1
	return sharedQuery.NewPage(list[start:end], total, page, p.Limit), nil
}

func (r *InMemoryConvocatoriaRepo) ListAbiertas(ctx context.Context) ([]*convDomain.ConvocatoriaListado, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*convDomain.ConvocatoriaListado
	for _, c := range r.Convocatorias {
		if c.Estado == convDomain.ConvocatoriaPublicada || c.Estado == convDomain.ConvocatoriaActiva {
			list = append(list, r.listado(c))
		}
	}
	return list, nil
}

func (r *InMemoryConvocatoriaRepo) Delete(ctx context.Context, id uuid.UUID) (sharedDomain.DeleteOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Convocatorias[id]; !ok {
		return sharedDomain.DeleteOutcome{}, convDomain.ErrConvocatoriaNotFound
	}
	if n := r.plazasDe(id); n > 0 {
		return sharedDomain.DeleteBlocked("plazas", n), nil
	}
	delete(r.Convocatorias, id)
	return sharedDomain.DeleteDone(), nil
}

func (r *InMemoryConvocatoriaRepo) listado(c *convDomain.Convocatoria) *convDomain.ConvocatoriaListado {
	return &convDomain.ConvocatoriaListado{
		Convocatoria:      *c,
		PlazasDisponibles: c.TotalPlazas - int(r.plazasDe(c.ID)),
	}
}

func (r *InMemoryConvocatoriaRepo) plazasDe(id uuid.UUID) int64 {
	if r.Plazas == nil {
		return 0
	}
	r.Plazas.mu.Lock()
	defer r.Plazas.mu.Unlock()
	var n int64
	for _, p := range r.Plazas.Plazas {
		if p.ConvocatoriaID == id {
			n++
		}
	}
	return n
}

func matchConvocatoria(c *convDomain.Convocatoria, criteria sharedDomain.Criteria) bool {
	if criteria == nil {
		return true
	}
	for _, cond := range criteria.ToConditions() {
		val := fmt.Sprintf("%v", cond.Value)
		switch cond.Field {
		case "c.ugel_id":
			if c.UgelID.String() != val {
				return false
			}
		case "c.estado":
			if string(c.Estado) != val {
				return false
			}
		case "c.anio":
			if fmt.Sprintf("%d", c.Anio) != val {
				return false
			}
		}
	}
	return true
}

// ------------------- Plazas -------------------

type InMemoryPlazaRepo struct {
	Plazas map[uuid.UUID]*convDomain.Plaza

	// PostulacionesPorPlaza alimenta el guard de borrado.
	PostulacionesPorPlaza map[uuid.UUID]int64
	mu                    sync.Mutex
}

var _ convDomain.PlazaRepository = (*InMemoryPlazaRepo)(nil)

func NewInMemoryPlazaRepo() *InMemoryPlazaRepo {
	return &InMemoryPlazaRepo{
		Plazas:                make(map[uuid.UUID]*convDomain.Plaza),
		PostulacionesPorPlaza: make(map[uuid.UUID]int64),
	}
}

func (r *InMemoryPlazaRepo) Create(ctx context.Context, p *convDomain.Plaza) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Plazas[p.ID] = p
	return nil
}

func (r *InMemoryPlazaRepo) Update(ctx context.Context, p *convDomain.Plaza) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Plazas[p.ID]; !ok {
		return convDomain.ErrPlazaNotFound
	}
	r.Plazas[p.ID] = p
	return nil
}

func (r *InMemoryPlazaRepo) GetByID(ctx context.Context, id uuid.UUID) (*convDomain.Plaza, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Plazas[id]
	if !ok {
		return nil, convDomain.ErrPlazaNotFound
	}
	return p, nil
}

func (r *InMemoryPlazaRepo) List(ctx context.Context, criteria sharedDomain.Criteria, p sharedQuery.OffsetPagination, s sharedQuery.Sort) (*sharedQuery.Page[*convDomain.PlazaListado], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var list []*convDomain.PlazaListado
	for _, plaza := range r.Plazas {
		if matchPlaza(plaza, criteria) {
			list = append(list, &convDomain.PlazaListado{Plaza: *plaza})
		}
	}

	total := int64(len(list))
	start := p.Offset
	if start > len(list) {
		start = len(list)
	}
	end := start + p.Limit
	if end > len(list) {
		end = len(list)
	}

	page := p.Offset/p.Limit + 1
	return sharedQuery.NewPage(list[start:end], total, page, p.Limit), nil
}

func (r *InMemoryPlazaRepo) Delete(ctx context.Context, id uuid.UUID) (sharedDomain.DeleteOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Plazas[id]; !ok {
		return sharedDomain.DeleteOutcome{}, convDomain.ErrPlazaNotFound
	}
	if n := r.PostulacionesPorPlaza[id]; n > 0 {
		return sharedDomain.DeleteBlocked("postulaciones", n), nil
	}
	delete(r.Plazas, id)
	return sharedDomain.DeleteDone(), nil
}

func matchPlaza(p *convDomain.Plaza, criteria sharedDomain.Criteria) bool {
	if criteria == nil {
		return true
	}
	for _, cond := range criteria.ToConditions() {
		val := fmt.Sprintf("%v", cond.Value)
		switch cond.Field {
		case "p.convocatoria_id":
			if p.ConvocatoriaID.String() != val {
				return false
			}
		case "p.institucion_id":
			if p.InstitucionID.String() != val {
				return false
			}
		case "p.estado":
			if string(p.Estado) != val {
				return false
			}
		case "p.nivel":
			if p.Nivel != val {
				return false
			}
		}
	}
	return true
}

// ------------------- Directorios de organización -------------------

// StubUgelDirectory responde existencia desde un set precargado.
type StubUgelDirectory struct {
	Ugels map[uuid.UUID]bool
}

var _ convDomain.UgelDirectory = (*StubUgelDirectory)(nil)

func (s *StubUgelDirectory) UgelExiste(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.Ugels[id], nil
}

type StubInstitucionDirectory struct {
	Instituciones map[uuid.UUID]bool
}

var _ convDomain.InstitucionDirectory = (*StubInstitucionDirectory)(nil)

func (s *StubInstitucionDirectory) InstitucionExiste(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.Instituciones[id], nil
}
