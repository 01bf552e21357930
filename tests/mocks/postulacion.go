package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	postDomain "github.com/ugelhub/convocatorias/internal/postulacion/domain"
	sharedDomain "github.com/ugelhub/convocatorias/internal/shared/domain"
	sharedQuery "github.com/ugelhub/convocatorias/internal/shared/platform/query"
)

// InMemoryPostulacionRepo simula PostulacionRepository. Outbox acumula los
// eventos escritos junto con cada transición para que los tests verifiquen
// qué se publicaría.
type InMemoryPostulacionRepo struct {
	Postulaciones map[uuid.UUID]*postDomain.Postulacion
	Outbox        []*sharedDomain.OutboxEvent
	mu            sync.Mutex
}

var _ postDomain.PostulacionRepository = (*InMemoryPostulacionRepo)(nil)

func NewInMemoryPostulacionRepo() *InMemoryPostulacionRepo {
	return &InMemoryPostulacionRepo{Postulaciones: make(map[uuid.UUID]*postDomain.Postulacion)}
}

func (r *InMemoryPostulacionRepo) ProximaSecuencia(ctx context.Context, convocatoriaID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.Postulaciones {
		if p.ConvocatoriaID == convocatoriaID {
			n++
		}
	}
	return n + 1, nil
}

func (r *InMemoryPostulacionRepo) CreateConEvento(ctx context.Context, p *postDomain.Postulacion, evt *sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.Postulaciones {
		if existing.Numero == p.Numero {
			return fmt.Errorf("numero_postulacion duplicado: %s", p.Numero)
		}
	}
	r.Postulaciones[p.ID] = p
	if evt != nil {
		r.Outbox = append(r.Outbox, evt)
	}
	return nil
}

func (r *InMemoryPostulacionRepo) UpdateConEvento(ctx context.Context, p *postDomain.Postulacion, evt *sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Postulaciones[p.ID]; !ok {
		return postDomain.ErrPostulacionNotFound
	}
	r.Postulaciones[p.ID] = p
	if evt != nil {
		r.Outbox = append(r.Outbox, evt)
	}
	return nil
}

func (r *InMemoryPostulacionRepo) GetByID(ctx context.Context, id uuid.UUID) (*postDomain.Postulacion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Postulaciones[id]
	if !ok {
		return nil, postDomain.ErrPostulacionNotFound
	}
	return p, nil
}

func (r *InMemoryPostulacionRepo) ExistsActiva(ctx context.Context, userID, plazaID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.Postulaciones {
		if p.UserID == userID && p.PlazaID == plazaID && p.Activa() {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryPostulacionRepo) List(ctx context.Context, criteria sharedDomain.Criteria, p sharedQuery.OffsetPagination, s sharedQuery.Sort) (*sharedQuery.Page[*postDomain.PostulacionListado], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var list []*postDomain.PostulacionListado
	for _, post := range r.Postulaciones {
		if matchPostulacion(post, criteria) {
			list = append(list, &postDomain.PostulacionListado{Postulacion: *post})
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

func matchPostulacion(p *postDomain.Postulacion, criteria sharedDomain.Criteria) bool {
	if criteria == nil {
		return true
	}
	for _, c := range criteria.ToConditions() {
		val := fmt.Sprintf("%v", c.Value)
		switch c.Field {
		case "po.convocatoria_id":
			if p.ConvocatoriaID.String() != val {
				return false
			}
		case "po.plaza_id":
			if p.PlazaID.String() != val {
				return false
			}
		case "po.user_id":
			if p.UserID.String() != val {
				return false
			}
		case "po.estado":
			if string(p.Estado) != val {
				return false
			}
		}
	}
	return true
}

// ------------------- Evaluaciones -------------------

type InMemoryEvaluacionRepo struct {
	Evaluaciones map[uuid.UUID]*postDomain.Evaluacion // por postulación

	// Postulaciones apunta al repo de postulaciones para replicar la
	// escritura conjunta de Registrar.
	Postulaciones *InMemoryPostulacionRepo
	mu            sync.Mutex
}

var _ postDomain.EvaluacionRepository = (*InMemoryEvaluacionRepo)(nil)

func NewInMemoryEvaluacionRepo(postulaciones *InMemoryPostulacionRepo) *InMemoryEvaluacionRepo {
	return &InMemoryEvaluacionRepo{
		Evaluaciones:  make(map[uuid.UUID]*postDomain.Evaluacion),
		Postulaciones: postulaciones,
	}
}

func (r *InMemoryEvaluacionRepo) Registrar(ctx context.Context, e *postDomain.Evaluacion, p *postDomain.Postulacion, evt *sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	if _, ok := r.Evaluaciones[e.PostulacionID]; ok {
		r.mu.Unlock()
		return postDomain.ErrEvaluacionDuplicada
	}
	r.Evaluaciones[e.PostulacionID] = e
	r.mu.Unlock()
	return r.Postulaciones.UpdateConEvento(ctx, p, evt)
}

func (r *InMemoryEvaluacionRepo) GetByPostulacion(ctx context.Context, postulacionID uuid.UUID) (*postDomain.Evaluacion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.Evaluaciones[postulacionID]
	if !ok {
		return nil, postDomain.ErrEvaluacionNotFound
	}
	return e, nil
}

// ------------------- Documentos -------------------

type InMemoryDocumentoRepo struct {
	Documentos map[uuid.UUID]*postDomain.Documento
	mu         sync.Mutex
}

var _ postDomain.DocumentoRepository = (*InMemoryDocumentoRepo)(nil)

func NewInMemoryDocumentoRepo() *InMemoryDocumentoRepo {
	return &InMemoryDocumentoRepo{Documentos: make(map[uuid.UUID]*postDomain.Documento)}
}

func (r *InMemoryDocumentoRepo) Create(ctx context.Context, d *postDomain.Documento) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Documentos[d.ID] = d
	return nil
}

func (r *InMemoryDocumentoRepo) GetByID(ctx context.Context, id uuid.UUID) (*postDomain.Documento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.Documentos[id]
	if !ok {
		return nil, postDomain.ErrDocumentoNotFound
	}
	return d, nil
}

func (r *InMemoryDocumentoRepo) ListByPostulacion(ctx context.Context, postulacionID uuid.UUID) ([]*postDomain.Documento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*postDomain.Documento
	for _, d := range r.Documentos {
		if d.PostulacionID == postulacionID {
			list = append(list, d)
		}
	}
	return list, nil
}

func (r *InMemoryDocumentoRepo) Update(ctx context.Context, d *postDomain.Documento) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Documentos[d.ID]; !ok {
		return postDomain.ErrDocumentoNotFound
	}
	r.Documentos[d.ID] = d
	return nil
}

func (r *InMemoryDocumentoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Documentos[id]; !ok {
		return postDomain.ErrDocumentoNotFound
	}
	delete(r.Documentos, id)
	return nil
}

// ------------------- Recomendaciones -------------------

type InMemoryRecomendacionRepo struct {
	Recomendaciones map[uuid.UUID]*postDomain.RecomendacionIa
	mu              sync.Mutex
}

var _ postDomain.RecomendacionRepository = (*InMemoryRecomendacionRepo)(nil)

func NewInMemoryRecomendacionRepo() *InMemoryRecomendacionRepo {
	return &InMemoryRecomendacionRepo{Recomendaciones: make(map[uuid.UUID]*postDomain.RecomendacionIa)}
}

func (r *InMemoryRecomendacionRepo) Create(ctx context.Context, rec *postDomain.RecomendacionIa) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Recomendaciones[rec.ID] = rec
	return nil
}

func (r *InMemoryRecomendacionRepo) GetByID(ctx context.Context, id uuid.UUID) (*postDomain.RecomendacionIa, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.Recomendaciones[id]
	if !ok {
		return nil, postDomain.ErrRecomendacionNotFound
	}
	return rec, nil
}

func (r *InMemoryRecomendacionRepo) ListByUsuario(ctx context.Context, userID uuid.UUID) ([]*postDomain.RecomendacionIa, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*postDomain.RecomendacionIa
	for _, rec := range r.Recomendaciones {
		if rec.UserID == userID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (r *InMemoryRecomendacionRepo) Update(ctx context.Context, rec *postDomain.RecomendacionIa) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Recomendaciones[rec.ID]; !ok {
		return postDomain.ErrRecomendacionNotFound
	}
	r.Recomendaciones[rec.ID] = rec
	return nil
}

// ------------------- Directorios de convocatorias -------------------

// StubPlazaDirectory sirve instantáneas de plaza precargadas.
type StubPlazaDirectory struct {
	Plazas map[uuid.UUID]*postDomain.PlazaInfo
}

var _ postDomain.PlazaDirectory = (*StubPlazaDirectory)(nil)

func (s *StubPlazaDirectory) GetPlazaInfo(ctx context.Context, id uuid.UUID) (*postDomain.PlazaInfo, error) {
	p, ok := s.Plazas[id]
	if !ok {
		return nil, postDomain.ErrPlazaNotFound
	}
	return p, nil
}

// StubConvocatoriaDirectory sirve instantáneas de convocatoria precargadas.
type StubConvocatoriaDirectory struct {
	Convocatorias map[uuid.UUID]*postDomain.ConvocatoriaInfo
}

var _ postDomain.ConvocatoriaDirectory = (*StubConvocatoriaDirectory)(nil)

func (s *StubConvocatoriaDirectory) GetConvocatoriaInfo(ctx context.Context, id uuid.UUID) (*postDomain.ConvocatoriaInfo, error) {
	c, ok := s.Convocatorias[id]
	if !ok {
		return nil, postDomain.ErrConvocatoriaNotFound
	}
	return c, nil
}
