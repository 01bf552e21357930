package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ugelhub/convocatorias/internal/convocatoria/domain"
	shared "github.com/ugelhub/convocatorias/internal/shared/domain"
	"github.com/ugelhub/convocatorias/internal/shared/platform/cache"
	sharedQuery "github.com/ugelhub/convocatorias/internal/shared/platform/query"
)

// ConvocatoriaService agrupa los casos de uso de convocatorias y plazas.
type ConvocatoriaService struct {
	convocatorias domain.ConvocatoriaRepository
	plazas        domain.PlazaRepository
	ugels         domain.UgelDirectory
	instituciones domain.InstitucionDirectory
	cache         cache.Cache
	cacheTTL      int
	log           *zap.Logger
}

func NewConvocatoriaService(
	convocatorias domain.ConvocatoriaRepository,
	plazas domain.PlazaRepository,
	ugels domain.UgelDirectory,
	instituciones domain.InstitucionDirectory,
	c cache.Cache,
	cacheTTL int,
	log *zap.Logger,
) *ConvocatoriaService {
	return &ConvocatoriaService{
		convocatorias: convocatorias,
		plazas:        plazas,
		ugels:         ugels,
		instituciones: instituciones,
		cache:         c,
		cacheTTL:      cacheTTL,
		log:           log,
	}
}

func convocatoriaCacheKey(id uuid.UUID) string { return "convocatoria:" + id.String() }

// ---------------- Convocatoria ----------------

func (s *ConvocatoriaService) CreateConvocatoria(ctx context.Context, c *domain.Convocatoria) (*domain.Convocatoria, error) {
	ok, err := s.ugels.UgelExiste(ctx, c.UgelID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("ugel %s: %w", c.UgelID, domain.ErrConvocatoriaUgelInvalida)
	}

	now := time.Now().UTC()
	c.ID = uuid.New()
	if c.Estado == "" {
		c.Estado = domain.ConvocatoriaBorrador
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := s.convocatorias.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ConvocatoriaService) GetConvocatoria(ctx context.Context, id uuid.UUID) (*domain.Convocatoria, error) {
	if s.cache != nil {
		var cached domain.Convocatoria
		if hit, err := s.cache.Get(ctx, convocatoriaCacheKey(id), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	c, err := s.convocatorias.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cache.AsyncCacheSet(ctx, s.cache, convocatoriaCacheKey(id), c, s.cacheTTL, s.log)
	return c, nil
}

func (s *ConvocatoriaService) UpdateConvocatoria(ctx context.Context, c *domain.Convocatoria) error {
	c.UpdatedAt = time.Now().UTC()
	if err := s.convocatorias.Update(ctx, c); err != nil {
		return err
	}
	cache.AsyncCacheDelete(ctx, s.cache, convocatoriaCacheKey(c.ID), s.log)
	return nil
}

// CambiarEstado aplica una transición del ciclo de vida y la persiste.
func (s *ConvocatoriaService) CambiarEstado(ctx context.Context, id uuid.UUID, transicion func(*domain.Convocatoria) error) (*domain.Convocatoria, error) {
	c, err := s.convocatorias.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := transicion(c); err != nil {
		return nil, err
	}
	if err := s.UpdateConvocatoria(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Las convocatorias se listan por año descendente y, dentro del año, las
// más recientes primero.
func (s *ConvocatoriaService) ListConvocatorias(ctx context.Context, criteria shared.Criteria, page, perPage int) (*sharedQuery.Page[*domain.ConvocatoriaListado], error) {
	return s.convocatorias.List(ctx, criteria, sharedQuery.FromPage(page, perPage),
		sharedQuery.By("c.anio", true).Then("c.created_at", true))
}

func (s *ConvocatoriaService) ConvocatoriasAbiertas(ctx context.Context) ([]*domain.ConvocatoriaListado, error) {
	return s.convocatorias.ListAbiertas(ctx)
}

func (s *ConvocatoriaService) DeleteConvocatoria(ctx context.Context, id uuid.UUID) (shared.DeleteOutcome, error) {
	outcome, err := s.convocatorias.Delete(ctx, id)
	if err == nil && !outcome.Blocked {
		cache.AsyncCacheDelete(ctx, s.cache, convocatoriaCacheKey(id), s.log)
	}
	return outcome, err
}

// ---------------- Plaza ----------------

func (s *ConvocatoriaService) CreatePlaza(ctx context.Context, p *domain.Plaza) (*domain.Plaza, error) {
	if _, err := s.convocatorias.GetByID(ctx, p.ConvocatoriaID); err != nil {
		return nil, err
	}
	ok, err := s.instituciones.InstitucionExiste(ctx, p.InstitucionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("institucion %s: %w", p.InstitucionID, domain.ErrPlazaInstitucionInvalida)
	}
	if !p.Jornada.Valida() {
		return nil, fmt.Errorf("jornada %d: %w", p.Jornada, domain.ErrJornadaInvalida)
	}

	now := time.Now().UTC()
	p.ID = uuid.New()
	if p.Estado == "" {
		p.Estado = domain.PlazaActiva
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.plazas.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ConvocatoriaService) GetPlaza(ctx context.Context, id uuid.UUID) (*domain.Plaza, error) {
	return s.plazas.GetByID(ctx, id)
}

func (s *ConvocatoriaService) UpdatePlaza(ctx context.Context, p *domain.Plaza) error {
	if !p.Jornada.Valida() {
		return fmt.Errorf("jornada %d: %w", p.Jornada, domain.ErrJornadaInvalida)
	}
	p.UpdatedAt = time.Now().UTC()
	return s.plazas.Update(ctx, p)
}

func (s *ConvocatoriaService) ListPlazas(ctx context.Context, criteria shared.Criteria, page, perPage int) (*sharedQuery.Page[*domain.PlazaListado], error) {
	return s.plazas.List(ctx, criteria, sharedQuery.FromPage(page, perPage), sharedQuery.By("p.created_at", true))
}

func (s *ConvocatoriaService) DeletePlaza(ctx context.Context, id uuid.UUID) (shared.DeleteOutcome, error) {
	return s.plazas.Delete(ctx, id)
}
