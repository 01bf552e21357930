package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ugelhub/convocatorias/internal/organizacion/domain"
	shared "github.com/ugelhub/convocatorias/internal/shared/domain"
	sharedQuery "github.com/ugelhub/convocatorias/internal/shared/platform/query"
)

// OrganizacionService agrupa los casos de uso de la jerarquía
// Región → UGEL → Distrito → Institución.
type OrganizacionService struct {
	regiones      domain.RegionRepository
	ugels         domain.UgelRepository
	distritos     domain.DistritoRepository
	instituciones domain.InstitucionRepository
	log           *zap.Logger
}

func NewOrganizacionService(
	regiones domain.RegionRepository,
	ugels domain.UgelRepository,
	distritos domain.DistritoRepository,
	instituciones domain.InstitucionRepository,
	log *zap.Logger,
) *OrganizacionService {
	return &OrganizacionService{
		regiones:      regiones,
		ugels:         ugels,
		distritos:     distritos,
		instituciones: instituciones,
		log:           log,
	}
}

// El orden por defecto de cada recurso es fijo y determinista; el
// traductor añade id como desempate para que la paginación sea estable.

// ---------------- Región ----------------

func (s *OrganizacionService) CreateRegion(ctx context.Context, nombre, codigo string, estado domain.Estado) (*domain.Region, error) {
	now := time.Now().UTC()
	region := &domain.Region{
		ID:        uuid.New(),
		Nombre:    nombre,
		Codigo:    codigo,
		Estado:    estado,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.regiones.Create(ctx, region); err != nil {
		return nil, err
	}
	return region, nil
}

func (s *OrganizacionService) GetRegion(ctx context.Context, id uuid.UUID) (*domain.Region, error) {
	return s.regiones.GetByID(ctx, id)
}

func (s *OrganizacionService) UpdateRegion(ctx context.Context, r *domain.Region) error {
	r.UpdatedAt = time.Now().UTC()
	return s.regiones.Update(ctx, r)
}

func (s *OrganizacionService) ListRegiones(ctx context.Context, criteria shared.Criteria, page, perPage int) (*sharedQuery.Page[*domain.Region], error) {
	return s.regiones.List(ctx, criteria, sharedQuery.FromPage(page, perPage), sharedQuery.By("r.nombre", false))
}

func (s *OrganizacionService) RegionesActivas(ctx context.Context) ([]*domain.Region, error) {
	return s.regiones.ListActivas(ctx)
}

func (s *OrganizacionService) DeleteRegion(ctx context.Context, id uuid.UUID) (shared.DeleteOutcome, error) {
	return s.regiones.Delete(ctx, id)
}

// ---------------- UGEL ----------------

func (s *OrganizacionService) CreateUgel(ctx context.Context, u *domain.Ugel) (*domain.Ugel, error) {
	if _, err := s.regiones.GetByID(ctx, u.RegionID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u.ID = uuid.New()
	u.CreatedAt = now
	u.UpdatedAt = now
	if err := s.ugels.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *OrganizacionService) GetUgel(ctx context.Context, id uuid.UUID) (*domain.Ugel, error) {
	return s.ugels.GetByID(ctx, id)
}

func (s *OrganizacionService) UpdateUgel(ctx context.Context, u *domain.Ugel) error {
	u.UpdatedAt = time.Now().UTC()
	return s.ugels.Update(ctx, u)
}

func (s *OrganizacionService) ListUgels(ctx context.Context, criteria shared.Criteria, page, perPage int) (*sharedQuery.Page[*domain.UgelListado], error) {
	return s.ugels.List(ctx, criteria, sharedQuery.FromPage(page, perPage), sharedQuery.By("u.nombre", false))
}

func (s *OrganizacionService) UgelsActivas(ctx context.Context) ([]*domain.Ugel, error) {
	return s.ugels.ListActivas(ctx)
}

func (s *OrganizacionService) DeleteUgel(ctx context.Context, id uuid.UUID) (shared.DeleteOutcome, error) {
	return s.ugels.Delete(ctx, id)
}

// ---------------- Distrito ----------------

func (s *OrganizacionService) CreateDistrito(ctx context.Context, d *domain.Distrito) (*domain.Distrito, error) {
	if _, err := s.ugels.GetByID(ctx, d.UgelID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	d.ID = uuid.New()
	d.CreatedAt = now
	d.UpdatedAt = now
	if err := s.distritos.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *OrganizacionService) GetDistrito(ctx context.Context, id uuid.UUID) (*domain.Distrito, error) {
	return s.distritos.GetByID(ctx, id)
}

func (s *OrganizacionService) UpdateDistrito(ctx context.Context, d *domain.Distrito) error {
	d.UpdatedAt = time.Now().UTC()
	return s.distritos.Update(ctx, d)
}

func (s *OrganizacionService) ListDistritos(ctx context.Context, criteria shared.Criteria, page, perPage int) (*sharedQuery.Page[*domain.DistritoListado], error) {
	return s.distritos.List(ctx, criteria, sharedQuery.FromPage(page, perPage), sharedQuery.By("d.created_at", true))
}

func (s *OrganizacionService) DistritosActivos(ctx context.Context) ([]*domain.Distrito, error) {
	return s.distritos.ListActivos(ctx)
}

func (s *OrganizacionService) DeleteDistrito(ctx context.Context, id uuid.UUID) (shared.DeleteOutcome, error) {
	return s.distritos.Delete(ctx, id)
}

// ---------------- Institución ----------------

func (s *OrganizacionService) CreateInstitucion(ctx context.Context, i *domain.Institucion) (*domain.Institucion, error) {
	if _, err := s.distritos.GetByID(ctx, i.DistritoID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	i.ID = uuid.New()
	i.CreatedAt = now
	i.UpdatedAt = now
	if err := s.instituciones.Create(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *OrganizacionService) GetInstitucion(ctx context.Context, id uuid.UUID) (*domain.Institucion, error) {
	return s.instituciones.GetByID(ctx, id)
}

func (s *OrganizacionService) UpdateInstitucion(ctx context.Context, i *domain.Institucion) error {
	i.UpdatedAt = time.Now().UTC()
	return s.instituciones.Update(ctx, i)
}

func (s *OrganizacionService) ListInstituciones(ctx context.Context, criteria shared.Criteria, page, perPage int) (*sharedQuery.Page[*domain.InstitucionListado], error) {
	return s.instituciones.List(ctx, criteria, sharedQuery.FromPage(page, perPage), sharedQuery.By("i.created_at", true))
}

func (s *OrganizacionService) InstitucionesActivas(ctx context.Context) ([]*domain.Institucion, error) {
	return s.instituciones.ListActivas(ctx)
}

func (s *OrganizacionService) DeleteInstitucion(ctx context.Context, id uuid.UUID) (shared.DeleteOutcome, error) {
	return s.instituciones.Delete(ctx, id)
}
