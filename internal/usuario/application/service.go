package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	shared "github.com/ugelhub/convocatorias/internal/shared/domain"
	"github.com/ugelhub/convocatorias/internal/shared/platform/cache"
	sharedQuery "github.com/ugelhub/convocatorias/internal/shared/platform/query"
	"github.com/ugelhub/convocatorias/internal/usuario/domain"
)

// Los administradores se ordenan antes que los docentes; dentro de cada
// grupo, por nombres y apellidos.
const ordenAdminPrimero = `CASE WHEN us.user_type = 'admin' THEN 0 ELSE 1 END`

// UsuarioService agrupa los casos de uso de usuarios, perfiles docentes y
// notificaciones.
type UsuarioService struct {
	usuarios       domain.UsuarioRepository
	perfiles       domain.PerfilRepository
	notificaciones domain.NotificacionRepository
	cache          cache.Cache
	cacheTTL       int
	log            *zap.Logger
}

func NewUsuarioService(
	usuarios domain.UsuarioRepository,
	perfiles domain.PerfilRepository,
	notificaciones domain.NotificacionRepository,
	c cache.Cache,
	cacheTTL int,
	log *zap.Logger,
) *UsuarioService {
	return &UsuarioService{
		usuarios:       usuarios,
		perfiles:       perfiles,
		notificaciones: notificaciones,
		cache:          c,
		cacheTTL:       cacheTTL,
		log:            log,
	}
}

func usuarioCacheKey(id uuid.UUID) string { return "usuario:" + id.String() }

func dniValido(dni string) bool {
	if len(dni) != 8 {
		return false
	}
	for _, r := range dni {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ---------------- Usuario ----------------

func (s *UsuarioService) CreateUsuario(ctx context.Context, u *domain.Usuario, password string) (*domain.Usuario, error) {
	if !dniValido(u.DNI) {
		return nil, domain.ErrDNIInvalido
	}
	if existente, err := s.usuarios.GetByDNI(ctx, u.DNI); err == nil && existente != nil {
		return nil, domain.ErrDNIEnUso
	} else if err != nil && !errors.Is(err, domain.ErrUsuarioNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u.ID = uuid.New()
	u.PasswordHash = string(hash)
	if u.Estado == "" {
		u.Estado = domain.UsuarioPendiente
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	if err := s.usuarios.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UsuarioService) GetUsuario(ctx context.Context, id uuid.UUID) (*domain.Usuario, error) {
	if s.cache != nil {
		var cached domain.Usuario
		if hit, err := s.cache.Get(ctx, usuarioCacheKey(id), &cached); err == nil && hit {
			return &cached, nil
		}
	}

	u, err := s.usuarios.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cache.AsyncCacheSet(ctx, s.cache, usuarioCacheKey(id), u, s.cacheTTL, s.log)
	return u, nil
}

func (s *UsuarioService) GetUsuarioPorDNI(ctx context.Context, dni string) (*domain.Usuario, error) {
	return s.usuarios.GetByDNI(ctx, dni)
}

// VerificarCredenciales compara la contraseña contra el hash almacenado.
func (s *UsuarioService) VerificarCredenciales(ctx context.Context, dni, password string) (*domain.Usuario, error) {
	u, err := s.usuarios.GetByDNI(ctx, dni)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUsuarioNotFound
	}
	return u, nil
}

func (s *UsuarioService) UpdateUsuario(ctx context.Context, u *domain.Usuario) error {
	u.UpdatedAt = time.Now().UTC()
	if err := s.usuarios.Update(ctx, u); err != nil {
		return err
	}
	cache.AsyncCacheDelete(ctx, s.cache, usuarioCacheKey(u.ID), s.log)
	return nil
}

func (s *UsuarioService) CambiarPassword(ctx context.Context, id uuid.UUID, password string) error {
	u, err := s.usuarios.GetByID(ctx, id)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	return s.UpdateUsuario(ctx, u)
}

func (s *UsuarioService) ListUsuarios(ctx context.Context, criteria shared.Criteria, page, perPage int) (*sharedQuery.Page[*domain.UsuarioListado], error) {
	sort := sharedQuery.By(ordenAdminPrimero, false).
		Then("us.nombres", false).
		Then("us.apellidos", false)
	return s.usuarios.List(ctx, criteria, sharedQuery.FromPage(page, perPage), sort)
}

// DeleteUsuario rechaza siempre el auto-borrado del actor, antes de
// cualquier otra comprobación.
func (s *UsuarioService) DeleteUsuario(ctx context.Context, actorID, id uuid.UUID) (shared.DeleteOutcome, error) {
	if actorID == id {
		return shared.DeleteOutcome{}, domain.ErrAutoBorrado
	}
	outcome, err := s.usuarios.Delete(ctx, id)
	if err == nil && !outcome.Blocked {
		cache.AsyncCacheDelete(ctx, s.cache, usuarioCacheKey(id), s.log)
	}
	return outcome, err
}

// ---------------- Perfil docente ----------------

func (s *UsuarioService) GetPerfil(ctx context.Context, usuarioID uuid.UUID) (*domain.PerfilDocente, error) {
	return s.perfiles.GetByUsuario(ctx, usuarioID)
}

// GuardarPerfil recalcula el score y la completitud sobre la instantánea
// recibida y los persiste junto con el resto de campos, de modo que los
// derivados nunca queden desfasados.
func (s *UsuarioService) GuardarPerfil(ctx context.Context, p *domain.PerfilDocente) (*domain.PerfilDocente, error) {
	if _, err := s.usuarios.GetByID(ctx, p.UsuarioID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	existente, err := s.perfiles.GetByUsuario(ctx, p.UsuarioID)
	switch {
	case err == nil:
		p.ID = existente.ID
		p.CreatedAt = existente.CreatedAt
	case errors.Is(err, domain.ErrPerfilNotFound):
		p.ID = uuid.New()
		p.CreatedAt = now
	default:
		return nil, err
	}
	p.UpdatedAt = now

	p.ScorePerfil, p.PerfilCompleto = domain.CalcularScore(p)

	if err := s.perfiles.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ---------------- Notificaciones ----------------

func (s *UsuarioService) NotificarUsuario(ctx context.Context, usuarioID uuid.UUID, tipo domain.TipoNotificacion, titulo, mensaje string) (*domain.Notificacion, error) {
	n := &domain.Notificacion{
		ID:        uuid.New(),
		UsuarioID: usuarioID,
		Tipo:      tipo,
		Titulo:    titulo,
		Mensaje:   mensaje,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.notificaciones.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *UsuarioService) ListNotificaciones(ctx context.Context, usuarioID uuid.UUID, soloNoLeidas bool, page, perPage int) (*sharedQuery.Page[*domain.Notificacion], error) {
	return s.notificaciones.ListByUsuario(ctx, usuarioID, soloNoLeidas, sharedQuery.FromPage(page, perPage))
}

func (s *UsuarioService) NotificacionesNoLeidas(ctx context.Context, usuarioID uuid.UUID) (int64, error) {
	return s.notificaciones.CountNoLeidas(ctx, usuarioID)
}

func (s *UsuarioService) MarcarNotificacionLeida(ctx context.Context, id uuid.UUID) error {
	return s.notificaciones.MarcarLeida(ctx, id)
}

func (s *UsuarioService) MarcarTodasLeidas(ctx context.Context, usuarioID uuid.UUID) error {
	return s.notificaciones.MarcarTodasLeidas(ctx, usuarioID)
}
