package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ugelhub/convocatorias/internal/usuario/domain"
	"github.com/ugelhub/convocatorias/tests/mocks"
)

func newUsuarioService(repo *mocks.InMemoryUsuarioRepo) (*UsuarioService, *mocks.InMemoryPerfilRepo, *mocks.InMemoryNotificacionRepo) {
	perfiles := mocks.NewInMemoryPerfilRepo()
	notificaciones := mocks.NewInMemoryNotificacionRepo()
	svc := NewUsuarioService(repo, perfiles, notificaciones, mocks.NewDummyCache(), 60, zap.NewNop())
	return svc, perfiles, notificaciones
}

func nuevoDocente(dni string) *domain.Usuario {
	return &domain.Usuario{
		Nombres:   "María",
		Apellidos: "Quispe",
		DNI:       dni,
		Email:     dni + "@example.com",
		Tipo:      domain.TipoDocente,
	}
}

func TestCreateUsuario_Success(t *testing.T) {
	repo := mocks.NewInMemoryUsuarioRepo()
	svc, _, _ := newUsuarioService(repo)

	u, err := svc.CreateUsuario(context.Background(), nuevoDocente("41234567"), "secreta123")
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, domain.UsuarioPendiente, u.Estado)

	// La contraseña nunca se guarda en claro.
	assert.NotEqual(t, "secreta123", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secreta123")))
}

func TestCreateUsuario_DNIInvalido(t *testing.T) {
	repo := mocks.NewInMemoryUsuarioRepo()
	svc, _, _ := newUsuarioService(repo)

	_, err := svc.CreateUsuario(context.Background(), nuevoDocente("1234"), "secreta123")
	assert.ErrorIs(t, err, domain.ErrDNIInvalido)

	_, err = svc.CreateUsuario(context.Background(), nuevoDocente("4123456a"), "secreta123")
	assert.ErrorIs(t, err, domain.ErrDNIInvalido)
}

func TestCreateUsuario_DNIDuplicado(t *testing.T) {
	repo := mocks.NewInMemoryUsuarioRepo()
	svc, _, _ := newUsuarioService(repo)

	_, err := svc.CreateUsuario(context.Background(), nuevoDocente("41234567"), "secreta123")
	assert.NoError(t, err)

	otro := nuevoDocente("41234567")
	otro.Email = "otro@example.com"
	_, err = svc.CreateUsuario(context.Background(), otro, "secreta123")
	assert.ErrorIs(t, err, domain.ErrDNIEnUso)
}

func TestVerificarCredenciales(t *testing.T) {
	repo := mocks.NewInMemoryUsuarioRepo()
	svc, _, _ := newUsuarioService(repo)

	creado, err := svc.CreateUsuario(context.Background(), nuevoDocente("41234567"), "secreta123")
	assert.NoError(t, err)

	u, err := svc.VerificarCredenciales(context.Background(), "41234567", "secreta123")
	assert.NoError(t, err)
	assert.Equal(t, creado.ID, u.ID)

	// Contraseña incorrecta: mismo error que usuario inexistente para no
	// filtrar cuál de los dos falló.
	_, err = svc.VerificarCredenciales(context.Background(), "41234567", "incorrecta")
	assert.ErrorIs(t, err, domain.ErrUsuarioNotFound)

	_, err = svc.VerificarCredenciales(context.Background(), "99999999", "secreta123")
	assert.ErrorIs(t, err, domain.ErrUsuarioNotFound)
}

func TestDeleteUsuario_AutoBorrado(t *testing.T) {
	repo := mocks.NewInMemoryUsuarioRepo()
	svc, _, _ := newUsuarioService(repo)

	admin, err := svc.CreateUsuario(context.Background(), &domain.Usuario{
		Nombres: "Admin", Apellidos: "UGEL", DNI: "40000001",
		Email: "admin@example.com", Tipo: domain.TipoAdmin,
	}, "secreta123")
	assert.NoError(t, err)

	// El rechazo ocurre antes de tocar el repositorio.
	_, err = svc.DeleteUsuario(context.Background(), admin.ID, admin.ID)
	assert.ErrorIs(t, err, domain.ErrAutoBorrado)
	_, err = repo.GetByID(context.Background(), admin.ID)
	assert.NoError(t, err)
}

func TestDeleteUsuario_BloqueadoPorPostulaciones(t *testing.T) {
	repo := mocks.NewInMemoryUsuarioRepo()
	svc, _, _ := newUsuarioService(repo)

	docente, err := svc.CreateUsuario(context.Background(), nuevoDocente("41234567"), "secreta123")
	assert.NoError(t, err)
	repo.Postulaciones[docente.ID] = 3

	outcome, err := svc.DeleteUsuario(context.Background(), uuid.New(), docente.ID)
	assert.NoError(t, err)
	assert.True(t, outcome.Blocked)
	assert.False(t, outcome.Deleted)
	assert.Equal(t, "postulaciones", outcome.Relation)
	assert.Equal(t, int64(3), outcome.Count)

	// El usuario sigue existiendo.
	_, err = repo.GetByID(context.Background(), docente.ID)
	assert.NoError(t, err)
}

func TestDeleteUsuario_SinDependientes(t *testing.T) {
	repo := mocks.NewInMemoryUsuarioRepo()
	svc, _, _ := newUsuarioService(repo)

	docente, err := svc.CreateUsuario(context.Background(), nuevoDocente("41234567"), "secreta123")
	assert.NoError(t, err)

	outcome, err := svc.DeleteUsuario(context.Background(), uuid.New(), docente.ID)
	assert.NoError(t, err)
	assert.True(t, outcome.Deleted)

	_, err = repo.GetByID(context.Background(), docente.ID)
	assert.ErrorIs(t, err, domain.ErrUsuarioNotFound)
}

func TestGuardarPerfil_CalculaDerivados(t *testing.T) {
	repo := mocks.NewInMemoryUsuarioRepo()
	svc, perfiles, _ := newUsuarioService(repo)

	docente, err := svc.CreateUsuario(context.Background(), nuevoDocente("41234567"), "secreta123")
	assert.NoError(t, err)

	p, err := svc.GuardarPerfil(context.Background(), &domain.PerfilDocente{
		UsuarioID:          docente.ID,
		Especialidad:       "Matemática",
		ExperienciaAnios:   5,
		NivelesExperiencia: []string{"secundaria"},
		Ubicacion:          "Huanta",
		Telefono:           "966123456",
	})
	assert.NoError(t, err)
	assert.Equal(t, 80, p.ScorePerfil)
	assert.True(t, p.PerfilCompleto)

	guardado, err := perfiles.GetByUsuario(context.Background(), docente.ID)
	assert.NoError(t, err)
	assert.Equal(t, p.ScorePerfil, guardado.ScorePerfil)
}

func TestGuardarPerfil_ActualizaConservandoID(t *testing.T) {
	repo := mocks.NewInMemoryUsuarioRepo()
	svc, _, _ := newUsuarioService(repo)

	docente, err := svc.CreateUsuario(context.Background(), nuevoDocente("41234567"), "secreta123")
	assert.NoError(t, err)

	primero, err := svc.GuardarPerfil(context.Background(), &domain.PerfilDocente{
		UsuarioID:    docente.ID,
		Especialidad: "Historia",
	})
	assert.NoError(t, err)

	segundo, err := svc.GuardarPerfil(context.Background(), &domain.PerfilDocente{
		UsuarioID:    docente.ID,
		Especialidad: "Geografía",
		Ubicacion:    "La Mar",
	})
	assert.NoError(t, err)
	assert.Equal(t, primero.ID, segundo.ID)
	assert.Equal(t, 40, segundo.ScorePerfil)
}

func TestGuardarPerfil_UsuarioInexistente(t *testing.T) {
	repo := mocks.NewInMemoryUsuarioRepo()
	svc, _, _ := newUsuarioService(repo)

	_, err := svc.GuardarPerfil(context.Background(), &domain.PerfilDocente{UsuarioID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrUsuarioNotFound)
}

func TestNotificaciones_Flujo(t *testing.T) {
	repo := mocks.NewInMemoryUsuarioRepo()
	svc, _, _ := newUsuarioService(repo)

	docente, err := svc.CreateUsuario(context.Background(), nuevoDocente("41234567"), "secreta123")
	assert.NoError(t, err)

	n1, err := svc.NotificarUsuario(context.Background(), docente.ID, domain.NotifSuccess, "Postulación registrada", "POS-2026-00001")
	assert.NoError(t, err)
	_, err = svc.NotificarUsuario(context.Background(), docente.ID, domain.NotifInfo, "Evaluación registrada", "Tu postulación fue evaluada")
	assert.NoError(t, err)

	count, err := svc.NotificacionesNoLeidas(context.Background(), docente.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	assert.NoError(t, svc.MarcarNotificacionLeida(context.Background(), n1.ID))
	count, _ = svc.NotificacionesNoLeidas(context.Background(), docente.ID)
	assert.Equal(t, int64(1), count)

	page, err := svc.ListNotificaciones(context.Background(), docente.ID, true, 1, 10)
	assert.NoError(t, err)
	assert.Len(t, page.Items, 1)

	assert.NoError(t, svc.MarcarTodasLeidas(context.Background(), docente.ID))
	count, _ = svc.NotificacionesNoLeidas(context.Background(), docente.ID)
	assert.Equal(t, int64(0), count)
}
