package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/ugelhub/convocatorias/internal/convocatoria/domain"
	"github.com/ugelhub/convocatorias/tests/mocks"
)

type fixture struct {
	svc           *ConvocatoriaService
	convocatorias *mocks.InMemoryConvocatoriaRepo
	plazas        *mocks.InMemoryPlazaRepo
	cache         *mocks.DummyCache

	ugelID        uuid.UUID
	institucionID uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		plazas:        mocks.NewInMemoryPlazaRepo(),
		cache:         mocks.NewDummyCache(),
		ugelID:        uuid.New(),
		institucionID: uuid.New(),
	}
	f.convocatorias = mocks.NewInMemoryConvocatoriaRepo(f.plazas)

	ugels := &mocks.StubUgelDirectory{Ugels: map[uuid.UUID]bool{f.ugelID: true}}
	instituciones := &mocks.StubInstitucionDirectory{Instituciones: map[uuid.UUID]bool{f.institucionID: true}}

	f.svc = NewConvocatoriaService(f.convocatorias, f.plazas, ugels, instituciones, f.cache, 60, zap.NewNop())
	return f
}

func (f *fixture) nuevaConvocatoria(t *testing.T) *domain.Convocatoria {
	t.Helper()
	c, err := f.svc.CreateConvocatoria(context.Background(), &domain.Convocatoria{
		UgelID:      f.ugelID,
		Titulo:      "Contratación Docente 2026",
		Anio:        2026,
		TipoProceso: domain.ProcesoContratacion,
		TotalPlazas: 20,
	})
	assert.NoError(t, err)
	return c
}

func TestCreateConvocatoria_Success(t *testing.T) {
	f := newFixture()

	c := f.nuevaConvocatoria(t)
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, domain.ConvocatoriaBorrador, c.Estado)
}

func TestCreateConvocatoria_UgelInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateConvocatoria(context.Background(), &domain.Convocatoria{
		UgelID: uuid.New(),
		Titulo: "Sin UGEL",
	})
	assert.ErrorIs(t, err, domain.ErrConvocatoriaUgelInvalida)
}

func TestCambiarEstado_CicloCompleto(t *testing.T) {
	f := newFixture()
	c := f.nuevaConvocatoria(t)

	pub, err := f.svc.CambiarEstado(context.Background(), c.ID, (*domain.Convocatoria).Publicar)
	assert.NoError(t, err)
	assert.Equal(t, domain.ConvocatoriaPublicada, pub.Estado)

	act, err := f.svc.CambiarEstado(context.Background(), c.ID, (*domain.Convocatoria).Activar)
	assert.NoError(t, err)
	assert.Equal(t, domain.ConvocatoriaActiva, act.Estado)

	// Una transición inválida no toca el estado persistido.
	_, err = f.svc.CambiarEstado(context.Background(), c.ID, (*domain.Convocatoria).Publicar)
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)
	actual, _ := f.convocatorias.GetByID(context.Background(), c.ID)
	assert.Equal(t, domain.ConvocatoriaActiva, actual.Estado)
}

func TestGetConvocatoria_CacheHit(t *testing.T) {
	f := newFixture()
	c := f.nuevaConvocatoria(t)

	// Precargar la caché y vaciar el repo: si responde, vino de la caché.
	f.cache.SetForTest("convocatoria:"+c.ID.String(), c)
	delete(f.convocatorias.Convocatorias, c.ID)

	got, err := f.svc.GetConvocatoria(context.Background(), c.ID)
	assert.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, c.Titulo, got.Titulo)
}

func TestUpdateConvocatoria_InvalidaCache(t *testing.T) {
	f := newFixture()
	c := f.nuevaConvocatoria(t)
	key := "convocatoria:" + c.ID.String()
	f.cache.SetForTest(key, c)

	c.Titulo = "Título corregido"
	assert.NoError(t, f.svc.UpdateConvocatoria(context.Background(), c))

	// La invalidación es asíncrona.
	assert.Eventually(t, func() bool { return !f.cache.Has(key) }, time.Second, 10*time.Millisecond)
}

func TestDeleteConvocatoria_BloqueadaPorPlazas(t *testing.T) {
	f := newFixture()
	c := f.nuevaConvocatoria(t)

	_, err := f.svc.CreatePlaza(context.Background(), &domain.Plaza{
		ConvocatoriaID: c.ID,
		InstitucionID:  f.institucionID,
		CodigoPlaza:    "PLZ-001",
		Cargo:          "Profesor de aula",
		Nivel:          "primaria",
		Jornada:        domain.Jornada30,
		Vacantes:       1,
	})
	assert.NoError(t, err)

	outcome, err := f.svc.DeleteConvocatoria(context.Background(), c.ID)
	assert.NoError(t, err)
	assert.True(t, outcome.Blocked)
	assert.Equal(t, "plazas", outcome.Relation)
	assert.Equal(t, int64(1), outcome.Count)
}

func TestCreatePlaza_Validaciones(t *testing.T) {
	f := newFixture()
	c := f.nuevaConvocatoria(t)

	_, err := f.svc.CreatePlaza(context.Background(), &domain.Plaza{
		ConvocatoriaID: uuid.New(),
		InstitucionID:  f.institucionID,
		Jornada:        domain.Jornada30,
	})
	assert.ErrorIs(t, err, domain.ErrConvocatoriaNotFound)

	_, err = f.svc.CreatePlaza(context.Background(), &domain.Plaza{
		ConvocatoriaID: c.ID,
		InstitucionID:  uuid.New(),
		Jornada:        domain.Jornada30,
	})
	assert.ErrorIs(t, err, domain.ErrPlazaInstitucionInvalida)

	_, err = f.svc.CreatePlaza(context.Background(), &domain.Plaza{
		ConvocatoriaID: c.ID,
		InstitucionID:  f.institucionID,
		Jornada:        domain.Jornada(35),
	})
	assert.ErrorIs(t, err, domain.ErrJornadaInvalida)
}

func TestListConvocatorias_CalculaDisponibles(t *testing.T) {
	f := newFixture()
	c := f.nuevaConvocatoria(t)

	for i := 0; i < 3; i++ {
		_, err := f.svc.CreatePlaza(context.Background(), &domain.Plaza{
			ConvocatoriaID: c.ID,
			InstitucionID:  f.institucionID,
			CodigoPlaza:    "PLZ-00" + string(rune('1'+i)),
			Jornada:        domain.Jornada25,
			Vacantes:       1,
		})
		assert.NoError(t, err)
	}

	page, err := f.svc.ListConvocatorias(context.Background(), nil, 1, 10)
	assert.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 17, page.Items[0].PlazasDisponibles)
}
