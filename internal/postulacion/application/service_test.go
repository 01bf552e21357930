package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/ugelhub/convocatorias/internal/postulacion/domain"
	sharedEvents "github.com/ugelhub/convocatorias/internal/shared/domain/events"
	"github.com/ugelhub/convocatorias/tests/mocks"
)

type fixture struct {
	svc             *PostulacionService
	postulaciones   *mocks.InMemoryPostulacionRepo
	evaluaciones    *mocks.InMemoryEvaluacionRepo
	documentos      *mocks.InMemoryDocumentoRepo
	recomendaciones *mocks.InMemoryRecomendacionRepo
	plazas          *mocks.StubPlazaDirectory
	convocatorias   *mocks.StubConvocatoriaDirectory

	convocatoriaID uuid.UUID
	plazaID        uuid.UUID
}

// newFixture arma el servicio con una convocatoria activa cuya ventana de
// inscripción está abierta y una plaza activa colgando de ella.
func newFixture() *fixture {
	f := &fixture{
		postulaciones:   mocks.NewInMemoryPostulacionRepo(),
		documentos:      mocks.NewInMemoryDocumentoRepo(),
		recomendaciones: mocks.NewInMemoryRecomendacionRepo(),
		convocatoriaID:  uuid.New(),
		plazaID:         uuid.New(),
	}
	f.evaluaciones = mocks.NewInMemoryEvaluacionRepo(f.postulaciones)

	now := time.Now().UTC()
	f.plazas = &mocks.StubPlazaDirectory{Plazas: map[uuid.UUID]*domain.PlazaInfo{
		f.plazaID: {ID: f.plazaID, ConvocatoriaID: f.convocatoriaID, Activa: true},
	}}
	f.convocatorias = &mocks.StubConvocatoriaDirectory{Convocatorias: map[uuid.UUID]*domain.ConvocatoriaInfo{
		f.convocatoriaID: {
			ID:               f.convocatoriaID,
			Anio:             2026,
			Estado:           "active",
			InscripcionDesde: now.AddDate(0, 0, -1),
			InscripcionHasta: now.AddDate(0, 0, 7),
		},
	}}

	f.svc = NewPostulacionService(
		f.postulaciones, f.evaluaciones, f.documentos, f.recomendaciones,
		f.plazas, f.convocatorias, nil, zap.NewNop(),
	)
	return f
}

func TestCrearPostulacion_Success(t *testing.T) {
	f := newFixture()

	userID := uuid.New()
	p, err := f.svc.CrearPostulacion(context.Background(), userID, f.plazaID, 1)
	assert.NoError(t, err)
	assert.Equal(t, "POS-2026-00001", p.Numero)
	assert.Equal(t, domain.Postulado, p.Estado)
	assert.Equal(t, f.convocatoriaID, p.ConvocatoriaID)

	// El evento queda en el outbox de la misma escritura.
	assert.Len(t, f.postulaciones.Outbox, 1)
	assert.Equal(t, sharedEvents.PostulacionRegistradaType, f.postulaciones.Outbox[0].EventType)
	assert.Equal(t, p.ID.String(), f.postulaciones.Outbox[0].AggregateID)
}

func TestCrearPostulacion_CorrelativoPorConvocatoria(t *testing.T) {
	f := newFixture()

	p1, err := f.svc.CrearPostulacion(context.Background(), uuid.New(), f.plazaID, 1)
	assert.NoError(t, err)
	p2, err := f.svc.CrearPostulacion(context.Background(), uuid.New(), f.plazaID, 1)
	assert.NoError(t, err)

	assert.Equal(t, "POS-2026-00001", p1.Numero)
	assert.Equal(t, "POS-2026-00002", p2.Numero)
}

func TestCrearPostulacion_InscripcionCerrada(t *testing.T) {
	f := newFixture()
	conv := f.convocatorias.Convocatorias[f.convocatoriaID]
	conv.InscripcionHasta = time.Now().UTC().Add(-time.Hour)

	_, err := f.svc.CrearPostulacion(context.Background(), uuid.New(), f.plazaID, 1)
	assert.ErrorIs(t, err, domain.ErrInscripcionCerrada)
	assert.Empty(t, f.postulaciones.Outbox)
}

func TestCrearPostulacion_ConvocatoriaNoVigente(t *testing.T) {
	f := newFixture()
	f.convocatorias.Convocatorias[f.convocatoriaID].Estado = "draft"

	_, err := f.svc.CrearPostulacion(context.Background(), uuid.New(), f.plazaID, 1)
	assert.ErrorIs(t, err, domain.ErrInscripcionCerrada)
}

func TestCrearPostulacion_PlazaInactiva(t *testing.T) {
	f := newFixture()
	f.plazas.Plazas[f.plazaID].Activa = false

	_, err := f.svc.CrearPostulacion(context.Background(), uuid.New(), f.plazaID, 1)
	assert.ErrorIs(t, err, domain.ErrInscripcionCerrada)
}

func TestCrearPostulacion_PlazaInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CrearPostulacion(context.Background(), uuid.New(), uuid.New(), 1)
	assert.ErrorIs(t, err, domain.ErrPlazaNotFound)
}

func TestCrearPostulacion_Duplicada(t *testing.T) {
	f := newFixture()
	userID := uuid.New()

	_, err := f.svc.CrearPostulacion(context.Background(), userID, f.plazaID, 1)
	assert.NoError(t, err)

	_, err = f.svc.CrearPostulacion(context.Background(), userID, f.plazaID, 1)
	assert.ErrorIs(t, err, domain.ErrPostulacionDuplicada)
	assert.Len(t, f.postulaciones.Outbox, 1)
}

func TestCrearPostulacion_RetiradaPermiteVolver(t *testing.T) {
	f := newFixture()
	userID := uuid.New()

	p, err := f.svc.CrearPostulacion(context.Background(), userID, f.plazaID, 1)
	assert.NoError(t, err)
	_, err = f.svc.RetirarPostulacion(context.Background(), p.ID)
	assert.NoError(t, err)

	// Una postulación retirada deja de contar como activa.
	p2, err := f.svc.CrearPostulacion(context.Background(), userID, f.plazaID, 1)
	assert.NoError(t, err)
	assert.Equal(t, "POS-2026-00002", p2.Numero)
}

func TestRetirarPostulacion_PublicaEvento(t *testing.T) {
	f := newFixture()

	p, err := f.svc.CrearPostulacion(context.Background(), uuid.New(), f.plazaID, 1)
	assert.NoError(t, err)

	retirada, err := f.svc.RetirarPostulacion(context.Background(), p.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.Retirado, retirada.Estado)

	assert.Len(t, f.postulaciones.Outbox, 2)
	assert.Equal(t, sharedEvents.PostulacionRetiradaType, f.postulaciones.Outbox[1].EventType)
}

func TestRegistrarEvaluacion_Success(t *testing.T) {
	f := newFixture()

	p, err := f.svc.CrearPostulacion(context.Background(), uuid.New(), f.plazaID, 1)
	assert.NoError(t, err)

	e, err := f.svc.RegistrarEvaluacion(context.Background(), &domain.Evaluacion{
		PostulacionID:        p.ID,
		EvaluadorID:          uuid.New(),
		PuntajeCurriculo:     30,
		PuntajeConocimientos: 25,
		PuntajeEntrevista:    18.5,
	})
	assert.NoError(t, err)
	assert.Equal(t, 73.5, e.PuntajeTotal)

	// La postulación quedó evaluada con el total como puntaje final.
	actualizada, err := f.svc.GetPostulacion(context.Background(), p.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.Evaluado, actualizada.Estado)
	assert.Equal(t, 73.5, *actualizada.PuntajeFinal)

	assert.Len(t, f.postulaciones.Outbox, 2)
	assert.Equal(t, sharedEvents.EvaluacionRegistradaType, f.postulaciones.Outbox[1].EventType)
}

func TestRegistrarEvaluacion_Duplicada(t *testing.T) {
	f := newFixture()

	p, err := f.svc.CrearPostulacion(context.Background(), uuid.New(), f.plazaID, 1)
	assert.NoError(t, err)

	_, err = f.svc.RegistrarEvaluacion(context.Background(), &domain.Evaluacion{
		PostulacionID: p.ID, EvaluadorID: uuid.New(), PuntajeCurriculo: 40,
	})
	assert.NoError(t, err)

	_, err = f.svc.RegistrarEvaluacion(context.Background(), &domain.Evaluacion{
		PostulacionID: p.ID, EvaluadorID: uuid.New(), PuntajeCurriculo: 50,
	})
	assert.ErrorIs(t, err, domain.ErrEvaluacionDuplicada)
}

func TestRegistrarEvaluacion_PostulacionRetirada(t *testing.T) {
	f := newFixture()

	p, err := f.svc.CrearPostulacion(context.Background(), uuid.New(), f.plazaID, 1)
	assert.NoError(t, err)
	_, err = f.svc.RetirarPostulacion(context.Background(), p.ID)
	assert.NoError(t, err)

	_, err = f.svc.RegistrarEvaluacion(context.Background(), &domain.Evaluacion{
		PostulacionID: p.ID, EvaluadorID: uuid.New(),
	})
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)
}

func TestSeleccionarPostulacion(t *testing.T) {
	f := newFixture()

	p, err := f.svc.CrearPostulacion(context.Background(), uuid.New(), f.plazaID, 1)
	assert.NoError(t, err)
	_, err = f.svc.RegistrarEvaluacion(context.Background(), &domain.Evaluacion{
		PostulacionID: p.ID, EvaluadorID: uuid.New(), PuntajeCurriculo: 80,
	})
	assert.NoError(t, err)

	sel, err := f.svc.SeleccionarPostulacion(context.Background(), p.ID, 1, true)
	assert.NoError(t, err)
	assert.Equal(t, domain.Seleccionado, sel.Estado)
	assert.Equal(t, 1, *sel.PosicionMerito)

	// Registro + evaluación + selección publican evento; el descarte no.
	assert.Len(t, f.postulaciones.Outbox, 3)
	assert.Equal(t, sharedEvents.SeleccionPublicadaType, f.postulaciones.Outbox[2].EventType)
}

func TestSeleccionarPostulacion_DescarteSinEvento(t *testing.T) {
	f := newFixture()

	p, err := f.svc.CrearPostulacion(context.Background(), uuid.New(), f.plazaID, 1)
	assert.NoError(t, err)
	_, err = f.svc.RegistrarEvaluacion(context.Background(), &domain.Evaluacion{
		PostulacionID: p.ID, EvaluadorID: uuid.New(), PuntajeCurriculo: 30,
	})
	assert.NoError(t, err)
	antes := len(f.postulaciones.Outbox)

	desc, err := f.svc.SeleccionarPostulacion(context.Background(), p.ID, 7, false)
	assert.NoError(t, err)
	assert.Equal(t, domain.NoSeleccionado, desc.Estado)
	assert.Equal(t, 7, *desc.PosicionMerito)
	assert.Len(t, f.postulaciones.Outbox, antes)
}

func TestDocumentos_Flujo(t *testing.T) {
	f := newFixture()

	p, err := f.svc.CrearPostulacion(context.Background(), uuid.New(), f.plazaID, 1)
	assert.NoError(t, err)

	d, err := f.svc.AdjuntarDocumento(context.Background(), &domain.Documento{
		PostulacionID: p.ID,
		Nombre:        "titulo_pedagogico.pdf",
		TipoDocumento: "titulo",
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.DocumentoPendiente, d.Estado)

	revisado, err := f.svc.RevisarDocumento(context.Background(), d.ID, domain.DocumentoRechazado, "ilegible")
	assert.NoError(t, err)
	assert.Equal(t, domain.DocumentoRechazado, revisado.Estado)
	assert.Equal(t, "ilegible", revisado.Observacion)

	lista, err := f.svc.ListDocumentos(context.Background(), p.ID)
	assert.NoError(t, err)
	assert.Len(t, lista, 1)

	assert.NoError(t, f.svc.EliminarDocumento(context.Background(), d.ID))
	lista, _ = f.svc.ListDocumentos(context.Background(), p.ID)
	assert.Empty(t, lista)
}

func TestAdjuntarDocumento_PostulacionInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.svc.AdjuntarDocumento(context.Background(), &domain.Documento{
		PostulacionID: uuid.New(), Nombre: "cv.pdf",
	})
	assert.ErrorIs(t, err, domain.ErrPostulacionNotFound)
}

func TestCrearRecomendacion_ExpiracionPorDefecto(t *testing.T) {
	f := newFixture()

	r, err := f.svc.CrearRecomendacion(context.Background(), &domain.RecomendacionIa{
		UserID:                   uuid.New(),
		PlazaID:                  f.plazaID,
		PuntuacionCompatibilidad: 87,
		NivelConfianza:           0.9,
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.RecomendacionPendiente, r.Estado)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, 30), r.FechaExpiracion, time.Minute)
}

func TestCrearRecomendacion_PlazaInactiva(t *testing.T) {
	f := newFixture()
	f.plazas.Plazas[f.plazaID].Activa = false

	_, err := f.svc.CrearRecomendacion(context.Background(), &domain.RecomendacionIa{
		UserID: uuid.New(), PlazaID: f.plazaID,
	})
	assert.ErrorIs(t, err, domain.ErrPlazaNotFound)
}

func TestTransicionarRecomendacion(t *testing.T) {
	f := newFixture()

	r, err := f.svc.CrearRecomendacion(context.Background(), &domain.RecomendacionIa{
		UserID: uuid.New(), PlazaID: f.plazaID,
	})
	assert.NoError(t, err)

	vista, err := f.svc.TransicionarRecomendacion(context.Background(), r.ID, (*domain.RecomendacionIa).MarcarVista)
	assert.NoError(t, err)
	assert.Equal(t, domain.RecomendacionVista, vista.Estado)

	aplicada, err := f.svc.TransicionarRecomendacion(context.Background(), r.ID, (*domain.RecomendacionIa).Aplicar)
	assert.NoError(t, err)
	assert.Equal(t, domain.RecomendacionAplicada, aplicada.Estado)

	// Aplicada ya no se puede descartar.
	_, err = f.svc.TransicionarRecomendacion(context.Background(), r.ID, (*domain.RecomendacionIa).Descartar)
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)
}

func TestAnalitica_SinAlmacenConfigurado(t *testing.T) {
	f := newFixture()

	puntos, err := f.svc.TendenciaDiaria(context.Background(), f.convocatoriaID, time.Now().AddDate(0, 0, -7), time.Now())
	assert.NoError(t, err)
	assert.Nil(t, puntos)

	horas, err := f.svc.TiempoMedioEvaluacion(context.Background(), f.convocatoriaID)
	assert.NoError(t, err)
	assert.Zero(t, horas)
}
