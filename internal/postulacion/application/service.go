package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ugelhub/convocatorias/internal/postulacion/domain"
	shared "github.com/ugelhub/convocatorias/internal/shared/domain"
	sharedEvents "github.com/ugelhub/convocatorias/internal/shared/domain/events"
	sharedQuery "github.com/ugelhub/convocatorias/internal/shared/platform/query"
)

// PostulacionService agrupa los casos de uso del flujo de postulación:
// registro, evaluación, selección, documentos y recomendaciones.
type PostulacionService struct {
	postulaciones   domain.PostulacionRepository
	evaluaciones    domain.EvaluacionRepository
	documentos      domain.DocumentoRepository
	recomendaciones domain.RecomendacionRepository
	plazas          domain.PlazaDirectory
	convocatorias   domain.ConvocatoriaDirectory
	analytics       domain.AnalyticsRepository
	log             *zap.Logger
}

func NewPostulacionService(
	postulaciones domain.PostulacionRepository,
	evaluaciones domain.EvaluacionRepository,
	documentos domain.DocumentoRepository,
	recomendaciones domain.RecomendacionRepository,
	plazas domain.PlazaDirectory,
	convocatorias domain.ConvocatoriaDirectory,
	analytics domain.AnalyticsRepository,
	log *zap.Logger,
) *PostulacionService {
	return &PostulacionService{
		postulaciones:   postulaciones,
		evaluaciones:    evaluaciones,
		documentos:      documentos,
		recomendaciones: recomendaciones,
		plazas:          plazas,
		convocatorias:   convocatorias,
		analytics:       analytics,
		log:             log,
	}
}

// registrarAnalitica escribe el hito en el almacén analítico en mejor
// esfuerzo: un fallo ahí nunca afecta a la operación de negocio.
func (s *PostulacionService) registrarAnalitica(e domain.EventoAnalitica) {
	if s.analytics == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.analytics.RegistrarEvento(ctx, e); err != nil {
			s.log.Warn("No se pudo registrar el evento analitico",
				zap.String("tipo", e.Tipo),
				zap.Error(err))
		}
	}()
}

// ---------------- Postulación ----------------

func (s *PostulacionService) CrearPostulacion(ctx context.Context, userID, plazaID uuid.UUID, ordenPreferencia int) (*domain.Postulacion, error) {
	plaza, err := s.plazas.GetPlazaInfo(ctx, plazaID)
	if err != nil {
		return nil, err
	}
	if !plaza.Activa {
		return nil, domain.ErrInscripcionCerrada
	}

	conv, err := s.convocatorias.GetConvocatoriaInfo(ctx, plaza.ConvocatoriaID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if !conv.InscripcionAbierta(now) {
		return nil, domain.ErrInscripcionCerrada
	}

	yaPostulo, err := s.postulaciones.ExistsActiva(ctx, userID, plazaID)
	if err != nil {
		return nil, err
	}
	if yaPostulo {
		return nil, domain.ErrPostulacionDuplicada
	}

	secuencia, err := s.postulaciones.ProximaSecuencia(ctx, conv.ID)
	if err != nil {
		return nil, err
	}

	p := &domain.Postulacion{
		ID:               uuid.New(),
		UserID:           userID,
		PlazaID:          plazaID,
		ConvocatoriaID:   conv.ID,
		Numero:           domain.NumeroPostulacion(conv.Anio, secuencia),
		FechaPostulacion: now,
		OrdenPreferencia: ordenPreferencia,
		Estado:           domain.Postulado,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	evt := shared.NewOutboxEvent("postulacion", p.ID.String(), sharedEvents.PostulacionRegistradaType,
		sharedEvents.PostulacionRegistrada{
			PostulacionID:  p.ID,
			UsuarioID:      userID,
			ConvocatoriaID: conv.ID,
			PlazaID:        plazaID,
			Numero:         p.Numero,
		})
	if err := s.postulaciones.CreateConEvento(ctx, p, &evt); err != nil {
		return nil, err
	}

	s.registrarAnalitica(domain.EventoAnalitica{
		ConvocatoriaID: conv.ID,
		PlazaID:        plazaID,
		UserID:         userID,
		Tipo:           sharedEvents.PostulacionRegistradaType,
		Fecha:          now,
	})
	return p, nil
}

func (s *PostulacionService) GetPostulacion(ctx context.Context, id uuid.UUID) (*domain.Postulacion, error) {
	return s.postulaciones.GetByID(ctx, id)
}

// Las postulaciones se listan por fecha de postulación descendente.
func (s *PostulacionService) ListPostulaciones(ctx context.Context, criteria shared.Criteria, page, perPage int) (*sharedQuery.Page[*domain.PostulacionListado], error) {
	return s.postulaciones.List(ctx, criteria, sharedQuery.FromPage(page, perPage),
		sharedQuery.By("po.fecha_postulacion", true))
}

func (s *PostulacionService) RetirarPostulacion(ctx context.Context, id uuid.UUID) (*domain.Postulacion, error) {
	p, err := s.postulaciones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Retirar(); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now().UTC()

	evt := shared.NewOutboxEvent("postulacion", p.ID.String(), sharedEvents.PostulacionRetiradaType,
		sharedEvents.PostulacionRetirada{
			PostulacionID: p.ID,
			UsuarioID:     p.UserID,
			PlazaID:       p.PlazaID,
		})
	if err := s.postulaciones.UpdateConEvento(ctx, p, &evt); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostulacionService) SeleccionarPostulacion(ctx context.Context, id uuid.UUID, posicion int, seleccionado bool) (*domain.Postulacion, error) {
	p, err := s.postulaciones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var evt *shared.OutboxEvent
	if seleccionado {
		if err := p.Seleccionar(posicion); err != nil {
			return nil, err
		}
		e := shared.NewOutboxEvent("postulacion", p.ID.String(), sharedEvents.SeleccionPublicadaType,
			sharedEvents.SeleccionPublicada{
				PostulacionID: p.ID,
				UsuarioID:     p.UserID,
				PlazaID:       p.PlazaID,
				Posicion:      posicion,
			})
		evt = &e
	} else {
		if err := p.DescartarSeleccion(posicion); err != nil {
			return nil, err
		}
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.postulaciones.UpdateConEvento(ctx, p, evt); err != nil {
		return nil, err
	}
	return p, nil
}

// ---------------- Evaluación ----------------

// RegistrarEvaluacion calcula el total, marca la postulación como
// evaluada y persiste todo junto con su evento.
func (s *PostulacionService) RegistrarEvaluacion(ctx context.Context, e *domain.Evaluacion) (*domain.Evaluacion, error) {
	if _, err := s.evaluaciones.GetByPostulacion(ctx, e.PostulacionID); err == nil {
		return nil, domain.ErrEvaluacionDuplicada
	} else if !errors.Is(err, domain.ErrEvaluacionNotFound) {
		return nil, err
	}

	p, err := s.postulaciones.GetByID(ctx, e.PostulacionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	e.ID = uuid.New()
	e.FechaEvaluacion = now
	e.CalcularTotal()

	if err := p.MarcarEvaluada(e.PuntajeTotal); err != nil {
		return nil, err
	}
	p.UpdatedAt = now

	evt := shared.NewOutboxEvent("evaluacion", e.ID.String(), sharedEvents.EvaluacionRegistradaType,
		sharedEvents.EvaluacionRegistrada{
			EvaluacionID:  e.ID,
			PostulacionID: p.ID,
			UsuarioID:     p.UserID,
			PuntajeTotal:  e.PuntajeTotal,
		})
	if err := s.evaluaciones.Registrar(ctx, e, p, &evt); err != nil {
		return nil, err
	}

	s.registrarAnalitica(domain.EventoAnalitica{
		ConvocatoriaID: p.ConvocatoriaID,
		PlazaID:        p.PlazaID,
		UserID:         p.UserID,
		Tipo:           sharedEvents.EvaluacionRegistradaType,
		Fecha:          now,
	})
	return e, nil
}

func (s *PostulacionService) GetEvaluacion(ctx context.Context, postulacionID uuid.UUID) (*domain.Evaluacion, error) {
	return s.evaluaciones.GetByPostulacion(ctx, postulacionID)
}

// ---------------- Documentos ----------------

func (s *PostulacionService) AdjuntarDocumento(ctx context.Context, d *domain.Documento) (*domain.Documento, error) {
	if _, err := s.postulaciones.GetByID(ctx, d.PostulacionID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	d.ID = uuid.New()
	d.Estado = domain.DocumentoPendiente
	d.CreatedAt = now
	d.UpdatedAt = now
	if err := s.documentos.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *PostulacionService) ListDocumentos(ctx context.Context, postulacionID uuid.UUID) ([]*domain.Documento, error) {
	return s.documentos.ListByPostulacion(ctx, postulacionID)
}

func (s *PostulacionService) RevisarDocumento(ctx context.Context, id uuid.UUID, estado domain.EstadoDocumento, observacion string) (*domain.Documento, error) {
	d, err := s.documentos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Estado = estado
	d.Observacion = observacion
	d.UpdatedAt = time.Now().UTC()
	if err := s.documentos.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *PostulacionService) EliminarDocumento(ctx context.Context, id uuid.UUID) error {
	return s.documentos.Delete(ctx, id)
}

// ---------------- Recomendaciones ----------------

// CrearRecomendacion registra una sugerencia plaza-docente generada por el
// motor de compatibilidad. Si no trae expiración se le da una ventana de
// treinta días.
func (s *PostulacionService) CrearRecomendacion(ctx context.Context, r *domain.RecomendacionIa) (*domain.RecomendacionIa, error) {
	plaza, err := s.plazas.GetPlazaInfo(ctx, r.PlazaID)
	if err != nil {
		return nil, err
	}
	if !plaza.Activa {
		return nil, domain.ErrPlazaNotFound
	}

	now := time.Now().UTC()
	r.ID = uuid.New()
	r.Estado = domain.RecomendacionPendiente
	r.FechaGeneracion = now
	if r.FechaExpiracion.IsZero() {
		r.FechaExpiracion = now.AddDate(0, 0, 30)
	}
	if err := s.recomendaciones.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *PostulacionService) ListRecomendaciones(ctx context.Context, userID uuid.UUID) ([]*domain.RecomendacionIa, error) {
	return s.recomendaciones.ListByUsuario(ctx, userID)
}

func (s *PostulacionService) TransicionarRecomendacion(ctx context.Context, id uuid.UUID, fn func(*domain.RecomendacionIa, time.Time) error) (*domain.RecomendacionIa, error) {
	r, err := s.recomendaciones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(r, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.recomendaciones.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ---------------- Analítica ----------------

func (s *PostulacionService) TendenciaDiaria(ctx context.Context, convocatoriaID uuid.UUID, desde, hasta time.Time) ([]domain.PuntoTendencia, error) {
	if s.analytics == nil {
		return nil, nil
	}
	return s.analytics.TendenciaDiaria(ctx, convocatoriaID, desde, hasta)
}

func (s *PostulacionService) TiempoMedioEvaluacion(ctx context.Context, convocatoriaID uuid.UUID) (float64, error) {
	if s.analytics == nil {
		return 0, nil
	}
	return s.analytics.TiempoMedioEvaluacion(ctx, convocatoriaID)
}
