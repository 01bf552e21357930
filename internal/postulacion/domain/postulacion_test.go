package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostulacion_Retirar(t *testing.T) {
	tests := []struct {
		name    string
		desde   EstadoPostulacion
		wantErr bool
	}{
		{name: "retirar recién postulada", desde: Postulado},
		{name: "retirar evaluada falla", desde: Evaluado, wantErr: true},
		{name: "retirar seleccionada falla", desde: Seleccionado, wantErr: true},
		{name: "retirar dos veces falla", desde: Retirado, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Postulacion{Estado: tt.desde}
			err := p.Retirar()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTransicionInvalida)
				assert.Equal(t, tt.desde, p.Estado)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, Retirado, p.Estado)
		})
	}
}

func TestPostulacion_MarcarEvaluada(t *testing.T) {
	p := &Postulacion{Estado: Postulado}
	assert.NoError(t, p.MarcarEvaluada(72.5))
	assert.Equal(t, Evaluado, p.Estado)
	assert.Equal(t, 72.5, *p.PuntajeFinal)

	// Evaluar dos veces no pisa el puntaje.
	assert.ErrorIs(t, p.MarcarEvaluada(90), ErrTransicionInvalida)
	assert.Equal(t, 72.5, *p.PuntajeFinal)
}

func TestPostulacion_Seleccion(t *testing.T) {
	p := &Postulacion{Estado: Evaluado}
	assert.NoError(t, p.Seleccionar(1))
	assert.Equal(t, Seleccionado, p.Estado)
	assert.Equal(t, 1, *p.PosicionMerito)

	// Solo una postulación evaluada puede entrar al cuadro de mérito.
	q := &Postulacion{Estado: Postulado}
	assert.ErrorIs(t, q.Seleccionar(2), ErrTransicionInvalida)

	r := &Postulacion{Estado: Evaluado}
	assert.NoError(t, r.DescartarSeleccion(5))
	assert.Equal(t, NoSeleccionado, r.Estado)
	assert.Equal(t, 5, *r.PosicionMerito)
}

func TestPostulacion_Activa(t *testing.T) {
	assert.True(t, (&Postulacion{Estado: Postulado}).Activa())
	assert.True(t, (&Postulacion{Estado: Evaluado}).Activa())
	assert.False(t, (&Postulacion{Estado: Retirado}).Activa())
	assert.False(t, (&Postulacion{Estado: Seleccionado}).Activa())
	assert.False(t, (&Postulacion{Estado: NoSeleccionado}).Activa())
}

func TestNumeroPostulacion(t *testing.T) {
	assert.Equal(t, "POS-2026-00007", NumeroPostulacion(2026, 7))
	assert.Equal(t, "POS-2026-00001", NumeroPostulacion(2026, 1))
	assert.Equal(t, "POS-2025-12345", NumeroPostulacion(2025, 12345))
	// Más de cinco dígitos no se trunca.
	assert.Equal(t, "POS-2026-123456", NumeroPostulacion(2026, 123456))
}

func TestEvaluacion_CalcularTotal(t *testing.T) {
	e := &Evaluacion{
		PuntajeCurriculo:     30,
		PuntajeConocimientos: 25.5,
		PuntajeEntrevista:    18,
	}
	assert.Equal(t, 73.5, e.CalcularTotal())
	assert.Equal(t, 73.5, e.PuntajeTotal)
}

func TestRecomendacionIa_Transiciones(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	vigente := func(estado EstadoRecomendacion) *RecomendacionIa {
		return &RecomendacionIa{Estado: estado, FechaExpiracion: now.AddDate(0, 0, 15)}
	}

	t.Run("pendiente a vista", func(t *testing.T) {
		r := vigente(RecomendacionPendiente)
		assert.NoError(t, r.MarcarVista(now))
		assert.Equal(t, RecomendacionVista, r.Estado)
	})

	t.Run("aplicar desde pendiente o vista", func(t *testing.T) {
		assert.NoError(t, vigente(RecomendacionPendiente).Aplicar(now))
		assert.NoError(t, vigente(RecomendacionVista).Aplicar(now))
		assert.ErrorIs(t, vigente(RecomendacionDescartada).Aplicar(now), ErrTransicionInvalida)
	})

	t.Run("descartar desde pendiente o vista", func(t *testing.T) {
		assert.NoError(t, vigente(RecomendacionPendiente).Descartar(now))
		assert.NoError(t, vigente(RecomendacionVista).Descartar(now))
		assert.ErrorIs(t, vigente(RecomendacionAplicada).Descartar(now), ErrTransicionInvalida)
	})

	t.Run("expirada bloquea toda transición", func(t *testing.T) {
		r := &RecomendacionIa{Estado: RecomendacionPendiente, FechaExpiracion: now.Add(-time.Hour)}
		assert.ErrorIs(t, r.MarcarVista(now), ErrRecomendacionExpirada)
		assert.ErrorIs(t, r.Aplicar(now), ErrRecomendacionExpirada)
		assert.ErrorIs(t, r.Descartar(now), ErrRecomendacionExpirada)
		assert.Equal(t, RecomendacionPendiente, r.Estado)
	})
}

func TestConvocatoriaInfo_InscripcionAbierta(t *testing.T) {
	desde := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	info := &ConvocatoriaInfo{Estado: "active", InscripcionDesde: desde, InscripcionHasta: hasta}

	assert.True(t, info.InscripcionAbierta(desde))
	assert.True(t, info.InscripcionAbierta(hasta))
	assert.False(t, info.InscripcionAbierta(hasta.Add(time.Second)))

	info.Estado = "closed"
	assert.False(t, info.InscripcionAbierta(desde.AddDate(0, 0, 5)))
}
