package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConvocatoria_Transiciones(t *testing.T) {
	tests := []struct {
		name    string
		desde   EstadoConvocatoria
		mover   func(*Convocatoria) error
		hasta   EstadoConvocatoria
		wantErr bool
	}{
		{name: "publicar desde borrador", desde: ConvocatoriaBorrador, mover: (*Convocatoria).Publicar, hasta: ConvocatoriaPublicada},
		{name: "publicar desde activa falla", desde: ConvocatoriaActiva, mover: (*Convocatoria).Publicar, wantErr: true},
		{name: "activar desde publicada", desde: ConvocatoriaPublicada, mover: (*Convocatoria).Activar, hasta: ConvocatoriaActiva},
		{name: "activar desde borrador falla", desde: ConvocatoriaBorrador, mover: (*Convocatoria).Activar, wantErr: true},
		{name: "cerrar desde publicada", desde: ConvocatoriaPublicada, mover: (*Convocatoria).Cerrar, hasta: ConvocatoriaCerrada},
		{name: "cerrar desde activa", desde: ConvocatoriaActiva, mover: (*Convocatoria).Cerrar, hasta: ConvocatoriaCerrada},
		{name: "cerrar desde borrador falla", desde: ConvocatoriaBorrador, mover: (*Convocatoria).Cerrar, wantErr: true},
		{name: "cancelar desde borrador", desde: ConvocatoriaBorrador, mover: (*Convocatoria).Cancelar, hasta: ConvocatoriaCancelada},
		{name: "cancelar desde activa", desde: ConvocatoriaActiva, mover: (*Convocatoria).Cancelar, hasta: ConvocatoriaCancelada},
		{name: "cancelar desde cerrada falla", desde: ConvocatoriaCerrada, mover: (*Convocatoria).Cancelar, wantErr: true},
		{name: "cancelar dos veces falla", desde: ConvocatoriaCancelada, mover: (*Convocatoria).Cancelar, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Convocatoria{Estado: tt.desde}
			err := tt.mover(c)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTransicionInvalida)
				assert.Equal(t, tt.desde, c.Estado)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.hasta, c.Estado)
		})
	}
}

func TestConvocatoria_InscripcionAbierta(t *testing.T) {
	desde := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(2026, 2, 15, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name   string
		estado EstadoConvocatoria
		now    time.Time
		want   bool
	}{
		{name: "publicada dentro de la ventana", estado: ConvocatoriaPublicada, now: desde.AddDate(0, 0, 5), want: true},
		{name: "activa dentro de la ventana", estado: ConvocatoriaActiva, now: desde.AddDate(0, 0, 5), want: true},
		{name: "justo en el inicio", estado: ConvocatoriaActiva, now: desde, want: true},
		{name: "justo en el cierre", estado: ConvocatoriaActiva, now: hasta, want: true},
		{name: "antes de la ventana", estado: ConvocatoriaActiva, now: desde.Add(-time.Second), want: false},
		{name: "después de la ventana", estado: ConvocatoriaActiva, now: hasta.Add(time.Second), want: false},
		{name: "borrador no admite aunque la ventana esté vigente", estado: ConvocatoriaBorrador, now: desde.AddDate(0, 0, 5), want: false},
		{name: "cerrada no admite", estado: ConvocatoriaCerrada, now: desde.AddDate(0, 0, 5), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Convocatoria{
				Estado:           tt.estado,
				InscripcionDesde: desde,
				InscripcionHasta: hasta,
			}
			assert.Equal(t, tt.want, c.InscripcionAbierta(tt.now))
		})
	}
}

func TestJornada_Valida(t *testing.T) {
	assert.True(t, Jornada25.Valida())
	assert.True(t, Jornada30.Valida())
	assert.True(t, Jornada40.Valida())
	assert.False(t, Jornada(35).Valida())
	assert.False(t, Jornada(0).Valida())
}

func TestPlaza_Transiciones(t *testing.T) {
	p := &Plaza{Estado: PlazaActiva}
	assert.NoError(t, p.Cubrir())
	assert.Equal(t, PlazaCubierta, p.Estado)

	// Una plaza cubierta ya no se puede volver a cubrir.
	assert.ErrorIs(t, p.Cubrir(), ErrTransicionInvalida)

	// Cancelar vale desde cualquier estado salvo cancelada.
	assert.NoError(t, p.CancelarPlaza())
	assert.ErrorIs(t, p.CancelarPlaza(), ErrTransicionInvalida)
}
