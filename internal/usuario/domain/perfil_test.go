package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func perfilCompleto() *PerfilDocente {
	return &PerfilDocente{
		Especialidad:       "Matemática",
		ExperienciaAnios:   8,
		NivelesExperiencia: []string{"primaria", "secundaria"},
		Ubicacion:          "Huamanga",
		Disponibilidad:     "inmediata",
		TipoContrato:       "contratado",
		Telefono:           "966123456",
		SobreMi:            "Docente con experiencia en zonas rurales.",
	}
}

func TestCalcularScore(t *testing.T) {
	tests := []struct {
		name         string
		perfil       func() *PerfilDocente
		wantScore    int
		wantCompleto bool
	}{
		{
			name:         "perfil con todos los campos suma 100",
			perfil:       perfilCompleto,
			wantScore:    100,
			wantCompleto: true,
		},
		{
			name:         "perfil vacío suma 0",
			perfil:       func() *PerfilDocente { return &PerfilDocente{} },
			wantScore:    0,
			wantCompleto: false,
		},
		{
			name: "solo especialidad aporta su peso",
			perfil: func() *PerfilDocente {
				return &PerfilDocente{Especialidad: "Comunicación"}
			},
			wantScore:    25,
			wantCompleto: false,
		},
		{
			name: "niveles vacíos no puntúan",
			perfil: func() *PerfilDocente {
				p := perfilCompleto()
				p.NivelesExperiencia = nil
				return p
			},
			wantScore:    85,
			wantCompleto: true,
		},
		{
			name: "justo en el umbral cuenta como completo",
			perfil: func() *PerfilDocente {
				// especialidad + experiencia + niveles + ubicación +
				// teléfono = 80
				p := perfilCompleto()
				p.Disponibilidad = ""
				p.TipoContrato = ""
				p.SobreMi = ""
				return p
			},
			wantScore:    80,
			wantCompleto: true,
		},
		{
			name: "por debajo del umbral queda incompleto",
			perfil: func() *PerfilDocente {
				p := perfilCompleto()
				p.Especialidad = ""
				return p
			},
			wantScore:    75,
			wantCompleto: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, completo := CalcularScore(tt.perfil())
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantCompleto, completo)
		})
	}
}

func TestNotificacion_MarcarLeida(t *testing.T) {
	n := &Notificacion{Tipo: NotifInfo, Titulo: "Prueba"}

	primera := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	n.MarcarLeida(primera)
	assert.True(t, n.Leida)
	assert.Equal(t, primera, *n.FechaLeida)

	// Releer no mueve la fecha original.
	n.MarcarLeida(primera.Add(time.Hour))
	assert.Equal(t, primera, *n.FechaLeida)
}
