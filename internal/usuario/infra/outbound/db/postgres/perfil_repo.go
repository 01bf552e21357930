package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	userDomain "github.com/ugelhub/convocatorias/internal/usuario/domain"
)

type PerfilRepoPostgres struct {
	db *sql.DB
}

var _ userDomain.PerfilRepository = (*PerfilRepoPostgres)(nil)

func NewPerfilRepoPostgres(db *sql.DB) *PerfilRepoPostgres {
	return &PerfilRepoPostgres{db: db}
}

func (r *PerfilRepoPostgres) GetByUsuario(ctx context.Context, usuarioID uuid.UUID) (*userDomain.PerfilDocente, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, usuario_id, especialidad, experiencia_anios, niveles_experiencia, ubicacion,
		 disponibilidad, tipo_contrato, telefono, sobre_mi, score_perfil, perfil_completo, created_at, updated_at
		 FROM perfiles_docentes WHERE usuario_id=$1`, usuarioID)

	var p userDomain.PerfilDocente
	var niveles []byte
	if err := row.Scan(&p.ID, &p.UsuarioID, &p.Especialidad, &p.ExperienciaAnios, &niveles, &p.Ubicacion,
		&p.Disponibilidad, &p.TipoContrato, &p.Telefono, &p.SobreMi, &p.ScorePerfil, &p.PerfilCompleto,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userDomain.ErrPerfilNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := json.Unmarshal(niveles, &p.NivelesExperiencia); err != nil {
		return nil, fmt.Errorf("invalid niveles_experiencia for perfil %s: %w", p.ID, err)
	}
	return &p, nil
}

// Save escribe el perfil completo, derivados incluidos, en un único
// upsert: score y completitud nunca se observan desfasados del resto.
func (r *PerfilRepoPostgres) Save(ctx context.Context, p *userDomain.PerfilDocente) error {
	niveles, err := json.Marshal(p.NivelesExperiencia)
	if err != nil {
		return fmt.Errorf("marshal niveles_experiencia: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO perfiles_docentes (id, usuario_id, especialidad, experiencia_anios, niveles_experiencia,
		 ubicacion, disponibilidad, tipo_contrato, telefono, sobre_mi, score_perfil, perfil_completo, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 ON CONFLICT (usuario_id) DO UPDATE SET
		   especialidad=EXCLUDED.especialidad,
		   experiencia_anios=EXCLUDED.experiencia_anios,
		   niveles_experiencia=EXCLUDED.niveles_experiencia,
		   ubicacion=EXCLUDED.ubicacion,
		   disponibilidad=EXCLUDED.disponibilidad,
		   tipo_contrato=EXCLUDED.tipo_contrato,
		   telefono=EXCLUDED.telefono,
		   sobre_mi=EXCLUDED.sobre_mi,
		   score_perfil=EXCLUDED.score_perfil,
		   perfil_completo=EXCLUDED.perfil_completo,
		   updated_at=EXCLUDED.updated_at`,
		p.ID, p.UsuarioID, p.Especialidad, p.ExperienciaAnios, niveles,
		p.Ubicacion, p.Disponibilidad, p.TipoContrato, p.Telefono, p.SobreMi,
		p.ScorePerfil, p.PerfilCompleto, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
