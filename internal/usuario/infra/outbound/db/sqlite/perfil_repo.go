package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	userDomain "github.com/ugelhub/convocatorias/internal/usuario/domain"
)

type PerfilRepoSQLite struct {
	db *sql.DB
}

var _ userDomain.PerfilRepository = (*PerfilRepoSQLite)(nil)

func NewPerfilRepoSQLite(db *sql.DB) *PerfilRepoSQLite {
	return &PerfilRepoSQLite{db: db}
}

func (r *PerfilRepoSQLite) GetByUsuario(ctx context.Context, usuarioID uuid.UUID) (*userDomain.PerfilDocente, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, usuario_id, especialidad, experiencia_anios, niveles_experiencia, ubicacion,
		 disponibilidad, tipo_contrato, telefono, sobre_mi, score_perfil, perfil_completo, created_at, updated_at
		 FROM perfiles_docentes WHERE usuario_id=?`, usuarioID.String())

	var p userDomain.PerfilDocente
	var idStr, userStr, nivelesStr string
	if err := row.Scan(&idStr, &userStr, &p.Especialidad, &p.ExperienciaAnios, &nivelesStr, &p.Ubicacion,
		&p.Disponibilidad, &p.TipoContrato, &p.Telefono, &p.SobreMi, &p.ScorePerfil, &p.PerfilCompleto,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userDomain.ErrPerfilNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in perfiles row: %w", err)
	}
	p.ID = id
	uid, err := uuid.Parse(userStr)
	if err != nil {
		return nil, fmt.Errorf("invalid usuario_id in perfiles row: %w", err)
	}
	p.UsuarioID = uid

	if err := json.Unmarshal([]byte(nivelesStr), &p.NivelesExperiencia); err != nil {
		return nil, fmt.Errorf("invalid niveles_experiencia for perfil %s: %w", p.ID, err)
	}
	return &p, nil
}

func (r *PerfilRepoSQLite) Save(ctx context.Context, p *userDomain.PerfilDocente) error {
	niveles, err := json.Marshal(p.NivelesExperiencia)
	if err != nil {
		return fmt.Errorf("marshal niveles_experiencia: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO perfiles_docentes (id, usuario_id, especialidad, experiencia_anios, niveles_experiencia,
		 ubicacion, disponibilidad, tipo_contrato, telefono, sobre_mi, score_perfil, perfil_completo, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (usuario_id) DO UPDATE SET
		   especialidad=excluded.especialidad,
		   experiencia_anios=excluded.experiencia_anios,
		   niveles_experiencia=excluded.niveles_experiencia,
		   ubicacion=excluded.ubicacion,
		   disponibilidad=excluded.disponibilidad,
		   tipo_contrato=excluded.tipo_contrato,
		   telefono=excluded.telefono,
		   sobre_mi=excluded.sobre_mi,
		   score_perfil=excluded.score_perfil,
		   perfil_completo=excluded.perfil_completo,
		   updated_at=excluded.updated_at`,
		p.ID.String(), p.UsuarioID.String(), p.Especialidad, p.ExperienciaAnios, string(niveles),
		p.Ubicacion, p.Disponibilidad, p.TipoContrato, p.Telefono, p.SobreMi,
		p.ScorePerfil, p.PerfilCompleto, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
