package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ghsoft/finanzas-api/internal/domain"
	"github.com/ghsoft/finanzas-api/internal/domain/entity"
	"github.com/ghsoft/finanzas-api/internal/domain/repository"
)

var _ repository.TeamRepository = (*TeamRepo)(nil)

// TeamRepo implementación del puerto TeamRepository sobre PostgreSQL.
type TeamRepo struct {
	pool *pgxpool.Pool
}

// NewTeamRepository construye el adaptador de persistencia para equipos.
func NewTeamRepository(pool *pgxpool.Pool) *TeamRepo {
	return &TeamRepo{pool: pool}
}

// Create persiste un equipo nuevo. Devuelve domain.ErrDuplicate si el código
// ya existe (colisión del sufijo aleatorio).
func (r *TeamRepo) Create(ctx context.Context, team *entity.Team) error {
	query := `
		INSERT INTO teams (id, code, name, password, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		team.ID, team.Code, team.Name, team.Password, team.CreatedBy, team.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

// GetByCode obtiene un equipo por su código; (nil, nil) si no existe.
func (r *TeamRepo) GetByCode(ctx context.Context, code string) (*entity.Team, error) {
	query := `SELECT id, code, name, password, created_by, created_at FROM teams WHERE code = $1`
	var t entity.Team
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&t.ID, &t.Code, &t.Name, &t.Password, &t.CreatedBy, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team by code: %w", err)
	}
	return &t, nil
}
