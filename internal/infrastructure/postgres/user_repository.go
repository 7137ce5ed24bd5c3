package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ghsoft/finanzas-api/internal/domain"
	"github.com/ghsoft/finanzas-api/internal/domain/entity"
	"github.com/ghsoft/finanzas-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para perfiles.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, auth_user_id, name, role, team_code, created_at, updated_at`

// Create persiste un perfil nuevo. Devuelve domain.ErrDuplicate si ya existe
// uno para el mismo auth_user_id (constraint único).
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, auth_user_id, name, role, team_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.AuthUserID, user.Name, user.Role, user.TeamCode,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// CreatePrivileged es el análogo en proceso del RPC privilegiado create_user:
// inserta saltando el conflicto de unicidad y devuelve la fila resultante,
// exista ya o no. Produce exactamente la misma fila que Create.
func (r *UserRepo) CreatePrivileged(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (id, auth_user_id, name, role, team_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		ON CONFLICT (auth_user_id) DO NOTHING`
	if _, err := r.pool.Exec(ctx, query,
		user.ID, user.AuthUserID, user.Name, user.Role, user.TeamCode,
		user.CreatedAt, user.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("insert user (privileged): %w", err)
	}
	existing, err := r.GetByAuthID(ctx, user.AuthUserID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("insert user (privileged): fila no visible tras el insert")
	}
	return existing, nil
}

// GetByAuthID obtiene el perfil por su identidad externa; (nil, nil) si no existe.
func (r *UserRepo) GetByAuthID(ctx context.Context, authUserID string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE auth_user_id = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, query, authUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by auth id: %w", err)
	}
	return u, nil
}

// Update aplica cambios parciales al perfil y devuelve la fila actualizada.
func (r *UserRepo) Update(ctx context.Context, authUserID string, updates repository.UserUpdates) (*entity.User, error) {
	query := `
		UPDATE users SET
			name = COALESCE($2, name),
			team_code = COALESCE(NULLIF($3, ''), team_code),
			updated_at = $4
		WHERE auth_user_id = $1
		RETURNING ` + userColumns
	var name, teamCode string
	var namePtr *string
	if updates.Name != nil {
		name = *updates.Name
		namePtr = &name
	}
	if updates.TeamCode != nil {
		teamCode = *updates.TeamCode
	}
	u, err := scanUser(r.pool.QueryRow(ctx, query, authUserID, namePtr, teamCode, time.Now()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// ListByTeamCode lista los perfiles de un equipo.
func (r *UserRepo) ListByTeamCode(ctx context.Context, teamCode string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE team_code = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, teamCode)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var teamCode *string
	if err := row.Scan(&u.ID, &u.AuthUserID, &u.Name, &u.Role, &teamCode, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if teamCode != nil {
		u.TeamCode = *teamCode
	}
	return &u, nil
}
