package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ghsoft/finanzas-api/internal/domain/entity"
	"github.com/ghsoft/finanzas-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementación del puerto BalanceRepository sobre PostgreSQL.
// La tabla es append-only: nunca se hace UPDATE sobre balances.
type BalanceRepo struct {
	pool *pgxpool.Pool
}

// NewBalanceRepository construye el adaptador de persistencia para balances.
func NewBalanceRepository(pool *pgxpool.Pool) *BalanceRepo {
	return &BalanceRepo{pool: pool}
}

// GetLatest devuelve el snapshot más reciente del usuario; (nil, nil) si no hay.
func (r *BalanceRepo) GetLatest(ctx context.Context, userID string) (*entity.BalanceSnapshot, error) {
	query := `
		SELECT id, user_id, balance, created_at
		FROM balances
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1`
	var s entity.BalanceSnapshot
	err := r.pool.QueryRow(ctx, query, userID).Scan(&s.ID, &s.UserID, &s.Balance, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest balance: %w", err)
	}
	return &s, nil
}

// Append agrega un snapshot nuevo.
func (r *BalanceRepo) Append(ctx context.Context, snap *entity.BalanceSnapshot) error {
	query := `INSERT INTO balances (id, user_id, balance, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.pool.Exec(ctx, query, snap.ID, snap.UserID, snap.Balance, snap.CreatedAt); err != nil {
		return fmt.Errorf("append balance snapshot: %w", err)
	}
	return nil
}

// History devuelve los snapshots del usuario, del más reciente al más antiguo.
func (r *BalanceRepo) History(ctx context.Context, userID string, limit int) ([]*entity.BalanceSnapshot, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, user_id, balance, created_at
		FROM balances
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("balance history: %w", err)
	}
	defer rows.Close()
	var list []*entity.BalanceSnapshot
	for rows.Next() {
		var s entity.BalanceSnapshot
		if err := rows.Scan(&s.ID, &s.UserID, &s.Balance, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan balance snapshot: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
