package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ghsoft/finanzas-api/internal/domain/entity"
	"github.com/ghsoft/finanzas-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del puerto TransactionRepository sobre PostgreSQL.
type TransactionRepo struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository construye el adaptador de persistencia para transacciones.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

const txColumns = `id, user_id, amount, type, cost_type, category, date, created_at`

// Create persiste una transacción nueva.
func (r *TransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, amount, type, cost_type, category, date, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		tx.ID, tx.UserID, tx.Amount, tx.Type, tx.CostType, tx.Category, tx.Date, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción; (nil, nil) si no existe.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE id = $1`
	t, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction by id: %w", err)
	}
	return t, nil
}

// ListByUser devuelve las transacciones del usuario, fecha descendente.
func (r *TransactionRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE user_id = $1 ORDER BY date DESC, created_at DESC`
	return r.list(ctx, query, userID)
}

// ListByUserAndRange devuelve las transacciones con date en [start, end), fecha descendente.
func (r *TransactionRepo) ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + txColumns + `
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date < $3
		ORDER BY date DESC, created_at DESC`
	return r.list(ctx, query, userID, start, end)
}

// Update reescribe los campos editables de una transacción.
func (r *TransactionRepo) Update(ctx context.Context, tx *entity.Transaction) error {
	query := `
		UPDATE transactions
		SET amount = $2, type = $3, cost_type = NULLIF($4, ''), category = $5, date = $6
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, tx.ID, tx.Amount, tx.Type, tx.CostType, tx.Category, tx.Date)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

// Delete elimina una transacción por ID.
func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var costType *string
	if err := row.Scan(&t.ID, &t.UserID, &t.Amount, &t.Type, &costType, &t.Category, &t.Date, &t.CreatedAt); err != nil {
		return nil, err
	}
	if costType != nil {
		t.CostType = *costType
	}
	return &t, nil
}
