package repository

import (
	"context"
	"time"

	"github.com/ghsoft/finanzas-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para transacciones.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	// ListByUser devuelve las transacciones del usuario ordenadas por fecha descendente.
	ListByUser(ctx context.Context, userID string) ([]*entity.Transaction, error)
	// ListByUserAndRange devuelve las transacciones con date en [start, end),
	// ordenadas por fecha descendente.
	ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]*entity.Transaction, error)
	Update(ctx context.Context, tx *entity.Transaction) error
	Delete(ctx context.Context, id string) error
}
