package ledger

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ghsoft/finanzas-api/internal/domain"
	"github.com/ghsoft/finanzas-api/internal/domain/entity"
	"github.com/ghsoft/finanzas-api/internal/domain/finance"
	"github.com/ghsoft/finanzas-api/internal/domain/repository"
)

// TransactionUseCase lectura, edición y borrado de transacciones del dueño.
// Las escrituras re-disparan la derivación de balance y KPIs vía el
// orquestador.
type TransactionUseCase struct {
	transactions repository.TransactionRepository
	ingest       *IngestUseCase
	log          zerolog.Logger
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(transactions repository.TransactionRepository, ingest *IngestUseCase, log zerolog.Logger) *TransactionUseCase {
	return &TransactionUseCase{transactions: transactions, ingest: ingest, log: log}
}

// ListByUser devuelve las transacciones del usuario, fecha descendente.
func (uc *TransactionUseCase) ListByUser(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	return uc.transactions.ListByUser(ctx, userID)
}

// UpdateInput campos editables de una transacción.
type UpdateInput struct {
	Amount   decimal.Decimal
	Type     string
	CostType string
	Category string
	Date     time.Time
}

// Update modifica una transacción del dueño y re-deriva los agregados: el
// balance recibe el efecto neto (nuevo - viejo) y se recalculan los KPIs de
// los meses afectados (el original y el nuevo si cambió la fecha).
func (uc *TransactionUseCase) Update(ctx context.Context, userID, id string, in UpdateInput) (*entity.Transaction, error) {
	existing, err := uc.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	if existing.UserID != userID {
		return nil, domain.ErrAuthorizationDenied
	}

	oldEffect := existing.Effect()
	oldMonth := finance.MonthOf(existing.Date)

	updated := *existing
	updated.Amount = in.Amount
	updated.Type = in.Type
	updated.CostType = in.CostType
	updated.Category = in.Category
	updated.Date = in.Date
	if err := validate(IngestInput{Amount: in.Amount, Type: in.Type, CostType: in.CostType, Category: in.Category, Date: in.Date}); err != nil {
		return nil, err
	}
	if err := uc.transactions.Update(ctx, &updated); err != nil {
		return nil, err
	}

	delta := updated.Effect().Sub(oldEffect)
	uc.ingest.Reprocess(ctx, userID, delta, oldMonth, finance.MonthOf(updated.Date))
	return &updated, nil
}

// Delete elimina una transacción del dueño, revierte su efecto sobre el
// balance y recalcula los KPIs del mes afectado.
func (uc *TransactionUseCase) Delete(ctx context.Context, userID, id string) error {
	existing, err := uc.transactions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	if existing.UserID != userID {
		return domain.ErrAuthorizationDenied
	}
	if err := uc.transactions.Delete(ctx, id); err != nil {
		return err
	}
	uc.ingest.Reprocess(ctx, userID, existing.Effect().Neg(), finance.MonthOf(existing.Date))
	return nil
}
