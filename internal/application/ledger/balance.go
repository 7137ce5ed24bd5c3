package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghsoft/finanzas-api/internal/domain"
	"github.com/ghsoft/finanzas-api/internal/domain/entity"
	"github.com/ghsoft/finanzas-api/internal/domain/repository"
)

// BalanceUseCase mantiene el balance corriente de cada usuario como una
// secuencia append-only de snapshots.
type BalanceUseCase struct {
	balances repository.BalanceRepository
}

// History devuelve los snapshots del usuario del más reciente al más antiguo,
// la pista de auditoría para reconciliar balances divergentes.
func (uc *BalanceUseCase) History(ctx context.Context, userID string, limit int) ([]*entity.BalanceSnapshot, error) {
	snaps, err := uc.balances.History(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBalanceRead, err)
	}
	return snaps, nil
}

// NewBalanceUseCase construye el agregador de balances.
func NewBalanceUseCase(balances repository.BalanceRepository) *BalanceUseCase {
	return &BalanceUseCase{balances: balances}
}

// Recompute lee el snapshot más reciente (ausente = balance 0), aplica el
// efecto de la transacción (entrada suma, saida resta, siempre sobre
// |amount|) y agrega un snapshot nuevo. Nunca muta snapshots existentes.
//
// No hay lock ni compare-and-swap: dos envíos concurrentes del mismo usuario
// pueden leer el mismo snapshot y agregar ambos un balance derivado del valor
// viejo. Brecha de consistencia aceptada; el historial completo queda para
// reconciliación posterior.
func (uc *BalanceUseCase) Recompute(ctx context.Context, userID string, amount decimal.Decimal, txType string) (*entity.BalanceSnapshot, error) {
	latest, err := uc.balances.GetLatest(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBalanceRead, err)
	}

	current := decimal.Zero
	if latest != nil {
		current = latest.Balance
	}

	delta := amount.Abs()
	if txType != entity.TypeEntrada {
		delta = delta.Neg()
	}

	snap := &entity.BalanceSnapshot{
		ID:        uuid.New().String(),
		UserID:    userID,
		Balance:   current.Add(delta),
		CreatedAt: time.Now(),
	}
	if err := uc.balances.Append(ctx, snap); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBalanceWrite, err)
	}
	return snap, nil
}

// Current devuelve el balance vigente del usuario (0 si no hay snapshots).
func (uc *BalanceUseCase) Current(ctx context.Context, userID string) (decimal.Decimal, error) {
	latest, err := uc.balances.GetLatest(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrBalanceRead, err)
	}
	if latest == nil {
		return decimal.Zero, nil
	}
	return latest.Balance, nil
}
