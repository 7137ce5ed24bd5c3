package repository

import (
	"context"

	"github.com/ghsoft/finanzas-api/internal/domain/entity"
)

// BalanceRepository define el puerto para la secuencia append-only de balances.
//
// No hay Update: el balance vigente es el último snapshot y los anteriores se
// conservan como pista de auditoría. GetLatest devuelve (nil, nil) si el
// usuario aún no tiene snapshots (balance implícito 0).
type BalanceRepository interface {
	GetLatest(ctx context.Context, userID string) (*entity.BalanceSnapshot, error)
	Append(ctx context.Context, snap *entity.BalanceSnapshot) error
	// History devuelve los snapshots del usuario del más reciente al más antiguo.
	History(ctx context.Context, userID string, limit int) ([]*entity.BalanceSnapshot, error)
}
