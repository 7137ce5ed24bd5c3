package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSnapshot es un registro append-only del balance de un usuario.
// El balance vigente es el snapshot más reciente por CreatedAt; los snapshots
// nunca se mutan, la historia completa queda disponible para reconciliación.
type BalanceSnapshot struct {
	ID        string
	UserID    string
	Balance   decimal.Decimal
	CreatedAt time.Time
}
