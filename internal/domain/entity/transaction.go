package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción. El tipo es la autoridad sobre la dirección del flujo:
// el signo de Amount es informativo y la agregación siempre usa Abs(Amount).
const (
	TypeEntrada = "entrada" // ingreso
	TypeSaida   = "saida"   // gasto
)

// Clasificación de costos (solo significativa cuando Type = saida).
const (
	CostFijo     = "fijo"
	CostVariable = "variable"
)

// Transaction es un movimiento financiero de un usuario.
type Transaction struct {
	ID        string
	UserID    string // dueño, inmutable (AuthUserID)
	Amount    decimal.Decimal
	Type      string // entrada, saida
	CostType  string // fijo, variable (vacío para entradas)
	Category  string // etiqueta libre
	Date      time.Time
	CreatedAt time.Time
}

// Effect devuelve el efecto de la transacción sobre el balance:
// +|Amount| para entradas, -|Amount| para salidas.
func (t Transaction) Effect() decimal.Decimal {
	if t.Type == TypeEntrada {
		return t.Amount.Abs()
	}
	return t.Amount.Abs().Neg()
}
