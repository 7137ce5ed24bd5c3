package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRequest cuerpo de POST/PUT /api/transactions. El user_id nunca
// viene en el cuerpo: se inyecta desde la identidad autenticada.
type TransactionRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`      // entrada, saida
	CostType string          `json:"cost_type"` // fijo, variable (solo saida)
	Category string          `json:"category"`
	Date     string          `json:"date"` // YYYY-MM-DD
}

// TransactionResponse representación de una transacción en la API.
type TransactionResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type"`
	CostType  string          `json:"cost_type,omitempty"`
	Category  string          `json:"category,omitempty"`
	Date      string          `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

// TransactionListResponse respuesta de GET /api/transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// IngestResponse respuesta de POST /api/transactions. Solo la transacción
// está garantizada: si balance o KPIs fallaron después del insert, la
// respuesta sigue siendo de éxito y la inconsistencia queda en el log.
type IngestResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Balance     decimal.Decimal     `json:"balance,omitempty"`
}

// StatsResponse respuesta de GET /api/transactions/stats: agregados del mes
// en curso contra el anterior.
type StatsResponse struct {
	CurrentMonthRevenue       decimal.Decimal   `json:"currentMonthRevenue"`
	CurrentMonthExpenses      decimal.Decimal   `json:"currentMonthExpenses"`
	CurrentMonthFixedCosts    decimal.Decimal   `json:"currentMonthFixedCosts"`
	CurrentMonthVariableCosts decimal.Decimal   `json:"currentMonthVariableCosts"`
	LastMonthRevenue          decimal.Decimal   `json:"lastMonthRevenue"`
	LastMonthExpenses         decimal.Decimal   `json:"lastMonthExpenses"`
	CurrentGrossMargin        decimal.Decimal   `json:"currentGrossMargin"`
	RevenueGrowth             decimal.Decimal   `json:"revenueGrowth"`
	TopExpenseCategories      []CategoryExpense `json:"topExpenseCategories"`
}

// CategoryExpense gasto acumulado de una categoría en el mes.
type CategoryExpense struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// BalanceResponse respuesta de GET /api/balance.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// BalanceHistoryEntry snapshot histórico de balance.
type BalanceHistoryEntry struct {
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// BalanceHistoryResponse respuesta de GET /api/balance/history.
type BalanceHistoryResponse struct {
	History []BalanceHistoryEntry `json:"history"`
}
