package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghsoft/finanzas-api/internal/domain"
	"github.com/ghsoft/finanzas-api/internal/domain/entity"
	"github.com/ghsoft/finanzas-api/internal/domain/finance"
	"github.com/ghsoft/finanzas-api/internal/domain/repository"
)

// KPIUseCase recalcula el snapshot mensual de indicadores de un usuario.
// Es una función pura de (user, mes) contra el historial de transacciones al
// momento de la llamada: nada se actualiza incrementalmente.
type KPIUseCase struct {
	transactions repository.TransactionRepository
	kpis         repository.KPIRepository
}

// NewKPIUseCase construye el motor de snapshots de KPIs.
func NewKPIUseCase(transactions repository.TransactionRepository, kpis repository.KPIRepository) *KPIUseCase {
	return &KPIUseCase{transactions: transactions, kpis: kpis}
}

// CalculateAndUpdate recalcula desde cero los indicadores del mes a partir
// del historial completo y reemplaza el snapshot (user_id, month_year). Dos
// ejecuciones seguidas sin escrituras intermedias producen campos derivados
// idénticos.
func (uc *KPIUseCase) CalculateAndUpdate(ctx context.Context, userID string, month finance.MonthYear) (*entity.KPISnapshot, error) {
	totals, err := uc.monthTotals(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrKpiCompute, err)
	}
	prev, err := uc.monthTotals(ctx, userID, month.Prev())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrKpiCompute, err)
	}

	k := finance.Compute(totals, prev.Revenue)
	snap := &entity.KPISnapshot{
		ID:                  uuid.New().String(),
		UserID:              userID,
		MonthYear:           month.String(),
		MargenBruto:         k.MargenBruto,
		CrecimientoIngresos: k.CrecimientoIngresos,
		PuntoEquilibrio:     k.PuntoEquilibrio,
		UpdatedAt:           time.Now(),
	}
	if err := uc.kpis.Upsert(ctx, snap); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrKpiCompute, err)
	}
	return snap, nil
}

// GetByMonth devuelve el snapshot almacenado del mes, o domain.ErrNotFound.
func (uc *KPIUseCase) GetByMonth(ctx context.Context, userID string, month finance.MonthYear) (*entity.KPISnapshot, error) {
	snap, err := uc.kpis.GetByMonth(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, domain.ErrNotFound
	}
	return snap, nil
}

// Stats agrega los totales del mes en curso contra el anterior y acumula el
// gasto por categoría (top 3).
func (uc *KPIUseCase) Stats(ctx context.Context, userID string, now time.Time) (current, previous finance.MonthTotals, topCategories []CategoryTotal, err error) {
	month := finance.MonthOf(now)

	current, err = uc.monthTotals(ctx, userID, month)
	if err != nil {
		return finance.MonthTotals{}, finance.MonthTotals{}, nil, err
	}
	previous, err = uc.monthTotals(ctx, userID, month.Prev())
	if err != nil {
		return finance.MonthTotals{}, finance.MonthTotals{}, nil, err
	}

	start, end, err := month.Bounds()
	if err != nil {
		return finance.MonthTotals{}, finance.MonthTotals{}, nil, err
	}
	txs, err := uc.transactions.ListByUserAndRange(ctx, userID, start, end)
	if err != nil {
		return finance.MonthTotals{}, finance.MonthTotals{}, nil, err
	}
	topCategories = topExpenseCategories(txs, 3)
	return current, previous, topCategories, nil
}

// CategoryTotal gasto acumulado de una categoría.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

func topExpenseCategories(txs []*entity.Transaction, n int) []CategoryTotal {
	byCategory := make(map[string]decimal.Decimal)
	var order []string
	for _, tx := range txs {
		if tx.Type != entity.TypeSaida {
			continue
		}
		if _, ok := byCategory[tx.Category]; !ok {
			order = append(order, tx.Category)
		}
		byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount.Abs())
	}

	totals := make([]CategoryTotal, 0, len(order))
	for _, c := range order {
		totals = append(totals, CategoryTotal{Category: c, Total: byCategory[c]})
	}
	// Orden descendente por total; estable respecto al orden de aparición.
	for i := 1; i < len(totals); i++ {
		for j := i; j > 0 && totals[j].Total.GreaterThan(totals[j-1].Total); j-- {
			totals[j], totals[j-1] = totals[j-1], totals[j]
		}
	}
	if len(totals) > n {
		totals = totals[:n]
	}
	return totals
}

// Totals devuelve los agregados brutos de un mes del usuario.
func (uc *KPIUseCase) Totals(ctx context.Context, userID string, month finance.MonthYear) (finance.MonthTotals, error) {
	return uc.monthTotals(ctx, userID, month)
}

func (uc *KPIUseCase) monthTotals(ctx context.Context, userID string, month finance.MonthYear) (finance.MonthTotals, error) {
	start, end, err := month.Bounds()
	if err != nil {
		return finance.MonthTotals{}, err
	}
	txs, err := uc.transactions.ListByUserAndRange(ctx, userID, start, end)
	if err != nil {
		return finance.MonthTotals{}, err
	}
	return finance.Totals(txs), nil
}
