// Package finance contiene el cálculo puro de indicadores mensuales.
//
// Las funciones de este paquete son deterministas: dado el historial de
// transacciones de un mes (y los ingresos del mes anterior) producen siempre
// los mismos indicadores, sin tocar almacenamiento. El motor de snapshots los
// recalcula completos en cada disparo en lugar de actualizarlos
// incrementalmente.
package finance

import (
	"github.com/shopspring/decimal"

	"github.com/ghsoft/finanzas-api/internal/domain/entity"
)

var cien = decimal.NewFromInt(100)

// MonthTotals son los agregados brutos de un mes.
type MonthTotals struct {
	Revenue       decimal.Decimal // suma de |amount| con type = entrada
	Expenses      decimal.Decimal // suma de |amount| con type = saida
	FixedCosts    decimal.Decimal // suma de |amount| con type = saida y cost_type = fijo
	VariableCosts decimal.Decimal // suma de |amount| con type = saida y cost_type = variable
}

// KPIs son los indicadores derivados de un mes.
type KPIs struct {
	MargenBruto         decimal.Decimal
	CrecimientoIngresos decimal.Decimal
	PuntoEquilibrio     decimal.Decimal
}

// Totals acumula los agregados del mes a partir del historial.
// La dirección la decide el tipo de la transacción, nunca el signo del monto.
func Totals(txs []*entity.Transaction) MonthTotals {
	var t MonthTotals
	for _, tx := range txs {
		amount := tx.Amount.Abs()
		switch tx.Type {
		case entity.TypeEntrada:
			t.Revenue = t.Revenue.Add(amount)
		case entity.TypeSaida:
			t.Expenses = t.Expenses.Add(amount)
			switch tx.CostType {
			case entity.CostFijo:
				t.FixedCosts = t.FixedCosts.Add(amount)
			case entity.CostVariable:
				t.VariableCosts = t.VariableCosts.Add(amount)
			}
		}
	}
	return t
}

// Compute deriva los KPIs del mes a partir de sus totales y de los ingresos
// del mes anterior.
//
//   - margen_bruto = (ingresos - gastos) / ingresos * 100, o 0 si no hay ingresos.
//   - crecimiento_ingresos = (ingresos - ingresos_prev) / ingresos_prev * 100,
//     o 0 si el mes anterior no tuvo ingresos.
//   - punto_equilibrio = costos fijos del mes. Es una aproximación (el punto de
//     equilibrio contable requiere la razón de margen de contribución); se
//     conserva tal cual por compatibilidad con el comportamiento observado.
func Compute(month MonthTotals, prevRevenue decimal.Decimal) KPIs {
	var k KPIs

	if month.Revenue.GreaterThan(decimal.Zero) {
		k.MargenBruto = month.Revenue.Sub(month.Expenses).Div(month.Revenue).Mul(cien)
	}
	if prevRevenue.GreaterThan(decimal.Zero) {
		k.CrecimientoIngresos = month.Revenue.Sub(prevRevenue).Div(prevRevenue).Mul(cien)
	}
	k.PuntoEquilibrio = month.FixedCosts

	return k
}
