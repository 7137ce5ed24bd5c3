package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// KPIResponse snapshot mensual de indicadores.
type KPIResponse struct {
	UserID              string          `json:"user_id"`
	MonthYear           string          `json:"month_year"`
	MargenBruto         decimal.Decimal `json:"margen_bruto"`
	CrecimientoIngresos decimal.Decimal `json:"crecimiento_ingresos"`
	PuntoEquilibrio     decimal.Decimal `json:"punto_equilibrio"`
	UpdatedAt           time.Time       `json:"updated_at"`
}
