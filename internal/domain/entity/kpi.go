package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// KPISnapshot son los indicadores derivados de un usuario para un mes.
// Clave única (UserID, MonthYear); cada recálculo reemplaza los campos
// derivados por completo, nunca los mezcla con valores anteriores.
type KPISnapshot struct {
	ID                  string
	UserID              string
	MonthYear           string          // formato YYYY-MM
	MargenBruto         decimal.Decimal // % margen bruto del mes
	CrecimientoIngresos decimal.Decimal // % crecimiento de ingresos vs mes anterior
	PuntoEquilibrio     decimal.Decimal // costos fijos del mes
	UpdatedAt           time.Time
}
