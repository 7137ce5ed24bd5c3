package repository

import (
	"context"

	"github.com/ghsoft/finanzas-api/internal/domain/entity"
	"github.com/ghsoft/finanzas-api/internal/domain/finance"
)

// KPIRepository define el puerto para snapshots mensuales de KPIs.
type KPIRepository interface {
	// Upsert inserta o reemplaza por completo los campos derivados del
	// snapshot con clave (user_id, month_year).
	Upsert(ctx context.Context, snap *entity.KPISnapshot) error
	// GetByMonth devuelve (nil, nil) si el mes no tiene snapshot.
	GetByMonth(ctx context.Context, userID string, month finance.MonthYear) (*entity.KPISnapshot, error)
}
