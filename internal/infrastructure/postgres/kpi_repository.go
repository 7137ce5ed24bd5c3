package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ghsoft/finanzas-api/internal/domain/entity"
	"github.com/ghsoft/finanzas-api/internal/domain/finance"
	"github.com/ghsoft/finanzas-api/internal/domain/repository"
)

var _ repository.KPIRepository = (*KPIRepo)(nil)

// KPIRepo implementación del puerto KPIRepository sobre PostgreSQL.
type KPIRepo struct {
	pool *pgxpool.Pool
}

// NewKPIRepository construye el adaptador de persistencia para KPIs.
func NewKPIRepository(pool *pgxpool.Pool) *KPIRepo {
	return &KPIRepo{pool: pool}
}

// Upsert inserta o reemplaza por completo el snapshot (user_id, month_year).
func (r *KPIRepo) Upsert(ctx context.Context, snap *entity.KPISnapshot) error {
	query := `
		INSERT INTO kpis (id, user_id, month_year, margen_bruto, crecimiento_ingresos, punto_equilibrio, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, month_year)
		DO UPDATE SET
			margen_bruto = EXCLUDED.margen_bruto,
			crecimiento_ingresos = EXCLUDED.crecimiento_ingresos,
			punto_equilibrio = EXCLUDED.punto_equilibrio,
			updated_at = EXCLUDED.updated_at`
	_, err := r.pool.Exec(ctx, query,
		snap.ID, snap.UserID, snap.MonthYear,
		snap.MargenBruto, snap.CrecimientoIngresos, snap.PuntoEquilibrio,
		snap.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert kpi snapshot: %w", err)
	}
	return nil
}

// GetByMonth obtiene el snapshot del mes; (nil, nil) si no existe.
func (r *KPIRepo) GetByMonth(ctx context.Context, userID string, month finance.MonthYear) (*entity.KPISnapshot, error) {
	query := `
		SELECT id, user_id, month_year, margen_bruto, crecimiento_ingresos, punto_equilibrio, updated_at
		FROM kpis
		WHERE user_id = $1 AND month_year = $2`
	var s entity.KPISnapshot
	err := r.pool.QueryRow(ctx, query, userID, month.String()).Scan(
		&s.ID, &s.UserID, &s.MonthYear,
		&s.MargenBruto, &s.CrecimientoIngresos, &s.PuntoEquilibrio,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get kpi by month: %w", err)
	}
	return &s, nil
}
