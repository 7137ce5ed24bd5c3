// Package report genera el reporte mensual de indicadores en PDF.
package report

import (
	"context"

	"github.com/ghsoft/finanzas-api/internal/application/ledger"
	"github.com/ghsoft/finanzas-api/internal/domain"
	"github.com/ghsoft/finanzas-api/internal/domain/entity"
	"github.com/ghsoft/finanzas-api/internal/domain/finance"
)

// KPIReportGenerator es el puerto hacia el generador de PDF.
type KPIReportGenerator interface {
	GenerateKPIReport(ctx context.Context, user *entity.User, snap *entity.KPISnapshot, totals finance.MonthTotals) ([]byte, error)
}

// UserReader carga el perfil del dueño del reporte.
type UserReader interface {
	GetByAuthID(ctx context.Context, authUserID string) (*entity.User, error)
}

// UseCase arma el reporte mensual: snapshot de KPIs más totales del mes.
type UseCase struct {
	kpi       *ledger.KPIUseCase
	users     UserReader
	generator KPIReportGenerator
}

// New construye el caso de uso.
func New(kpi *ledger.KPIUseCase, users UserReader, generator KPIReportGenerator) *UseCase {
	return &UseCase{kpi: kpi, users: users, generator: generator}
}

// MonthlyPDF recalcula el snapshot del mes (garantiza datos frescos en el
// documento) y lo renderiza en PDF.
func (uc *UseCase) MonthlyPDF(ctx context.Context, authUserID string, month finance.MonthYear) ([]byte, error) {
	user, err := uc.users.GetByAuthID(ctx, authUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	snap, err := uc.kpi.CalculateAndUpdate(ctx, authUserID, month)
	if err != nil {
		return nil, err
	}
	totals, err := uc.kpi.Totals(ctx, authUserID, month)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateKPIReport(ctx, user, snap, totals)
}
