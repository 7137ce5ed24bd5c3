package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/ghsoft/finanzas-api/internal/application/dto"
	"github.com/ghsoft/finanzas-api/internal/application/ledger"
	"github.com/ghsoft/finanzas-api/internal/application/report"
	"github.com/ghsoft/finanzas-api/internal/domain"
	"github.com/ghsoft/finanzas-api/internal/domain/entity"
	"github.com/ghsoft/finanzas-api/internal/domain/finance"
)

// KPIHandler expone los snapshots mensuales de indicadores.
type KPIHandler struct {
	kpi    *ledger.KPIUseCase
	report *report.UseCase
}

// NewKPIHandler construye el handler de KPIs.
func NewKPIHandler(kpi *ledger.KPIUseCase, report *report.UseCase) *KPIHandler {
	return &KPIHandler{kpi: kpi, report: report}
}

// Get devuelve el snapshot almacenado del mes.
// GET /api/kpis/:month (month = YYYY-MM)
func (h *KPIHandler) Get(c *fiber.Ctx) error {
	month, err := finance.ParseMonth(c.Params("month"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(dto.KindValidation, "month debe tener formato YYYY-MM"))
	}

	snap, err := h.kpi.GetByMonth(c.Context(), GetUserID(c), month)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.NewError(dto.KindNotFound, "no hay snapshot de KPIs para ese mes"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(
			dto.NewError(dto.KindInternal, "error al consultar KPIs").WithDetails(err.Error()))
	}
	return c.JSON(toKPIResponse(snap))
}

// Recalculate fuerza el recálculo del snapshot del mes y lo devuelve.
// POST /api/kpis/:month/recalculate
func (h *KPIHandler) Recalculate(c *fiber.Ctx) error {
	month, err := finance.ParseMonth(c.Params("month"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(dto.KindValidation, "month debe tener formato YYYY-MM"))
	}

	snap, err := h.kpi.CalculateAndUpdate(c.Context(), GetUserID(c), month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(
			dto.NewError(dto.KindKpiComputeFailed, "error al recalcular KPIs").WithDetails(err.Error()))
	}
	return c.JSON(toKPIResponse(snap))
}

// Report genera el reporte mensual de indicadores en PDF.
// GET /api/kpis/:month/report
func (h *KPIHandler) Report(c *fiber.Ctx) error {
	month, err := finance.ParseMonth(c.Params("month"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(dto.KindValidation, "month debe tener formato YYYY-MM"))
	}

	pdf, err := h.report.MonthlyPDF(c.Context(), GetUserID(c), month)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.NewError(dto.KindNotFound, "perfil no encontrado"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(
			dto.NewError(dto.KindInternal, "error al generar el reporte").WithDetails(err.Error()))
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="kpis_%s.pdf"`, month))
	return c.Send(pdf)
}

func toKPIResponse(snap *entity.KPISnapshot) dto.KPIResponse {
	return dto.KPIResponse{
		UserID:              snap.UserID,
		MonthYear:           snap.MonthYear,
		MargenBruto:         snap.MargenBruto,
		CrecimientoIngresos: snap.CrecimientoIngresos,
		PuntoEquilibrio:     snap.PuntoEquilibrio,
		UpdatedAt:           snap.UpdatedAt,
	}
}
