// Package pdf genera el reporte mensual de indicadores financieros.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: GHS Finanzas  │  Usuario + Mes                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Ingresos / Gastos / Costos fijos / Variables       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Margen bruto / Crecimiento ingresos / Pto. equilibrio │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/ghsoft/finanzas-api/internal/application/report"
	"github.com/ghsoft/finanzas-api/internal/domain/entity"
	"github.com/ghsoft/finanzas-api/internal/domain/finance"
)

var _ report.KPIReportGenerator = (*MarotoKPIReport)(nil)

var (
	colorPrimary = &props.Color{Red: 16, Green: 92, Blue: 78}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoKPIReport implementa report.KPIReportGenerator usando Maroto v2.
type MarotoKPIReport struct{}

// NewMarotoKPIReport construye el generador.
func NewMarotoKPIReport() *MarotoKPIReport { return &MarotoKPIReport{} }

// GenerateKPIReport genera el PDF del mes y devuelve sus bytes.
func (g *MarotoKPIReport) GenerateKPIReport(
	_ context.Context,
	user *entity.User,
	snap *entity.KPISnapshot,
	totals finance.MonthTotals,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte mensual de KPIs", true).
		WithAuthor("GHS Finanzas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(user, snap.MonthYear))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(sectionTitle("TOTALES DEL MES"))
	m.AddRows(metricRow("Ingresos", totals.Revenue))
	m.AddRows(metricRow("Gastos", totals.Expenses))
	m.AddRows(metricRow("Costos fijos", totals.FixedCosts))
	m.AddRows(metricRow("Costos variables", totals.VariableCosts))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("INDICADORES"))
	m.AddRows(percentRow("Margen bruto", snap.MargenBruto))
	m.AddRows(percentRow("Crecimiento de ingresos", snap.CrecimientoIngresos))
	m.AddRows(metricRow("Punto de equilibrio", snap.PuntoEquilibrio))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de la app (izq) y usuario + mes (der).
func headerRow(user *entity.User, monthYear string) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("GHS Finanzas", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte mensual de indicadores", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(user.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("Mes: "+monthYear, props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		})),
	)
}

func metricRow(label string, value decimal.Decimal) core.Row {
	return row.New(7).Add(
		col.New(8).Add(text.New(label, props.Text{Size: 9, Top: 1})),
		col.New(4).Add(text.New("$"+value.StringFixed(2), props.Text{
			Size: 9, Align: align.Right, Top: 1,
		})),
	)
}

func percentRow(label string, value decimal.Decimal) core.Row {
	return row.New(7).Add(
		col.New(8).Add(text.New(label, props.Text{Size: 9, Top: 1})),
		col.New(4).Add(text.New(value.StringFixed(2)+"%", props.Text{
			Size: 9, Align: align.Right, Top: 1,
		})),
	)
}
