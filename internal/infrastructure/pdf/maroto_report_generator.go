// Package pdf implementa la generación del reporte de movimientos en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + rango de fechas                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total movimientos / por tipo / valor movido       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Producto | Origen | Destino | Cant   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"
	"strings"

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

	"github.com/nutrichain/almacen-service/internal/application/dto"
	"github.com/nutrichain/almacen-service/internal/application/reportes"
	"github.com/nutrichain/almacen-service/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reportes.MovementReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa reportes.MovementReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateMovementReport genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateMovementReport(
	_ context.Context,
	report *dto.MovementReportResponse,
	movements []*entity.Movement,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Movimientos de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(report)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, mov := range movements {
		m.AddRows(movementRow(mov))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y rango de fechas (der).
func headerRow(report *dto.MovementReportResponse) core.Row {
	rango := fmt.Sprintf("%s — %s",
		report.From.Format("02/01/2006"), report.To.Format("02/01/2006"))

	return row.New(14).Add(
		col.New(8).Add(
			text.New("Reporte de Movimientos de Inventario", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New(rango, props.Text{
				Size: 10, Top: 3, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

// summaryRows: totales del periodo y desglose por tipo.
func summaryRows(report *dto.MovementReportResponse) []core.Row {
	types := make([]string, 0, len(report.ByType))
	for t := range report.ByType {
		types = append(types, t)
	}
	sort.Strings(types)
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("%s: %d", t, report.ByType[t]))
	}

	return []core.Row{
		row.New(7).Add(
			col.New(6).Add(text.New(
				fmt.Sprintf("Total movimientos: %d", report.TotalMovements),
				props.Text{Style: fontstyle.Bold, Size: 10, Top: 1},
			)),
			col.New(6).Add(text.New(
				fmt.Sprintf("Valor total movido: $ %s", report.TotalValue.StringFixed(2)),
				props.Text{Style: fontstyle.Bold, Size: 10, Top: 1, Align: align.Right},
			)),
		),
		row.New(6).Add(
			col.New(12).Add(text.New(
				"Por tipo: "+strings.Join(parts, "  ·  "),
				props.Text{Size: 9, Top: 1, Color: colorGray},
			)),
		),
	}
}

// tableHeaderRow: encabezado de la tabla de movimientos.
func tableHeaderRow() core.Row {
	header := func(label string, size int, al align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1.5, Align: al,
		}))
	}
	return row.New(7).Add(
		header("Fecha", 2, align.Left),
		header("Tipo", 2, align.Left),
		header("Producto", 3, align.Left),
		header("Origen", 2, align.Left),
		header("Destino", 2, align.Left),
		header("Cantidad", 1, align.Right),
	)
}

// movementRow: una fila de la tabla por movimiento del ledger.
func movementRow(m *entity.Movement) core.Row {
	cell := func(value string, size int, al align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Top: 1, Align: al}))
	}
	return row.New(6).Add(
		cell(m.CreatedAt.Format("02/01/2006 15:04"), 2, align.Left),
		cell(m.Type, 2, align.Left),
		cell(m.ProductID, 3, align.Left),
		cell(deref(m.OriginWarehouseID), 2, align.Left),
		cell(deref(m.DestinationWarehouseID), 2, align.Left),
		cell(m.Quantity.String(), 1, align.Right),
	)
}

func deref(s *string) string {
	if s == nil {
		return "—"
	}
	return *s
}
