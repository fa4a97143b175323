// ABOUTME: Renders the stock level report as a PDF document
// ABOUTME: One row per product with levels and status, low stock highlighted

package report

import (
	"fmt"
	"time"

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

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/format"
	"github.com/basinventario/inventario-cli/internal/inventory"
)

var (
	colorPrimary = &props.Color{Red: 59, Green: 130, Blue: 246}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLow     = &props.Color{Red: 220, Green: 38, Blue: 38}
	colorNormal  = &props.Color{Red: 22, Green: 163, Blue: 74}
	colorMedium  = &props.Color{Red: 202, Green: 138, Blue: 4}
)

// StockReport is the input of the stock PDF
type StockReport struct {
	Items       []client.StockItem
	GeneratedBy string
	GeneratedAt time.Time
}

// StockPDF renders r and returns the PDF bytes
func StockPDF(r StockReport, f *format.Formatter) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Stock", true).
		WithAuthor(r.GeneratedBy, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r, f))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(r.Items, f)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(r.Items, f))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate stock report: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(r StockReport, f *format.Formatter) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("Reporte de Stock", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s productos", f.Int(len(r.Items))), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+format.DateTime(r.GeneratedAt), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Por: "+nonEmpty(r.GeneratedBy, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Actual", 1, align.Right),
		h("Mín.", 1, align.Right),
		h("Máx.", 1, align.Right),
		h("Ubicación", 1, align.Left),
		h("Estado", 2, align.Center),
	)
}

func itemRows(items []client.StockItem, f *format.Formatter) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, item := range items {
		status := inventory.Status(item)
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(item.Nombre, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(item.CategoriaNombre, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(f.Int(item.StockActual), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(f.Int(item.StockMinimo), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(f.Int(item.StockMaximo), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(nonEmpty(item.UbicacionFisica, "-"), props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(2).Add(text.New(status.String(), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: statusColor(status),
			})),
		))
	}
	return rows
}

func totalsRow(items []client.StockItem, f *format.Formatter) core.Row {
	low := len(inventory.LowStock(items))
	return row.New(10).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("Productos con stock bajo: %s de %s", f.Int(low), f.Int(len(items))),
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Color: colorPrimary},
		)),
	)
}

func statusColor(s inventory.StockStatus) *props.Color {
	switch s {
	case inventory.StatusLow:
		return colorLow
	case inventory.StatusNormal:
		return colorNormal
	default:
		return colorMedium
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
