// Package pdf implementa la impresión de comprobantes de entrada y salida de bodega.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la app + tipo  │  Código + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: Creado por / Nota                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Código | Producto | Unidad | Cant | P.Unit | Sub │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Líneas / Unidades / TOTAL                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR del código + firmas                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/pkg/i18n"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptPrinter implementa ports.ReceiptPrinter usando Maroto v2.
type MarotoReceiptPrinter struct {
	appName string
	tr      *i18n.Translator
}

// NewMarotoReceiptPrinter construye el generador.
func NewMarotoReceiptPrinter(appName string, tr *i18n.Translator) *MarotoReceiptPrinter {
	return &MarotoReceiptPrinter{appName: appName, tr: tr}
}

// RenderReceipt genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptPrinter) RenderReceipt(_ context.Context, r dto.ReceiptDetail) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(kindTitle(r.Kind)+" "+r.Code, true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(infoRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableDetailRows(r.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(r))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(r)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func kindTitle(kind string) string {
	if kind == string(entity.ReceiptExport) {
		return "COMPROBANTE DE SALIDA"
	}
	return "COMPROBANTE DE ENTRADA"
}

// headerRow: nombre de la app + tipo (izq) y código + fecha (der).
func (g *MarotoReceiptPrinter) headerRow(r dto.ReceiptDetail) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.appName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(kindTitle(r.Kind), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(r.Code, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Fecha: "+r.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// infoRow: autor y nota.
func infoRow(r dto.ReceiptDetail) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("Creado por: "+nonEmpty(r.CreatedBy, "—"), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 1,
			}),
			text.New("Nota: "+nonEmpty(r.Note, "—"), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("#", 1, align.Center),
		h("Código", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Unidad", 1, align.Center),
		h("Cant.", 1, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

// tableDetailRows: una fila por línea del comprobante.
func (g *MarotoReceiptPrinter) tableDetailRows(items []dto.ReceiptLineView) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(nonEmpty(it.ProductCode, it.ProductID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(it.ProductName, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(it.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(g.tr.Int(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(g.tr.Money(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.tr.Money(it.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func (g *MarotoReceiptPrinter) totalsRow(r dto.ReceiptDetail) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	units := 0
	for _, it := range r.Items {
		units += it.Quantity
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Líneas:", 1),
			label("Unidades:", 6),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 12,
			}),
		),
		col.New(3).Add(
			value(g.tr.Int(len(r.Items)), 1),
			value(g.tr.Int(units), 6),
			text.New(g.tr.Money(r.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 12,
			}),
		),
	)
}

// footerRows: QR con el código del comprobante + espacios de firma.
func footerRows(r dto.ReceiptDetail) []core.Row {
	sign := func(label string) core.Col {
		return col.New(4).Add(
			text.New("_______________________", props.Text{Size: 8, Align: align.Center, Top: 20}),
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 25, Color: colorGray}),
		)
	}
	return []core.Row{
		row.New(35).Add(
			col.New(4).Add(code.NewQr(r.Code, props.Rect{Percent: 90, Center: true})),
			sign("Entregado por"),
			sign("Recibido por"),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
