// Package pdf genera las comandas imprimibles de cocina.
//
// Cada ticket ocupa un bloque:
//
//	┌──────────────────────────────────────────┐
//	│  KT-XXXXXXXX                   [QR]      │
//	│  2 × Bandeja paisa                       │
//	│  Estado: queued   |  14:05 02/01/2026    │
//	└──────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 120, Green: 40, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ports.TicketSlipRenderer = (*SlipGenerator)(nil)

// SlipGenerator implementa ports.TicketSlipRenderer con Maroto v2.
type SlipGenerator struct {
	loc *time.Location
}

// NewSlipGenerator construye el generador. loc nil = hora local del servidor.
func NewSlipGenerator(loc *time.Location) *SlipGenerator {
	if loc == nil {
		loc = time.Local
	}
	return &SlipGenerator{loc: loc}
}

// RenderOrderSlips genera un PDF con una comanda por ticket.
func (g *SlipGenerator) RenderOrderSlips(_ context.Context, orderID string, tickets []*entity.KitchenTicketWithItem) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comandas "+orderID, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(orderID, len(tickets)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	for _, t := range tickets {
		m.AddRows(g.slipRows(t)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comandas: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(orderID string, n int) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("COMANDAS DE COCINA", props.Text{Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1}),
			text.New("Pedido "+orderID, props.Text{Size: 7, Top: 8, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%d ticket(s)", n), props.Text{Size: 9, Align: align.Right, Top: 3}),
		),
	)
}

func (g *SlipGenerator) slipRows(t *entity.KitchenTicketWithItem) []core.Row {
	placed := t.CreatedAt.In(g.loc).Format("15:04 02/01/2006")
	return []core.Row{
		row.New(26).Add(
			col.New(8).Add(
				text.New(t.ID, props.Text{Style: fontstyle.Bold, Size: 14, Top: 2}),
				text.New(fmt.Sprintf("%d × %s", t.Quantity, t.Item.Name), props.Text{Size: 11, Top: 11}),
				text.New(fmt.Sprintf("Estado: %s   |   %s%s", t.Status, placed, priceSuffix(t)), props.Text{
					Size: 7, Top: 19, Color: colorGray,
				}),
			),
			col.New(4).Add(code.NewQr(t.ID, props.Rect{Percent: 90, Center: true})),
		),
		line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}),
	}
}

func priceSuffix(t *entity.KitchenTicketWithItem) string {
	if t.Item.Price == nil {
		return ""
	}
	return "   |   $" + formatPrice(*t.Item.Price)
}

// formatPrice dos decimales con coma y puntos de miles: 25000.5 → "25.000,50".
func formatPrice(p decimal.Decimal) string {
	whole, frac, _ := strings.Cut(p.StringFixed(2), ".")
	return formatMoney(whole) + "," + frac
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
