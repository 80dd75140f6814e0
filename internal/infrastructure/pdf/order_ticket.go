// Package pdf genera el ticket imprimible de un pedido (cocina / cliente).
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────┐
//	│  Restaurante            │  N° Pedido       │
//	│  dominio                │  Fecha / Estado  │
//	│  ───────────────────────────────────────  │
//	│  CLIENTE: nombre / teléfono / documento   │
//	│  ENTREGA: tipo / dirección  PAGO: método  │
//	│  ───────────────────────────────────────  │
//	│  Cant | Plato | P.Unit | Subtotal          │
//	│  ───────────────────────────────────────  │
//	│  Subtotal / TOTAL          │  QR N° pedido │
//	│  Notas                                     │
//	└───────────────────────────────────────────┘
package pdf

import (
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

	"github.com/jhoicas/menu-admin-api/internal/application/orders"
	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
)

var _ orders.TicketRenderer = (*TicketGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 156, Green: 39, Blue: 6}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// TicketGenerator implementa orders.TicketRenderer usando Maroto v2.
type TicketGenerator struct {
	loc *time.Location
}

// NewTicketGenerator construye el generador. Las fechas se imprimen en loc (UTC si es nil).
func NewTicketGenerator(loc *time.Location) *TicketGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &TicketGenerator{loc: loc}
}

// RenderTicket genera el PDF del pedido y devuelve sus bytes.
func (g *TicketGenerator) RenderTicket(tenant *entity.TenantContext, order *entity.Order) ([]byte, error) {
	if tenant == nil || order == nil {
		return nil, fmt.Errorf("pdf: tenant y pedido son requeridos")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Pedido "+order.OrderNumber, true).
		WithAuthor(tenant.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(tenant, order, g.loc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(order.Customer))
	m.AddRows(deliveryRow(order.Delivery, order.Payment))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(itemsHeaderRow())
	for _, r := range itemRows(order.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(order))
	if strings.TrimSpace(order.Notes) != "" {
		m.AddRows(notesRow(order.Notes))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: restaurante (izq) y N° de pedido + fecha + estado (der).
func headerRow(tenant *entity.TenantContext, order *entity.Order, loc *time.Location) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(tenant.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(tenant.Domain, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("PEDIDO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(order.OrderNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New(order.CreatedAt.In(loc).Format("02/01/2006 15:04")+"  ·  "+string(order.Status), props.Text{
				Size: 7, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func customerRow(c entity.OrderCustomer) core.Row {
	doc := strings.ToUpper(nonEmpty(c.DocumentType, entity.DocumentTypeBoleta))
	if c.DocumentNumber != "" {
		doc += " " + c.DocumentNumber
	}
	detail := fmt.Sprintf("Tel: %s   |   %s", c.Phone, doc)
	if c.BusinessName != "" {
		detail += "   |   " + c.BusinessName
	}
	return row.New(13).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New(detail, props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func deliveryRow(d entity.OrderDelivery, p entity.OrderPayment) core.Row {
	entrega := "Recojo en local"
	if d.Type == entity.DeliveryTypeDelivery {
		entrega = "Delivery: " + d.Address
	}
	return row.New(9).Add(
		col.New(8).Add(text.New(entrega, props.Text{Size: 8, Top: 2})),
		col.New(4).Add(text.New("Pago: "+p.Method, props.Text{Size: 8, Top: 2, Align: align.Right})),
	)
}

func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(7).Add(
		h("Cant.", 2, align.Center),
		h("Plato", 5, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func itemRows(items []entity.OrderItem) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		out = append(out, row.New(6).Add(
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(it.Name, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(money(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(money(it.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return out
}

// totalsRow: totales a la izquierda y QR con el número de pedido a la derecha.
func totalsRow(order *entity.Order) core.Row {
	return row.New(26).Add(
		col.New(8).Add(
			text.New("Subtotal: "+money(order.Subtotal), props.Text{Size: 9, Align: align.Right, Top: 3, Right: 3}),
			text.New("TOTAL: "+money(order.Total), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 10, Right: 3, Color: colorPrimary,
			}),
		),
		col.New(4).Add(code.NewQr(order.OrderNumber, props.Rect{Percent: 90, Center: true})),
	)
}

func notesRow(notes string) core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New("Notas: "+notes, props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea en soles con dos decimales. Ej: 1250.5 → "S/ 1,250.50"
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	out := "S/ " + string(buf) + frac
	if neg {
		out = "-" + out
	}
	return out
}
