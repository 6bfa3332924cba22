// Package pdf implementa la representación impresa de la liquidación de pago a una
// empresa transportista.
//
// Layout de cada página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + identificador │ Pago N° / año             │
//	│  PERIODO: semana + fecha de pago + voucher                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Ubic. | Ticket | Vehículo | Tarifa | Cant | $ │
//	│  ─────────────────────────────────────────────────────────  │
//	│  "continúa..." (páginas intermedias)                         │
//	│  TOTALES: Subtotal / Capital / TOTAL A PAGAR / Acumulado     │
//	│  (solo última página)                                        │
//	│  FOOTER: Página X de Y                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	apppayment "github.com/jhoicas/Fletes-api/internal/application/payment"
	"github.com/jhoicas/Fletes-api/internal/domain/entity"
	"github.com/jhoicas/Fletes-api/internal/domain/report"
	"github.com/jhoicas/Fletes-api/pkg/money"
)

var _ apppayment.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

const dateLayout = "01/02/2006"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa payment.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	rowsPerPage int
	money       *money.Formatter
}

// NewMarotoPDFGenerator construye el generador. rowsPerPage < 1 usa report.DefaultRowsPerPage.
func NewMarotoPDFGenerator(rowsPerPage int, formatter *money.Formatter) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{rowsPerPage: rowsPerPage, money: formatter}
}

// GeneratePaymentReportPDF genera el PDF paginado y devuelve sus bytes.
func (g *MarotoPDFGenerator) GeneratePaymentReportPDF(_ context.Context, doc *apppayment.ReportDocument) ([]byte, error) {
	if doc == nil || doc.Report == nil || doc.Company == nil {
		return nil, fmt.Errorf("pdf: documento incompleto")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Liquidación de fletes", true).
		WithAuthor(doc.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	for _, p := range report.Paginate(doc.Trips, g.rowsPerPage) {
		m.AddPages(g.buildPage(doc, p))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

func (g *MarotoPDFGenerator) buildPage(doc *apppayment.ReportDocument, p report.Page[*entity.Trip]) core.Page {
	pg := page.New()
	pg.Add(headerRow(doc))
	pg.Add(periodRow(doc.Report))
	pg.Add(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	pg.Add(tableHeaderRow())
	for _, t := range p.Rows {
		pg.Add(g.tripRow(t))
	}
	pg.Add(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if p.Continued() {
		pg.Add(row.New(8).Add(col.New(12).Add(
			text.New("continúa...", props.Text{
				Style: fontstyle.Italic, Size: 8, Align: align.Right, Color: colorGray, Top: 2,
			}),
		)))
	}
	if p.ShowTotals() {
		pg.Add(g.totalsRow(doc.Report))
	}

	pg.Add(row.New(6).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Página %d de %d", p.Number, p.TotalPages), props.Text{
			Size: 7, Align: align.Center, Color: colorGray, Top: 2,
		}),
	)))
	return pg
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y número de pago (der).
func headerRow(doc *apppayment.ReportDocument) core.Row {
	r := doc.Report
	return row.New(16).Add(
		col.New(7).Add(
			text.New(doc.Company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Identificador: "+doc.Company.Identifier, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("LIQUIDACIÓN DE FLETES", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Pago N° %d / %d", r.PaymentNo, r.PaymentYear), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
		),
	)
}

// periodRow: semana liquidada, fecha de pago y voucher de origen.
func periodRow(r *entity.PaymentReport) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Semana: %s a %s   |   Fecha de pago: %s   |   Viajes: %d",
				r.WeekStart.Format(dateLayout), r.WeekEnd.Format(dateLayout),
				r.PaymentDate.Format(dateLayout), r.TotalTrips,
			), props.Text{Size: 8, Top: 1, Color: colorGray}),
			text.New("Voucher: "+r.VoucherID, props.Text{Size: 7, Top: 6, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Ubic.", 1, align.Left),
		h("Ticket", 2, align.Left),
		h("Vehículo", 2, align.Left),
		h("Tarifa", 1, align.Right),
		h("Cantidad", 2, align.Right),
		h("Monto", 2, align.Right),
	)
}

func (g *MarotoPDFGenerator) tripRow(t *entity.Trip) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(6).Add(
		cell(t.TripDate.Format(dateLayout), 2, align.Left),
		cell(t.Location, 1, align.Left),
		cell(t.TicketNumber, 2, align.Left),
		cell(t.VehicleCode, 2, align.Left),
		cell(t.HaulRate.StringFixed(2), 1, align.Right),
		cell(t.Quantity.StringFixed(2), 2, align.Right),
		cell(g.money.Format(t.Amount), 2, align.Right),
	)
}

// totalsRow: bloque de totales alineado a la derecha bajo la tabla.
func (g *MarotoPDFGenerator) totalsRow(r *entity.PaymentReport) core.Row {
	return row.New(26).Add(
		col.New(6),
		col.New(3).Add(
			text.New("Subtotal:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1}),
			text.New(fmt.Sprintf("Capital (%s%%):", r.CapitalPercentage.StringFixed(2)), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 7,
			}),
			text.New("TOTAL A PAGAR:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 13,
			}),
			text.New("Acumulado del año:", props.Text{Size: 8, Align: align.Right, Color: colorGray, Right: 2, Top: 20}),
		),
		col.New(3).Add(
			text.New(g.money.Format(r.Subtotal), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 1}),
			text.New("-"+g.money.Format(r.CapitalDeduction), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 7}),
			text.New(g.money.Format(r.TotalPayment), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 13,
			}),
			text.New(g.money.Format(r.YTDAmount), props.Text{Size: 8, Align: align.Right, Color: colorGray, Right: 1, Top: 20}),
		),
	)
}
