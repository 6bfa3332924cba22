// Package excel exporta la liquidación de pago como hoja de cálculo.
package excel

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	apppayment "github.com/jhoicas/Fletes-api/internal/application/payment"
	"github.com/jhoicas/Fletes-api/internal/domain/entity"
	"github.com/jhoicas/Fletes-api/pkg/money"
)

var _ apppayment.ReportSpreadsheetGenerator = (*ExcelizeGenerator)(nil)

// SheetName hoja de la liquidación.
const SheetName = "Liquidacion"

// Fila donde empieza la tabla de viajes (1-indexado); las anteriores son encabezado.
const tableStartRow = 6

var tableHeader = []any{"Fecha", "Ubicación", "Ticket", "Vehículo", "Tarifa", "Cantidad", "Monto"}

// ExcelizeGenerator implementa payment.ReportSpreadsheetGenerator con excelize.
type ExcelizeGenerator struct {
	money *money.Formatter
}

// NewExcelizeGenerator construye el generador.
func NewExcelizeGenerator(formatter *money.Formatter) *ExcelizeGenerator {
	return &ExcelizeGenerator{money: formatter}
}

// GeneratePaymentReportXLSX una hoja con encabezado, tabla de viajes y totales al final.
func (g *ExcelizeGenerator) GeneratePaymentReportXLSX(_ context.Context, doc *apppayment.ReportDocument) ([]byte, error) {
	if doc == nil || doc.Report == nil || doc.Company == nil {
		return nil, fmt.Errorf("xlsx: documento incompleto")
	}
	r := doc.Report

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	amountFmt := "#,##0.00"
	amount, err := f.NewStyle(&excelize.Style{CustomNumFmt: &amountFmt})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	// ── Encabezado ──
	header := [][]any{
		{doc.Company.Name, "Identificador", doc.Company.Identifier},
		{"Pago N°", r.PaymentNo, "Año", r.PaymentYear},
		{"Semana", r.WeekStart.Format("2006-01-02"), r.WeekEnd.Format("2006-01-02"), "Fecha de pago", r.PaymentDate.Format("2006-01-02")},
		{"Moneda", g.money.Code(), "Voucher", r.VoucherID},
	}
	for i, values := range header {
		if err := g.setRow(f, i+1, values); err != nil {
			return nil, err
		}
	}

	// ── Tabla ──
	if err := g.setRow(f, tableStartRow, tableHeader); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(SheetName, cell("A", tableStartRow), cell("G", tableStartRow), bold)

	rowNum := tableStartRow + 1
	for _, t := range doc.Trips {
		if err := g.setRow(f, rowNum, tripValues(t)); err != nil {
			return nil, err
		}
		rowNum++
	}
	if len(doc.Trips) > 0 {
		_ = f.SetCellStyle(SheetName, cell("E", tableStartRow+1), cell("G", rowNum-1), amount)
	}

	// ── Totales ──
	rowNum++
	totals := []struct {
		label string
		value decimal.Decimal
	}{
		{"Subtotal", r.Subtotal},
		{fmt.Sprintf("Capital (%s%%)", r.CapitalPercentage.StringFixed(2)), r.CapitalDeduction},
		{"TOTAL A PAGAR", r.TotalPayment},
		{"Acumulado del año", r.YTDAmount},
	}
	for _, tot := range totals {
		if err := g.setRow(f, rowNum, []any{nil, nil, nil, nil, nil, tot.label, tot.value.InexactFloat64()}); err != nil {
			return nil, err
		}
		_ = f.SetCellStyle(SheetName, cell("F", rowNum), cell("F", rowNum), bold)
		_ = f.SetCellStyle(SheetName, cell("G", rowNum), cell("G", rowNum), amount)
		rowNum++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *ExcelizeGenerator) setRow(f *excelize.File, n int, values []any) error {
	if err := f.SetSheetRow(SheetName, cell("A", n), &values); err != nil {
		return fmt.Errorf("xlsx: fila %d: %w", n, err)
	}
	return nil
}

func tripValues(t *entity.Trip) []any {
	return []any{
		t.TripDate.Format("2006-01-02"),
		t.Location,
		t.TicketNumber,
		t.VehicleCode,
		t.HaulRate.InexactFloat64(),
		t.Quantity.InexactFloat64(),
		t.Amount.InexactFloat64(),
	}
}

func cell(column string, row int) string {
	return fmt.Sprintf("%s%d", column, row)
}
