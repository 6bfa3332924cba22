// Package csvexport exporta el registro de errores de validación de un voucher en CSV.
package csvexport

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/jhoicas/Fletes-api/internal/domain/entity"
)

// ValidationErrorRecord fila del CSV.
type ValidationErrorRecord struct {
	VoucherID     string `csv:"voucher_id"`
	RowNumber     int    `csv:"row_number"`
	Field         string `csv:"field"`
	Severity      string `csv:"severity"`
	Message       string `csv:"message"`
	OriginalValue string `csv:"original_value"`
}

// ValidationErrorsCSV serializa los errores con encabezado; sin errores devuelve solo el encabezado.
func ValidationErrorsCSV(errs []entity.ValidationError) ([]byte, error) {
	records := make([]*ValidationErrorRecord, 0, len(errs))
	for _, e := range errs {
		records = append(records, &ValidationErrorRecord{
			VoucherID:     e.VoucherID,
			RowNumber:     e.RowNumber,
			Field:         e.Field,
			Severity:      e.Severity,
			Message:       safeCell(e.Message),
			OriginalValue: safeCell(e.OriginalValue),
		})
	}
	var buf bytes.Buffer
	if err := gocsv.Marshal(records, &buf); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return buf.Bytes(), nil
}

// safeCell antepone un apóstrofo a las celdas que una hoja de cálculo interpretaría como
// fórmula. Los valores vienen del documento cargado.
func safeCell(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}
