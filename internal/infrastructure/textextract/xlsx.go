package textextract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Fletes-api/internal/domain"
)

// xlsxText recorre todas las hojas y une las celdas de cada fila con tabulador. Las celdas
// conservan el formato de la hoja (fechas como 8/22/25, montos con separador de miles);
// el símbolo de moneda se descarta.
func xlsxText(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: leer xlsx: %v", domain.ErrUnsupportedDocument, err)
	}
	defer f.Close()

	var out strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("leer hoja %s: %w", sheet, err)
		}
		for _, row := range rows {
			cells := make([]string, 0, len(row))
			for _, c := range row {
				c = strings.TrimSpace(strings.ReplaceAll(c, "$", ""))
				if c != "" {
					cells = append(cells, c)
				}
			}
			out.WriteString(strings.Join(cells, "\t"))
			out.WriteByte('\n')
		}
	}
	return out.String(), nil
}
