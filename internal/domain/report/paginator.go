// Package report define la política de paginación de tablas de los reportes impresos.
package report

// DefaultRowsPerPage filas por página cuando la configuración no indica un valor válido.
const DefaultRowsPerPage = 25

// Page porción de filas de una página del reporte.
type Page[T any] struct {
	Number     int // 1-indexado
	TotalPages int
	Rows       []T
	IsLast     bool
	FirstRow   int // índice 0-indexado de la primera fila en el conjunto completo
}

// Continued indica que la tabla sigue en la página siguiente ("continúa...").
func (p Page[T]) Continued() bool { return !p.IsLast }

// ShowTotals los totales solo se imprimen al final de la tabla.
func (p Page[T]) ShowTotals() bool { return p.IsLast }

// Paginate divide rows en páginas de rowsPerPage filas. Sin filas devuelve una única página
// vacía (los totales en cero se siguen imprimiendo).
func Paginate[T any](rows []T, rowsPerPage int) []Page[T] {
	if rowsPerPage < 1 {
		rowsPerPage = DefaultRowsPerPage
	}
	total := (len(rows) + rowsPerPage - 1) / rowsPerPage
	if total == 0 {
		return []Page[T]{{Number: 1, TotalPages: 1, Rows: []T{}, IsLast: true}}
	}
	pages := make([]Page[T], 0, total)
	for i := 0; i < total; i++ {
		from := i * rowsPerPage
		to := min(from+rowsPerPage, len(rows))
		pages = append(pages, Page[T]{
			Number:     i + 1,
			TotalPages: total,
			Rows:       rows[from:to:to],
			IsLast:     i == total-1,
			FirstRow:   from,
		})
	}
	return pages
}
