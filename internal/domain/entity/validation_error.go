package entity

// Severidad de los errores de validación.
const (
	SeverityError   = "error"   // la fila se excluye
	SeverityWarning = "warning" // la fila sigue siendo válida
)

// ValidationError entrada del registro de errores por fila. Solo se agrega; nunca bloquea
// la persistencia de las demás filas del lote.
type ValidationError struct {
	VoucherID     string
	RowNumber     int
	Field         string
	Message       string
	OriginalValue string
	Severity      string
}

// IsFatal informa si el error excluye la fila del resultado.
func (e ValidationError) IsFatal() bool {
	return e.Severity == SeverityError
}
