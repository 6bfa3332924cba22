package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnsupportedDocument = errors.New("tipo de documento no soportado")

	// Errores duros del pipeline: abortan la operación completa y dejan el voucher en estado error.
	ErrNoRowsMatched   = errors.New("ninguna línea del documento coincide con un patrón de viaje")
	ErrCompanyNotFound = errors.New("empresa transportista no encontrada")
	ErrNoTrips         = errors.New("no hay viajes para la empresa en el voucher")
)
