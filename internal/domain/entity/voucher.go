package entity

import "time"

// Estados del voucher. Es un simple indicador, no un trabajo programado.
const (
	VoucherStatusUploaded   = "uploaded"
	VoucherStatusProcessing = "processing"
	VoucherStatusProcessed  = "processed"
	VoucherStatusError      = "error"
)

// Origen del texto del voucher.
const (
	SourceKindPDF  = "pdf"
	SourceKindXLSX = "xlsx"
	SourceKindText = "text"
)

// Voucher representa un documento cargado (PDF, hoja de cálculo o texto exportado)
// con cero o más líneas de viaje de una o varias empresas.
type Voucher struct {
	ID                   string
	FileName             string
	SourceKind           string
	Status               string
	TotalRowsFound       int     // filas candidatas (coincidieron con algún patrón)
	ValidRows            int
	ExtractionConfidence float64
	ErrorMessage         string
	UploadedBy           string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
