package dto

import "time"

// VoucherResponse estado y estadísticas de un voucher.
type VoucherResponse struct {
	ID                   string    `json:"id"`
	FileName             string    `json:"file_name"`
	SourceKind           string    `json:"source_kind"`
	Status               string    `json:"status"`
	TotalRowsFound       int       `json:"total_rows_found"`
	ValidRows            int       `json:"valid_rows"`
	ExtractionConfidence float64   `json:"extraction_confidence"`
	ErrorMessage         string    `json:"error_message,omitempty"`
	UploadedBy           string    `json:"uploaded_by,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ExtractedRowResponse fila válida extraída (vista previa).
type ExtractedRowResponse struct {
	SourceLine   int     `json:"source_line"`
	Tier         string  `json:"tier"`
	Confidence   float64 `json:"confidence"`
	Location     string  `json:"location"`
	TicketNumber string  `json:"ticket_number"`
	VehicleCode  string  `json:"vehicle_code"`
	Identifier   string  `json:"identifier"`
	ShipDate     string  `json:"ship_date"` // YYYY-MM-DD
	HaulRate     string  `json:"haul_rate"`
	Quantity     string  `json:"quantity"`
	Amount       string  `json:"amount"`
	DocType      string  `json:"doc_type,omitempty"`
}

// ValidationErrorResponse entrada del registro de errores.
type ValidationErrorResponse struct {
	RowNumber     int    `json:"row_number"`
	Field         string `json:"field"`
	Message       string `json:"message"`
	OriginalValue string `json:"original_value"`
	Severity      string `json:"severity"`
}

// ExtractionResponse resultado de extraer y validar un documento.
type ExtractionResponse struct {
	CandidateRows int                       `json:"candidate_rows"`
	ValidRows     int                       `json:"valid_rows"`
	Confidence    float64                   `json:"confidence"`
	TierCounts    map[string]int            `json:"tier_counts"`
	Rows          []ExtractedRowResponse    `json:"rows"`
	Errors        []ValidationErrorResponse `json:"errors"`
}

// PersistResponse resultado del filtrado y guardado de viajes.
type PersistResponse struct {
	TotalRowsFound int `json:"total_rows_found"`
	TripsSaved     int `json:"trips_saved"`
	NotAllowed     int `json:"not_allowed"`
	UnknownCompany int `json:"unknown_company"`
}

// ImportResponse resultado de importar un voucher.
type ImportResponse struct {
	Voucher    VoucherResponse     `json:"voucher"`
	Extraction *ExtractionResponse `json:"extraction,omitempty"`
	Persist    *PersistResponse    `json:"persist,omitempty"`
}

// CompanySummaryResponse totales de viajes de una empresa en un voucher.
type CompanySummaryResponse struct {
	CompanyID   string `json:"company_id"`
	Identifier  string `json:"identifier"`
	CompanyName string `json:"company_name"`
	TotalTrips  int    `json:"total_trips"`
	Quantity    string `json:"quantity"`
	Amount      string `json:"amount"`
	FirstTrip   string `json:"first_trip"`
	LastTrip    string `json:"last_trip"`
}

// VoucherSummaryResponse totales por empresa de un voucher.
type VoucherSummaryResponse struct {
	VoucherID  string                   `json:"voucher_id"`
	TotalTrips int                      `json:"total_trips"`
	Companies  []CompanySummaryResponse `json:"companies"`
}

// VoucherListResponse lista paginada de vouchers.
type VoucherListResponse struct {
	Items []VoucherResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ImportErrorResponse error duro de importación con el voucher que quedó en estado error.
type ImportErrorResponse struct {
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Voucher *VoucherResponse `json:"voucher,omitempty"`
}
