package dto

import "time"

// ReconcileRequest parámetros de conciliación. Fechas en YYYY-MM-DD; vacías = valor por defecto.
type ReconcileRequest struct {
	CompanyID   string `json:"company_id" validate:"required"`
	WeekStart   string `json:"week_start"`
	WeekEnd     string `json:"week_end"`
	PaymentDate string `json:"payment_date"`
	YTDOverride string `json:"ytd_override"`
}

// PaymentReportResponse liquidación emitida.
type PaymentReportResponse struct {
	ID                string    `json:"id"`
	CompanyID         string    `json:"company_id"`
	VoucherID         string    `json:"voucher_id"`
	PaymentNo         int       `json:"payment_no"`
	PaymentYear       int       `json:"payment_year"`
	WeekStart         string    `json:"week_start"`
	WeekEnd           string    `json:"week_end"`
	PaymentDate       string    `json:"payment_date"`
	Subtotal          string    `json:"subtotal"`
	CapitalPercentage string    `json:"capital_percentage"`
	CapitalDeduction  string    `json:"capital_deduction"`
	TotalPayment      string    `json:"total_payment"`
	YTDAmount         string    `json:"ytd_amount"`
	TotalTrips        int       `json:"total_trips"`
	CreatedAt         time.Time `json:"created_at"`
}
