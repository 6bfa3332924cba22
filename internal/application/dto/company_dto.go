package dto

import "time"

// CreateCompanyRequest entrada para registrar una empresa transportista.
type CreateCompanyRequest struct {
	Identifier        string `json:"identifier" validate:"required,len=3"`
	Name              string `json:"name" validate:"required,min=1,max=200"`
	CapitalPercentage string `json:"capital_percentage" validate:"required"` // decimal en (0, 100]
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID                string    `json:"id"`
	Identifier        string    `json:"identifier"`
	Name              string    `json:"name"`
	CapitalPercentage string    `json:"capital_percentage"`
	CurrentPaymentSeq int       `json:"current_payment_seq"`
	LastPaymentYear   int       `json:"last_payment_year"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
