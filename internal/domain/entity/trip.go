package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trip representa un viaje validado y persistido. Nunca se modifica después de creado:
// las correcciones llegan como filas nuevas.
type Trip struct {
	ID                   string
	VoucherID            string
	CompanyID            string
	TripDate             time.Time
	Location             string
	TicketNumber         string
	VehicleCode          string
	HaulRate             decimal.Decimal
	Quantity             decimal.Decimal
	Amount               decimal.Decimal
	ExtractionConfidence float64
	SourceLine           int
	CreatedAt            time.Time
}

// CompanyTripSummary totales de viajes por empresa dentro de un voucher.
type CompanyTripSummary struct {
	CompanyID   string
	Identifier  string
	CompanyName string
	TotalTrips  int
	Quantity    decimal.Decimal
	Amount      decimal.Decimal
	MinTripDate time.Time
	MaxTripDate time.Time
}
