package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentReport liquidación de una empresa para un voucher (una por par empresa/voucher).
// Invariantes: CapitalDeduction = round(Subtotal*CapitalPercentage/100, 2) y
// TotalPayment = round(Subtotal-CapitalDeduction, 2).
type PaymentReport struct {
	ID                string
	CompanyID         string
	VoucherID         string
	PaymentNo         int
	PaymentYear       int
	WeekStart         time.Time
	WeekEnd           time.Time
	PaymentDate       time.Time
	Subtotal          decimal.Decimal
	CapitalPercentage decimal.Decimal
	CapitalDeduction  decimal.Decimal
	TotalPayment      decimal.Decimal
	YTDAmount         decimal.Decimal
	TotalTrips        int
	CreatedAt         time.Time
}
