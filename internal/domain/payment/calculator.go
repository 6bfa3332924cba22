// Package payment contiene la aritmética de liquidación de transportistas: subtotal,
// descuento de capital, neto a pagar, numeración anual y semana de pago.
package payment

import (
	"fmt"

	"github.com/jhoicas/Fletes-api/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.New(5, -1)
)

// Breakdown resultado del cálculo de una liquidación.
type Breakdown struct {
	Subtotal          decimal.Decimal
	CapitalPercentage decimal.Decimal
	CapitalDeduction  decimal.Decimal
	TotalPayment      decimal.Decimal
}

// Subtotal suma simple de montos, sin redondeo intermedio.
func Subtotal(amounts []decimal.Decimal) decimal.Decimal {
	return decimal.Sum(decimal.Zero, amounts...)
}

// Calculate aplica el porcentaje de capital al subtotal.
//
//	deducción = round(subtotal * p / 100, 2)
//	neto      = round(subtotal - deducción, 2)
func Calculate(subtotal, capitalPercentage decimal.Decimal) (Breakdown, error) {
	if subtotal.IsNegative() {
		return Breakdown{}, fmt.Errorf("%w: subtotal negativo %s", domain.ErrInvalidInput, subtotal)
	}
	if !capitalPercentage.IsPositive() || capitalPercentage.GreaterThan(hundred) {
		return Breakdown{}, fmt.Errorf("%w: porcentaje de capital %s fuera de (0, 100]", domain.ErrInvalidInput, capitalPercentage)
	}
	deduction := RoundCents(subtotal.Mul(capitalPercentage).Div(hundred))
	return Breakdown{
		Subtotal:          subtotal,
		CapitalPercentage: capitalPercentage,
		CapitalDeduction:  deduction,
		TotalPayment:      RoundCents(subtotal.Sub(deduction)),
	}, nil
}

// RoundCents redondea a 2 decimales con mitades hacia +∞. Restar un valor ya redondeado
// a centavos conmuta con el redondeo, así neto + deducción == RoundCents(subtotal).
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Shift(2).Add(half).Floor().Shift(-2)
}
