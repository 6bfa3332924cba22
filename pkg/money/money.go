// Package money formatea montos decimales como moneda (ISO-4217) para los reportes.
package money

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency moneda usada cuando el código configurado no existe.
const DefaultCurrency = "USD"

// Formatter presenta montos en una moneda fija.
type Formatter struct {
	currency *money.Currency
}

// NewFormatter construye el formateador; un código desconocido cae a DefaultCurrency.
func NewFormatter(code string) *Formatter {
	c := money.GetCurrency(strings.ToUpper(strings.TrimSpace(code)))
	if c == nil {
		c = money.GetCurrency(DefaultCurrency)
	}
	return &Formatter{currency: c}
}

// Code código ISO-4217 efectivo.
func (f *Formatter) Code() string {
	return f.currency.Code
}

// Format devuelve el monto con símbolo y separadores de la moneda, ej. "$1,238.20".
func (f *Formatter) Format(amount decimal.Decimal) string {
	return f.money(amount).Display()
}

func (f *Formatter) money(amount decimal.Decimal) *money.Money {
	minor := amount.Shift(int32(f.currency.Fraction)).Round(0).IntPart()
	return money.New(minor, f.currency.Code)
}
