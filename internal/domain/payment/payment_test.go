package payment_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Fletes-api/internal/domain"
	"github.com/jhoicas/Fletes-api/internal/domain/payment"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Escenario B: 5% sobre 1000.00.
func TestCalculate_EscenarioB(t *testing.T) {
	b, err := payment.Calculate(dec("1000.00"), dec("5.00"))
	require.NoError(t, err)
	assert.True(t, b.CapitalDeduction.Equal(dec("50.00")), b.CapitalDeduction.String())
	assert.True(t, b.TotalPayment.Equal(dec("950.00")), b.TotalPayment.String())
}

func TestCalculate_RedondeoACentavos(t *testing.T) {
	// 237.37 * 3.5% = 8.30795 -> 8.31 ; 237.37 - 8.31 = 229.06
	b, err := payment.Calculate(dec("237.37"), dec("3.5"))
	require.NoError(t, err)
	assert.Equal(t, "8.31", b.CapitalDeduction.StringFixed(2))
	assert.Equal(t, "229.06", b.TotalPayment.StringFixed(2))
}

func TestCalculate_PorcentajeInvalido(t *testing.T) {
	for _, p := range []string{"0", "-1", "100.01"} {
		_, err := payment.Calculate(dec("100"), dec(p))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, p)
	}
	_, err := payment.Calculate(dec("-1"), dec("5"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Para todo subtotal >= 0 y 0 < p <= 100: round(neto + deducción) == round(subtotal).
func TestCalculate_PropiedadDeduccion(t *testing.T) {
	pcts := []string{"0.01", "1", "2.5", "5", "12.345", "33.33", "50", "99.99", "100"}
	for i := int64(0); i <= 25000; i += 13 {
		subtotal := decimal.New(i, -3)
		for _, p := range pcts {
			b, err := payment.Calculate(subtotal, dec(p))
			require.NoError(t, err)
			assert.True(t,
				payment.RoundCents(b.TotalPayment.Add(b.CapitalDeduction)).Equal(payment.RoundCents(subtotal)),
				"subtotal=%s p=%s", subtotal, p)
			assert.False(t, b.TotalPayment.IsNegative(), "subtotal=%s p=%s", subtotal, p)
		}
	}
}

func TestRoundCents(t *testing.T) {
	cases := map[string]string{
		"0.005":   "0.01",
		"0.004":   "0",
		"8.30795": "8.31",
		"-0.005":  "0",
		"-0.006":  "-0.01",
		"12.5":    "12.5",
	}
	for in, want := range cases {
		assert.True(t, payment.RoundCents(dec(in)).Equal(dec(want)), in)
	}
}

func TestSubtotal_SumaSimple(t *testing.T) {
	got := payment.Subtotal([]decimal.Decimal{dec("237.37"), dec("300.00"), dec("0.005")})
	assert.True(t, got.Equal(dec("537.375")))
	assert.True(t, payment.Subtotal(nil).IsZero())
}

// Escenario C: cambio de año reinicia la numeración.
func TestAllocateSequence_EscenarioC(t *testing.T) {
	a := payment.AllocateSequence(7, 2024, 2025)
	assert.Equal(t, 1, a.PaymentNo)
	assert.Equal(t, 2, a.NextSeq)
	assert.Equal(t, 2025, a.Year)
	assert.True(t, a.Reset)
}

func TestAllocateSequence_PrimerPago(t *testing.T) {
	a := payment.AllocateSequence(1, 0, 2025)
	assert.Equal(t, 1, a.PaymentNo)
	assert.False(t, a.Reset, "una empresa sin pagos no reinicia")
}

func TestAllocateSequence_ContiguaYMonotona(t *testing.T) {
	seq, year := 1, 0
	for _, y := range []int{2024, 2025} {
		for want := 1; want <= 40; want++ {
			a := payment.AllocateSequence(seq, year, y)
			require.Equal(t, want, a.PaymentNo, "año %d", y)
			seq, year = a.NextSeq, a.Year
		}
	}
}

func TestAllocateSequence_SecuenciaInvalida(t *testing.T) {
	a := payment.AllocateSequence(0, 2025, 2025)
	assert.Equal(t, 1, a.PaymentNo)
	assert.Equal(t, 2, a.NextSeq)
}

func TestWeekBounds(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	// 2025-08-22 es viernes.
	start, end := payment.WeekBounds(day(2025, 8, 22), day(2025, 8, 22))
	assert.Equal(t, day(2025, 8, 18), start)
	assert.Equal(t, day(2025, 8, 24), end)

	// Lunes y domingo se mantienen.
	start, end = payment.WeekBounds(day(2025, 8, 18), day(2025, 8, 24))
	assert.Equal(t, day(2025, 8, 18), start)
	assert.Equal(t, day(2025, 8, 24), end)

	// Rango que cruza semanas.
	start, end = payment.WeekBounds(day(2025, 8, 17), day(2025, 8, 19).Add(15*time.Hour))
	assert.Equal(t, day(2025, 8, 11), start)
	assert.Equal(t, day(2025, 8, 24), end)

	assert.Equal(t, day(2025, 8, 31), payment.DefaultPaymentDate(day(2025, 8, 24)))
}
