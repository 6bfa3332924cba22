package payment

import "time"

// PaymentDelay días entre el cierre de la semana y la fecha de pago.
const PaymentDelay = 7 * 24 * time.Hour

// WeekBounds lunes en o antes de minDate y domingo en o después de maxDate (UTC, sin hora).
func WeekBounds(minDate, maxDate time.Time) (start, end time.Time) {
	minDay := dateOnly(minDate)
	maxDay := dateOnly(maxDate)
	start = minDay.AddDate(0, 0, -((int(minDay.Weekday()) + 6) % 7))
	end = maxDay.AddDate(0, 0, (7-int(maxDay.Weekday()))%7)
	return start, end
}

// DefaultPaymentDate fecha de pago por defecto: una semana después del cierre.
func DefaultPaymentDate(weekEnd time.Time) time.Time {
	return dateOnly(weekEnd).Add(PaymentDelay)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
