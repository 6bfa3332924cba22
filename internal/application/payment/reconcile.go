// Package payment orquesta la conciliación de pagos a transportistas y la representación
// de las liquidaciones.
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Fletes-api/internal/domain"
	"github.com/jhoicas/Fletes-api/internal/domain/entity"
	dompayment "github.com/jhoicas/Fletes-api/internal/domain/payment"
	"github.com/jhoicas/Fletes-api/internal/domain/repository"
)

// ReconcileInput parámetros de conciliación. Los opcionales en nil toman el valor por defecto.
type ReconcileInput struct {
	CompanyID   string
	VoucherID   string
	WeekStart   *time.Time
	WeekEnd     *time.Time
	PaymentDate *time.Time
	YTDOverride *decimal.Decimal
}

// Reconciler agrega los viajes de una empresa en un voucher y emite la liquidación.
type Reconciler struct {
	tx      TxRunner
	metrics MetricsRecorder
	log     zerolog.Logger
	now     func() time.Time
}

// NewReconciler construye el conciliador. metrics puede ser nil.
func NewReconciler(tx TxRunner, metrics MetricsRecorder, log zerolog.Logger) *Reconciler {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Reconciler{
		tx:      tx,
		metrics: metrics,
		log:     log.With().Str("component", "payment").Logger(),
		now:     time.Now,
	}
}

// WithClock reemplaza el reloj; el año de pago sale de él.
func (r *Reconciler) WithClock(now func() time.Time) *Reconciler {
	r.now = now
	return r
}

// Reconcile crea la liquidación de (empresa, voucher) en una sola transacción.
//
// Retorna:
//   - domain.ErrInvalidInput     si faltan IDs o la semana es inválida.
//   - domain.ErrNotFound         si el voucher no existe.
//   - domain.ErrCompanyNotFound  si la empresa no existe.
//   - domain.ErrNoTrips          si no hay viajes para el par.
//   - domain.ErrDuplicate        si el par ya tiene liquidación.
//
// ErrCompanyNotFound y ErrNoTrips son errores duros: el voucher queda en estado error.
func (r *Reconciler) Reconcile(ctx context.Context, in ReconcileInput) (*entity.PaymentReport, error) {
	if in.CompanyID == "" || in.VoucherID == "" {
		return nil, fmt.Errorf("%w: company_id y voucher_id son obligatorios", domain.ErrInvalidInput)
	}
	now := r.now().UTC()
	year := now.Year()

	var (
		report *entity.PaymentReport
		alloc  dompayment.Allocation
	)
	err := r.tx.RunPayment(ctx, func(
		voucherRepo repository.VoucherRepository,
		companyRepo repository.CompanyRepository,
		tripRepo repository.TripRepository,
		reportRepo repository.PaymentReportRepository,
	) error {
		// ── 1. Voucher (bloqueo compartido) ───────────────────────────────────
		v, err := voucherRepo.GetForShare(ctx, in.VoucherID)
		if err != nil {
			return err
		}
		if v == nil {
			return domain.ErrNotFound
		}

		// ── 2. Empresa (bloqueo exclusivo: serializa la secuencia) ────────────
		company, err := companyRepo.GetForUpdate(ctx, in.CompanyID)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.ErrCompanyNotFound
		}

		// ── 3. Viajes ─────────────────────────────────────────────────────────
		trips, err := tripRepo.ListByVoucherAndCompany(ctx, in.VoucherID, in.CompanyID)
		if err != nil {
			return err
		}
		if len(trips) == 0 {
			return domain.ErrNoTrips
		}

		// ── 4. Una liquidación por par ────────────────────────────────────────
		existing, err := reportRepo.GetByCompanyAndVoucher(ctx, in.CompanyID, in.VoucherID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: liquidación %d/%d ya emitida para el voucher", domain.ErrDuplicate,
				existing.PaymentNo, existing.PaymentYear)
		}

		// ── 5. Montos ─────────────────────────────────────────────────────────
		weekStart, weekEnd, paymentDate, err := resolveDates(in, trips)
		if err != nil {
			return err
		}
		amounts := make([]decimal.Decimal, len(trips))
		for i, t := range trips {
			amounts[i] = t.Amount
		}
		b, err := dompayment.Calculate(dompayment.Subtotal(amounts), company.CapitalPercentage)
		if err != nil {
			return err
		}

		// ── 6. Número de pago ─────────────────────────────────────────────────
		alloc = dompayment.AllocateSequence(company.CurrentPaymentSeq, company.LastPaymentYear, year)
		if err := companyRepo.UpdatePaymentSequence(ctx, company.ID, alloc.NextSeq, alloc.Year); err != nil {
			return err
		}

		// ── 7. Acumulado del año ──────────────────────────────────────────────
		var ytd decimal.Decimal
		if in.YTDOverride != nil {
			ytd = *in.YTDOverride
		} else {
			prior, err := reportRepo.SumTotalByCompanyYear(ctx, company.ID, year)
			if err != nil {
				return err
			}
			ytd = prior.Add(b.TotalPayment)
		}

		// ── 8. Liquidación ────────────────────────────────────────────────────
		report = &entity.PaymentReport{
			ID:                uuid.NewString(),
			CompanyID:         company.ID,
			VoucherID:         v.ID,
			PaymentNo:         alloc.PaymentNo,
			PaymentYear:       year,
			WeekStart:         weekStart,
			WeekEnd:           weekEnd,
			PaymentDate:       paymentDate,
			Subtotal:          b.Subtotal,
			CapitalPercentage: b.CapitalPercentage,
			CapitalDeduction:  b.CapitalDeduction,
			TotalPayment:      b.TotalPayment,
			YTDAmount:         ytd,
			TotalTrips:        len(trips),
			CreatedAt:         now,
		}
		return reportRepo.Create(ctx, report)
	})
	if err != nil {
		err = fmt.Errorf("conciliar empresa %s voucher %s: %w", in.CompanyID, in.VoucherID, err)
		if errors.Is(err, domain.ErrCompanyNotFound) || errors.Is(err, domain.ErrNoTrips) {
			return nil, r.fail(ctx, in.VoucherID, err)
		}
		return nil, err
	}

	if alloc.Reset {
		r.log.Info().Str("company_id", in.CompanyID).Int("year", year).Msg("secuencia de pago reiniciada por cambio de año")
	}
	r.metrics.PaymentReconciled(alloc.Reset)
	r.log.Info().
		Str("report_id", report.ID).
		Str("company_id", report.CompanyID).
		Str("voucher_id", report.VoucherID).
		Int("payment_no", report.PaymentNo).
		Int("trips", report.TotalTrips).
		Str("total", report.TotalPayment.StringFixed(2)).
		Msg("liquidación emitida")
	return report, nil
}

// fail marca el voucher en estado error en una transacción propia (la de la conciliación
// ya se revirtió) y devuelve err.
func (r *Reconciler) fail(ctx context.Context, voucherID string, err error) error {
	r.log.Error().Err(err).Str("voucher_id", voucherID).Msg("conciliación fallida")
	uerr := r.tx.RunPayment(ctx, func(
		voucherRepo repository.VoucherRepository,
		_ repository.CompanyRepository,
		_ repository.TripRepository,
		_ repository.PaymentReportRepository,
	) error {
		v, err2 := voucherRepo.GetForUpdate(ctx, voucherID)
		if err2 != nil || v == nil {
			return err2
		}
		v.Status = entity.VoucherStatusError
		v.ErrorMessage = err.Error()
		v.UpdatedAt = r.now().UTC()
		return voucherRepo.UpdateResult(ctx, v)
	})
	if uerr != nil {
		return errors.Join(err, fmt.Errorf("marcar voucher en error: %w", uerr))
	}
	return err
}

// resolveDates aplica los valores por defecto: semana lunes–domingo que cubre los viajes y
// pago una semana después del cierre.
func resolveDates(in ReconcileInput, trips []*entity.Trip) (start, end, payDate time.Time, err error) {
	minDate, maxDate := trips[0].TripDate, trips[0].TripDate
	for _, t := range trips[1:] {
		if t.TripDate.Before(minDate) {
			minDate = t.TripDate
		}
		if t.TripDate.After(maxDate) {
			maxDate = t.TripDate
		}
	}
	start, end = dompayment.WeekBounds(minDate, maxDate)
	if in.WeekStart != nil {
		start = *in.WeekStart
	}
	if in.WeekEnd != nil {
		end = *in.WeekEnd
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, time.Time{},
			fmt.Errorf("%w: week_end %s anterior a week_start %s", domain.ErrInvalidInput,
				end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	payDate = dompayment.DefaultPaymentDate(end)
	if in.PaymentDate != nil {
		payDate = *in.PaymentDate
	}
	return start, end, payDate, nil
}
