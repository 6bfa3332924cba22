package postgres

import (
	"context"
	"fmt"

	appextraction "github.com/jhoicas/Fletes-api/internal/application/extraction"
	apppayment "github.com/jhoicas/Fletes-api/internal/application/payment"
	"github.com/jhoicas/Fletes-api/internal/domain/repository"
)

var (
	_ appextraction.TxRunner = (*TxRunner)(nil)
	_ apppayment.TxRunner    = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db TxBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db TxBeginner) *TxRunner {
	return &TxRunner{db: db}
}

// run inicia la transacción, ejecuta fn con la tx y hace Commit; cualquier error hace Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunImport transacción del lote de importación: voucher, viajes y errores de validación.
func (r *TxRunner) RunImport(ctx context.Context, fn func(
	voucherRepo repository.VoucherRepository,
	tripRepo repository.TripRepository,
	errorRepo repository.ValidationErrorRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewVoucherRepository(q), NewTripRepository(q), NewValidationErrorRepository(q))
	})
}

// RunPayment transacción de conciliación: voucher, empresa, viajes y liquidaciones.
func (r *TxRunner) RunPayment(ctx context.Context, fn func(
	voucherRepo repository.VoucherRepository,
	companyRepo repository.CompanyRepository,
	tripRepo repository.TripRepository,
	reportRepo repository.PaymentReportRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewVoucherRepository(q), NewCompanyRepository(q), NewTripRepository(q), NewPaymentReportRepository(q))
	})
}
