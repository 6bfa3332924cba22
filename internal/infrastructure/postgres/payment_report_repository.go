package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Fletes-api/internal/domain/entity"
	"github.com/jhoicas/Fletes-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.PaymentReportRepository = (*PaymentReportRepo)(nil)

const paymentReportColumns = `id, company_id, voucher_id, payment_no, payment_year, week_start, week_end,
		payment_date, subtotal, capital_percentage, capital_deduction, total_payment, ytd_amount,
		total_trips, created_at`

// PaymentReportRepo implementación de PaymentReportRepository (usable con pool o tx).
type PaymentReportRepo struct {
	q Querier
}

// NewPaymentReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentReportRepository(q Querier) *PaymentReportRepo {
	return &PaymentReportRepo{q: q}
}

// Create persiste la liquidación. Los índices únicos (empresa, voucher) y
// (empresa, año, número) devuelven domain.ErrDuplicate.
func (r *PaymentReportRepo) Create(ctx context.Context, p *entity.PaymentReport) error {
	query := `
		INSERT INTO payment_reports (` + paymentReportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.VoucherID, p.PaymentNo, p.PaymentYear, p.WeekStart, p.WeekEnd,
		p.PaymentDate, p.Subtotal, p.CapitalPercentage, p.CapitalDeduction, p.TotalPayment, p.YTDAmount,
		p.TotalTrips, p.CreatedAt,
	)
	if err != nil {
		return wrapWrite("insert payment report", err)
	}
	return nil
}

// GetByID obtiene una liquidación; (nil, nil) si no existe.
func (r *PaymentReportRepo) GetByID(ctx context.Context, id string) (*entity.PaymentReport, error) {
	p, err := scanPaymentReport(r.q.QueryRow(ctx,
		`SELECT `+paymentReportColumns+` FROM payment_reports WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment report: %w", err)
	}
	return p, nil
}

// GetByCompanyAndVoucher liquidación del par; (nil, nil) si no existe.
func (r *PaymentReportRepo) GetByCompanyAndVoucher(ctx context.Context, companyID, voucherID string) (*entity.PaymentReport, error) {
	p, err := scanPaymentReport(r.q.QueryRow(ctx,
		`SELECT `+paymentReportColumns+` FROM payment_reports WHERE company_id = $1 AND voucher_id = $2`,
		companyID, voucherID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment report by pair: %w", err)
	}
	return p, nil
}

// ListByVoucher liquidaciones del voucher por número de pago.
func (r *PaymentReportRepo) ListByVoucher(ctx context.Context, voucherID string) ([]*entity.PaymentReport, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+paymentReportColumns+` FROM payment_reports WHERE voucher_id = $1 ORDER BY payment_year, payment_no`,
		voucherID)
	if err != nil {
		return nil, fmt.Errorf("list payment reports: %w", err)
	}
	defer rows.Close()

	var list []*entity.PaymentReport
	for rows.Next() {
		p, err := scanPaymentReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment report: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SumTotalByCompanyYear suma de neto pagado a la empresa en el año.
func (r *PaymentReportRepo) SumTotalByCompanyYear(ctx context.Context, companyID string, year int) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_payment), 0)
		FROM payment_reports
		WHERE company_id = $1 AND payment_year = $2`, companyID, year).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum payment reports: %w", err)
	}
	return sum, nil
}

func scanPaymentReport(row pgx.Row) (*entity.PaymentReport, error) {
	var p entity.PaymentReport
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.VoucherID, &p.PaymentNo, &p.PaymentYear, &p.WeekStart, &p.WeekEnd,
		&p.PaymentDate, &p.Subtotal, &p.CapitalPercentage, &p.CapitalDeduction, &p.TotalPayment, &p.YTDAmount,
		&p.TotalTrips, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
