package repository

import (
	"context"

	"github.com/jhoicas/Fletes-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PaymentReportRepository define el puerto de persistencia de liquidaciones.
type PaymentReportRepository interface {
	Create(ctx context.Context, r *entity.PaymentReport) error
	GetByID(ctx context.Context, id string) (*entity.PaymentReport, error)
	GetByCompanyAndVoucher(ctx context.Context, companyID, voucherID string) (*entity.PaymentReport, error)
	ListByVoucher(ctx context.Context, voucherID string) ([]*entity.PaymentReport, error)

	// SumTotalByCompanyYear suma TotalPayment de las liquidaciones de la empresa en el año.
	SumTotalByCompanyYear(ctx context.Context, companyID string, year int) (decimal.Decimal, error)
}
