package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Fletes-api/internal/application/dto"
	"github.com/jhoicas/Fletes-api/internal/application/payment"
	"github.com/jhoicas/Fletes-api/internal/domain"
)

// PaymentUseCase conciliación y consulta de liquidaciones.
type PaymentUseCase struct {
	reconciler PaymentReconciler
	reports    PaymentReports
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(reconciler PaymentReconciler, reports PaymentReports) *PaymentUseCase {
	return &PaymentUseCase{reconciler: reconciler, reports: reports}
}

// Reconcile emite la liquidación de la empresa para el voucher. Las fechas vacías y el
// acumulado vacío toman los valores por defecto del conciliador.
func (uc *PaymentUseCase) Reconcile(ctx context.Context, voucherID string, in dto.ReconcileRequest) (*dto.PaymentReportResponse, error) {
	input := payment.ReconcileInput{
		CompanyID: strings.TrimSpace(in.CompanyID),
		VoucherID: voucherID,
	}
	var err error
	if input.WeekStart, err = parseOptionalDate("week_start", in.WeekStart); err != nil {
		return nil, err
	}
	if input.WeekEnd, err = parseOptionalDate("week_end", in.WeekEnd); err != nil {
		return nil, err
	}
	if input.PaymentDate, err = parseOptionalDate("payment_date", in.PaymentDate); err != nil {
		return nil, err
	}
	if s := strings.TrimSpace(in.YTDOverride); s != "" {
		ytd, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: ytd_override %q no es numérico", domain.ErrInvalidInput, s)
		}
		input.YTDOverride = &ytd
	}

	r, err := uc.reconciler.Reconcile(ctx, input)
	if err != nil {
		return nil, err
	}
	return entityToPaymentReportResponse(r), nil
}

// Get devuelve la liquidación o domain.ErrNotFound.
func (uc *PaymentUseCase) Get(ctx context.Context, id string) (*dto.PaymentReportResponse, error) {
	r, err := uc.reports.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToPaymentReportResponse(r), nil
}

// ListByVoucher liquidaciones emitidas para el voucher.
func (uc *PaymentUseCase) ListByVoucher(ctx context.Context, voucherID string) ([]dto.PaymentReportResponse, error) {
	list, err := uc.reports.ListByVoucher(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentReportResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *entityToPaymentReportResponse(r))
	}
	return out, nil
}

// DownloadPDF PDF paginado de la liquidación y su nombre de archivo.
func (uc *PaymentUseCase) DownloadPDF(ctx context.Context, id string) ([]byte, string, error) {
	return uc.reports.DownloadPDF(ctx, id)
}

// DownloadXLSX hoja de cálculo de la liquidación y su nombre de archivo.
func (uc *PaymentUseCase) DownloadXLSX(ctx context.Context, id string) ([]byte, string, error) {
	return uc.reports.DownloadXLSX(ctx, id)
}

func parseOptionalDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q debe tener formato YYYY-MM-DD", domain.ErrInvalidInput, field, s)
	}
	return &t, nil
}
