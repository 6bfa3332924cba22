package repository

import (
	"context"

	"github.com/jhoicas/Fletes-api/internal/domain/entity"
)

// ValidationErrorRepository registro append-only de errores por fila de cada voucher.
type ValidationErrorRepository interface {
	SaveBatch(ctx context.Context, voucherID string, errs []entity.ValidationError) error
	ListByVoucher(ctx context.Context, voucherID string) ([]entity.ValidationError, error)
}
