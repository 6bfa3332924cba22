package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Fletes-api/internal/domain/entity"
	"github.com/jhoicas/Fletes-api/internal/domain/repository"
)

var _ repository.ValidationErrorRepository = (*ValidationErrorRepo)(nil)

// ValidationErrorRepo registro append-only de errores por fila.
type ValidationErrorRepo struct {
	q Querier
}

// NewValidationErrorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewValidationErrorRepository(q Querier) *ValidationErrorRepo {
	return &ValidationErrorRepo{q: q}
}

// SaveBatch agrega los errores del voucher.
func (r *ValidationErrorRepo) SaveBatch(ctx context.Context, voucherID string, errs []entity.ValidationError) error {
	query := `
		INSERT INTO validation_errors (voucher_id, row_number, field, message, original_value, severity)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, e := range errs {
		if _, err := r.q.Exec(ctx, query, voucherID, e.RowNumber, e.Field, e.Message, e.OriginalValue, e.Severity); err != nil {
			return wrapWrite("insert validation error", err)
		}
	}
	return nil
}

// ListByVoucher errores del voucher en orden de línea.
func (r *ValidationErrorRepo) ListByVoucher(ctx context.Context, voucherID string) ([]entity.ValidationError, error) {
	query := `
		SELECT voucher_id, row_number, field, message, original_value, severity
		FROM validation_errors
		WHERE voucher_id = $1
		ORDER BY row_number, id`
	rows, err := r.q.Query(ctx, query, voucherID)
	if err != nil {
		return nil, fmt.Errorf("list validation errors: %w", err)
	}
	defer rows.Close()

	var list []entity.ValidationError
	for rows.Next() {
		var e entity.ValidationError
		if err := rows.Scan(&e.VoucherID, &e.RowNumber, &e.Field, &e.Message, &e.OriginalValue, &e.Severity); err != nil {
			return nil, fmt.Errorf("scan validation error: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
