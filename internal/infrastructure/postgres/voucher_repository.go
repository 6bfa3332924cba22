package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Fletes-api/internal/domain"
	"github.com/jhoicas/Fletes-api/internal/domain/entity"
	"github.com/jhoicas/Fletes-api/internal/domain/repository"
)

var _ repository.VoucherRepository = (*VoucherRepo)(nil)

const voucherColumns = `id, file_name, source_kind, status, total_rows_found, valid_rows,
		extraction_confidence, error_message, uploaded_by, created_at, updated_at`

// VoucherRepo implementación de VoucherRepository (usable con pool o tx).
type VoucherRepo struct {
	q Querier
}

// NewVoucherRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVoucherRepository(q Querier) *VoucherRepo {
	return &VoucherRepo{q: q}
}

// Create registra el voucher cargado.
func (r *VoucherRepo) Create(ctx context.Context, v *entity.Voucher) error {
	query := `
		INSERT INTO vouchers (` + voucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.FileName, v.SourceKind, v.Status, v.TotalRowsFound, v.ValidRows,
		v.ExtractionConfidence, v.ErrorMessage, v.UploadedBy, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("insert voucher", err)
	}
	return nil
}

// GetByID obtiene un voucher por ID; (nil, nil) si no existe.
func (r *VoucherRepo) GetByID(ctx context.Context, id string) (*entity.Voucher, error) {
	return r.getOne(ctx, "get voucher", `SELECT `+voucherColumns+` FROM vouchers WHERE id = $1`, id)
}

// GetForUpdate bloqueo exclusivo del voucher.
func (r *VoucherRepo) GetForUpdate(ctx context.Context, id string) (*entity.Voucher, error) {
	return r.getOne(ctx, "lock voucher", `SELECT `+voucherColumns+` FROM vouchers WHERE id = $1 FOR UPDATE`, id)
}

// GetForShare bloqueo compartido del voucher.
func (r *VoucherRepo) GetForShare(ctx context.Context, id string) (*entity.Voucher, error) {
	return r.getOne(ctx, "share-lock voucher", `SELECT `+voucherColumns+` FROM vouchers WHERE id = $1 FOR SHARE`, id)
}

// List vouchers más recientes primero.
func (r *VoucherRepo) List(ctx context.Context, limit, offset int) ([]*entity.Voucher, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+voucherColumns+` FROM vouchers ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vouchers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Voucher
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, fmt.Errorf("scan voucher: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// UpdateResult guarda estado, estadísticas y mensaje de error.
func (r *VoucherRepo) UpdateResult(ctx context.Context, v *entity.Voucher) error {
	query := `
		UPDATE vouchers
		SET source_kind           = $2,
		    status                = $3,
		    total_rows_found      = $4,
		    valid_rows            = $5,
		    extraction_confidence = $6,
		    error_message         = $7,
		    updated_at            = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		v.ID, v.SourceKind, v.Status, v.TotalRowsFound, v.ValidRows,
		v.ExtractionConfidence, v.ErrorMessage, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update voucher: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VoucherRepo) getOne(ctx context.Context, op, query, id string) (*entity.Voucher, error) {
	v, err := scanVoucher(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func scanVoucher(row pgx.Row) (*entity.Voucher, error) {
	var v entity.Voucher
	err := row.Scan(
		&v.ID, &v.FileName, &v.SourceKind, &v.Status, &v.TotalRowsFound, &v.ValidRows,
		&v.ExtractionConfidence, &v.ErrorMessage, &v.UploadedBy, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
