package repository

import (
	"context"

	"github.com/jhoicas/Fletes-api/internal/domain/entity"
)

// VoucherRepository define el puerto de persistencia para vouchers cargados.
type VoucherRepository interface {
	Create(ctx context.Context, v *entity.Voucher) error
	GetByID(ctx context.Context, id string) (*entity.Voucher, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Voucher, error)

	// GetForUpdate bloquea el voucher mientras se guarda el lote de viajes.
	GetForUpdate(ctx context.Context, id string) (*entity.Voucher, error)
	// GetForShare bloqueo compartido: la conciliación nunca ve un lote a medio guardar.
	GetForShare(ctx context.Context, id string) (*entity.Voucher, error)

	// UpdateResult guarda estado, conteos, confianza y mensaje de error.
	UpdateResult(ctx context.Context, v *entity.Voucher) error
}
