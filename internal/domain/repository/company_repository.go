package repository

import (
	"context"

	"github.com/jhoicas/Fletes-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure. GetByID y GetByIdentifier devuelven (nil, nil)
// si no existe.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByIdentifier(ctx context.Context, identifier string) (*entity.Company, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)

	// ListActive registro de empresas activas; se carga una vez por lote de importación.
	ListActive(ctx context.Context) ([]*entity.Company, error)

	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE); serializa la asignación de
	// números de pago de la empresa. Solo tiene sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Company, error)

	// UpdatePaymentSequence persiste el próximo número de pago y el año al que pertenece.
	UpdatePaymentSequence(ctx context.Context, id string, nextSeq, year int) error
}
