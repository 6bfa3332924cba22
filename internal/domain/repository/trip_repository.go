package repository

import (
	"context"

	"github.com/jhoicas/Fletes-api/internal/domain/entity"
)

// TripRepository define el puerto de persistencia de viajes. Los viajes son inmutables.
type TripRepository interface {
	// SaveBatch inserta todos los viajes o ninguno; devuelve la cantidad guardada.
	SaveBatch(ctx context.Context, voucherID string, trips []*entity.Trip) (int, error)
	ListByVoucherAndCompany(ctx context.Context, voucherID, companyID string) ([]*entity.Trip, error)
	CountByVoucher(ctx context.Context, voucherID string) (int, error)
	SummaryByVoucher(ctx context.Context, voucherID string) ([]*entity.CompanyTripSummary, error)
}
