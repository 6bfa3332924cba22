package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Fletes-api/internal/domain/entity"
	"github.com/jhoicas/Fletes-api/internal/domain/repository"
)

var _ repository.TripRepository = (*TripRepo)(nil)

// TripRepo implementación de TripRepository. SaveBatch debe correr sobre una tx para que
// el lote sea todo o nada.
type TripRepo struct {
	q Querier
}

// NewTripRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTripRepository(q Querier) *TripRepo {
	return &TripRepo{q: q}
}

// SaveBatch inserta los viajes del voucher; el primer fallo aborta el lote.
func (r *TripRepo) SaveBatch(ctx context.Context, voucherID string, trips []*entity.Trip) (int, error) {
	query := `
		INSERT INTO trips (id, voucher_id, company_id, trip_date, location, ticket_number, vehicle_code,
		                   haul_rate, quantity, amount, extraction_confidence, source_line, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	saved := 0
	for _, t := range trips {
		if t.VoucherID != voucherID {
			return saved, fmt.Errorf("insert trip línea %d: pertenece al voucher %s", t.SourceLine, t.VoucherID)
		}
		_, err := r.q.Exec(ctx, query,
			t.ID, t.VoucherID, t.CompanyID, t.TripDate, t.Location, t.TicketNumber, t.VehicleCode,
			t.HaulRate, t.Quantity, t.Amount, t.ExtractionConfidence, t.SourceLine, t.CreatedAt,
		)
		if err != nil {
			return saved, wrapWrite(fmt.Sprintf("insert trip línea %d", t.SourceLine), err)
		}
		saved++
	}
	return saved, nil
}

// ListByVoucherAndCompany viajes de la empresa en el voucher, por fecha y línea.
func (r *TripRepo) ListByVoucherAndCompany(ctx context.Context, voucherID, companyID string) ([]*entity.Trip, error) {
	query := `
		SELECT id, voucher_id, company_id, trip_date, location, ticket_number, vehicle_code,
		       haul_rate, quantity, amount, extraction_confidence, source_line, created_at
		FROM trips
		WHERE voucher_id = $1 AND company_id = $2
		ORDER BY trip_date, source_line`
	rows, err := r.q.Query(ctx, query, voucherID, companyID)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	var list []*entity.Trip
	for rows.Next() {
		var t entity.Trip
		if err := rows.Scan(
			&t.ID, &t.VoucherID, &t.CompanyID, &t.TripDate, &t.Location, &t.TicketNumber, &t.VehicleCode,
			&t.HaulRate, &t.Quantity, &t.Amount, &t.ExtractionConfidence, &t.SourceLine, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// CountByVoucher cantidad de viajes guardados del voucher.
func (r *TripRepo) CountByVoucher(ctx context.Context, voucherID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM trips WHERE voucher_id = $1`, voucherID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count trips: %w", err)
	}
	return n, nil
}

// SummaryByVoucher totales por empresa dentro del voucher.
func (r *TripRepo) SummaryByVoucher(ctx context.Context, voucherID string) ([]*entity.CompanyTripSummary, error) {
	query := `
		SELECT c.id, c.identifier, c.name, COUNT(t.id), SUM(t.quantity), SUM(t.amount),
		       MIN(t.trip_date), MAX(t.trip_date)
		FROM trips t
		JOIN companies c ON c.id = t.company_id
		WHERE t.voucher_id = $1
		GROUP BY c.id, c.identifier, c.name
		ORDER BY c.identifier`
	rows, err := r.q.Query(ctx, query, voucherID)
	if err != nil {
		return nil, fmt.Errorf("summary trips: %w", err)
	}
	defer rows.Close()

	var list []*entity.CompanyTripSummary
	for rows.Next() {
		var s entity.CompanyTripSummary
		if err := rows.Scan(
			&s.CompanyID, &s.Identifier, &s.CompanyName, &s.TotalTrips, &s.Quantity, &s.Amount,
			&s.MinTripDate, &s.MaxTripDate,
		); err != nil {
			return nil, fmt.Errorf("scan trip summary: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
