package extraction_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/Fletes-api/internal/application/extraction"
	"github.com/jhoicas/Fletes-api/internal/domain"
	"github.com/jhoicas/Fletes-api/internal/domain/entity"
	"github.com/jhoicas/Fletes-api/internal/domain/repository"
)

// ── Repos en memoria ──────────────────────────────────────────────────────────

type memCompanies struct {
	list []*entity.Company
}

func (m *memCompanies) Create(_ context.Context, c *entity.Company) error {
	m.list = append(m.list, c)
	return nil
}
func (m *memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	for _, c := range m.list {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}
func (m *memCompanies) GetByIdentifier(_ context.Context, identifier string) (*entity.Company, error) {
	for _, c := range m.list {
		if c.Identifier == identifier {
			return c, nil
		}
	}
	return nil, nil
}
func (m *memCompanies) List(context.Context, int, int) ([]*entity.Company, error) { return m.list, nil }
func (m *memCompanies) ListActive(context.Context) ([]*entity.Company, error)    { return m.list, nil }
func (m *memCompanies) GetForUpdate(ctx context.Context, id string) (*entity.Company, error) {
	return m.GetByID(ctx, id)
}
func (m *memCompanies) UpdatePaymentSequence(context.Context, string, int, int) error { return nil }

type memVouchers struct {
	mu   sync.Mutex
	byID map[string]entity.Voucher
}

func newMemVouchers() *memVouchers { return &memVouchers{byID: map[string]entity.Voucher{}} }

func (m *memVouchers) Create(_ context.Context, v *entity.Voucher) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[v.ID] = *v
	return nil
}
func (m *memVouchers) GetByID(_ context.Context, id string) (*entity.Voucher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}
func (m *memVouchers) List(context.Context, int, int) ([]*entity.Voucher, error) { return nil, nil }
func (m *memVouchers) GetForUpdate(ctx context.Context, id string) (*entity.Voucher, error) {
	return m.GetByID(ctx, id)
}
func (m *memVouchers) GetForShare(ctx context.Context, id string) (*entity.Voucher, error) {
	return m.GetByID(ctx, id)
}
func (m *memVouchers) UpdateResult(_ context.Context, v *entity.Voucher) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[v.ID]; !ok {
		return domain.ErrNotFound
	}
	m.byID[v.ID] = *v
	return nil
}

type memTrips struct {
	trips   []*entity.Trip
	failErr error
}

func (m *memTrips) SaveBatch(_ context.Context, _ string, trips []*entity.Trip) (int, error) {
	if m.failErr != nil {
		return 0, m.failErr
	}
	m.trips = append(m.trips, trips...)
	return len(trips), nil
}
func (m *memTrips) ListByVoucherAndCompany(_ context.Context, voucherID, companyID string) ([]*entity.Trip, error) {
	var out []*entity.Trip
	for _, t := range m.trips {
		if t.VoucherID == voucherID && t.CompanyID == companyID {
			out = append(out, t)
		}
	}
	return out, nil
}
func (m *memTrips) CountByVoucher(context.Context, string) (int, error) { return len(m.trips), nil }
func (m *memTrips) SummaryByVoucher(context.Context, string) ([]*entity.CompanyTripSummary, error) {
	return nil, nil
}

type memErrors struct {
	errs []entity.ValidationError
}

func (m *memErrors) SaveBatch(_ context.Context, _ string, errs []entity.ValidationError) error {
	m.errs = append(m.errs, errs...)
	return nil
}
func (m *memErrors) ListByVoucher(context.Context, string) ([]entity.ValidationError, error) {
	return m.errs, nil
}

// memTx simula la atomicidad: trabaja sobre copias y solo publica si fn no falla.
type memTx struct {
	vouchers *memVouchers
	trips    *memTrips
	errs     *memErrors
}

func (tx *memTx) RunImport(_ context.Context, fn func(
	repository.VoucherRepository, repository.TripRepository, repository.ValidationErrorRepository,
) error) error {
	trips := &memTrips{trips: append([]*entity.Trip(nil), tx.trips.trips...), failErr: tx.trips.failErr}
	errs := &memErrors{errs: append([]entity.ValidationError(nil), tx.errs.errs...)}
	if err := fn(tx.vouchers, trips, errs); err != nil {
		return err
	}
	tx.trips.trips = trips.trips
	tx.errs.errs = errs.errs
	return nil
}

// ── Extractor ─────────────────────────────────────────────────────────────────

type stubExtractor struct {
	doc extraction.Document
	err error
}

func (s stubExtractor) Extract(_ context.Context, fileName string, _ []byte) (extraction.Document, error) {
	if s.err != nil {
		return extraction.Document{}, s.err
	}
	d := s.doc
	d.FileName = fileName
	return d, nil
}

var errStorage = errors.New("storage caído")
