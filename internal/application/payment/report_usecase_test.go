package payment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Fletes-api/internal/application/payment"
	"github.com/jhoicas/Fletes-api/internal/domain"
	"github.com/jhoicas/Fletes-api/internal/domain/entity"
)

type captureGenerator struct {
	doc *payment.ReportDocument
	err error
}

func (g *captureGenerator) GeneratePaymentReportPDF(_ context.Context, doc *payment.ReportDocument) ([]byte, error) {
	g.doc = doc
	return []byte("%PDF"), g.err
}

func (g *captureGenerator) GeneratePaymentReportXLSX(_ context.Context, doc *payment.ReportDocument) ([]byte, error) {
	g.doc = doc
	return []byte("PK"), g.err
}

func reportStore() *store {
	s := newStore()
	newCompany(s, "c1", "5", 4, 2025)
	seed(s, "c1", "v1", "100.00", "200.00")
	seed(s, "c2", "v1", "999.00")
	s.reports = append(s.reports, &entity.PaymentReport{
		ID: "r1", CompanyID: "c1", VoucherID: "v1", PaymentNo: 3, PaymentYear: 2025,
	})
	return s
}

func TestReportUseCase_DownloadPDF(t *testing.T) {
	s := reportStore()
	gen := &captureGenerator{}
	uc := payment.NewReportUseCase(reportRepo{s}, companyRepo{s}, tripRepo{s}, gen, gen)

	b, name, err := uc.DownloadPDF(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), b)
	assert.Equal(t, "liquidacion-MVT-2025-003.pdf", name)

	require.NotNil(t, gen.doc)
	assert.Equal(t, "c1", gen.doc.Company.ID)
	assert.Len(t, gen.doc.Trips, 2, "solo los viajes de la empresa liquidada")
}

func TestReportUseCase_DownloadXLSX(t *testing.T) {
	s := reportStore()
	gen := &captureGenerator{}
	uc := payment.NewReportUseCase(reportRepo{s}, companyRepo{s}, tripRepo{s}, gen, gen)

	_, name, err := uc.DownloadXLSX(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "liquidacion-MVT-2025-003.xlsx", name)
}

func TestReportUseCase_Errores(t *testing.T) {
	ctx := context.Background()

	t.Run("liquidación inexistente", func(t *testing.T) {
		s := reportStore()
		uc := payment.NewReportUseCase(reportRepo{s}, companyRepo{s}, tripRepo{s}, &captureGenerator{}, &captureGenerator{})
		_, err := uc.Get(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, _, err = uc.DownloadPDF(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("empresa eliminada", func(t *testing.T) {
		s := reportStore()
		delete(s.companies, "c1")
		uc := payment.NewReportUseCase(reportRepo{s}, companyRepo{s}, tripRepo{s}, &captureGenerator{}, &captureGenerator{})
		_, _, err := uc.DownloadXLSX(ctx, "r1")
		assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
	})

	t.Run("falla del generador", func(t *testing.T) {
		s := reportStore()
		boom := errors.New("boom")
		gen := &captureGenerator{err: boom}
		uc := payment.NewReportUseCase(reportRepo{s}, companyRepo{s}, tripRepo{s}, gen, gen)
		_, _, err := uc.DownloadPDF(ctx, "r1")
		assert.ErrorIs(t, err, boom)
	})
}

func TestReportUseCase_ListByVoucher(t *testing.T) {
	s := reportStore()
	uc := payment.NewReportUseCase(reportRepo{s}, companyRepo{s}, tripRepo{s}, &captureGenerator{}, &captureGenerator{})

	reps, err := uc.ListByVoucher(context.Background(), "v1")
	require.NoError(t, err)
	require.Len(t, reps, 1)
	assert.Equal(t, "r1", reps[0].ID)
}
