package payment

import (
	"context"
	"fmt"

	"github.com/jhoicas/Fletes-api/internal/domain"
	"github.com/jhoicas/Fletes-api/internal/domain/entity"
	"github.com/jhoicas/Fletes-api/internal/domain/repository"
)

// ReportUseCase consulta y representa liquidaciones ya emitidas.
type ReportUseCase struct {
	reportRepo  repository.PaymentReportRepository
	companyRepo repository.CompanyRepository
	tripRepo    repository.TripRepository
	pdf         ReportPDFGenerator
	xlsx        ReportSpreadsheetGenerator
}

// NewReportUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReportUseCase(
	reportRepo repository.PaymentReportRepository,
	companyRepo repository.CompanyRepository,
	tripRepo repository.TripRepository,
	pdf ReportPDFGenerator,
	xlsx ReportSpreadsheetGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:  reportRepo,
		companyRepo: companyRepo,
		tripRepo:    tripRepo,
		pdf:         pdf,
		xlsx:        xlsx,
	}
}

// Get devuelve la liquidación o domain.ErrNotFound.
func (uc *ReportUseCase) Get(ctx context.Context, id string) (*entity.PaymentReport, error) {
	r, err := uc.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener liquidación: %w", err)
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// ListByVoucher liquidaciones emitidas para un voucher.
func (uc *ReportUseCase) ListByVoucher(ctx context.Context, voucherID string) ([]*entity.PaymentReport, error) {
	return uc.reportRepo.ListByVoucher(ctx, voucherID)
}

// Document reúne liquidación, empresa y viajes.
func (uc *ReportUseCase) Document(ctx context.Context, id string) (*ReportDocument, error) {
	r, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(ctx, r.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("obtener empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	trips, err := uc.tripRepo.ListByVoucherAndCompany(ctx, r.VoucherID, r.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("obtener viajes: %w", err)
	}
	return &ReportDocument{Report: r, Company: company, Trips: trips}, nil
}

// DownloadPDF genera el PDF y su nombre de archivo.
func (uc *ReportUseCase) DownloadPDF(ctx context.Context, id string) ([]byte, string, error) {
	doc, err := uc.Document(ctx, id)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.GeneratePaymentReportPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("generar PDF: %w", err)
	}
	return b, fileName(doc, "pdf"), nil
}

// DownloadXLSX genera la hoja de cálculo y su nombre de archivo.
func (uc *ReportUseCase) DownloadXLSX(ctx context.Context, id string) ([]byte, string, error) {
	doc, err := uc.Document(ctx, id)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.xlsx.GeneratePaymentReportXLSX(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("generar xlsx: %w", err)
	}
	return b, fileName(doc, "xlsx"), nil
}

func fileName(doc *ReportDocument, ext string) string {
	return fmt.Sprintf("liquidacion-%s-%d-%03d.%s",
		doc.Company.Identifier, doc.Report.PaymentYear, doc.Report.PaymentNo, ext)
}
