package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Fletes-api/internal/application/dto"
	"github.com/jhoicas/Fletes-api/internal/application/extraction"
	"github.com/jhoicas/Fletes-api/internal/domain"
	"github.com/jhoicas/Fletes-api/internal/domain/entity"
	"github.com/jhoicas/Fletes-api/internal/domain/repository"
)

// VoucherUseCase importación, vista previa y consultas de vouchers.
type VoucherUseCase struct {
	importer  VoucherImporter
	vouchers  repository.VoucherRepository
	trips     repository.TripRepository
	errorLog  repository.ValidationErrorRepository
	errorsCSV ErrorsCSVFunc
}

// NewVoucherUseCase construye el caso de uso inyectando sus dependencias.
func NewVoucherUseCase(
	importer VoucherImporter,
	vouchers repository.VoucherRepository,
	trips repository.TripRepository,
	errorLog repository.ValidationErrorRepository,
	errorsCSV ErrorsCSVFunc,
) *VoucherUseCase {
	return &VoucherUseCase{
		importer:  importer,
		vouchers:  vouchers,
		trips:     trips,
		errorLog:  errorLog,
		errorsCSV: errorsCSV,
	}
}

// Import importa el archivo. companies es la lista de identificadores permitidos separada por
// comas; vacía = todas las empresas registradas. Ante un error duro la respuesta trae el
// voucher en estado error junto con el error.
func (uc *VoucherUseCase) Import(ctx context.Context, fileName string, data []byte, companies, uploadedBy string) (*dto.ImportResponse, error) {
	res, err := uc.importer.ImportVoucher(ctx, extraction.ImportInput{
		FileName:   fileName,
		Data:       data,
		Companies:  SplitIdentifiers(companies),
		UploadedBy: uploadedBy,
	})
	if res == nil || res.Voucher == nil {
		return nil, err
	}
	out := &dto.ImportResponse{Voucher: *entityToVoucherResponse(res.Voucher)}
	if res.Extraction != nil {
		out.Extraction = ExtractionToResponse(res.Extraction)
	}
	if res.Persist != nil {
		out.Persist = &dto.PersistResponse{
			TotalRowsFound: res.Persist.TotalRowsFound,
			TripsSaved:     res.Persist.TripsSaved,
			NotAllowed:     res.Persist.NotAllowed,
			UnknownCompany: res.Persist.UnknownCompany,
		}
	}
	return out, err
}

// Preview extrae y valida sin persistir. Con domain.ErrNoRowsMatched también devuelve
// el resultado vacío.
func (uc *VoucherUseCase) Preview(ctx context.Context, fileName string, data []byte) (*dto.ExtractionResponse, error) {
	if strings.TrimSpace(fileName) == "" || len(data) == 0 {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}
	res, err := uc.importer.Preview(ctx, fileName, data)
	if res == nil {
		return nil, err
	}
	return ExtractionToResponse(res), err
}

// Get devuelve el voucher o domain.ErrNotFound.
func (uc *VoucherUseCase) Get(ctx context.Context, id string) (*dto.VoucherResponse, error) {
	v, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	return entityToVoucherResponse(v), nil
}

// List lista vouchers del más reciente al más antiguo.
func (uc *VoucherUseCase) List(ctx context.Context, limit, offset int) (*dto.VoucherListResponse, error) {
	list, err := uc.vouchers.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VoucherResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *entityToVoucherResponse(v))
	}
	return &dto.VoucherListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Errors registro de errores de validación del voucher.
func (uc *VoucherUseCase) Errors(ctx context.Context, id string) ([]dto.ValidationErrorResponse, error) {
	errs, err := uc.listErrors(ctx, id)
	if err != nil {
		return nil, err
	}
	return validationErrorsToResponse(errs), nil
}

// ErrorsCSV registro de errores en CSV con su nombre de archivo.
func (uc *VoucherUseCase) ErrorsCSV(ctx context.Context, id string) ([]byte, string, error) {
	errs, err := uc.listErrors(ctx, id)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.errorsCSV(errs)
	if err != nil {
		return nil, "", fmt.Errorf("exportar errores: %w", err)
	}
	return b, fmt.Sprintf("errores-%s.csv", id), nil
}

// Summary totales de viajes por empresa.
func (uc *VoucherUseCase) Summary(ctx context.Context, id string) (*dto.VoucherSummaryResponse, error) {
	if _, err := uc.mustGet(ctx, id); err != nil {
		return nil, err
	}
	total, err := uc.trips.CountByVoucher(ctx, id)
	if err != nil {
		return nil, err
	}
	list, err := uc.trips.SummaryByVoucher(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.VoucherSummaryResponse{
		VoucherID:  id,
		TotalTrips: total,
		Companies:  make([]dto.CompanySummaryResponse, 0, len(list)),
	}
	for _, s := range list {
		out.Companies = append(out.Companies, dto.CompanySummaryResponse{
			CompanyID:   s.CompanyID,
			Identifier:  s.Identifier,
			CompanyName: s.CompanyName,
			TotalTrips:  s.TotalTrips,
			Quantity:    s.Quantity.String(),
			Amount:      s.Amount.StringFixed(2),
			FirstTrip:   s.MinTripDate.Format(dateLayout),
			LastTrip:    s.MaxTripDate.Format(dateLayout),
		})
	}
	return out, nil
}

func (uc *VoucherUseCase) mustGet(ctx context.Context, id string) (*entity.Voucher, error) {
	v, err := uc.vouchers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (uc *VoucherUseCase) listErrors(ctx context.Context, id string) ([]entity.ValidationError, error) {
	if _, err := uc.mustGet(ctx, id); err != nil {
		return nil, err
	}
	return uc.errorLog.ListByVoucher(ctx, id)
}

// SplitIdentifiers separa una lista de identificadores por comas, ignorando vacíos.
func SplitIdentifiers(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToUpper(p))
		}
	}
	return out
}
