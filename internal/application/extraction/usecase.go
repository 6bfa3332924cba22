// Package extraction orquesta la importación de vouchers: texto del documento, extracción y
// validación, atribución a empresas y persistencia del lote de viajes.
package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Fletes-api/internal/domain"
	"github.com/jhoicas/Fletes-api/internal/domain/entity"
	domextraction "github.com/jhoicas/Fletes-api/internal/domain/extraction"
	"github.com/jhoicas/Fletes-api/internal/domain/repository"
)

// Motivos de descarte de filas reportados a métricas.
const (
	DropInvalid        = "invalid"
	DropNotAllowed     = "not_allowed"
	DropUnknownCompany = "unknown_company"
)

// ExtractionResult salida de ExtractAndValidate.
type ExtractionResult struct {
	Rows          []domextraction.ExtractedRow
	Errors        []entity.ValidationError
	Confidence    float64
	CandidateRows int
	ValidRows     int
	TierCounts    map[string]int
}

// PersistResult salida de FilterAndPersist.
type PersistResult struct {
	TotalRowsFound int
	TripsSaved     int
	NotAllowed     int
	UnknownCompany int
	// Rejected advertencias por filas de empresas no registradas.
	Rejected []entity.ValidationError
}

// ImportInput archivo cargado por el operador.
type ImportInput struct {
	FileName   string
	Data       []byte
	Companies  []string // identificadores permitidos; vacío = todas las registradas
	UploadedBy string
}

// ImportResult resumen de una importación completa.
type ImportResult struct {
	Voucher    *entity.Voucher
	Extraction *ExtractionResult
	Persist    *PersistResult
}

// ResultFrom adapta la salida del pipeline de dominio.
func ResultFrom(res domextraction.Result) *ExtractionResult {
	return &ExtractionResult{
		Rows:          res.Rows,
		Errors:        res.Errors,
		Confidence:    res.Confidence,
		CandidateRows: res.CandidateRows,
		ValidRows:     res.ValidRows,
		TierCounts:    res.TierCounts,
	}
}

// UseCase casos de uso de extracción e importación.
type UseCase struct {
	pipelines   *Pipelines
	extractor   TextExtractor
	companyRepo repository.CompanyRepository
	voucherRepo repository.VoucherRepository
	tx          TxRunner
	metrics     MetricsRecorder
	log         zerolog.Logger
	now         func() time.Time
}

// NewUseCase construye el caso de uso inyectando sus dependencias. metrics puede ser nil.
func NewUseCase(
	pipelines *Pipelines,
	extractor TextExtractor,
	companyRepo repository.CompanyRepository,
	voucherRepo repository.VoucherRepository,
	tx TxRunner,
	metrics MetricsRecorder,
	log zerolog.Logger,
) *UseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &UseCase{
		pipelines:   pipelines,
		extractor:   extractor,
		companyRepo: companyRepo,
		voucherRepo: voucherRepo,
		tx:          tx,
		metrics:     metrics,
		log:         log.With().Str("component", "extraction").Logger(),
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// ExtractAndValidate corre el pipeline sobre el texto del documento. Si ninguna línea
// coincide con un patrón devuelve el resultado junto con domain.ErrNoRowsMatched.
func (uc *UseCase) ExtractAndValidate(ctx context.Context, doc Document) (*ExtractionResult, error) {
	if strings.TrimSpace(doc.Text) == "" {
		return nil, fmt.Errorf("%w: el documento %q no contiene texto", domain.ErrInvalidInput, doc.FileName)
	}
	res := uc.pipelines.For(doc.SourceKind).Run(doc.Text)
	out := ResultFrom(res)

	for _, e := range res.Errors {
		ev := uc.log.Debug()
		if e.IsFatal() {
			ev = uc.log.Warn()
		}
		ev.Str("file", doc.FileName).Int("line", e.RowNumber).Str("field", e.Field).
			Str("value", e.OriginalValue).Msg(e.Message)
	}
	uc.metrics.ExtractionCompleted(doc.SourceKind, res.CandidateRows, res.ValidRows, res.Confidence, res.TierCounts)
	if dropped := res.CandidateRows - res.ValidRows; dropped > 0 {
		uc.metrics.RowsDropped(DropInvalid, dropped)
	}

	uc.log.Info().
		Str("file", doc.FileName).
		Str("source", doc.SourceKind).
		Int("candidates", res.CandidateRows).
		Int("valid", res.ValidRows).
		Float64("confidence", res.Confidence).
		Msg("extracción completada")

	if res.CandidateRows == 0 {
		return out, domain.ErrNoRowsMatched
	}
	return out, nil
}

// FilterAndPersist atribuye cada fila a su empresa, aplica el filtro del operador y guarda
// el lote de viajes en una sola transacción (todo o nada).
func (uc *UseCase) FilterAndPersist(ctx context.Context, voucherID string, rows []domextraction.ExtractedRow, allowed []string) (*PersistResult, error) {
	return uc.persist(ctx, voucherID, rows, allowed, nil)
}

func (uc *UseCase) persist(
	ctx context.Context,
	voucherID string,
	rows []domextraction.ExtractedRow,
	allowed []string,
	validationErrs []entity.ValidationError,
) (*PersistResult, error) {
	companies, err := uc.companyRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar empresas: %w", err)
	}
	resolver := NewCompanyResolver(companies)
	allow := NewAllowList(allowed)

	out := &PersistResult{TotalRowsFound: len(rows)}
	trips := make([]*entity.Trip, 0, len(rows))
	now := uc.now().UTC()
	for _, row := range rows {
		r := resolver.Resolve(row.VehicleCode, allow)
		switch {
		case r.Resolved():
			trips = append(trips, tripFromRow(voucherID, r.CompanyID, row, now))
		case r.Status == ResolutionNotAllowed:
			out.NotAllowed++
		default:
			out.UnknownCompany++
			uc.log.Warn().
				Str("voucher_id", voucherID).
				Int("line", row.SourceLine).
				Str("vehicle_code", row.VehicleCode).
				Str("identifier", r.Identifier).
				Msg("empresa no encontrada")
			out.Rejected = append(out.Rejected, entity.ValidationError{
				VoucherID:     voucherID,
				RowNumber:     row.SourceLine,
				Field:         domextraction.FieldCompany,
				Message:       fmt.Sprintf("empresa con identificador %q no registrada", r.Identifier),
				OriginalValue: row.VehicleCode,
				Severity:      entity.SeverityWarning,
			})
		}
	}

	toLog := make([]entity.ValidationError, 0, len(validationErrs)+len(out.Rejected))
	toLog = append(toLog, validationErrs...)
	toLog = append(toLog, out.Rejected...)

	err = uc.tx.RunImport(ctx, func(
		voucherRepo repository.VoucherRepository,
		tripRepo repository.TripRepository,
		errorRepo repository.ValidationErrorRepository,
	) error {
		v, err := voucherRepo.GetForUpdate(ctx, voucherID)
		if err != nil {
			return err
		}
		if v == nil {
			return domain.ErrNotFound
		}
		if len(toLog) > 0 {
			if err := errorRepo.SaveBatch(ctx, voucherID, toLog); err != nil {
				return err
			}
		}
		saved, err := tripRepo.SaveBatch(ctx, voucherID, trips)
		if err != nil {
			return err
		}
		out.TripsSaved = saved
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("guardar lote del voucher %s: %w", voucherID, err)
	}

	if out.NotAllowed > 0 {
		uc.metrics.RowsDropped(DropNotAllowed, out.NotAllowed)
	}
	if out.UnknownCompany > 0 {
		uc.metrics.RowsDropped(DropUnknownCompany, out.UnknownCompany)
	}
	uc.log.Info().
		Str("voucher_id", voucherID).
		Int("rows", out.TotalRowsFound).
		Int("saved", out.TripsSaved).
		Int("not_allowed", out.NotAllowed).
		Int("unknown_company", out.UnknownCompany).
		Msg("lote de viajes guardado")
	return out, nil
}

// ImportVoucher registra el voucher, extrae el texto, valida, guarda errores y viajes y
// actualiza estadísticas. Ante un error duro el voucher queda en estado error.
func (uc *UseCase) ImportVoucher(ctx context.Context, in ImportInput) (*ImportResult, error) {
	if strings.TrimSpace(in.FileName) == "" || len(in.Data) == 0 {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}

	// ── 1. Registrar voucher ──────────────────────────────────────────────────
	now := uc.now().UTC()
	v := &entity.Voucher{
		ID:         uuid.NewString(),
		FileName:   in.FileName,
		Status:     entity.VoucherStatusProcessing,
		UploadedBy: in.UploadedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.voucherRepo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("registrar voucher: %w", err)
	}
	result := &ImportResult{Voucher: v}

	// ── 2. Texto del documento ────────────────────────────────────────────────
	doc, err := uc.extractor.Extract(ctx, in.FileName, in.Data)
	if err != nil {
		return result, uc.fail(ctx, v, fmt.Errorf("leer documento: %w", err))
	}
	v.SourceKind = doc.SourceKind

	// ── 3. Extraer y validar ──────────────────────────────────────────────────
	ext, err := uc.ExtractAndValidate(ctx, doc)
	result.Extraction = ext
	if err != nil {
		if ext != nil {
			v.TotalRowsFound = ext.CandidateRows
			v.ExtractionConfidence = ext.Confidence
		}
		return result, uc.fail(ctx, v, err)
	}
	v.TotalRowsFound = ext.CandidateRows
	v.ValidRows = ext.ValidRows
	v.ExtractionConfidence = ext.Confidence

	// ── 4. Atribuir y guardar ─────────────────────────────────────────────────
	errs := make([]entity.ValidationError, len(ext.Errors))
	for i, e := range ext.Errors {
		e.VoucherID = v.ID
		errs[i] = e
	}
	persisted, err := uc.persist(ctx, v.ID, ext.Rows, in.Companies, errs)
	if err != nil {
		return result, uc.fail(ctx, v, err)
	}
	result.Persist = persisted

	// ── 5. Estado final ───────────────────────────────────────────────────────
	v.Status = entity.VoucherStatusProcessed
	v.UpdatedAt = uc.now().UTC()
	if err := uc.voucherRepo.UpdateResult(ctx, v); err != nil {
		return result, fmt.Errorf("actualizar voucher: %w", err)
	}
	uc.metrics.VoucherImported(v.Status)
	return result, nil
}

// fail marca el voucher en estado error y devuelve err.
func (uc *UseCase) fail(ctx context.Context, v *entity.Voucher, err error) error {
	v.Status = entity.VoucherStatusError
	v.ErrorMessage = err.Error()
	v.UpdatedAt = uc.now().UTC()
	uc.log.Error().Err(err).Str("voucher_id", v.ID).Str("file", v.FileName).Msg("importación fallida")
	if uerr := uc.voucherRepo.UpdateResult(ctx, v); uerr != nil {
		return errors.Join(err, fmt.Errorf("marcar voucher en error: %w", uerr))
	}
	uc.metrics.VoucherImported(v.Status)
	return err
}

// Preview extrae y valida un archivo sin persistir nada.
func (uc *UseCase) Preview(ctx context.Context, fileName string, data []byte) (*ExtractionResult, error) {
	doc, err := uc.extractor.Extract(ctx, fileName, data)
	if err != nil {
		return nil, err
	}
	return uc.ExtractAndValidate(ctx, doc)
}

func tripFromRow(voucherID, companyID string, row domextraction.ExtractedRow, now time.Time) *entity.Trip {
	return &entity.Trip{
		ID:                   uuid.NewString(),
		VoucherID:            voucherID,
		CompanyID:            companyID,
		TripDate:             row.ShipDate,
		Location:             row.Location,
		TicketNumber:         row.TicketNumber,
		VehicleCode:          row.VehicleCode,
		HaulRate:             row.HaulRate,
		Quantity:             row.Quantity,
		Amount:               row.Amount,
		ExtractionConfidence: row.Confidence,
		SourceLine:           row.SourceLine,
		CreatedAt:            now,
	}
}
