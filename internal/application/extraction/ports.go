package extraction

import (
	"context"

	"github.com/jhoicas/Fletes-api/internal/domain/repository"
)

// Document texto plano de un voucher listo para el pipeline.
type Document struct {
	FileName   string
	SourceKind string // entity.SourceKind*
	Text       string
}

// TextExtractor obtiene el texto de un archivo cargado (PDF, xlsx o texto exportado).
// Devuelve domain.ErrUnsupportedDocument si no reconoce el formato.
type TextExtractor interface {
	Extract(ctx context.Context, fileName string, data []byte) (Document, error)
}

// TxRunner ejecuta la persistencia de un lote dentro de una transacción, pasando repos atados a ella.
// Si fn devuelve error no se guarda nada.
type TxRunner interface {
	RunImport(ctx context.Context, fn func(
		voucherRepo repository.VoucherRepository,
		tripRepo repository.TripRepository,
		errorRepo repository.ValidationErrorRepository,
	) error) error
}

// MetricsRecorder puerto de métricas del pipeline de importación.
type MetricsRecorder interface {
	ExtractionCompleted(sourceKind string, candidates, valid int, confidence float64, tierCounts map[string]int)
	RowsDropped(reason string, n int)
	VoucherImported(status string)
}

// NopMetrics implementación vacía para tests y CLI.
type NopMetrics struct{}

func (NopMetrics) ExtractionCompleted(string, int, int, float64, map[string]int) {}
func (NopMetrics) RowsDropped(string, int)                                       {}
func (NopMetrics) VoucherImported(string)                                        {}
