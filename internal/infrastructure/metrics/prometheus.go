// Package metrics expone contadores del pipeline de importación y de la conciliación en
// formato Prometheus.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appextraction "github.com/jhoicas/Fletes-api/internal/application/extraction"
	apppayment "github.com/jhoicas/Fletes-api/internal/application/payment"
)

var (
	_ appextraction.MetricsRecorder = (*Recorder)(nil)
	_ apppayment.MetricsRecorder    = (*Recorder)(nil)
)

const namespace = "fletes"

// Recorder implementa los puertos de métricas sobre un registro propio.
type Recorder struct {
	registry *prometheus.Registry

	candidateRows *prometheus.CounterVec
	validRows     *prometheus.CounterVec
	tierMatches   *prometheus.CounterVec
	confidence    *prometheus.HistogramVec
	droppedRows   *prometheus.CounterVec
	vouchers      *prometheus.CounterVec
	payments      *prometheus.CounterVec
}

// NewRecorder registra los colectores.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		candidateRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "candidate_rows_total",
			Help: "Líneas que coincidieron con algún patrón de viaje.",
		}, []string{"source_kind"}),
		validRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "valid_rows_total",
			Help: "Filas que pasaron la validación.",
		}, []string{"source_kind"}),
		tierMatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "tier_matches_total",
			Help: "Coincidencias por nivel de patrón.",
		}, []string{"tier"}),
		confidence: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "extraction_confidence",
			Help:    "Confianza agregada de extracción por documento.",
			Buckets: []float64{0.1, 0.25, 0.5, 0.75, 0.9, 0.95, 1},
		}, []string{"source_kind"}),
		droppedRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "dropped_rows_total",
			Help: "Filas descartadas antes de persistir, por motivo.",
		}, []string{"reason"}),
		vouchers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "vouchers_imported_total",
			Help: "Importaciones de voucher por estado final.",
		}, []string{"status"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "payment_reports_total",
			Help: "Liquidaciones emitidas; sequence_reset indica reinicio anual del número de pago.",
		}, []string{"sequence_reset"}),
	}
	r.registry.MustRegister(
		r.candidateRows, r.validRows, r.tierMatches, r.confidence,
		r.droppedRows, r.vouchers, r.payments,
		collectors.NewGoCollector(),
	)
	return r
}

// Registry registro con los colectores de la aplicación.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler endpoint HTTP de exposición.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ExtractionCompleted registra el resultado de extraer un documento.
func (r *Recorder) ExtractionCompleted(sourceKind string, candidates, valid int, confidence float64, tierCounts map[string]int) {
	r.candidateRows.WithLabelValues(sourceKind).Add(float64(candidates))
	r.validRows.WithLabelValues(sourceKind).Add(float64(valid))
	r.confidence.WithLabelValues(sourceKind).Observe(confidence)
	for tier, n := range tierCounts {
		r.tierMatches.WithLabelValues(tier).Add(float64(n))
	}
}

// RowsDropped registra filas descartadas.
func (r *Recorder) RowsDropped(reason string, n int) {
	if n > 0 {
		r.droppedRows.WithLabelValues(reason).Add(float64(n))
	}
}

// VoucherImported registra el estado final de una importación.
func (r *Recorder) VoucherImported(status string) {
	r.vouchers.WithLabelValues(status).Inc()
}

// PaymentReconciled registra una liquidación emitida.
func (r *Recorder) PaymentReconciled(sequenceReset bool) {
	r.payments.WithLabelValues(strconv.FormatBool(sequenceReset)).Inc()
}
