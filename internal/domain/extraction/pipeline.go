package extraction

import (
	"errors"
	"strings"

	"github.com/jhoicas/Fletes-api/internal/domain/entity"
)

// RawLine línea del documento con su número (1-indexado).
type RawLine struct {
	Text       string
	LineNumber int
}

// SplitLines divide el texto en líneas; tolera finales CRLF.
func SplitLines(text string) []RawLine {
	parts := strings.Split(text, "\n")
	lines := make([]RawLine, 0, len(parts))
	for i, p := range parts {
		lines = append(lines, RawLine{Text: strings.TrimRight(p, "\r"), LineNumber: i + 1})
	}
	return lines
}

// Result salida de extraer y validar un documento.
type Result struct {
	Rows          []ExtractedRow           // solo filas válidas, en orden de línea
	Errors        []entity.ValidationError // errores y advertencias, en orden de línea
	CandidateRows int                      // líneas que coincidieron con algún patrón
	ValidRows     int
	Confidence    float64
	TierCounts    map[string]int
}

// Pipeline encadena LineMatcher → RowNormalizer → Validator sobre un documento.
type Pipeline struct {
	matcher    *LineMatcher
	normalizer *RowNormalizer
	validator  *Validator
}

// NewPipeline construye el pipeline.
func NewPipeline(matcher *LineMatcher, normalizer *RowNormalizer, validator *Validator) *Pipeline {
	return &Pipeline{matcher: matcher, normalizer: normalizer, validator: validator}
}

// Run procesa el texto línea por línea. Los errores por fila nunca detienen el lote.
func (p *Pipeline) Run(text string) Result {
	res := Result{TierCounts: make(map[string]int)}
	for _, line := range SplitLines(text) {
		m, ok := p.matcher.Match(line.Text)
		if !ok {
			continue
		}
		res.CandidateRows++
		res.TierCounts[m.Tier]++

		row, err := p.normalizer.Normalize(m, line.LineNumber)
		if err != nil {
			res.Errors = append(res.Errors, parseErrorToValidation(err, line))
			continue
		}

		errs := p.validator.Validate(row)
		res.Errors = append(res.Errors, errs...)
		if HasFatal(errs) {
			continue
		}
		res.Rows = append(res.Rows, row)
	}
	res.ValidRows = len(res.Rows)
	res.Confidence = Confidence(res.ValidRows, res.CandidateRows)
	return res
}

func parseErrorToValidation(err error, line RawLine) entity.ValidationError {
	var pe *ParseError
	if errors.As(err, &pe) {
		return entity.ValidationError{
			RowNumber:     line.LineNumber,
			Field:         pe.Field,
			Message:       pe.Err.Error(),
			OriginalValue: pe.Value,
			Severity:      entity.SeverityError,
		}
	}
	return entity.ValidationError{
		RowNumber:     line.LineNumber,
		Message:       err.Error(),
		OriginalValue: NormalizeLine(line.Text),
		Severity:      entity.SeverityError,
	}
}
