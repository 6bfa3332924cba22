package extraction

import (
	"fmt"

	"github.com/jhoicas/Fletes-api/internal/domain/entity"
	domextraction "github.com/jhoicas/Fletes-api/internal/domain/extraction"
)

// PipelineConfig niveles adicionales y reglas de validación configurables.
type PipelineConfig struct {
	ExtraTiers []domextraction.PatternTier // se evalúan antes del nivel de diagnóstico
	Validator  domextraction.ValidatorConfig
}

// Pipelines un pipeline para texto (PDF / texto exportado) y otro para hojas de cálculo.
type Pipelines struct {
	text  *domextraction.Pipeline
	sheet *domextraction.Pipeline
}

// NewPipelines construye ambos pipelines compartiendo normalizador y validador.
func NewPipelines(cfg PipelineConfig) (*Pipelines, error) {
	textMatcher, err := domextraction.NewLineMatcher(withExtraTiers(domextraction.DefaultTiers(), cfg.ExtraTiers)...)
	if err != nil {
		return nil, fmt.Errorf("niveles de texto: %w", err)
	}
	sheetMatcher, err := domextraction.NewLineMatcher(withExtraTiers(domextraction.SpreadsheetTiers(), cfg.ExtraTiers)...)
	if err != nil {
		return nil, fmt.Errorf("niveles de hoja de cálculo: %w", err)
	}
	normalizer := domextraction.NewRowNormalizer()
	validator := domextraction.NewValidator(cfg.Validator)
	return &Pipelines{
		text:  domextraction.NewPipeline(textMatcher, normalizer, validator),
		sheet: domextraction.NewPipeline(sheetMatcher, normalizer, validator),
	}, nil
}

// For elige el pipeline según el origen del documento.
func (p *Pipelines) For(sourceKind string) *domextraction.Pipeline {
	if sourceKind == entity.SourceKindXLSX {
		return p.sheet
	}
	return p.text
}

// withExtraTiers inserta los niveles adicionales justo antes del nivel de diagnóstico,
// que acepta cualquier código de vehículo y debe quedar último.
func withExtraTiers(builtin, extra []domextraction.PatternTier) []domextraction.PatternTier {
	out := make([]domextraction.PatternTier, 0, len(builtin)+len(extra))
	var diagnostic []domextraction.PatternTier
	for _, t := range builtin {
		if t.Name == domextraction.TierDiagnostic {
			diagnostic = append(diagnostic, t)
			continue
		}
		out = append(out, t)
	}
	out = append(out, extra...)
	return append(out, diagnostic...)
}
