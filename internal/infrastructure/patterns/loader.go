// Package patterns carga niveles de patrón adicionales desde un archivo YAML, para
// incorporar variantes de formato de voucher sin recompilar.
//
// Formato:
//
//	tiers:
//	  - name: legacy_export
//	    confidence: 0.8
//	    expr: '^(?P<location>\d{5})\s+...(?P<amount>...)$'
package patterns

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	domextraction "github.com/jhoicas/Fletes-api/internal/domain/extraction"
)

// File contenido del archivo de patrones.
type File struct {
	Tiers []TierSpec `yaml:"tiers"`
}

// TierSpec definición de un nivel.
type TierSpec struct {
	Name       string  `yaml:"name"`
	Confidence float64 `yaml:"confidence"`
	Expr       string  `yaml:"expr"`
}

// LoadFile lee y compila los niveles del archivo. path vacío = sin niveles adicionales.
func LoadFile(path string) ([]domextraction.PatternTier, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer archivo de patrones: %w", err)
	}
	return Parse(data)
}

// Parse compila los niveles en el orden declarado. Cada nivel debe declarar los grupos
// obligatorios y tener confianza en (0, 1].
func Parse(data []byte) ([]domextraction.PatternTier, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsear archivo de patrones: %w", err)
	}
	tiers := make([]domextraction.PatternTier, 0, len(f.Tiers))
	for i, spec := range f.Tiers {
		t, err := domextraction.NewPatternTier(spec.Name, spec.Confidence, spec.Expr)
		if err != nil {
			return nil, fmt.Errorf("nivel %d: %w", i+1, err)
		}
		tiers = append(tiers, t)
	}
	return tiers, nil
}
