package extraction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Fletes-api/internal/application/extraction"
	"github.com/jhoicas/Fletes-api/internal/domain/entity"
	domextraction "github.com/jhoicas/Fletes-api/internal/domain/extraction"
)

// Variante con un carácter de control pegado al código de vehículo; el nivel de
// diagnóstico también aceptaría la línea, con un código de 10 caracteres.
const tenCharVehicleExpr = `^(?P<location>\d{5})\s+(?P<doc_type>PH)\s+(?P<doc_number>\d+)\s+` +
	`(?P<ship_date>\d{2}/\d{2}/\d{4})\s+(?P<ticket>\d+)\s+(?P<replaced>\d+)\s+` +
	`(?P<vehicle>[A-Z0-9]{9})X\s+(?P<rate>[\d.]+)\s+(?P<quantity>[\d.]+)\s+` +
	`(?P<uom>[A-Z]{2})\s+(?P<amount>[\d.]+)$`

const tenCharVehicleLine = "16431 PH 15089949 08/22/2025 31733474 0 RMTMVT007X 28.53 8.32 TN 237.37"

func TestNewPipelines_NivelAdicionalAntesDelDiagnostico(t *testing.T) {
	extra, err := domextraction.NewPatternTier("ten_char_vehicle", 0.8, tenCharVehicleExpr)
	require.NoError(t, err)

	pipelines, err := extraction.NewPipelines(extraction.PipelineConfig{
		ExtraTiers: []domextraction.PatternTier{extra},
	})
	require.NoError(t, err)

	for _, kind := range []string{entity.SourceKindText, entity.SourceKindXLSX} {
		t.Run(kind, func(t *testing.T) {
			res := pipelines.For(kind).Run(tenCharVehicleLine)

			assert.Equal(t, map[string]int{"ten_char_vehicle": 1}, res.TierCounts)
			assert.Empty(t, res.Errors)
			require.Len(t, res.Rows, 1)
			assert.Equal(t, "RMTMVT007", res.Rows[0].VehicleCode)
			assert.Equal(t, 0.8, res.Rows[0].Confidence)
		})
	}
}

func TestNewPipelines_DiagnosticoSigueCapturandoCodigosCortos(t *testing.T) {
	extra, err := domextraction.NewPatternTier("ten_char_vehicle", 0.8, tenCharVehicleExpr)
	require.NoError(t, err)
	pipelines, err := extraction.NewPipelines(extraction.PipelineConfig{
		ExtraTiers: []domextraction.PatternTier{extra},
	})
	require.NoError(t, err)

	res := pipelines.For(entity.SourceKindText).Run(
		"16431 PH 15089949 08/22/2025 31733474 0 RMTMV07 28.53 8.32 TN 237.37")

	assert.Equal(t, map[string]int{domextraction.TierDiagnostic: 1}, res.TierCounts)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, domextraction.FieldVehicleCode, res.Errors[0].Field)
}
