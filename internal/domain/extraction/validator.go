package extraction

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/Fletes-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DefaultExpectedDocType tipo de documento de la familia de vouchers de acarreo.
const DefaultExpectedDocType = "PH"

// ConfidenceFloor piso de la confianza agregada de extracción.
const ConfidenceFloor = 0.1

// Campos reportados en ValidationError.
const (
	FieldQuantity    = "quantity"
	FieldHaulRate    = "haul_rate"
	FieldAmount      = "amount"
	FieldVehicleCode = "vehicle_code"
	FieldDocType     = "doc_type"
	FieldShipDate    = "ship_date"
	FieldCompany     = "company"
)

// Decimales admitidos por campo; coinciden con la escala de las columnas de trips.
const (
	AmountPlaces  = 2
	MeasurePlaces = 4
)

var vehicleCodeRe = regexp.MustCompile(`^[A-Z0-9]{9}$`)

// ValidatorConfig reglas configurables del validador.
type ValidatorConfig struct {
	ExpectedDocType string   // vacío = DefaultExpectedDocType
	KnownPrefixes   []string // vacío = no se exige prefijo de transportista
}

// Validator aplica reglas independientes por campo. Todas las reglas se ejecutan siempre,
// una fila puede acumular varios errores.
type Validator struct {
	expectedDocType string
	prefixes        map[string]struct{}
}

// NewValidator construye el validador.
func NewValidator(cfg ValidatorConfig) *Validator {
	docType := strings.ToUpper(strings.TrimSpace(cfg.ExpectedDocType))
	if docType == "" {
		docType = DefaultExpectedDocType
	}
	prefixes := make(map[string]struct{}, len(cfg.KnownPrefixes))
	for _, p := range cfg.KnownPrefixes {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			prefixes[p] = struct{}{}
		}
	}
	return &Validator{expectedDocType: docType, prefixes: prefixes}
}

// Validate devuelve todas las violaciones de la fila (nil si es válida sin advertencias).
func (v *Validator) Validate(row ExtractedRow) []entity.ValidationError {
	var errs []entity.ValidationError
	add := func(field, severity, value, msg string) {
		errs = append(errs, entity.ValidationError{
			RowNumber:     row.SourceLine,
			Field:         field,
			Message:       msg,
			OriginalValue: value,
			Severity:      severity,
		})
	}

	// Cantidad, tarifa y monto estrictamente positivos; un valor no positivo es una fila
	// de reversa/corrección y no se persiste.
	// Más decimales de los que admite la columna se rechazan: guardarlos los redondearía.
	numeric := []struct {
		field  string
		value  decimal.Decimal
		places int32
	}{
		{FieldQuantity, row.Quantity, MeasurePlaces},
		{FieldHaulRate, row.HaulRate, MeasurePlaces},
		{FieldAmount, row.Amount, AmountPlaces},
	}
	for _, n := range numeric {
		switch {
		case !n.value.IsPositive():
			add(n.field, entity.SeverityError, n.value.String(), fmt.Sprintf("%s debe ser mayor que cero", n.field))
		case !n.value.Equal(n.value.Round(n.places)):
			add(n.field, entity.SeverityError, n.value.String(),
				fmt.Sprintf("%s admite como máximo %d decimales", n.field, n.places))
		}
	}

	if !vehicleCodeRe.MatchString(row.VehicleCode) {
		add(FieldVehicleCode, entity.SeverityError, row.VehicleCode,
			"el código de vehículo debe tener exactamente 9 caracteres alfanuméricos")
	} else if len(v.prefixes) > 0 {
		if _, ok := v.prefixes[row.VehicleCode[:3]]; !ok {
			add(FieldVehicleCode, entity.SeverityError, row.VehicleCode,
				fmt.Sprintf("prefijo de transportista %s no reconocido", row.VehicleCode[:3]))
		}
	}

	if row.DocType != "" && row.DocType != v.expectedDocType {
		add(FieldDocType, entity.SeverityWarning, row.DocType,
			fmt.Sprintf("tipo de documento esperado %s", v.expectedDocType))
	}
	return errs
}

// HasFatal informa si alguno de los errores excluye la fila.
func HasFatal(errs []entity.ValidationError) bool {
	for _, e := range errs {
		if e.IsFatal() {
			return true
		}
	}
	return false
}

// Confidence confianza agregada = válidas/candidatas acotada a [ConfidenceFloor, 1].
// Vale 1 solo si todas las candidatas son válidas.
func Confidence(valid, candidates int) float64 {
	if candidates <= 0 {
		return ConfidenceFloor
	}
	if valid >= candidates {
		return 1.0
	}
	c := float64(valid) / float64(candidates)
	if c < ConfidenceFloor {
		return ConfidenceFloor
	}
	return c
}
