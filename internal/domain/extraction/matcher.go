// Package extraction contiene el motor de extracción de viajes desde el texto de un voucher:
// coincidencia posicional por niveles, normalización de filas y validación por campo.
// Es dominio puro: mismo texto, mismo resultado (sin estado oculto).
package extraction

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Grupos con nombre que un patrón puede declarar.
const (
	GroupOperCode  = "oper"
	GroupLocation  = "location"
	GroupDocType   = "doc_type"
	GroupDocNumber = "doc_number"
	GroupShipDate  = "ship_date"
	GroupTicket    = "ticket"
	GroupReplaced  = "replaced"
	GroupVehicle   = "vehicle"
	GroupRate      = "rate"
	GroupQuantity  = "quantity"
	GroupUOM       = "uom"
	GroupAmount    = "amount"
)

// RequiredGroups grupos obligatorios para que un patrón produzca una fila normalizable.
var RequiredGroups = []string{
	GroupLocation, GroupShipDate, GroupTicket, GroupVehicle,
	GroupRate, GroupQuantity, GroupAmount,
}

// Niveles de patrón incluidos.
const (
	TierPrimary             = "primary"
	TierFallback            = "fallback"
	TierSpreadsheet         = "spreadsheet"
	TierSpreadsheetFallback = "spreadsheet_fallback"
	TierDiagnostic          = "diagnostic"
)

// Confianza asociada a cada nivel.
const (
	ConfidencePrimary     = 0.95
	ConfidenceFallback    = 0.85
	ConfidenceSpreadsheet = 0.90
	ConfidenceDiagnostic  = 0.50
)

// Fragmentos de expresión compartidos por los niveles.
const (
	exprNumber       = `-?(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?`
	exprTextDate     = `\d{2}/\d{2}/\d{4}`
	exprSheetDate    = `\d{1,4}[/-]\d{1,2}[/-]\d{2,4}`
	exprVehicle      = `[A-Za-z0-9]{9}`
	exprLooseVehicle = `[A-Za-z0-9]{1,12}`
)

// body arma los 11 campos posicionales que siguen al código de operación.
func body(dateExpr, vehicleExpr string) string {
	return `(?P<location>\d{4,6})\s+` +
		`(?P<doc_type>[A-Za-z]{2})\s+` +
		`(?P<doc_number>\d+)\s+` +
		`(?P<ship_date>` + dateExpr + `)\s+` +
		`(?P<ticket>\d+)\s+` +
		`(?P<replaced>\d+)\s+` +
		`(?P<vehicle>` + vehicleExpr + `)\s+` +
		`(?P<rate>` + exprNumber + `)\s+` +
		`(?P<quantity>` + exprNumber + `)\s+` +
		`(?P<uom>[A-Za-z]{2})\s+` +
		`(?P<amount>` + exprNumber + `)$`
}

// PatternTier par (patrón, confianza) evaluado en orden de prioridad.
type PatternTier struct {
	Name       string
	Confidence float64
	Expr       *regexp.Regexp
}

// NewPatternTier compila la expresión y verifica que declare los grupos obligatorios.
func NewPatternTier(name string, confidence float64, expr string) (PatternTier, error) {
	if name == "" {
		return PatternTier{}, fmt.Errorf("patrón sin nombre")
	}
	if confidence <= 0 || confidence > 1 {
		return PatternTier{}, fmt.Errorf("patrón %s: confianza %.2f fuera de (0, 1]", name, confidence)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return PatternTier{}, fmt.Errorf("patrón %s: %w", name, err)
	}
	declared := make(map[string]bool, len(re.SubexpNames()))
	for _, g := range re.SubexpNames() {
		declared[g] = true
	}
	var missing []string
	for _, g := range RequiredGroups {
		if !declared[g] {
			missing = append(missing, g)
		}
	}
	if len(missing) > 0 {
		return PatternTier{}, fmt.Errorf("patrón %s: faltan grupos %s", name, strings.Join(missing, ", "))
	}
	return PatternTier{Name: name, Confidence: confidence, Expr: re}, nil
}

func mustTier(name string, confidence float64, expr string) PatternTier {
	t, err := NewPatternTier(name, confidence, expr)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultTiers niveles para texto extraído de PDF o exportaciones de texto plano.
func DefaultTiers() []PatternTier {
	return []PatternTier{
		mustTier(TierPrimary, ConfidencePrimary, `^(?P<oper>\d{2})\s+`+body(exprTextDate, exprVehicle)),
		mustTier(TierFallback, ConfidenceFallback, `^`+body(exprTextDate, exprVehicle)),
		diagnosticTier(exprTextDate),
	}
}

// SpreadsheetTiers niveles para filas de hoja de cálculo (celdas unidas por tabulador).
// La fecha admite los formatos con que la hoja formatea celdas de fecha.
func SpreadsheetTiers() []PatternTier {
	return []PatternTier{
		mustTier(TierSpreadsheet, ConfidenceSpreadsheet, `^(?P<oper>\d{2})\s+`+body(exprSheetDate, exprVehicle)),
		mustTier(TierSpreadsheetFallback, ConfidenceSpreadsheet, `^`+body(exprSheetDate, exprVehicle)),
		diagnosticTier(exprSheetDate),
	}
}

// diagnosticTier acepta códigos de vehículo de cualquier longitud para que una línea con
// código mal formado quede registrada como candidata inválida y no desaparezca en silencio.
func diagnosticTier(dateExpr string) PatternTier {
	return mustTier(TierDiagnostic, ConfidenceDiagnostic, `^(?:(?P<oper>\d{2})\s+)?`+body(dateExpr, exprLooseVehicle))
}

// MatchResult coincidencia tipada de una línea con un nivel.
type MatchResult struct {
	Tier       string
	Confidence float64
	Fields     map[string]string
}

// Field devuelve el valor del grupo o "" si el nivel no lo declara o no participó.
func (m MatchResult) Field(name string) string {
	return m.Fields[name]
}

// LineMatcher aplica los niveles en orden y devuelve la primera coincidencia.
type LineMatcher struct {
	tiers []PatternTier
}

// NewLineMatcher construye el matcher. El orden de tiers es el orden de prioridad.
func NewLineMatcher(tiers ...PatternTier) (*LineMatcher, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("se requiere al menos un patrón")
	}
	seen := make(map[string]bool, len(tiers))
	for _, t := range tiers {
		if t.Expr == nil {
			return nil, fmt.Errorf("patrón %s sin expresión", t.Name)
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("patrón %s duplicado", t.Name)
		}
		seen[t.Name] = true
	}
	return &LineMatcher{tiers: append([]PatternTier(nil), tiers...)}, nil
}

// Tiers devuelve una copia de los niveles configurados.
func (m *LineMatcher) Tiers() []PatternTier {
	return append([]PatternTier(nil), m.tiers...)
}

// Match normaliza la línea y prueba cada nivel. ok=false si ninguno coincide: la línea
// no es candidata y no genera errores de validación.
func (m *LineMatcher) Match(line string) (MatchResult, bool) {
	line = NormalizeLine(line)
	if line == "" {
		return MatchResult{}, false
	}
	for _, t := range m.tiers {
		sub := t.Expr.FindStringSubmatch(line)
		if sub == nil {
			continue
		}
		fields := make(map[string]string, len(sub))
		for i, name := range t.Expr.SubexpNames() {
			if name != "" {
				fields[name] = sub[i]
			}
		}
		return MatchResult{Tier: t.Name, Confidence: t.Confidence, Fields: fields}, true
	}
	return MatchResult{}, false
}

// NormalizeLine aplica NFKC (espacios duros y dígitos de ancho completo que deja la
// extracción de PDF) y recorta los extremos.
func NormalizeLine(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}
