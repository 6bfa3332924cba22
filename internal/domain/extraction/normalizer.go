package extraction

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormats formatos de fecha probados en orden; MM/DD/YYYY primero por el origen de los vouchers.
var DateFormats = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"01-02-2006",
	"01/02/06",
	"1/2/06",
	"01-02-06",
}

// ISODate formato canónico de fecha de las filas.
const ISODate = "2006-01-02"

// ErrUnparseableDate la fecha no coincide con ningún formato conocido.
var ErrUnparseableDate = errors.New("fecha no reconocida")

// ParseError error de normalización de una fila. La fila se descarta y se registra.
type ParseError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("línea %d, campo %s (%q): %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ExtractedRow fila canónica producida por LineMatcher + RowNormalizer. Inmutable.
type ExtractedRow struct {
	Location       string
	TicketNumber   string
	VehicleCode    string
	ShipDate       time.Time
	HaulRate       decimal.Decimal
	Quantity       decimal.Decimal
	Amount         decimal.Decimal
	OperCode       string
	DocType        string
	DocNumber      string
	UOM            string
	ReplacedTicket string
	Confidence     float64
	Tier           string
	SourceLine     int
}

// ShipDateISO fecha de despacho en formato YYYY-MM-DD.
func (r ExtractedRow) ShipDateISO() string {
	return r.ShipDate.Format(ISODate)
}

// Identifier identificador de empresa embebido en el código de vehículo.
func (r ExtractedRow) Identifier() string {
	return CompanyIdentifier(r.VehicleCode)
}

// RowNormalizer convierte una coincidencia cruda en ExtractedRow.
type RowNormalizer struct {
	dateFormats []string
}

// NewRowNormalizer construye el normalizador con DateFormats.
func NewRowNormalizer() *RowNormalizer {
	return &RowNormalizer{dateFormats: DateFormats}
}

// Normalize parsea fecha y números de la coincidencia. Solo la fecha puede fallar en la
// práctica: los demás campos ya coincidieron con un sub-patrón numérico o alfanumérico.
func (n *RowNormalizer) Normalize(m MatchResult, lineNumber int) (ExtractedRow, error) {
	rawDate := m.Field(GroupShipDate)
	shipDate, err := ParseDate(rawDate, n.dateFormats)
	if err != nil {
		return ExtractedRow{}, &ParseError{Line: lineNumber, Field: GroupShipDate, Value: rawDate, Err: err}
	}

	nums := make(map[string]decimal.Decimal, 3)
	for _, g := range []string{GroupRate, GroupQuantity, GroupAmount} {
		d, err := ParseNumber(m.Field(g))
		if err != nil {
			return ExtractedRow{}, &ParseError{Line: lineNumber, Field: g, Value: m.Field(g), Err: err}
		}
		nums[g] = d
	}

	return ExtractedRow{
		Location:       m.Field(GroupLocation),
		TicketNumber:   m.Field(GroupTicket),
		VehicleCode:    strings.ToUpper(m.Field(GroupVehicle)),
		ShipDate:       shipDate,
		HaulRate:       nums[GroupRate],
		Quantity:       nums[GroupQuantity],
		Amount:         nums[GroupAmount],
		OperCode:       m.Field(GroupOperCode),
		DocType:        strings.ToUpper(m.Field(GroupDocType)),
		DocNumber:      m.Field(GroupDocNumber),
		UOM:            strings.ToUpper(m.Field(GroupUOM)),
		ReplacedTicket: m.Field(GroupReplaced),
		Confidence:     m.Confidence,
		Tier:           m.Tier,
		SourceLine:     lineNumber,
	}, nil
}

// ParseDate prueba los formatos en orden y devuelve la fecha en UTC.
func ParseDate(s string, formats []string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range formats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrUnparseableDate
}

// ParseNumber parsea un número con punto decimal; las comas de miles se descartan.
func ParseNumber(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("número vacío")
	}
	return decimal.NewFromString(s)
}
