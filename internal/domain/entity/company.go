package entity

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la empresa transportista.
const (
	CompanyStatusActive   = "active"
	CompanyStatusInactive = "inactive"
)

// IdentifierLength longitud del identificador de empresa embebido en el código de vehículo.
const IdentifierLength = 3

// CapitalPercentagePlaces decimales admitidos en el porcentaje de capital.
const CapitalPercentagePlaces = 2

var identifierRe = regexp.MustCompile(`^[A-Z0-9]{3}$`)

// Company representa una empresa transportista (carrier) a la que se atribuyen los viajes.
// CurrentPaymentSeq es el próximo número de pago a usar en LastPaymentYear; ambos campos
// solo cambian dentro de la asignación de secuencia del conciliador (fila bloqueada).
type Company struct {
	ID                string
	Identifier        string          // 3 caracteres, posiciones 4–6 del código de vehículo
	Name              string
	CapitalPercentage decimal.Decimal // 0 < p <= 100
	CurrentPaymentSeq int
	LastPaymentYear   int
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ValidCapitalPercentage informa si el porcentaje de capital está en (0, 100] con a lo sumo
// CapitalPercentagePlaces decimales.
func (c *Company) ValidCapitalPercentage() bool {
	p := c.CapitalPercentage
	return p.IsPositive() && p.LessThanOrEqual(decimal.NewFromInt(100)) &&
		p.Equal(p.Round(CapitalPercentagePlaces))
}

// ValidIdentifier informa si s es un identificador de 3 caracteres alfanuméricos en mayúsculas.
func ValidIdentifier(s string) bool {
	return identifierRe.MatchString(s)
}
