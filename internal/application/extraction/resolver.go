package extraction

import (
	"strings"

	"github.com/jhoicas/Fletes-api/internal/domain/entity"
	domextraction "github.com/jhoicas/Fletes-api/internal/domain/extraction"
)

// Estados de resolución de empresa.
const (
	ResolutionResolved       = "resolved"
	ResolutionNotAllowed     = "not_allowed"
	ResolutionUnknownCompany = "unknown_company"
	ResolutionInvalidCode    = "invalid_code"
)

// Resolution resultado de atribuir un código de vehículo a una empresa.
type Resolution struct {
	CompanyID  string
	Identifier string
	Status     string
}

// Resolved informa si la fila se atribuyó a una empresa permitida.
func (r Resolution) Resolved() bool { return r.Status == ResolutionResolved }

// AllowList conjunto de identificadores elegidos por el operador. nil = sin filtro.
type AllowList map[string]struct{}

// NewAllowList normaliza los identificadores (mayúsculas, sin espacios). Una lista sin
// identificadores útiles devuelve nil: no se filtra.
func NewAllowList(identifiers []string) AllowList {
	var set AllowList
	for _, id := range identifiers {
		id = strings.ToUpper(strings.TrimSpace(id))
		if id == "" {
			continue
		}
		if set == nil {
			set = make(AllowList)
		}
		set[id] = struct{}{}
	}
	return set
}

// Contains informa si el identificador pasa el filtro.
func (a AllowList) Contains(identifier string) bool {
	if a == nil {
		return true
	}
	_, ok := a[identifier]
	return ok
}

// CompanyResolver resuelve el identificador embebido en el código de vehículo contra el
// registro de empresas cargado una vez por lote.
type CompanyResolver struct {
	byIdentifier map[string]*entity.Company
}

// NewCompanyResolver indexa las empresas por identificador.
func NewCompanyResolver(companies []*entity.Company) *CompanyResolver {
	idx := make(map[string]*entity.Company, len(companies))
	for _, c := range companies {
		if c == nil {
			continue
		}
		idx[strings.ToUpper(c.Identifier)] = c
	}
	return &CompanyResolver{byIdentifier: idx}
}

// Resolve aplica primero el filtro del operador y luego busca la empresa registrada.
func (r *CompanyResolver) Resolve(vehicleCode string, allowed AllowList) Resolution {
	identifier := strings.ToUpper(domextraction.CompanyIdentifier(vehicleCode))
	if len(identifier) != entity.IdentifierLength {
		return Resolution{Status: ResolutionInvalidCode}
	}
	if !allowed.Contains(identifier) {
		return Resolution{Identifier: identifier, Status: ResolutionNotAllowed}
	}
	c, ok := r.byIdentifier[identifier]
	if !ok {
		return Resolution{Identifier: identifier, Status: ResolutionUnknownCompany}
	}
	return Resolution{CompanyID: c.ID, Identifier: identifier, Status: ResolutionResolved}
}
