package extraction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Fletes-api/internal/application/extraction"
	"github.com/jhoicas/Fletes-api/internal/domain/entity"
)

func TestCompanyResolver_Estados(t *testing.T) {
	r := extraction.NewCompanyResolver([]*entity.Company{company("c-mvt", "MVT"), company("c-abc", "abc"), nil})

	res := r.Resolve("RMTMVT007", nil)
	assert.Equal(t, extraction.Resolution{CompanyID: "c-mvt", Identifier: "MVT", Status: extraction.ResolutionResolved}, res)
	assert.True(t, res.Resolved())

	assert.Equal(t, "c-abc", r.Resolve("RMTABC123", nil).CompanyID, "el registro se indexa sin distinguir mayúsculas")
	assert.Equal(t, extraction.ResolutionUnknownCompany, r.Resolve("RMTXYZ123", nil).Status)
	assert.Equal(t, extraction.ResolutionInvalidCode, r.Resolve("RMT12", nil).Status)
}

func TestCompanyResolver_FiltroAntesQueRegistro(t *testing.T) {
	r := extraction.NewCompanyResolver([]*entity.Company{company("c-mvt", "MVT")})
	allow := extraction.NewAllowList([]string{"abc"})

	res := r.Resolve("RMTMVT007", allow)
	assert.Equal(t, extraction.ResolutionNotAllowed, res.Status)
	assert.Equal(t, "MVT", res.Identifier)
	assert.False(t, res.Resolved())

	// Un identificador permitido pero no registrado sigue siendo desconocido.
	assert.Equal(t, extraction.ResolutionUnknownCompany, r.Resolve("RMTABC123", allow).Status)
}

func TestNewAllowList_VaciaNoFiltra(t *testing.T) {
	assert.Nil(t, extraction.NewAllowList(nil))
	assert.Nil(t, extraction.NewAllowList([]string{"", "  "}))
	assert.True(t, extraction.NewAllowList(nil).Contains("MVT"))

	allow := extraction.NewAllowList([]string{"mvt", "ABC "})
	assert.True(t, allow.Contains("MVT"))
	assert.True(t, allow.Contains("ABC"))
	assert.False(t, allow.Contains("XYZ"))
}
