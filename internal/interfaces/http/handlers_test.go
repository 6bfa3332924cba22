package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Fletes-api/internal/application/dto"
	"github.com/jhoicas/Fletes-api/internal/application/extraction"
	"github.com/jhoicas/Fletes-api/internal/application/payment"
	"github.com/jhoicas/Fletes-api/internal/application/usecase"
	"github.com/jhoicas/Fletes-api/internal/domain"
	"github.com/jhoicas/Fletes-api/internal/domain/entity"
	domextraction "github.com/jhoicas/Fletes-api/internal/domain/extraction"
	"github.com/jhoicas/Fletes-api/internal/infrastructure/csvexport"
	apphttp "github.com/jhoicas/Fletes-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Fletes-api/pkg/jwt"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type fakeCompanies struct {
	list []*entity.Company
}

func (f *fakeCompanies) Create(_ context.Context, c *entity.Company) error {
	f.list = append(f.list, c)
	return nil
}
func (f *fakeCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	for _, c := range f.list {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakeCompanies) GetByIdentifier(_ context.Context, identifier string) (*entity.Company, error) {
	for _, c := range f.list {
		if c.Identifier == identifier {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakeCompanies) List(context.Context, int, int) ([]*entity.Company, error) { return f.list, nil }
func (f *fakeCompanies) ListActive(context.Context) ([]*entity.Company, error)    { return f.list, nil }
func (f *fakeCompanies) GetForUpdate(ctx context.Context, id string) (*entity.Company, error) {
	return f.GetByID(ctx, id)
}
func (f *fakeCompanies) UpdatePaymentSequence(context.Context, string, int, int) error { return nil }

type fakeVouchers struct {
	byID map[string]*entity.Voucher
}

func (f *fakeVouchers) Create(_ context.Context, v *entity.Voucher) error {
	f.byID[v.ID] = v
	return nil
}
func (f *fakeVouchers) GetByID(_ context.Context, id string) (*entity.Voucher, error) {
	return f.byID[id], nil
}
func (f *fakeVouchers) List(context.Context, int, int) ([]*entity.Voucher, error) { return nil, nil }
func (f *fakeVouchers) GetForUpdate(ctx context.Context, id string) (*entity.Voucher, error) {
	return f.GetByID(ctx, id)
}
func (f *fakeVouchers) GetForShare(ctx context.Context, id string) (*entity.Voucher, error) {
	return f.GetByID(ctx, id)
}
func (f *fakeVouchers) UpdateResult(context.Context, *entity.Voucher) error { return nil }

type fakeTrips struct {
	summary []*entity.CompanyTripSummary
	count   int
}

func (f *fakeTrips) SaveBatch(_ context.Context, _ string, trips []*entity.Trip) (int, error) {
	return len(trips), nil
}
func (f *fakeTrips) ListByVoucherAndCompany(context.Context, string, string) ([]*entity.Trip, error) {
	return nil, nil
}
func (f *fakeTrips) CountByVoucher(context.Context, string) (int, error) { return f.count, nil }
func (f *fakeTrips) SummaryByVoucher(context.Context, string) ([]*entity.CompanyTripSummary, error) {
	return f.summary, nil
}

type fakeErrorLog struct {
	errs []entity.ValidationError
}

func (f *fakeErrorLog) SaveBatch(_ context.Context, _ string, errs []entity.ValidationError) error {
	f.errs = append(f.errs, errs...)
	return nil
}
func (f *fakeErrorLog) ListByVoucher(context.Context, string) ([]entity.ValidationError, error) {
	return f.errs, nil
}

type fakeImporter struct {
	preview    *extraction.ExtractionResult
	previewErr error
	imported   *extraction.ImportResult
	importErr  error
	lastInput  extraction.ImportInput
}

func (f *fakeImporter) ImportVoucher(_ context.Context, in extraction.ImportInput) (*extraction.ImportResult, error) {
	f.lastInput = in
	return f.imported, f.importErr
}
func (f *fakeImporter) Preview(context.Context, string, []byte) (*extraction.ExtractionResult, error) {
	return f.preview, f.previewErr
}

type fakeReconciler struct {
	report *entity.PaymentReport
	err    error
	last   payment.ReconcileInput
}

func (f *fakeReconciler) Reconcile(_ context.Context, in payment.ReconcileInput) (*entity.PaymentReport, error) {
	f.last = in
	return f.report, f.err
}

type fakeReports struct {
	byID map[string]*entity.PaymentReport
}

func (f *fakeReports) Get(_ context.Context, id string) (*entity.PaymentReport, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}
func (f *fakeReports) ListByVoucher(context.Context, string) ([]*entity.PaymentReport, error) {
	return nil, nil
}
func (f *fakeReports) DownloadPDF(ctx context.Context, id string) ([]byte, string, error) {
	if _, err := f.Get(ctx, id); err != nil {
		return nil, "", err
	}
	return []byte("%PDF-1.4"), "liquidacion-CAR-2024-001.pdf", nil
}
func (f *fakeReports) DownloadXLSX(ctx context.Context, id string) ([]byte, string, error) {
	if _, err := f.Get(ctx, id); err != nil {
		return nil, "", err
	}
	return []byte("PK"), "liquidacion-CAR-2024-001.xlsx", nil
}

// ── Harness ───────────────────────────────────────────────────────────────────

type harness struct {
	app        *fiber.App
	companies  *fakeCompanies
	vouchers   *fakeVouchers
	errorLog   *fakeErrorLog
	importer   *fakeImporter
	reconciler *fakeReconciler
	trips      *fakeTrips
}

func sampleReport() *entity.PaymentReport {
	day := func(d int) time.Time { return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC) }
	return &entity.PaymentReport{
		ID:                "rep-1",
		CompanyID:         "co-1",
		VoucherID:         "v-1",
		PaymentNo:         1,
		PaymentYear:       2024,
		WeekStart:         day(4),
		WeekEnd:           day(10),
		PaymentDate:       day(17),
		Subtotal:          decimal.RequireFromString("1000"),
		CapitalPercentage: decimal.RequireFromString("5"),
		CapitalDeduction:  decimal.RequireFromString("50"),
		TotalPayment:      decimal.RequireFromString("950"),
		YTDAmount:         decimal.RequireFromString("950"),
		TotalTrips:        2,
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		companies:  &fakeCompanies{},
		vouchers:   &fakeVouchers{byID: map[string]*entity.Voucher{}},
		errorLog:   &fakeErrorLog{},
		importer:   &fakeImporter{},
		reconciler: &fakeReconciler{report: sampleReport()},
		trips:      &fakeTrips{},
	}
	reports := &fakeReports{byID: map[string]*entity.PaymentReport{"rep-1": sampleReport()}}

	h.app = fiber.New()
	apphttp.Router(h.app, apphttp.RouterDeps{
		CompanyUC:      usecase.NewCompanyUseCase(h.companies),
		VoucherUC:      usecase.NewVoucherUseCase(h.importer, h.vouchers, h.trips, h.errorLog, csvexport.ValidationErrorsCSV),
		PaymentUC:      usecase.NewPaymentUseCase(h.reconciler, reports),
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "fletes_up 1\n") }),
		JWTSecret:      testJWTSecret,
	})
	return h
}

func (h *harness) do(t *testing.T, req *http.Request, role string) *http.Response {
	t.Helper()
	if role != "" {
		req.Header.Set("Authorization", bearer(t, role))
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func jsonRequest(method, path string, body interface{}) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func uploadRequest(t *testing.T, path, fileName, content string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// ── Companies ─────────────────────────────────────────────────────────────────

func TestCompanies_CrearComoAdmin(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, jsonRequest(http.MethodPost, "/api/companies",
		dto.CreateCompanyRequest{Identifier: "car", Name: "Carrier SA", CapitalPercentage: "5"}), pkgjwt.RoleAdmin)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.CompanyResponse
	decode(t, resp, &out)
	assert.Equal(t, "CAR", out.Identifier, "el identificador se guarda en mayúsculas")
	assert.Equal(t, 1, out.CurrentPaymentSeq)
	assert.Equal(t, entity.CompanyStatusActive, out.Status)
}

func TestCompanies_IdentificadorDuplicado_Retorna409(t *testing.T) {
	h := newHarness(t)
	h.companies.list = []*entity.Company{{ID: "co-1", Identifier: "CAR"}}

	resp := h.do(t, jsonRequest(http.MethodPost, "/api/companies",
		dto.CreateCompanyRequest{Identifier: "CAR", Name: "Otra", CapitalPercentage: "5"}), pkgjwt.RoleAdmin)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCompanies_PorcentajeFueraDeRango_Retorna400(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, jsonRequest(http.MethodPost, "/api/companies",
		dto.CreateCompanyRequest{Identifier: "CAR", Name: "Carrier", CapitalPercentage: "150"}), pkgjwt.RoleAdmin)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var out dto.ErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Empty(t, h.companies.list)
}

func TestCompanies_DatosInvalidos_Retorna400(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateCompanyRequest
	}{
		{"porcentaje con 3 decimales", dto.CreateCompanyRequest{Identifier: "CAR", Name: "Carrier", CapitalPercentage: "5.125"}},
		{"identificador con guion", dto.CreateCompanyRequest{Identifier: "M-T", Name: "Carrier", CapitalPercentage: "5"}},
		{"identificador no ASCII", dto.CreateCompanyRequest{Identifier: "ÑA", Name: "Carrier", CapitalPercentage: "5"}},
		{"identificador corto", dto.CreateCompanyRequest{Identifier: "CA", Name: "Carrier", CapitalPercentage: "5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			resp := h.do(t, jsonRequest(http.MethodPost, "/api/companies", tt.req), pkgjwt.RoleAdmin)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Empty(t, h.companies.list)
		})
	}
}

func TestCompanies_PorcentajeConCerosFinales(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, jsonRequest(http.MethodPost, "/api/companies",
		dto.CreateCompanyRequest{Identifier: "MV1", Name: "Carrier", CapitalPercentage: "5.100"}), pkgjwt.RoleAdmin)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, h.companies.list, 1)
	assert.True(t, h.companies.list[0].CapitalPercentage.Equal(decimal.RequireFromString("5.1")))
}

func TestCompanies_OperadorNoPuedeCrear(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, jsonRequest(http.MethodPost, "/api/companies",
		dto.CreateCompanyRequest{Identifier: "CAR", Name: "Carrier", CapitalPercentage: "5"}), pkgjwt.RoleOperator)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCompanies_GetInexistente_Retorna404(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, httptest.NewRequest(http.MethodGet, "/api/companies/nope", nil), pkgjwt.RoleOperator)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_SinToken_Retorna401(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, httptest.NewRequest(http.MethodGet, "/api/vouchers/v-1", nil), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ── Vouchers ──────────────────────────────────────────────────────────────────

func TestVouchers_Preview(t *testing.T) {
	h := newHarness(t)
	h.importer.preview = &extraction.ExtractionResult{
		Rows: []domextraction.ExtractedRow{{
			Location:     "12345",
			TicketNumber: "778899",
			VehicleCode:  "TRKCAR001",
			ShipDate:     time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
			HaulRate:     decimal.RequireFromString("12.5"),
			Quantity:     decimal.RequireFromString("40"),
			Amount:       decimal.RequireFromString("500"),
			Confidence:   domextraction.ConfidencePrimary,
			Tier:         domextraction.TierPrimary,
			SourceLine:   3,
		}},
		Confidence:    1,
		CandidateRows: 1,
		ValidRows:     1,
		TierCounts:    map[string]int{domextraction.TierPrimary: 1},
	}

	resp := h.do(t, uploadRequest(t, "/api/vouchers/preview", "v.txt", "contenido", nil), pkgjwt.RoleOperator)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.ExtractionResponse
	decode(t, resp, &out)
	require.Len(t, out.Rows, 1)
	assert.Equal(t, "CAR", out.Rows[0].Identifier)
	assert.Equal(t, "2024-03-04", out.Rows[0].ShipDate)
	assert.Equal(t, "500.00", out.Rows[0].Amount)
	assert.Empty(t, out.Errors)
}

func TestVouchers_PreviewSinArchivo_Retorna400(t *testing.T) {
	h := newHarness(t)
	req := httptest.NewRequest(http.MethodPost, "/api/vouchers/preview", strings.NewReader(""))
	resp := h.do(t, req, pkgjwt.RoleOperator)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVouchers_PreviewFormatoNoSoportado_Retorna415(t *testing.T) {
	h := newHarness(t)
	h.importer.previewErr = domain.ErrUnsupportedDocument

	resp := h.do(t, uploadRequest(t, "/api/vouchers/preview", "foto.png", "\x89PNG", nil), pkgjwt.RoleOperator)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestVouchers_ImportPasaEmpresasYUsuario(t *testing.T) {
	h := newHarness(t)
	h.importer.imported = &extraction.ImportResult{
		Voucher:    &entity.Voucher{ID: "v-1", FileName: "v.txt", Status: entity.VoucherStatusProcessed},
		Extraction: &extraction.ExtractionResult{CandidateRows: 2, ValidRows: 2, Confidence: 1},
		Persist:    &extraction.PersistResult{TotalRowsFound: 2, TripsSaved: 1, NotAllowed: 1},
	}

	resp := h.do(t, uploadRequest(t, "/api/vouchers", "v.txt", "contenido",
		map[string]string{"companies": " car, ,abc "}), pkgjwt.RoleOperator)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.ImportResponse
	decode(t, resp, &out)

	assert.Equal(t, []string{"CAR", "ABC"}, h.importer.lastInput.Companies)
	assert.Equal(t, testUserID, h.importer.lastInput.UploadedBy)
	assert.Equal(t, entity.VoucherStatusProcessed, out.Voucher.Status)
	require.NotNil(t, out.Persist)
	assert.Equal(t, 1, out.Persist.TripsSaved)
	assert.Equal(t, 1, out.Persist.NotAllowed)
}

func TestVouchers_ImportSinFilas_Retorna422ConVoucherEnError(t *testing.T) {
	h := newHarness(t)
	h.importer.imported = &extraction.ImportResult{
		Voucher: &entity.Voucher{ID: "v-2", Status: entity.VoucherStatusError, ErrorMessage: domain.ErrNoRowsMatched.Error()},
	}
	h.importer.importErr = domain.ErrNoRowsMatched

	resp := h.do(t, uploadRequest(t, "/api/vouchers", "vacio.txt", "nada", nil), pkgjwt.RoleOperator)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var out dto.ImportErrorResponse
	decode(t, resp, &out)
	assert.Equal(t, "NO_ROWS_MATCHED", out.Code)
	require.NotNil(t, out.Voucher)
	assert.Equal(t, entity.VoucherStatusError, out.Voucher.Status)
}

func TestVouchers_GetInexistente_Retorna404(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, httptest.NewRequest(http.MethodGet, "/api/vouchers/nope", nil), pkgjwt.RoleOperator)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVouchers_ErroresCSV(t *testing.T) {
	h := newHarness(t)
	h.vouchers.byID["v-1"] = &entity.Voucher{ID: "v-1"}
	h.errorLog.errs = []entity.ValidationError{{
		VoucherID: "v-1", RowNumber: 7, Field: domextraction.FieldVehicleCode,
		Message: "código corto", OriginalValue: "AB1", Severity: entity.SeverityError,
	}}

	resp := h.do(t, httptest.NewRequest(http.MethodGet, "/api/vouchers/v-1/errors.csv", nil), pkgjwt.RoleOperator)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "errores-v-1.csv")

	body, _ := io.ReadAll(resp.Body)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "voucher_id,row_number,field,severity,message,original_value", lines[0])
	assert.Contains(t, lines[1], "v-1,7,vehicle_code,error")
}

func TestVouchers_Errores(t *testing.T) {
	h := newHarness(t)
	h.vouchers.byID["v-1"] = &entity.Voucher{ID: "v-1"}
	h.errorLog.errs = []entity.ValidationError{{VoucherID: "v-1", RowNumber: 2, Field: "company", Severity: entity.SeverityWarning}}

	resp := h.do(t, httptest.NewRequest(http.MethodGet, "/api/vouchers/v-1/errors", nil), pkgjwt.RoleOperator)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []dto.ValidationErrorResponse
	decode(t, resp, &out)
	require.Len(t, out, 1)
	assert.Equal(t, entity.SeverityWarning, out[0].Severity)
}

func TestVouchers_Resumen(t *testing.T) {
	h := newHarness(t)
	h.vouchers.byID["v-1"] = &entity.Voucher{ID: "v-1"}
	h.trips.count = 3
	h.trips.summary = []*entity.CompanyTripSummary{{
		CompanyID: "co-1", Identifier: "MVT", CompanyName: "Transportes MVT", TotalTrips: 3,
		Quantity: decimal.RequireFromString("25.5"), Amount: decimal.RequireFromString("712.1"),
		MinTripDate: time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC),
		MaxTripDate: time.Date(2025, 8, 22, 0, 0, 0, 0, time.UTC),
	}}

	resp := h.do(t, httptest.NewRequest(http.MethodGet, "/api/vouchers/v-1/summary", nil), pkgjwt.RoleOperator)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.VoucherSummaryResponse
	decode(t, resp, &out)
	assert.Equal(t, 3, out.TotalTrips)
	require.Len(t, out.Companies, 1)
	assert.Equal(t, "712.10", out.Companies[0].Amount)
	assert.Equal(t, "2025-08-20", out.Companies[0].FirstTrip)
}

// ── Conciliación y liquidaciones ──────────────────────────────────────────────

func TestReconcile_EmiteLiquidacion(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, jsonRequest(http.MethodPost, "/api/vouchers/v-1/reconcile",
		dto.ReconcileRequest{CompanyID: "co-1", PaymentDate: "2024-03-20", YTDOverride: "1200.50"}), pkgjwt.RoleAdmin)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.PaymentReportResponse
	decode(t, resp, &out)
	assert.Equal(t, "950.00", out.TotalPayment)
	assert.Equal(t, "50.00", out.CapitalDeduction)
	assert.Equal(t, "2024-03-04", out.WeekStart)

	assert.Equal(t, "v-1", h.reconciler.last.VoucherID)
	assert.Equal(t, "co-1", h.reconciler.last.CompanyID)
	assert.Nil(t, h.reconciler.last.WeekStart)
	require.NotNil(t, h.reconciler.last.PaymentDate)
	assert.Equal(t, "2024-03-20", h.reconciler.last.PaymentDate.Format("2006-01-02"))
	require.NotNil(t, h.reconciler.last.YTDOverride)
	assert.True(t, decimal.RequireFromString("1200.50").Equal(*h.reconciler.last.YTDOverride))
}

func TestReconcile_MapeaErrores(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"sin viajes", domain.ErrNoTrips, http.StatusUnprocessableEntity, "NO_TRIPS"},
		{"ya emitida", domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{"empresa inexistente", domain.ErrCompanyNotFound, http.StatusNotFound, "COMPANY_NOT_FOUND"},
		{"voucher inexistente", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.reconciler.err = tc.err
			resp := h.do(t, jsonRequest(http.MethodPost, "/api/vouchers/v-1/reconcile",
				dto.ReconcileRequest{CompanyID: "co-1"}), pkgjwt.RoleAdmin)

			require.Equal(t, tc.status, resp.StatusCode)
			var out dto.ErrorResponse
			decode(t, resp, &out)
			assert.Equal(t, tc.code, out.Code)
		})
	}
}

func TestReconcile_FechaInvalida_Retorna400(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, jsonRequest(http.MethodPost, "/api/vouchers/v-1/reconcile",
		dto.ReconcileRequest{CompanyID: "co-1", WeekStart: "04/03/2024"}), pkgjwt.RoleAdmin)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, h.reconciler.last.CompanyID, "no debe llamarse al conciliador")
}

func TestPaymentReports_DescargaPDF(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, httptest.NewRequest(http.MethodGet, "/api/payment-reports/rep-1/pdf", nil), pkgjwt.RoleOperator)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "liquidacion-CAR-2024-001.pdf")
}

func TestPaymentReports_Inexistente_Retorna404(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, httptest.NewRequest(http.MethodGet, "/api/payment-reports/nope/xlsx", nil), pkgjwt.RoleOperator)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMetrics_Publico(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil), "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "fletes_up 1")
}
