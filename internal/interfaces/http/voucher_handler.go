package http

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Fletes-api/internal/application/dto"
	"github.com/jhoicas/Fletes-api/internal/application/usecase"
	"github.com/jhoicas/Fletes-api/internal/domain"
)

// VoucherHandler carga, vista previa, consultas y conciliación de vouchers.
type VoucherHandler struct {
	uc      *usecase.VoucherUseCase
	payment *usecase.PaymentUseCase
}

// NewVoucherHandler construye el handler.
func NewVoucherHandler(uc *usecase.VoucherUseCase, payment *usecase.PaymentUseCase) *VoucherHandler {
	return &VoucherHandler{uc: uc, payment: payment}
}

// Preview godoc
// @Summary      Vista previa de extracción (no persiste)
// @Tags         vouchers
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Voucher (PDF, xlsx o texto exportado)"
// @Success      200   {object}  dto.ExtractionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      415   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/vouchers/preview [post]
func (h *VoucherHandler) Preview(c *fiber.Ctx) error {
	name, data, err := readUpload(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Preview(c.UserContext(), name, data)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar voucher
// @Description  Extrae, valida, atribuye a empresas y guarda los viajes en una sola transacción.
// @Tags         vouchers
// @Accept       multipart/form-data
// @Produce      json
// @Param        file       formData  file    true   "Voucher (PDF, xlsx o texto exportado)"
// @Param        companies  formData  string  false  "Identificadores permitidos separados por coma"
// @Success      201        {object}  dto.ImportResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      422        {object}  dto.ImportErrorResponse
// @Router       /api/vouchers [post]
func (h *VoucherHandler) Import(c *fiber.Ctx) error {
	name, data, err := readUpload(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Import(c.UserContext(), name, data, c.FormValue("companies"), GetUserID(c))
	if err != nil {
		status, code := errorStatus(err)
		resp := dto.ImportErrorResponse{Code: code, Message: err.Error()}
		if out != nil {
			resp.Voucher = &out.Voucher
		}
		return c.Status(status).JSON(resp)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar vouchers
// @Tags         vouchers
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.VoucherListResponse
// @Router       /api/vouchers [get]
func (h *VoucherHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener voucher
// @Tags         vouchers
// @Produce      json
// @Param        id   path  string  true  "ID del voucher"
// @Success      200  {object}  dto.VoucherResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vouchers/{id} [get]
func (h *VoucherHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Errors godoc
// @Summary      Registro de errores de validación
// @Tags         vouchers
// @Produce      json
// @Param        id   path  string  true  "ID del voucher"
// @Success      200  {array}   dto.ValidationErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vouchers/{id}/errors [get]
func (h *VoucherHandler) Errors(c *fiber.Ctx) error {
	out, err := h.uc.Errors(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ErrorsCSV godoc
// @Summary      Registro de errores en CSV
// @Tags         vouchers
// @Produce      text/csv
// @Param        id   path  string  true  "ID del voucher"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vouchers/{id}/errors.csv [get]
func (h *VoucherHandler) ErrorsCSV(c *fiber.Ctx) error {
	b, name, err := h.uc.ErrorsCSV(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, "text/csv; charset=utf-8", name, b)
}

// Summary godoc
// @Summary      Totales de viajes por empresa
// @Tags         vouchers
// @Produce      json
// @Param        id   path  string  true  "ID del voucher"
// @Success      200  {object}  dto.VoucherSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vouchers/{id}/summary [get]
func (h *VoucherHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Conciliar pago de una empresa
// @Description  Agrega los viajes de la empresa en el voucher, aplica la deducción de capital y asigna el número de pago.
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del voucher"
// @Param        body  body  dto.ReconcileRequest  true  "Empresa y fechas opcionales"
// @Success      201   {object}  dto.PaymentReportResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/vouchers/{id}/reconcile [post]
func (h *VoucherHandler) Reconcile(c *fiber.Ctx) error {
	var in dto.ReconcileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CompanyID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "company_id es requerido"})
	}
	out, err := h.payment.Reconcile(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PaymentReports godoc
// @Summary      Liquidaciones emitidas para el voucher
// @Tags         vouchers
// @Produce      json
// @Param        id   path  string  true  "ID del voucher"
// @Success      200  {array}  dto.PaymentReportResponse
// @Router       /api/vouchers/{id}/payment-reports [get]
func (h *VoucherHandler) PaymentReports(c *fiber.Ctx) error {
	out, err := h.payment.ListByVoucher(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// readUpload lee el archivo del campo multipart "file".
func readUpload(c *fiber.Ctx) (string, []byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("%w: campo file requerido", domain.ErrInvalidInput)
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, fmt.Errorf("abrir archivo: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, fmt.Errorf("leer archivo: %w", err)
	}
	return fh.Filename, data, nil
}
