package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Fletes-api/internal/application/usecase"
)

// PaymentReportHandler consulta y descarga de liquidaciones.
type PaymentReportHandler struct {
	uc *usecase.PaymentUseCase
}

// NewPaymentReportHandler construye el handler.
func NewPaymentReportHandler(uc *usecase.PaymentUseCase) *PaymentReportHandler {
	return &PaymentReportHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obtener liquidación
// @Tags         payment-reports
// @Produce      json
// @Param        id   path  string  true  "ID de la liquidación"
// @Success      200  {object}  dto.PaymentReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payment-reports/{id} [get]
func (h *PaymentReportHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar liquidación en PDF
// @Tags         payment-reports
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la liquidación"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payment-reports/{id}/pdf [get]
func (h *PaymentReportHandler) PDF(c *fiber.Ctx) error {
	b, name, err := h.uc.DownloadPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, "application/pdf", name, b)
}

// XLSX godoc
// @Summary      Descargar liquidación en Excel
// @Tags         payment-reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  string  true  "ID de la liquidación"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payment-reports/{id}/xlsx [get]
func (h *PaymentReportHandler) XLSX(c *fiber.Ctx) error {
	b, name, err := h.uc.DownloadXLSX(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", name, b)
}

func sendFile(c *fiber.Ctx, contentType, name string, b []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(b)
}
