package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Fletes-api/internal/application/dto"
	"github.com/jhoicas/Fletes-api/internal/domain"
)

// errorStatus traduce errores de dominio a (status HTTP, código).
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnsupportedDocument):
		return fiber.StatusUnsupportedMediaType, "UNSUPPORTED_DOCUMENT"
	case errors.Is(err, domain.ErrNoRowsMatched):
		return fiber.StatusUnprocessableEntity, "NO_ROWS_MATCHED"
	case errors.Is(err, domain.ErrNoTrips):
		return fiber.StatusUnprocessableEntity, "NO_TRIPS"
	case errors.Is(err, domain.ErrCompanyNotFound):
		return fiber.StatusNotFound, "COMPANY_NOT_FOUND"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

func respondError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

// pageParams lee limit/offset de la query con límites 1..100 y offset >= 0.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", 20)
	offset = c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
