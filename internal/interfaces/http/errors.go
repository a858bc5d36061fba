package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nutrichain/almacen-service/internal/application/dto"
	"github.com/nutrichain/almacen-service/internal/domain"
)

// respondError traduce errores de dominio a códigos estables y status HTTP.
// Los handlers delegan aquí para que la tabla status<->error viva en un solo lugar:
//
//	404  NOT_FOUND            recurso o producto inexistente
//	400  VALIDATION           entrada inválida
//	400  STOCK_EXISTS         ya hay stock inicial para producto+almacén
//	400  WAREHOUSE_INACTIVE   almacén inexistente o desactivado
//	409  DUPLICATE            referencia externa o código repetido
//	409  INSUFFICIENT_STOCK   saldo disponible insuficiente
//	409  WAREHOUSE_NOT_EMPTY  almacén con stock no se puede eliminar
//	409  CATALOG_UNAVAILABLE  catálogo inalcanzable (política fail-closed)
//	503  EXTERNAL_SERVICE     respuesta inesperada del colaborador externo
//	500  INTERNAL             cualquier otro error
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrStockAlreadyExists):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "STOCK_EXISTS", Message: err.Error()})
	case errors.Is(err, domain.ErrWarehouseInactive):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "WAREHOUSE_INACTIVE", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrWarehouseNotEmpty):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "WAREHOUSE_NOT_EMPTY", Message: err.Error()})
	case errors.Is(err, domain.ErrCatalogUnavailable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CATALOG_UNAVAILABLE", Message: err.Error()})
	case errors.Is(err, domain.ErrExternalService):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "EXTERNAL_SERVICE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
