package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nutrichain/almacen-service/internal/application/dto"
	"github.com/nutrichain/almacen-service/internal/application/stocks"
)

// StockHandler maneja las consultas de stock (solo lectura).
type StockHandler struct {
	uc *stocks.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stocks.StockQueryUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List godoc
// @Summary      Listar posiciones de stock
// @Tags         stock
// @Produce      json
// @Param        almacen_id   query  string  false  "Filtrar por almacén"
// @Param        producto_id  query  string  false  "Filtrar por producto"
// @Param        con_stock    query  bool    false  "true = solo con disponible > 0, false = solo agotados"
// @Param        limit        query  int     false  "Límite"  default(100)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var q dto.StockListQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Stock de un producto en un almacén
// @Tags         stock
// @Produce      json
// @Param        producto_id  path  string  true  "ID del producto"
// @Param        almacen_id   path  string  true  "ID del almacén"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{producto_id}/{almacen_id} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Params("producto_id"), c.Params("almacen_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Availability godoc
// @Summary      Consultar disponibilidad de un producto
// @Description  Valida el producto contra el catálogo y responde si el stock
//
//	disponible (global o de un almacén) cubre la cantidad requerida.
//
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AvailabilityRequest  true  "producto_id, cantidad_requerida, almacen_id (opcional)"
// @Success      200  {object}  dto.AvailabilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock/disponibilidad [post]
func (h *StockHandler) Availability(c *fiber.Ctx) error {
	var in dto.AvailabilityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Availability(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Consolidated godoc
// @Summary      Stock consolidado por producto
// @Tags         stock
// @Produce      json
// @Param        almacen_id  query  string  false  "Limitar a un almacén"
// @Success      200  {array}  dto.ConsolidatedStockResponse
// @Router       /api/stock/consolidado [get]
func (h *StockHandler) Consolidated(c *fiber.Ctx) error {
	out, err := h.uc.Consolidated(c.Query("almacen_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Posiciones en o bajo el mínimo
// @Tags         stock
// @Produce      json
// @Param        almacen_id  query  string  false  "Limitar a un almacén"
// @Success      200  {array}  dto.LowStockItem
// @Router       /api/stock/bajo-minimo [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.Query("almacen_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
