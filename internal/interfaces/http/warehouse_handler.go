package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nutrichain/almacen-service/internal/application/almacenes"
	"github.com/nutrichain/almacen-service/internal/application/dto"
)

// WarehouseHandler maneja las peticiones HTTP para almacenes.
type WarehouseHandler struct {
	uc *almacenes.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *almacenes.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear almacén
// @Tags         almacenes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "codigo, nombre, ubicacion, tipo"
// @Success      201   {object}  dto.WarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/almacenes [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener almacén por ID
// @Tags         almacenes
// @Produce      json
// @Param        id   path  string  true  "ID del almacén"
// @Success      200  {object}  dto.WarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/almacenes/{id} [get]
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar almacenes
// @Tags         almacenes
// @Produce      json
// @Param        activo  query  bool    false  "Filtrar por estado"
// @Param        tipo    query  string  false  "Filtrar por tipo"
// @Param        limit   query  int     false  "Límite"  default(100)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.WarehouseListResponse
// @Router       /api/almacenes [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	var q dto.WarehouseListQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar almacén (parcial)
// @Tags         almacenes
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del almacén"
// @Param        body  body  dto.UpdateWarehouseRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.WarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/almacenes/{id} [put]
func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Activate godoc
// @Summary      Activar almacén
// @Tags         almacenes
// @Produce      json
// @Param        id   path  string  true  "ID del almacén"
// @Success      200  {object}  dto.WarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/almacenes/{id}/activar [post]
func (h *WarehouseHandler) Activate(c *fiber.Ctx) error {
	out, err := h.uc.SetActive(c.Params("id"), true)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar almacén
// @Description  El almacén deja de aceptar movimientos pero conserva su stock e historial.
// @Tags         almacenes
// @Produce      json
// @Param        id   path  string  true  "ID del almacén"
// @Success      200  {object}  dto.WarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/almacenes/{id}/desactivar [post]
func (h *WarehouseHandler) Deactivate(c *fiber.Ctx) error {
	out, err := h.uc.SetActive(c.Params("id"), false)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar almacén
// @Description  Solo se permite si el almacén no tiene stock registrado.
// @Tags         almacenes
// @Param        id   path  string  true  "ID del almacén"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/almacenes/{id} [delete]
func (h *WarehouseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
