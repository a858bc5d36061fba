package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nutrichain/almacen-service/internal/application/dto"
	"github.com/nutrichain/almacen-service/internal/application/movimientos"
)

// MovementHandler maneja las peticiones HTTP del ledger de movimientos.
type MovementHandler struct {
	register *movimientos.RegisterMovementUseCase
	query    *movimientos.MovementQueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(register *movimientos.RegisterMovementUseCase, query *movimientos.MovementQueryUseCase) *MovementHandler {
	return &MovementHandler{register: register, query: query}
}

// Entrada godoc
// @Summary      Registrar entrada de mercancía
// @Description  Acepta un movimiento individual o un lote (campo "movimientos").
//
//	La variante se decide una sola vez: si "movimientos" viene no vacío
//	es un lote atómico, si no se usan los campos planos del body.
//
// @Tags         movimientos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EntradaEnvelope  true  "producto_id, almacen_destino_id, cantidad, costo_unitario (opcional), motivo"
// @Success      201   {object}  dto.MovementWithStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/movimientos/entrada [post]
func (h *MovementHandler) Entrada(c *fiber.Ctx) error {
	var in dto.EntradaEnvelope
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.IsBatch() {
		out, err := h.register.RecordEntradaBatch(c.Context(), in.Movimientos)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	out, err := h.register.RecordEntrada(c.Context(), in.EntradaRequest)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Salida godoc
// @Summary      Registrar salida de mercancía
// @Description  Acepta un movimiento individual o un lote (campo "movimientos").
// @Tags         movimientos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SalidaEnvelope  true  "producto_id, almacen_origen_id, cantidad, motivo"
// @Success      201   {object}  dto.MovementWithStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/movimientos/salida [post]
func (h *MovementHandler) Salida(c *fiber.Ctx) error {
	var in dto.SalidaEnvelope
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.IsBatch() {
		out, err := h.register.RecordSalidaBatch(c.Context(), in.Movimientos)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	out, err := h.register.RecordSalida(c.Context(), in.SalidaRequest)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Transferencia godoc
// @Summary      Transferir stock entre almacenes
// @Description  Genera un único movimiento con origen y destino; descuenta del
//
//	origen y acredita al destino en la misma transacción.
//
// @Tags         movimientos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferenciaRequest  true  "producto_id, almacen_origen_id, almacen_destino_id, cantidad, motivo"
// @Success      201   {object}  dto.TransferenciaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/movimientos/transferencia [post]
func (h *MovementHandler) Transferencia(c *fiber.Ctx) error {
	var in dto.TransferenciaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.register.RecordTransferencia(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AjusteInicial godoc
// @Summary      Crear stock inicial (ajuste auditado)
// @Description  Única forma de crear una posición de stock. Falla si ya existe
//
//	stock para el producto en el almacén.
//
// @Tags         movimientos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AjusteInicialRequest  true  "producto_id, almacen_id, cantidad_inicial"
// @Success      201   {object}  dto.MovementWithStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/movimientos/ajuste-inicial [post]
func (h *MovementHandler) AjusteInicial(c *fiber.Ctx) error {
	var in dto.AjusteInicialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.register.RecordAjusteInicial(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movimientos
// @Produce      json
// @Param        producto_id      query  string  false  "Filtrar por producto"
// @Param        almacen_id       query  string  false  "Filtrar por almacén (origen o destino)"
// @Param        tipo_movimiento  query  string  false  "entrada | salida | transferencia | ajuste"
// @Param        fecha_inicio     query  string  false  "YYYY-MM-DD"
// @Param        fecha_fin        query  string  false  "YYYY-MM-DD"
// @Param        limit            query  int     false  "Límite"  default(100)
// @Param        offset           query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movimientos [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var q dto.MovementListQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.query.List(q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movimientos
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimientos/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.query.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
