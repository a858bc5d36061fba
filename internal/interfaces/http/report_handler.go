package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nutrichain/almacen-service/internal/application/dto"
	"github.com/nutrichain/almacen-service/internal/application/reportes"
)

// ReportHandler maneja los reportes agregados del ledger.
type ReportHandler struct {
	uc *reportes.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reportes.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Movements godoc
// @Summary      Reporte de movimientos
// @Tags         reportes
// @Produce      json
// @Param        fecha_inicio     query  string  true   "YYYY-MM-DD"
// @Param        fecha_fin        query  string  true   "YYYY-MM-DD"
// @Param        almacen_id       query  string  false  "Limitar a un almacén"
// @Param        tipo_movimiento  query  string  false  "entrada | salida | transferencia | ajuste"
// @Success      200  {object}  dto.MovementReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/movimientos [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	var q dto.MovementReportQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.uc.MovementStats(q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MovementsPDF godoc
// @Summary      Reporte de movimientos en PDF
// @Tags         reportes
// @Produce      application/pdf
// @Param        fecha_inicio     query  string  true   "YYYY-MM-DD"
// @Param        fecha_fin        query  string  true   "YYYY-MM-DD"
// @Param        almacen_id       query  string  false  "Limitar a un almacén"
// @Param        tipo_movimiento  query  string  false  "entrada | salida | transferencia | ajuste"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/movimientos/pdf [get]
func (h *ReportHandler) MovementsPDF(c *fiber.Ctx) error {
	var q dto.MovementReportQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	pdfBytes, err := h.uc.MovementReportPDF(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("movimientos_%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
