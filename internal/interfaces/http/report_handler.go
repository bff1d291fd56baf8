package http

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/reports"
)

// ReportHandler maneja la exportación de reportes CSV y PDF (protegido).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// MovementsCSV godoc
// @Summary      Exportar historial de movimientos a CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Param        from  query  string  false  "fecha inicial YYYY-MM-DD"
// @Param        to    query  string  false  "fecha final YYYY-MM-DD"
// @Success      200  {string}  string
// @Router       /api/reports/movements.csv [get]
func (h *ReportHandler) MovementsCSV(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "fechas inválidas, formato YYYY-MM-DD"})
	}
	var buf bytes.Buffer
	if err := h.uc.WriteMovementHistoryCSV(c.Context(), &buf, from, to); err != nil {
		return domainError(c, err)
	}
	return sendCSV(c, "movimientos", buf.Bytes())
}

// InventoryCSV godoc
// @Summary      Exportar inventario completo a CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/reports/inventory.csv [get]
func (h *ReportHandler) InventoryCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.uc.WriteInventoryCSV(c.Context(), &buf); err != nil {
		return domainError(c, err)
	}
	return sendCSV(c, "inventario", buf.Bytes())
}

// CriticalCSV godoc
// @Summary      Exportar stock crítico a CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Router       /api/reports/critical.csv [get]
func (h *ReportHandler) CriticalCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.uc.WriteCriticalStockCSV(c.Context(), &buf); err != nil {
		return domainError(c, err)
	}
	return sendCSV(c, "stock_critico", buf.Bytes())
}

// InventoryPDF godoc
// @Summary      Exportar inventario completo a PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {string}  string
// @Router       /api/reports/inventory.pdf [get]
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	doc, err := h.uc.InventoryPDF(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	filename := fmt.Sprintf("inventario_%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(doc)
}

func sendCSV(c *fiber.Ctx, name string, data []byte) error {
	filename := fmt.Sprintf("%s_%s.csv", name, time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
