package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/bulkimport"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// MaterialHandler maneja las peticiones HTTP del catálogo de materiales (protegido).
type MaterialHandler struct {
	uc   *usecase.MaterialUseCase
	bulk *bulkimport.UseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase, bulk *bulkimport.UseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc, bulk: bulk}
}

// Create godoc
// @Summary      Crear material (solo admin)
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "datos del material"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Detalle de un material
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del material"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [get]
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar material (solo admin)
// @Description  No modifica la cantidad actual; el stock solo cambia vía movimientos.
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del material"
// @Param        body  body  dto.UpdateMaterialRequest  true  "datos del material"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [put]
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMaterialRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar materiales
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "buscar por código o nombre"
// @Param        limit   query  int     false  "máx resultados (def 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.MaterialResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	var in dto.MaterialListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	in.DefaultPage()
	out, err := h.uc.List(in.Search, in.Limit, in.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar material (solo admin)
// @Description  Falla con 409 si el material tiene movimientos en el libro.
// @Tags         materials
// @Security     Bearer
// @Param        id  path  string  true  "ID del material"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [delete]
func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BulkImport godoc
// @Summary      Carga masiva de stock (solo admin)
// @Description  Concilia el lote línea a línea: códigos existentes suman stock vía
//
//	movimiento IN, códigos nuevos crean el material con su stock inicial.
//	Las líneas inválidas se reportan sin abortar el lote.
//
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkImportRequest  true  "líneas del archivo"
// @Success      200   {object}  dto.BulkImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/materials/bulk [post]
func (h *MaterialHandler) BulkImport(c *fiber.Ctx) error {
	var in dto.BulkImportRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.bulk.Reconcile(c.Context(), GetUserID(c), in.Items)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
