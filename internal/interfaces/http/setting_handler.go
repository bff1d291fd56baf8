package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// SettingHandler maneja los ajustes de la aplicación (logo de la empresa).
type SettingHandler struct {
	uc *usecase.SettingUseCase
}

// NewSettingHandler construye el handler.
func NewSettingHandler(uc *usecase.SettingUseCase) *SettingHandler {
	return &SettingHandler{uc: uc}
}

// GetLogo godoc
// @Summary      Obtener el logo configurado
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LogoResponse
// @Router       /api/settings/logo [get]
func (h *SettingHandler) GetLogo(c *fiber.Ctx) error {
	logo, err := h.uc.GetLogo()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.LogoResponse{Logo: logo})
}

// SetLogo godoc
// @Summary      Configurar el logo (solo admin)
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LogoRequest  true  "logo como data-URL de imagen"
// @Success      200   {object}  dto.LogoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings/logo [put]
func (h *SettingHandler) SetLogo(c *fiber.Ctx) error {
	var in dto.LogoRequest
	if !parseBody(c, &in) {
		return nil
	}
	if err := h.uc.SetLogo(in.Logo); err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.LogoResponse{Logo: in.Logo})
}
