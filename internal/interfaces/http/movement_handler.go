package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/movement"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MovementHandler maneja las peticiones HTTP del libro de movimientos (protegido).
type MovementHandler struct {
	apply     *movement.ApplyUseCase
	request   *movement.RequestWithdrawalUseCase
	decide    *movement.DecideUseCase
	signature *movement.AttachSignatureUseCase
	queries   *movement.QueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(
	apply *movement.ApplyUseCase,
	request *movement.RequestWithdrawalUseCase,
	decide *movement.DecideUseCase,
	signature *movement.AttachSignatureUseCase,
	queries *movement.QueryUseCase,
) *MovementHandler {
	return &MovementHandler{
		apply:     apply,
		request:   request,
		decide:    decide,
		signature: signature,
		queries:   queries,
	}
}

// RequestWithdrawal godoc
// @Summary      Solicitar retiro de material
// @Description  Crea una solicitud OUT en estado PENDING; el stock no cambia hasta la aprobación.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WithdrawalRequest  true  "material_id, quantity, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/withdrawals [post]
func (h *MovementHandler) RequestWithdrawal(c *fiber.Ctx) error {
	var in dto.WithdrawalRequest
	if !parseBody(c, &in) {
		return nil
	}
	mov, err := h.request.Request(c.Context(), movement.WithdrawalInput{
		MaterialID: in.MaterialID,
		UserID:     GetUserID(c),
		Quantity:   in.Quantity,
		Note:       in.Note,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movementToResponse(mov))
}

// CreateDirect godoc
// @Summary      Registrar entrada o ajuste directo (solo admin)
// @Description  El movimiento nace aprobado y el stock se actualiza en la misma transacción.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DirectMovementRequest  true  "material_id, type (IN|ADJUSTMENT), quantity, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) CreateDirect(c *fiber.Ctx) error {
	var in dto.DirectMovementRequest
	if !parseBody(c, &in) {
		return nil
	}
	mov, err := h.apply.ApplyDirect(c.Context(), movement.ApplyInput{
		MaterialID: in.MaterialID,
		UserID:     GetUserID(c),
		Type:       in.Type,
		Quantity:   in.Quantity,
		Note:       in.Note,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movementToResponse(mov))
}

// Decide godoc
// @Summary      Aprobar o rechazar una solicitud pendiente (solo admin)
// @Description  La aprobación descuenta stock en la misma transacción que resuelve la solicitud.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.DecisionRequest  true  "decision: approve | reject"
// @Success      200   {object}  dto.MovementResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/decision [patch]
func (h *MovementHandler) Decide(c *fiber.Ctx) error {
	var in dto.DecisionRequest
	if !parseBody(c, &in) {
		return nil
	}
	mov, err := h.decide.Decide(c.Context(), c.Params("id"), GetUserID(c), in.Decision)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(movementToResponse(mov))
}

// AttachSignature godoc
// @Summary      Adjuntar firma de retiro
// @Description  Solo el solicitante, solo sobre su retiro aprobado, una sola vez.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.SignatureRequest  true  "firma como data-URL de imagen"
// @Success      200   {object}  dto.MovementResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/signature [patch]
func (h *MovementHandler) AttachSignature(c *fiber.Ctx) error {
	var in dto.SignatureRequest
	if !parseBody(c, &in) {
		return nil
	}
	mov, err := h.signature.Attach(c.Context(), c.Params("id"), GetUserID(c), in.Signature)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(movementToResponse(mov))
}

// List godoc
// @Summary      Historial de movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "PENDING | APPROVED | REJECTED"
// @Param        material_id  query  string  false  "filtrar por material"
// @Param        from         query  string  false  "fecha inicial YYYY-MM-DD"
// @Param        to           query  string  false  "fecha final YYYY-MM-DD"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	if err := validate.Struct(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	in.DefaultPage()

	var (
		list []*entity.Movement
		err  error
	)
	switch {
	case in.Status != "":
		list, err = h.queries.ByStatus(in.Status, in.Limit, in.Offset)
	case in.MaterialID != "":
		list, err = h.queries.ByMaterial(in.MaterialID, in.Limit, in.Offset)
	default:
		from, to, perr := parseDateRange(c)
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "fechas inválidas, formato YYYY-MM-DD"})
		}
		list, err = h.queries.History(from, to, in.Limit, in.Offset)
	}
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(movementsToResponse(list))
}

// ListMine godoc
// @Summary      Movimientos solicitados por el usuario autenticado
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements/mine [get]
func (h *MovementHandler) ListMine(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	list, err := h.queries.ByUser(GetUserID(c), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(movementsToResponse(list))
}

// GetByID godoc
// @Summary      Detalle de un movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	mov, err := h.queries.Get(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(movementToResponse(mov))
}

// parseDateRange lee from/to (YYYY-MM-DD) de la query; to es inclusivo hasta fin de día.
func parseDateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, nil, err
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, nil
}

func movementToResponse(m *entity.Movement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:             m.ID,
		MaterialID:     m.MaterialID,
		UserID:         m.UserID,
		Type:           m.Type,
		Quantity:       m.Quantity,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Note:           m.Note,
		Signed:         m.IsSigned(),
		Status:         m.Status,
		CreatedAt:      m.CreatedAt,
		ApprovedBy:     m.ApprovedBy,
		ApprovedAt:     m.ApprovedAt,
	}
}

func movementsToResponse(list []*entity.Movement) []*dto.MovementResponse {
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, movementToResponse(m))
	}
	return out
}
