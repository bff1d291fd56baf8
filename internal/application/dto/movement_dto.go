package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalRequest body para POST /api/movements/withdrawals.
// Crea una solicitud de retiro en estado PENDING; el stock no se toca hasta la aprobación.
type WithdrawalRequest struct {
	MaterialID string          `json:"material_id" validate:"required,uuid4"`
	Quantity   decimal.Decimal `json:"quantity" validate:"required"`
	Note       string          `json:"note,omitempty" validate:"omitempty,max=500"`
}

// DirectMovementRequest body para POST /api/movements (solo admin).
// Entra directo al procedimiento atómico con estado APPROVED y aprobador = actor.
type DirectMovementRequest struct {
	MaterialID string          `json:"material_id" validate:"required,uuid4"`
	Type       string          `json:"type" validate:"required,oneof=IN ADJUSTMENT"`
	Quantity   decimal.Decimal `json:"quantity" validate:"required"`
	Note       string          `json:"note,omitempty" validate:"omitempty,max=500"`
}

// DecisionRequest body para PATCH /api/movements/:id/decision.
type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
}

// SignatureRequest body para PATCH /api/movements/:id/signature.
// La firma viaja como data-URL base64 (imagen del pad de firma).
type SignatureRequest struct {
	Signature string `json:"signature" validate:"required,startswith=data:image/"`
}

// MovementResponse representación HTTP de un movimiento del libro.
type MovementResponse struct {
	ID             string          `json:"id"`
	MaterialID     string          `json:"material_id"`
	UserID         string          `json:"user_id"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	Note           string          `json:"note,omitempty"`
	Signed         bool            `json:"signed"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	ApprovedBy     string          `json:"approved_by,omitempty"`
	ApprovedAt     *time.Time      `json:"approved_at,omitempty"`
}

// MovementListRequest filtros para GET /api/movements.
type MovementListRequest struct {
	PageRequest
	Status     string `query:"status" validate:"omitempty,oneof=PENDING APPROVED REJECTED"`
	MaterialID string `query:"material_id" validate:"omitempty,uuid4"`
}
