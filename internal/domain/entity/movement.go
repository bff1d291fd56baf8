package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida (retiro)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste de inventario (aditivo)
)

// Estados del ciclo de vida de un movimiento.
// PENDING -> APPROVED | REJECTED; los estados finales no admiten más transiciones,
// salvo la firma de retiro (una sola vez, solo OUT aprobado).
const (
	MovementStatusPending  = "PENDING"
	MovementStatusApproved = "APPROVED"
	MovementStatusRejected = "REJECTED"
)

// Movement es un registro del libro de movimientos (append-only).
// QuantityBefore/QuantityAfter se congelan en el instante de la transición atómica
// que actualiza el stock del material; en movimientos pendientes valen cero.
type Movement struct {
	ID                  string
	MaterialID          string
	UserID              string          // solicitante
	Type                string          // IN, OUT, ADJUSTMENT
	Quantity            decimal.Decimal // siempre > 0; el signo lo da el tipo
	QuantityBefore      decimal.Decimal
	QuantityAfter       decimal.Decimal
	Note                string
	WithdrawalSignature string // data-URL de la firma; solo OUT aprobado, una sola vez
	Status              string // PENDING, APPROVED, REJECTED
	CreatedAt           time.Time
	ApprovedBy          string // aprobador; vacío mientras está pendiente
	ApprovedAt          *time.Time
}

// ValidType indica si t es un tipo de movimiento conocido.
func ValidType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT:
		return true
	}
	return false
}

// SignedDelta devuelve la cantidad con el signo del tipo: IN/ADJUSTMENT suman,
// OUT resta. El ajuste es aditivo; las bajas de stock van por OUT.
func (m *Movement) SignedDelta() decimal.Decimal {
	if m.Type == MovementTypeOUT {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// IsSigned indica si el movimiento ya tiene firma de retiro adjunta.
func (m *Movement) IsSigned() bool {
	return m.WithdrawalSignature != ""
}
