package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MovementRepository puerto del libro de movimientos (append-only).
//
// Los registros son inmutables una vez creados, salvo la única transición
// permitida PENDING -> APPROVED|REJECTED (UpdateDecision) y la firma de retiro
// una sola vez (AttachSignature). No existe Update genérico a propósito.
type MovementRepository interface {
	// Create persiste un movimiento nuevo; asigna ID si viene vacío.
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// GetForUpdate obtiene el movimiento bloqueando su fila, para decidir
	// (aprobar/rechazar) o firmar sin carreras de doble transición.
	GetForUpdate(id string) (*entity.Movement, error)
	// UpdateDecision aplica la transición de estado congelando before/after.
	// Para rechazos before/after van en cero y el stock no se toca.
	UpdateDecision(id, status, approvedBy string, approvedAt time.Time, before, after decimal.Decimal) error
	// AttachSignature adjunta la firma de retiro. El caller valida estado y unicidad.
	AttachSignature(id, signature string) error
	// ListByStatus lista por estado en orden de creación ascendente
	// (cola de pendientes: el más antiguo primero).
	ListByStatus(status string, limit, offset int) ([]*entity.Movement, error)
	// ListByMaterial historial de un material, más reciente primero.
	ListByMaterial(materialID string, limit, offset int) ([]*entity.Movement, error)
	// ListByUser solicitudes de un usuario, más reciente primero.
	ListByUser(userID string, limit, offset int) ([]*entity.Movement, error)
	// List historial global con rango de fechas opcional, más reciente primero.
	List(from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
}
