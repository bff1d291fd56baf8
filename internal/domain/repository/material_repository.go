package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MaterialRepository puerto de persistencia para materiales.
//
// UpdateQuantity es el único camino de escritura de CurrentQuantity y solo debe
// invocarse dentro de la transacción del procedimiento atómico (GetForUpdate antes).
// Update nunca toca la cantidad actual.
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	GetByCode(code string) (*entity.Material, error)
	// GetForUpdate obtiene el material bloqueando su fila (SELECT FOR UPDATE).
	// Punto de serialización por material del motor de movimientos.
	GetForUpdate(id string) (*entity.Material, error)
	// UpdateQuantity persiste la nueva cantidad congelada por la transición atómica.
	UpdateQuantity(id string, quantity decimal.Decimal) error
	// Update actualiza los datos descriptivos (sin CurrentQuantity).
	Update(material *entity.Material) error
	List(search string, limit, offset int) ([]*entity.Material, error)
	ListCritical(limit int) ([]*entity.Material, error)
	// Delete elimina el material; con historial de movimientos la FK lo impide
	// y se devuelve domain.ErrConflict.
	Delete(id string) error
}
