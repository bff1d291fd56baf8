package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa un ítem del almacén identificado por su código de negocio.
// CurrentQuantity se muta únicamente a través del procedimiento atómico de movimientos;
// el CRUD de materiales nunca la toca una vez que existe historial.
type Material struct {
	ID              string
	Code            string // código único y estable (clave de negocio)
	Name            string
	Description     string
	Category        string
	Unit            string // unidad de medida: UN, KG, L, CAJA...
	MinQuantity     decimal.Decimal
	CurrentQuantity decimal.Decimal // invariante: >= 0
	Location        string
	PhotoURL        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsCritical indica si el material está en o por debajo del stock mínimo.
func (m *Material) IsCritical() bool {
	return m.CurrentQuantity.LessThanOrEqual(m.MinQuantity)
}
