package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest body para POST /api/materials.
// InitialQuantity es el stock de apertura; queda registrado como movimiento IN inicial.
type CreateMaterialRequest struct {
	Code            string          `json:"code" validate:"required,max=50"`
	Name            string          `json:"name" validate:"required,max=200"`
	Description     string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	Category        string          `json:"category,omitempty" validate:"omitempty,max=100"`
	Unit            string          `json:"unit" validate:"required,max=20"`
	MinQuantity     decimal.Decimal `json:"min_quantity"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	Location        string          `json:"location,omitempty" validate:"omitempty,max=100"`
	PhotoURL        string          `json:"photo_url,omitempty" validate:"omitempty,max=500"`
}

// UpdateMaterialRequest body para PUT /api/materials/:id.
// No incluye cantidad actual: esa solo cambia vía movimientos.
type UpdateMaterialRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	Category    string          `json:"category,omitempty" validate:"omitempty,max=100"`
	Unit        string          `json:"unit" validate:"required,max=20"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
	Location    string          `json:"location,omitempty" validate:"omitempty,max=100"`
	PhotoURL    string          `json:"photo_url,omitempty" validate:"omitempty,max=500"`
}

// MaterialResponse representación HTTP de un material.
type MaterialResponse struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Category        string          `json:"category,omitempty"`
	Unit            string          `json:"unit"`
	MinQuantity     decimal.Decimal `json:"min_quantity"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	Location        string          `json:"location,omitempty"`
	PhotoURL        string          `json:"photo_url,omitempty"`
	Critical        bool            `json:"critical"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// MaterialListRequest filtros para GET /api/materials.
type MaterialListRequest struct {
	PageRequest
	Search string `query:"search" validate:"omitempty,max=100"`
}
