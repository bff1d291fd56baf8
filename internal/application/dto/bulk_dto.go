package dto

import "github.com/shopspring/decimal"

// BulkLine una línea del archivo de carga masiva de stock.
// Los campos obligatorios se validan por línea; una línea mala no aborta el lote.
type BulkLine struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	MinQuantity decimal.Decimal `json:"min_quantity,omitempty"`
	Location    string          `json:"location,omitempty"`
}

// BulkImportRequest body para POST /api/materials/bulk.
type BulkImportRequest struct {
	Items []BulkLine `json:"items" validate:"required,min=1,max=1000"`
}

// BulkLineError error de una línea concreta del lote.
type BulkLineError struct {
	Line    int    `json:"line"` // índice 1-based dentro del lote
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// BulkImportResponse resumen del lote procesado.
type BulkImportResponse struct {
	CreatedCount int             `json:"created_count"`
	UpdatedCount int             `json:"updated_count"`
	Errors       []BulkLineError `json:"errors"`
}
