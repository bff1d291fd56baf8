package dto

import "github.com/shopspring/decimal"

// CriticalMaterialDTO material en o bajo el stock mínimo, para el widget del dashboard.
type CriticalMaterialDTO struct {
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	CurrentQuantity decimal.Decimal `json:"current_quantity"`
	MinQuantity     decimal.Decimal `json:"min_quantity"`
	Deficit         decimal.Decimal `json:"deficit"` // min - actual
}

// TrendPointDTO punto diario del gráfico de movimientos (últimos 30 días).
type TrendPointDTO struct {
	Day      string          `json:"day"` // YYYY-MM-DD
	Inbound  decimal.Decimal `json:"inbound"`
	Outbound decimal.Decimal `json:"outbound"`
}

// TopMaterialDTO material con mayor volumen movido en el período.
type TopMaterialDTO struct {
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	TotalMoved decimal.Decimal `json:"total_moved"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalMaterials  int                   `json:"total_materials"`
	TotalQuantity   decimal.Decimal       `json:"total_quantity"`
	CriticalCount   int                   `json:"critical_count"`
	PendingRequests int                   `json:"pending_requests"`
	Critical        []CriticalMaterialDTO `json:"critical"`
	Trend           []TrendPointDTO       `json:"trend"`
	TopMoving       []TopMaterialDTO      `json:"top_moving"`
}
