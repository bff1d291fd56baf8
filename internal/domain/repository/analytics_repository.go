package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MovementTrendPoint totales diarios de entradas y salidas aprobadas.
type MovementTrendPoint struct {
	Day      time.Time
	Inbound  decimal.Decimal
	Outbound decimal.Decimal
}

// TopMaterialResult material con mayor volumen movido en el período.
type TopMaterialResult struct {
	MaterialID string
	Code       string
	Name       string
	Unit       string
	TotalMoved decimal.Decimal // suma de |cantidad| de movimientos aprobados
}

// StockSummaryResult métricas globales del inventario para el dashboard.
type StockSummaryResult struct {
	TotalMaterials  int
	TotalQuantity   decimal.Decimal
	CriticalCount   int // materiales en o bajo el mínimo
	PendingRequests int // solicitudes de retiro esperando decisión
}

// MovementReportRow fila del reporte de historial de movimientos (con joins a
// material y usuarios resueltos en SQL).
type MovementReportRow struct {
	CreatedAt      time.Time
	MaterialCode   string
	MaterialName   string
	Unit           string
	Type           string
	Quantity       decimal.Decimal
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	Status         string
	RequestedBy    string // nombre del solicitante
	ApprovedBy     string // nombre del aprobador; vacío si pendiente
	Note           string
}

// InventoryReportRow fila del reporte de inventario completo / stock crítico.
type InventoryReportRow struct {
	Code            string
	Name            string
	Category        string
	Unit            string
	Location        string
	MinQuantity     decimal.Decimal
	CurrentQuantity decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para el dashboard y los reportes.
// No muta stock ni movimientos; agrega sobre movimientos APPROVED.
type AnalyticsRepository interface {
	GetStockSummary(ctx context.Context) (*StockSummaryResult, error)
	GetMovementTrend(ctx context.Context, from, to time.Time) ([]MovementTrendPoint, error)
	GetTopMovingMaterials(ctx context.Context, from, to time.Time, limit int) ([]TopMaterialResult, error)
	// ListMovementReport historial con joins, más reciente primero, rango opcional.
	ListMovementReport(ctx context.Context, from, to *time.Time) ([]MovementReportRow, error)
	// ListInventoryReport inventario ordenado por código; onlyCritical filtra
	// materiales en o bajo el mínimo.
	ListInventoryReport(ctx context.Context, onlyCritical bool) ([]InventoryReportRow, error)
}
