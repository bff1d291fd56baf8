package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para el dashboard y los
// reportes. Trabaja directo sobre el pool; nunca participa en transacciones.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetStockSummary métricas globales del inventario en una sola pasada.
func (r *AnalyticsRepo) GetStockSummary(ctx context.Context) (*repository.StockSummaryResult, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM materials),
			(SELECT COALESCE(SUM(current_quantity), 0) FROM materials),
			(SELECT COUNT(*) FROM materials WHERE current_quantity <= min_quantity),
			(SELECT COUNT(*) FROM movements WHERE status = $1)`
	var s repository.StockSummaryResult
	err := r.q.QueryRow(ctx, query, entity.MovementStatusPending).Scan(
		&s.TotalMaterials, &s.TotalQuantity, &s.CriticalCount, &s.PendingRequests,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock summary: %w", err)
	}
	return &s, nil
}

// GetMovementTrend totales diarios de entradas y salidas aprobadas en el rango.
func (r *AnalyticsRepo) GetMovementTrend(ctx context.Context, from, to time.Time) ([]repository.MovementTrendPoint, error) {
	query := `
		SELECT
			date_trunc('day', created_at) AS day,
			COALESCE(SUM(quantity) FILTER (WHERE type IN ($1, $2)), 0) AS inbound,
			COALESCE(SUM(quantity) FILTER (WHERE type = $3), 0) AS outbound
		FROM movements
		WHERE status = $4 AND created_at >= $5 AND created_at <= $6
		GROUP BY day
		ORDER BY day ASC`
	rows, err := r.q.Query(ctx, query,
		entity.MovementTypeIN, entity.MovementTypeADJUSTMENT, entity.MovementTypeOUT,
		entity.MovementStatusApproved, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("get movement trend: %w", err)
	}
	defer rows.Close()

	var points []repository.MovementTrendPoint
	for rows.Next() {
		var p repository.MovementTrendPoint
		if err := rows.Scan(&p.Day, &p.Inbound, &p.Outbound); err != nil {
			return nil, fmt.Errorf("scan trend point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// GetTopMovingMaterials materiales con mayor volumen movido (aprobado) en el rango.
func (r *AnalyticsRepo) GetTopMovingMaterials(ctx context.Context, from, to time.Time, limit int) ([]repository.TopMaterialResult, error) {
	query := `
		SELECT m.material_id, mat.code, mat.name, mat.unit, SUM(m.quantity) AS total_moved
		FROM movements m
		JOIN materials mat ON mat.id = m.material_id
		WHERE m.status = $1 AND m.created_at >= $2 AND m.created_at <= $3
		GROUP BY m.material_id, mat.code, mat.name, mat.unit
		ORDER BY total_moved DESC
		LIMIT $4`
	rows, err := r.q.Query(ctx, query, entity.MovementStatusApproved, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("get top moving materials: %w", err)
	}
	defer rows.Close()

	var results []repository.TopMaterialResult
	for rows.Next() {
		var t repository.TopMaterialResult
		if err := rows.Scan(&t.MaterialID, &t.Code, &t.Name, &t.Unit, &t.TotalMoved); err != nil {
			return nil, fmt.Errorf("scan top material: %w", err)
		}
		results = append(results, t)
	}
	return results, rows.Err()
}

// ListMovementReport historial con material y usuarios resueltos, para exportar.
func (r *AnalyticsRepo) ListMovementReport(ctx context.Context, from, to *time.Time) ([]repository.MovementReportRow, error) {
	query := `
		SELECT m.created_at, mat.code, mat.name, mat.unit, m.type, m.quantity,
		       m.quantity_before, m.quantity_after, m.status,
		       u.name, COALESCE(a.name, ''), m.note
		FROM movements m
		JOIN materials mat ON mat.id = m.material_id
		JOIN users u ON u.id = m.user_id
		LEFT JOIN users a ON a.id = NULLIF(m.approved_by, '')::uuid
		WHERE 1=1`
	args := []any{}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND m.created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND m.created_at <= $%d", len(args))
	}
	query += " ORDER BY m.created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movement report: %w", err)
	}
	defer rows.Close()

	var report []repository.MovementReportRow
	for rows.Next() {
		var row repository.MovementReportRow
		if err := rows.Scan(
			&row.CreatedAt, &row.MaterialCode, &row.MaterialName, &row.Unit,
			&row.Type, &row.Quantity, &row.QuantityBefore, &row.QuantityAfter,
			&row.Status, &row.RequestedBy, &row.ApprovedBy, &row.Note,
		); err != nil {
			return nil, fmt.Errorf("scan movement report row: %w", err)
		}
		report = append(report, row)
	}
	return report, rows.Err()
}

// ListInventoryReport inventario ordenado por código; onlyCritical limita a
// materiales en o bajo el mínimo.
func (r *AnalyticsRepo) ListInventoryReport(ctx context.Context, onlyCritical bool) ([]repository.InventoryReportRow, error) {
	query := `
		SELECT code, name, category, unit, location, min_quantity, current_quantity
		FROM materials`
	if onlyCritical {
		query += ` WHERE current_quantity <= min_quantity`
	}
	query += ` ORDER BY code ASC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list inventory report: %w", err)
	}
	defer rows.Close()

	var report []repository.InventoryReportRow
	for rows.Next() {
		var row repository.InventoryReportRow
		if err := rows.Scan(
			&row.Code, &row.Name, &row.Category, &row.Unit, &row.Location,
			&row.MinQuantity, &row.CurrentQuantity,
		); err != nil {
			return nil, fmt.Errorf("scan inventory report row: %w", err)
		}
		report = append(report, row)
	}
	return report, rows.Err()
}
