// Package analytics contiene los casos de uso de solo lectura para el
// dashboard del almacén.
package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const (
	dashboardTopCritical = 5  // materiales críticos en el widget
	dashboardTopMoving   = 5  // materiales con más volumen movido
	dashboardTrendDays   = 30 // ventana del gráfico de tendencia
)

// DashboardUseCase arma el resumen del dashboard: métricas globales, materiales
// críticos, tendencia de movimientos de los últimos 30 días y top de materiales
// con más volumen.
//
// Fuente de datos: AnalyticsRepository y MaterialRepository (consultas read-only);
// nunca toca stock ni libro.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	materialRepo  repository.MaterialRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	materialRepo repository.MaterialRepository,
) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, materialRepo: materialRepo}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro llamadas en paralelo:
//  1. GetStockSummary            → métricas globales
//  2. ListCritical(top 5)        → widget de stock crítico
//  3. GetMovementTrend(30 días)  → gráfico entradas/salidas
//  4. GetTopMovingMaterials      → top 5 por volumen movido
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()
	trendStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -dashboardTrendDays+1)
	trendEnd := now

	type summaryResult struct {
		summary *repository.StockSummaryResult
		err     error
	}
	type criticalResult struct {
		items []dto.CriticalMaterialDTO
		err   error
	}
	type trendResult struct {
		points []repository.MovementTrendPoint
		err    error
	}
	type topResult struct {
		items []repository.TopMaterialResult
		err   error
	}

	summaryCh := make(chan summaryResult, 1)
	criticalCh := make(chan criticalResult, 1)
	trendCh := make(chan trendResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		s, err := uc.analyticsRepo.GetStockSummary(ctx)
		summaryCh <- summaryResult{s, err}
	}()
	go func() {
		mats, err := uc.materialRepo.ListCritical(dashboardTopCritical)
		if err != nil {
			criticalCh <- criticalResult{nil, err}
			return
		}
		items := make([]dto.CriticalMaterialDTO, 0, len(mats))
		for _, m := range mats {
			items = append(items, dto.CriticalMaterialDTO{
				Code:            m.Code,
				Name:            m.Name,
				Unit:            m.Unit,
				CurrentQuantity: m.CurrentQuantity,
				MinQuantity:     m.MinQuantity,
				Deficit:         m.MinQuantity.Sub(m.CurrentQuantity),
			})
		}
		criticalCh <- criticalResult{items, nil}
	}()
	go func() {
		points, err := uc.analyticsRepo.GetMovementTrend(ctx, trendStart, trendEnd)
		trendCh <- trendResult{points, err}
	}()
	go func() {
		items, err := uc.analyticsRepo.GetTopMovingMaterials(ctx, trendStart, trendEnd, dashboardTopMoving)
		topCh <- topResult{items, err}
	}()

	summary := <-summaryCh
	critical := <-criticalCh
	trend := <-trendCh
	top := <-topCh

	if summary.err != nil {
		return nil, summary.err
	}
	if critical.err != nil {
		return nil, critical.err
	}
	if trend.err != nil {
		return nil, trend.err
	}
	if top.err != nil {
		return nil, top.err
	}

	out := &dto.DashboardSummaryDTO{
		TotalMaterials:  summary.summary.TotalMaterials,
		TotalQuantity:   summary.summary.TotalQuantity,
		CriticalCount:   summary.summary.CriticalCount,
		PendingRequests: summary.summary.PendingRequests,
		Critical:        critical.items,
		Trend:           make([]dto.TrendPointDTO, 0, len(trend.points)),
		TopMoving:       make([]dto.TopMaterialDTO, 0, len(top.items)),
	}
	for _, p := range trend.points {
		out.Trend = append(out.Trend, dto.TrendPointDTO{
			Day:      p.Day.Format("2006-01-02"),
			Inbound:  p.Inbound,
			Outbound: p.Outbound,
		})
	}
	for _, t := range top.items {
		out.TopMoving = append(out.TopMoving, dto.TopMaterialDTO{
			Code:       t.Code,
			Name:       t.Name,
			Unit:       t.Unit,
			TotalMoved: t.TotalMoved,
		})
	}
	return out, nil
}
