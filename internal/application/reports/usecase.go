package reports

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// UseCase genera los reportes exportables del almacén: historial de movimientos,
// inventario completo y stock crítico en CSV, más el inventario en PDF.
// Todos son de solo lectura sobre AnalyticsRepository.
type UseCase struct {
	analyticsRepo repository.AnalyticsRepository
	pdfGen        InventoryPDFGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(analyticsRepo repository.AnalyticsRepository, pdfGen InventoryPDFGenerator) *UseCase {
	return &UseCase{analyticsRepo: analyticsRepo, pdfGen: pdfGen}
}

// WriteMovementHistoryCSV escribe el historial de movimientos como CSV.
func (uc *UseCase) WriteMovementHistoryCSV(ctx context.Context, w io.Writer, from, to *time.Time) error {
	rows, err := uc.analyticsRepo.ListMovementReport(ctx, from, to)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"fecha", "codigo", "material", "unidad", "tipo", "cantidad",
		"cantidad_anterior", "cantidad_nueva", "estado", "solicitante", "aprobador", "observacion",
	}); err != nil {
		return fmt.Errorf("reporte movimientos: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.MaterialCode,
			r.MaterialName,
			r.Unit,
			r.Type,
			r.Quantity.String(),
			r.QuantityBefore.String(),
			r.QuantityAfter.String(),
			r.Status,
			r.RequestedBy,
			r.ApprovedBy,
			r.Note,
		}); err != nil {
			return fmt.Errorf("reporte movimientos: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteInventoryCSV escribe el inventario completo como CSV.
func (uc *UseCase) WriteInventoryCSV(ctx context.Context, w io.Writer) error {
	return uc.writeInventory(ctx, w, false)
}

// WriteCriticalStockCSV escribe solo los materiales en o bajo el mínimo.
func (uc *UseCase) WriteCriticalStockCSV(ctx context.Context, w io.Writer) error {
	return uc.writeInventory(ctx, w, true)
}

func (uc *UseCase) writeInventory(ctx context.Context, w io.Writer, onlyCritical bool) error {
	rows, err := uc.analyticsRepo.ListInventoryReport(ctx, onlyCritical)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"codigo", "nombre", "categoria", "unidad", "ubicacion", "cantidad_minima", "cantidad_actual",
	}); err != nil {
		return fmt.Errorf("reporte inventario: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			r.Code, r.Name, r.Category, r.Unit, r.Location,
			r.MinQuantity.String(), r.CurrentQuantity.String(),
		}); err != nil {
			return fmt.Errorf("reporte inventario: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// InventoryPDF genera el inventario completo como PDF (Maroto).
func (uc *UseCase) InventoryPDF(ctx context.Context) ([]byte, error) {
	rows, err := uc.analyticsRepo.ListInventoryReport(ctx, false)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateInventoryPDF(ctx, "Inventario completo", rows)
}
