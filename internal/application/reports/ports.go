package reports

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// InventoryPDFGenerator genera la versión PDF del reporte de inventario completo.
// Lo implementa infrastructure/pdf con Maroto.
type InventoryPDFGenerator interface {
	GenerateInventoryPDF(ctx context.Context, title string, rows []repository.InventoryReportRow) ([]byte, error)
}
