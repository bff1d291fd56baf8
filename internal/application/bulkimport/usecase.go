package bulkimport

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/movement"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Notas registradas en el libro por la carga masiva.
const (
	noteBulkReplenish = "Carga de stock masiva"
	noteBulkInitial   = "Alta inicial vía carga masiva"
)

// UseCase reconcilia un lote de líneas contra el catálogo de materiales.
//
// Por línea, de forma independiente: si el código ya existe, suma stock vía el
// procedimiento atómico (política aditiva: re-importar el mismo archivo vuelve a
// sumar, no es upsert idempotente — comportamiento deliberado del sistema);
// si no existe, crea el material y su movimiento IN inicial con before=0 en una
// transacción. Una línea mala registra su error y el lote continúa.
type UseCase struct {
	materialRepo repository.MaterialRepository
	applyUC      *movement.ApplyUseCase
	txRunner     movement.TxRunner
}

// NewUseCase construye el reconciliador.
func NewUseCase(
	materialRepo repository.MaterialRepository,
	applyUC *movement.ApplyUseCase,
	txRunner movement.TxRunner,
) *UseCase {
	return &UseCase{materialRepo: materialRepo, applyUC: applyUC, txRunner: txRunner}
}

// Reconcile procesa el lote y devuelve el resumen con errores por línea (1-based).
func (uc *UseCase) Reconcile(ctx context.Context, adminID string, lines []dto.BulkLine) (*dto.BulkImportResponse, error) {
	if adminID == "" {
		return nil, domain.ErrInvalidInput
	}

	res := &dto.BulkImportResponse{Errors: []dto.BulkLineError{}}
	for i, line := range lines {
		created, err := uc.processLine(ctx, adminID, line)
		if err != nil {
			res.Errors = append(res.Errors, dto.BulkLineError{
				Line:    i + 1,
				Code:    line.Code,
				Message: err.Error(),
			})
			continue
		}
		if created {
			res.CreatedCount++
		} else {
			res.UpdatedCount++
		}
	}
	return res, nil
}

// processLine reconcilia una línea. Devuelve created=true si dio de alta un
// material nuevo, created=false si repuso stock de uno existente.
func (uc *UseCase) processLine(ctx context.Context, adminID string, line dto.BulkLine) (created bool, err error) {
	code := NormalizeCode(line.Code)
	if code == "" || line.Name == "" || line.Unit == "" {
		return false, fmt.Errorf("campos obligatorios ausentes (code, name, unit)")
	}
	if !line.Quantity.GreaterThan(decimal.Zero) {
		return false, fmt.Errorf("quantity debe ser mayor que cero")
	}

	existing, err := uc.materialRepo.GetByCode(code)
	if err != nil {
		return false, err
	}

	if existing != nil {
		// Reposición: misma transición atómica que un IN directo de admin.
		_, err := uc.applyUC.ApplyDirect(ctx, movement.ApplyInput{
			MaterialID: existing.ID,
			UserID:     adminID,
			Type:       entity.MovementTypeIN,
			Quantity:   line.Quantity,
			Note:       noteBulkReplenish,
		})
		return false, err
	}

	// Alta: material nuevo con su movimiento IN inicial (before=0) en una sola tx,
	// para que el historial quede completo desde el primer día.
	now := time.Now()
	mat := &entity.Material{
		ID:              uuid.New().String(),
		Code:            code,
		Name:            line.Name,
		Description:     line.Description,
		Category:        line.Category,
		Unit:            line.Unit,
		MinQuantity:     line.MinQuantity,
		CurrentQuantity: line.Quantity,
		Location:        line.Location,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	mov := &entity.Movement{
		ID:             uuid.New().String(),
		MaterialID:     mat.ID,
		UserID:         adminID,
		Type:           entity.MovementTypeIN,
		Quantity:       line.Quantity,
		QuantityBefore: decimal.Zero,
		QuantityAfter:  line.Quantity,
		Note:           noteBulkInitial,
		Status:         entity.MovementStatusApproved,
		CreatedAt:      now,
		ApprovedBy:     adminID,
		ApprovedAt:     &now,
	}
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		materialRepo repository.MaterialRepository,
	) error {
		if err := materialRepo.Create(mat); err != nil {
			return err
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
