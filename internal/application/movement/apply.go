package movement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ApplyUseCase ejecuta la transición atómica de stock: relee la cantidad con bloqueo
// de fila (SELECT FOR UPDATE), valida, persiste la nueva cantidad y el registro del
// libro dentro de la misma transacción. Es el único escritor legal de CurrentQuantity.
type ApplyUseCase struct {
	txRunner TxRunner
}

// NewApplyUseCase construye el caso de uso.
func NewApplyUseCase(txRunner TxRunner) *ApplyUseCase {
	return &ApplyUseCase{txRunner: txRunner}
}

// ApplyInput entrada para un movimiento directo de admin (IN o ADJUSTMENT).
type ApplyInput struct {
	MaterialID string
	UserID     string // actor; queda como solicitante y aprobador
	Type       string
	Quantity   decimal.Decimal
	Note       string
}

// ApplyDirect registra un movimiento directo: nace ya APPROVED, con before/after
// congelados y el stock actualizado, todo en una transacción. Los retiros (OUT)
// no pasan por aquí; requieren solicitud y aprobación.
func (uc *ApplyUseCase) ApplyDirect(ctx context.Context, in ApplyInput) (*entity.Movement, error) {
	if in.MaterialID == "" || in.UserID == "" || !entity.ValidType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if in.Type == entity.MovementTypeOUT {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	mov := &entity.Movement{
		ID:         uuid.New().String(),
		MaterialID: in.MaterialID,
		UserID:     in.UserID,
		Type:       in.Type,
		Quantity:   in.Quantity,
		Note:       in.Note,
		Status:     entity.MovementStatusApproved,
		CreatedAt:  now,
		ApprovedBy: in.UserID,
		ApprovedAt: &now,
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		materialRepo repository.MaterialRepository,
	) error {
		before, after, err := freezeQuantities(materialRepo, mov)
		if err != nil {
			return err
		}
		mov.QuantityBefore = before
		mov.QuantityAfter = after
		if err := materialRepo.UpdateQuantity(mov.MaterialID, after); err != nil {
			return err
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// freezeQuantities bloquea la fila del material, relee la cantidad fresca y calcula
// el after con el signo del tipo. Este re-read bajo lock es el punto que impide que
// dos aprobaciones concurrentes usen el mismo before.
func freezeQuantities(
	materialRepo repository.MaterialRepository,
	mov *entity.Movement,
) (before, after decimal.Decimal, err error) {
	mat, err := materialRepo.GetForUpdate(mov.MaterialID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if mat == nil {
		return decimal.Zero, decimal.Zero, domain.ErrNotFound
	}
	before = mat.CurrentQuantity
	after = before.Add(mov.SignedDelta())
	if after.IsNegative() {
		return decimal.Zero, decimal.Zero, &domain.InsufficientStockError{
			Available: before,
			Requested: mov.Quantity,
		}
	}
	return before, after, nil
}
