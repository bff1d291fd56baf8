package movement

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Decisiones posibles sobre una solicitud pendiente.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// DecideUseCase aplica la única transición permitida PENDING -> APPROVED|REJECTED.
// Aprobar ejecuta la transición atómica de stock dentro de la misma transacción que
// bloquea el movimiento; rechazar solo actualiza estado y metadatos del aprobador.
type DecideUseCase struct {
	txRunner TxRunner
}

// NewDecideUseCase construye el caso de uso.
func NewDecideUseCase(txRunner TxRunner) *DecideUseCase {
	return &DecideUseCase{txRunner: txRunner}
}

// Decide resuelve la solicitud. Reglas:
//   - el movimiento debe estar PENDING (doble decisión -> ErrConflict);
//   - el aprobador no puede ser el solicitante (auto-aprobación -> ErrForbidden);
//   - aprobar un OUT sin stock suficiente falla con InsufficientStockError y la
//     solicitud sigue PENDING, sin escribir nada (el chequeo ocurre bajo el mismo
//     lock que la escritura, no antes).
func (uc *DecideUseCase) Decide(ctx context.Context, movementID, approverID, decision string) (*entity.Movement, error) {
	if movementID == "" || approverID == "" {
		return nil, domain.ErrInvalidInput
	}
	if decision != DecisionApprove && decision != DecisionReject {
		return nil, domain.ErrInvalidInput
	}

	var decided *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		materialRepo repository.MaterialRepository,
	) error {
		mov, err := movRepo.GetForUpdate(movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		if mov.Status != entity.MovementStatusPending {
			return domain.ErrConflict
		}
		if mov.UserID == approverID {
			return domain.ErrForbidden
		}

		now := time.Now()
		if decision == DecisionReject {
			// El rechazo no toca el stock: before/after quedan en cero.
			if err := movRepo.UpdateDecision(mov.ID, entity.MovementStatusRejected,
				approverID, now, decimal.Zero, decimal.Zero); err != nil {
				return err
			}
			mov.Status = entity.MovementStatusRejected
			mov.ApprovedBy = approverID
			mov.ApprovedAt = &now
			decided = mov
			return nil
		}

		before, after, err := freezeQuantities(materialRepo, mov)
		if err != nil {
			return err
		}
		if err := materialRepo.UpdateQuantity(mov.MaterialID, after); err != nil {
			return err
		}
		if err := movRepo.UpdateDecision(mov.ID, entity.MovementStatusApproved,
			approverID, now, before, after); err != nil {
			return err
		}
		mov.Status = entity.MovementStatusApproved
		mov.ApprovedBy = approverID
		mov.ApprovedAt = &now
		mov.QuantityBefore = before
		mov.QuantityAfter = after
		decided = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decided, nil
}
