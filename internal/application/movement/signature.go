package movement

import (
	"context"
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// AttachSignatureUseCase adjunta la firma de retiro a un OUT aprobado.
// Sub-estado del movimiento: no afecta el libro ni el stock, y solo ocurre una vez.
type AttachSignatureUseCase struct {
	txRunner TxRunner
}

// NewAttachSignatureUseCase construye el caso de uso.
func NewAttachSignatureUseCase(txRunner TxRunner) *AttachSignatureUseCase {
	return &AttachSignatureUseCase{txRunner: txRunner}
}

// Attach valida y adjunta la firma. Reglas:
//   - solo el solicitante original puede firmar (ErrForbidden);
//   - solo movimientos OUT en estado APPROVED (ErrConflict);
//   - una sola vez: segundo intento -> ErrConflict;
//   - la firma debe ser un data-URL de imagen.
func (uc *AttachSignatureUseCase) Attach(ctx context.Context, movementID, userID, signature string) (*entity.Movement, error) {
	if movementID == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !strings.HasPrefix(signature, "data:image/") {
		return nil, domain.ErrInvalidInput
	}

	var signed *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		_ repository.MaterialRepository,
	) error {
		mov, err := movRepo.GetForUpdate(movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		if mov.UserID != userID {
			return domain.ErrForbidden
		}
		if mov.Status != entity.MovementStatusApproved || mov.Type != entity.MovementTypeOUT {
			return domain.ErrConflict
		}
		if mov.IsSigned() {
			return domain.ErrConflict
		}
		if err := movRepo.AttachSignature(mov.ID, signature); err != nil {
			return err
		}
		mov.WithdrawalSignature = signature
		signed = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return signed, nil
}
