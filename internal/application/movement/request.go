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

// RequestWithdrawalUseCase crea solicitudes de retiro en estado PENDING.
// No toca el stock: before/after quedan en cero hasta que un aprobador decida.
type RequestWithdrawalUseCase struct {
	movRepo      repository.MovementRepository
	materialRepo repository.MaterialRepository
}

// NewRequestWithdrawalUseCase construye el caso de uso.
func NewRequestWithdrawalUseCase(
	movRepo repository.MovementRepository,
	materialRepo repository.MaterialRepository,
) *RequestWithdrawalUseCase {
	return &RequestWithdrawalUseCase{movRepo: movRepo, materialRepo: materialRepo}
}

// WithdrawalInput entrada para solicitar un retiro.
type WithdrawalInput struct {
	MaterialID string
	UserID     string
	Quantity   decimal.Decimal
	Note       string
}

// Request valida la entrada, verifica que el material exista y crea el movimiento
// OUT pendiente. La verificación de stock se difiere a la aprobación (la cantidad
// disponible puede cambiar mientras la solicitud espera en la cola).
func (uc *RequestWithdrawalUseCase) Request(ctx context.Context, in WithdrawalInput) (*entity.Movement, error) {
	if in.MaterialID == "" || in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	mat, err := uc.materialRepo.GetByID(in.MaterialID)
	if err != nil {
		return nil, err
	}
	if mat == nil {
		return nil, domain.ErrNotFound
	}

	mov := &entity.Movement{
		ID:         uuid.New().String(),
		MaterialID: in.MaterialID,
		UserID:     in.UserID,
		Type:       entity.MovementTypeOUT,
		Quantity:   in.Quantity,
		Note:       in.Note,
		Status:     entity.MovementStatusPending,
		CreatedAt:  time.Now(),
	}
	if err := uc.movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}
