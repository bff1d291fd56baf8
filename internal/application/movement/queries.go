package movement

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// QueryUseCase lecturas del libro de movimientos. Solo lectura: el libro se
// consulta mucho (historial, cola de pendientes, mis solicitudes) y nunca se
// muta por este camino.
type QueryUseCase struct {
	movRepo repository.MovementRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(movRepo repository.MovementRepository) *QueryUseCase {
	return &QueryUseCase{movRepo: movRepo}
}

// History historial global, más reciente primero, con rango de fechas opcional.
func (uc *QueryUseCase) History(from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return uc.movRepo.List(from, to, limit, offset)
}

// ByStatus lista por estado. Los PENDING salen en orden de llegada (más antiguo
// primero) para que la cola de aprobación sea justa.
func (uc *QueryUseCase) ByStatus(status string, limit, offset int) ([]*entity.Movement, error) {
	return uc.movRepo.ListByStatus(status, limit, offset)
}

// ByMaterial historial de un material, más reciente primero.
func (uc *QueryUseCase) ByMaterial(materialID string, limit, offset int) ([]*entity.Movement, error) {
	return uc.movRepo.ListByMaterial(materialID, limit, offset)
}

// ByUser solicitudes de un usuario, más reciente primero.
func (uc *QueryUseCase) ByUser(userID string, limit, offset int) ([]*entity.Movement, error) {
	return uc.movRepo.ListByUser(userID, limit, offset)
}

// Get un movimiento por ID.
func (uc *QueryUseCase) Get(id string) (*entity.Movement, error) {
	mov, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return mov, nil
}
