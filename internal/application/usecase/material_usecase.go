package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// MaterialUseCase aplica reglas de negocio para el catálogo de materiales.
// La cantidad actual NO se modifica por este camino: Update nunca la incluye y
// cualquier cambio de stock pasa por el motor de movimientos.
type MaterialUseCase struct {
	repo repository.MaterialRepository
}

// NewMaterialUseCase construye el caso de uso con el puerto de persistencia.
func NewMaterialUseCase(repo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo}
}

// Create da de alta un material. InitialQuantity es el stock de apertura; con
// historial posterior, la cantidad solo cambia vía movimientos.
func (uc *MaterialUseCase) Create(in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if in.InitialQuantity.IsNegative() || in.MinQuantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	mat := &entity.Material{
		ID:              uuid.New().String(),
		Code:            in.Code,
		Name:            in.Name,
		Description:     in.Description,
		Category:        in.Category,
		Unit:            in.Unit,
		MinQuantity:     in.MinQuantity,
		CurrentQuantity: in.InitialQuantity,
		Location:        in.Location,
		PhotoURL:        in.PhotoURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(mat); err != nil {
		return nil, err
	}
	return entityToMaterialResponse(mat), nil
}

// GetByID obtiene un material por ID.
func (uc *MaterialUseCase) GetByID(id string) (*dto.MaterialResponse, error) {
	mat, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mat == nil {
		return nil, domain.ErrNotFound
	}
	return entityToMaterialResponse(mat), nil
}

// Update actualiza los datos descriptivos. La cantidad actual se preserva tal
// cual está en la base; el request ni siquiera la acepta.
func (uc *MaterialUseCase) Update(id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	if in.MinQuantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	mat, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mat == nil {
		return nil, domain.ErrNotFound
	}
	mat.Name = in.Name
	mat.Description = in.Description
	mat.Category = in.Category
	mat.Unit = in.Unit
	mat.MinQuantity = in.MinQuantity
	mat.Location = in.Location
	mat.PhotoURL = in.PhotoURL
	mat.UpdatedAt = time.Now()
	if err := uc.repo.Update(mat); err != nil {
		return nil, err
	}
	return entityToMaterialResponse(mat), nil
}

// List lista materiales con búsqueda opcional por código/nombre.
func (uc *MaterialUseCase) List(search string, limit, offset int) ([]*dto.MaterialResponse, error) {
	mats, err := uc.repo.List(search, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MaterialResponse, 0, len(mats))
	for _, m := range mats {
		out = append(out, entityToMaterialResponse(m))
	}
	return out, nil
}

// Delete elimina un material. Con historial de movimientos la FK lo impide y el
// repositorio devuelve domain.ErrConflict (integridad referencial del libro).
func (uc *MaterialUseCase) Delete(id string) error {
	mat, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if mat == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func entityToMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:              m.ID,
		Code:            m.Code,
		Name:            m.Name,
		Description:     m.Description,
		Category:        m.Category,
		Unit:            m.Unit,
		MinQuantity:     m.MinQuantity,
		CurrentQuantity: m.CurrentQuantity,
		Location:        m.Location,
		PhotoURL:        m.PhotoURL,
		Critical:        m.IsCritical(),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
