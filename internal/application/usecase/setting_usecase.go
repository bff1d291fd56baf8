package usecase

import (
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// SettingUseCase configuración de la aplicación. El logo se guarda como data-URL
// en la tabla de settings; no hay blob store aparte.
type SettingUseCase struct {
	repo repository.SettingRepository
}

// NewSettingUseCase construye el caso de uso.
func NewSettingUseCase(repo repository.SettingRepository) *SettingUseCase {
	return &SettingUseCase{repo: repo}
}

// GetLogo devuelve el data-URL del logo, o cadena vacía si no hay logo cargado.
func (uc *SettingUseCase) GetLogo() (string, error) {
	s, err := uc.repo.Get(entity.SettingKeyLogo)
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", nil
	}
	return s.Value, nil
}

// SetLogo reemplaza el logo actual.
func (uc *SettingUseCase) SetLogo(dataURL string) error {
	return uc.repo.Set(entity.SettingKeyLogo, dataURL)
}
