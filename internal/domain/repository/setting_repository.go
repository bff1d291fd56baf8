package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// SettingRepository puerto de configuración clave/valor (logo, etc.).
type SettingRepository interface {
	Get(key string) (*entity.Setting, error)
	// Set inserta o reemplaza el valor (upsert por clave).
	Set(key, value string) error
}
