package entity

import "time"

// Claves de configuración conocidas.
const (
	SettingKeyLogo = "logo" // data-URL de la imagen del logo
)

// Setting par clave/valor de configuración de la aplicación.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
