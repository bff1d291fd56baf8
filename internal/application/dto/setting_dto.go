package dto

// LogoRequest body para PUT /api/settings/logo.
type LogoRequest struct {
	Logo string `json:"logo" validate:"required,startswith=data:image/"`
}

// LogoResponse respuesta de GET /api/settings/logo.
type LogoResponse struct {
	Logo string `json:"logo,omitempty"`
}
