package entity

import "time"

// Roles válidos para User.
//   - admin: CRUD completo, registra movimientos directos y aprueba/rechaza solicitudes.
//   - consulta: solo lectura.
//   - retirada: puede solicitar retiros y firmar sus retiros aprobados.
const (
	RoleAdmin    = "admin"
	RoleConsulta = "consulta"
	RoleRetirada = "retirada"
)

// ValidRole indica si r es un rol conocido.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleConsulta, RoleRetirada:
		return true
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, consulta, retirada
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
