package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	UpdatePassword(id, passwordHash string) error
	List(limit, offset int) ([]*entity.User, error)
	// Delete elimina el usuario; si tiene movimientos asociados la FK lo impide
	// y se devuelve domain.ErrConflict.
	Delete(id string) error
}
