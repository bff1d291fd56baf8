package dto

import "time"

// CreateUserRequest body para POST /api/users (solo admin).
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=200"`
	Role     string `json:"role" validate:"required,oneof=admin consulta retirada"`
}

// UpdateUserRequest body para PUT /api/users/:id.
type UpdateUserRequest struct {
	Name   string `json:"name" validate:"required,max=200"`
	Role   string `json:"role" validate:"required,oneof=admin consulta retirada"`
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

// UpdatePasswordRequest body para PATCH /api/users/:id/password.
type UpdatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UserResponse representación HTTP de un usuario (sin hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
