package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles de cliente.
const (
	RolCliente = "cliente"
	RolAdmin   = "admin"
)

// Cliente stores customers and staff. Telefono doubles as the login
// identifier. PasswordHash is nil for customers entered by staff who never
// log in themselves; admin accounts always carry a credential.
type Cliente struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Telefono     string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"index;not null"`
	Domicilio    *string
	Email        *string
	Rol          string `gorm:"type:varchar(20);not null;default:'cliente'"`
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
