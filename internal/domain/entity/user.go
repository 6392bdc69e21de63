package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleTeknisi  = "teknisi"  // técnico de campo: muestreos, mortalidad
	RoleOperador = "operador" // operador de granja: siembras, cosechas, ajustes
)

// User representa un usuario del sistema (pertenece a una Farm).
type User struct {
	ID           string
	FarmID       string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, teknisi, operador
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
