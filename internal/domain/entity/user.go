package entity

import "time"

// Roles válidos para User.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User es el perfil interno asociado a una cuenta del proveedor de identidad.
// AuthUserID es emitido externamente, inmutable y único: la invariante
// "exactamente un perfil por identidad" la garantiza el constraint UNIQUE de
// la tabla, no la lógica de aplicación.
type User struct {
	ID         string
	AuthUserID string
	Name       string
	Role       string // user, admin
	TeamCode   string // vacío si no pertenece a un equipo
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
