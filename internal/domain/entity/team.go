package entity

import "time"

// Team agrupa usuarios bajo un código compartido.
// El código se deriva del nombre más un sufijo aleatorio (ej. "ACM-4821");
// los miembros se unen presentando Code y Password (secreto compartido del
// equipo, no por miembro).
type Team struct {
	ID        string
	Code      string // único
	Name      string
	Password  string
	CreatedBy string // AuthUserID del creador
	CreatedAt time.Time
}
