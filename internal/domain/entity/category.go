package entity

import "time"

// Category es una etiqueta de clasificación de transacciones propia de cada usuario.
type Category struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
}
