package dto

import "time"

// CategoryRequest cuerpo de POST/PUT /api/categories.
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse representación de una categoría en la API.
type CategoryResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryListResponse respuesta de GET /api/categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
