package dto

import "time"

// TeamRequest cuerpo de POST /api/teams.
type TeamRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// TeamResponse representación de un equipo en la API.
type TeamResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamCreatedResponse respuesta de creación de equipo.
type TeamCreatedResponse struct {
	Team TeamResponse `json:"team"`
}

// TeamMembersResponse respuesta de GET /api/teams/:code/members.
type TeamMembersResponse struct {
	Members []UserResponse `json:"members"`
}
