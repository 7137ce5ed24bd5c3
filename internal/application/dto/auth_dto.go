package dto

import "time"

// SignupRequest cuerpo de POST /api/auth/signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	TeamCode string `json:"team_code"`
}

// UserResponse perfil expuesto por la API.
type UserResponse struct {
	AuthUserID        string    `json:"auth_user_id"`
	Name              string    `json:"name"`
	Role              string    `json:"role"`
	TeamCode          string    `json:"team_code,omitempty"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
	CreatedInAuthOnly bool      `json:"created_in_auth_only,omitempty"`
}

// SignupResponse respuesta de registro completo (201).
type SignupResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// SignupPartialResponse respuesta 206: la identidad existe pero el perfil no
// pudo aprovisionarse; la cuenta sirve para login y el perfil debe repararse
// fuera de banda.
type SignupPartialResponse struct {
	PartialSuccess bool         `json:"partial_success"`
	Message        string       `json:"message"`
	User           UserResponse `json:"user"`
	Err            string       `json:"error"`
}

// LoginRequest cuerpo de POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token de sesión más el perfil del usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ConfigResponse respuesta de GET /api/config.
type ConfigResponse struct {
	AdminAccessCode string `json:"adminAccessCode"`
}
