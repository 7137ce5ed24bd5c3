package dto

// ChatMessage mensaje del historial de conversación.
type ChatMessage struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content"`
}

// ChatRequest cuerpo de POST /api/chat/completions.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// ChatResponse respuesta del proxy de chat.
type ChatResponse struct {
	Content string `json:"content"`
}
