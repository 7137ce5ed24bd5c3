package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ghsoft/finanzas-api/internal/application/chat"
	"github.com/ghsoft/finanzas-api/internal/application/dto"
)

// Verificar en tiempo de compilación que OpenRouterService implementa el puerto.
var _ chat.Completer = (*OpenRouterService)(nil)

const openRouterChatURL = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouterService adaptador que reenvía conversaciones a la API de chat de
// OpenRouter. Usa net/http de la librería estándar; no requiere SDK.
type OpenRouterService struct {
	apiKey     string
	model      string
	referer    string
	httpClient *http.Client
}

// NewOpenRouterService construye el adaptador.
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewOpenRouterService(apiKey, model, referer string) *OpenRouterService {
	return &OpenRouterService{
		apiKey:  apiKey,
		model:   model,
		referer: referer,
		httpClient: &http.Client{
			// Timeout de red de 25 s; el use case impone además su propio context.WithTimeout.
			Timeout: 25 * time.Second,
		},
	}
}

// ── Estructuras del protocolo OpenRouter (compatible OpenAI) ──────────────────

type openRouterRequest struct {
	Model     string            `json:"model"`
	Messages  []dto.ChatMessage `json:"messages"`
	MaxTokens int               `json:"max_tokens"`
}

type openRouterResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete envía la conversación y devuelve el contenido de la primera respuesta.
func (s *OpenRouterService) Complete(ctx context.Context, messages []dto.ChatMessage) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("chat: OPENROUTER_API_KEY no configurado")
	}

	payload := openRouterRequest{
		Model:     s.model,
		Messages:  messages,
		MaxTokens: 1000,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("chat: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openRouterChatURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("chat: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", s.referer)
	req.Header.Set("X-Title", "GHS Finanzas")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("chat: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("chat: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return "", fmt.Errorf("chat: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp openRouterResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("chat: OpenRouter error (%d): %s", errResp.Error.Code, errResp.Error.Message)
		}
		return "", fmt.Errorf("chat: OpenRouter HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var orResp openRouterResponse
	if err := json.Unmarshal(rawBody, &orResp); err != nil {
		return "", fmt.Errorf("chat: deserializar respuesta: %w", err)
	}
	if len(orResp.Choices) == 0 || orResp.Choices[0].Message.Content == "" {
		// Formato inesperado: responder con un mensaje neutro en lugar de romper el flujo.
		return "Lo siento, no pude procesar tu solicitud en este momento.", nil
	}
	return orResp.Choices[0].Message.Content, nil
}
