package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ghsoft/finanzas-api/internal/application/chat"
	"github.com/ghsoft/finanzas-api/internal/application/dto"
	"github.com/ghsoft/finanzas-api/internal/domain"
)

// ChatHandler proxy hacia el asistente financiero.
type ChatHandler struct {
	uc *chat.UseCase
}

// NewChatHandler construye el handler de chat.
func NewChatHandler(uc *chat.UseCase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

// Completions reenvía la conversación al proveedor LLM.
// POST /api/chat/completions
func (h *ChatHandler) Completions(c *fiber.Ctx) error {
	var in dto.ChatRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(dto.KindValidation, "cuerpo inválido"))
	}

	content, err := h.uc.Complete(c.Context(), in.Messages)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(dto.KindValidation, "messages no puede estar vacío"))
		}
		return c.Status(fiber.StatusBadGateway).JSON(
			dto.NewError(dto.KindInternal, "el asistente no está disponible").WithDetails(err.Error()))
	}
	return c.JSON(dto.ChatResponse{Content: content})
}
