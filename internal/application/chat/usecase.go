// Package chat expone el proxy hacia la API de chat del proveedor LLM.
package chat

import (
	"context"
	"time"

	"github.com/ghsoft/finanzas-api/internal/application/dto"
	"github.com/ghsoft/finanzas-api/internal/domain"
)

// Completer es el puerto hacia el servicio de chat remoto.
type Completer interface {
	Complete(ctx context.Context, messages []dto.ChatMessage) (string, error)
}

// UseCase reenvía conversaciones al proveedor con un timeout acotado.
type UseCase struct {
	completer Completer
}

// New construye el caso de uso.
func New(completer Completer) *UseCase {
	return &UseCase{completer: completer}
}

// Complete valida la conversación y delega en el proveedor.
func (uc *UseCase) Complete(ctx context.Context, messages []dto.ChatMessage) (string, error) {
	if len(messages) == 0 {
		return "", domain.ErrInvalidInput
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return uc.completer.Complete(ctx, messages)
}
