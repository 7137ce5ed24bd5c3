package repository

import (
	"context"

	"github.com/ghsoft/finanzas-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para perfiles de usuario.
//
// Create debe devolver domain.ErrDuplicate ante una violación del constraint
// único sobre auth_user_id: el protocolo de aprovisionamiento la interpreta
// como convergencia, no como fallo.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// CreatePrivileged es la ruta privilegiada de último recurso: inserta el
	// perfil saltando la política por fila (análogo a un RPC SECURITY DEFINER)
	// y devuelve la fila resultante, exista ya o no. El resultado debe ser
	// idéntico al de Create.
	CreatePrivileged(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByAuthID(ctx context.Context, authUserID string) (*entity.User, error)
	Update(ctx context.Context, authUserID string, updates UserUpdates) (*entity.User, error)
	ListByTeamCode(ctx context.Context, teamCode string) ([]*entity.User, error)
}

// UserUpdates campos mutables del perfil; punteros nil significan sin cambio.
type UserUpdates struct {
	Name     *string
	TeamCode *string
}
