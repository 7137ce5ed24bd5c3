package repository

import (
	"context"

	"github.com/ghsoft/finanzas-api/internal/domain/entity"
)

// TeamRepository define el puerto de persistencia para equipos.
type TeamRepository interface {
	Create(ctx context.Context, team *entity.Team) error
	// GetByCode devuelve (nil, nil) si el código no existe.
	GetByCode(ctx context.Context, code string) (*entity.Team, error)
}
