package repository

import (
	"context"

	"github.com/ghsoft/finanzas-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(ctx context.Context, cat *entity.Category) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Category, error)
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, cat *entity.Category) error
	Delete(ctx context.Context, id string) error
}
