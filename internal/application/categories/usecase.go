// Package categories gestiona las etiquetas de clasificación por usuario.
package categories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ghsoft/finanzas-api/internal/domain"
	"github.com/ghsoft/finanzas-api/internal/domain/entity"
	"github.com/ghsoft/finanzas-api/internal/domain/repository"
)

// UseCase CRUD de categorías con verificación de propiedad.
type UseCase struct {
	categories repository.CategoryRepository
}

// New construye el caso de uso.
func New(categories repository.CategoryRepository) *UseCase {
	return &UseCase{categories: categories}
}

// Create crea una categoría del usuario.
func (uc *UseCase) Create(ctx context.Context, userID, name string) (*entity.Category, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	cat := &entity.Category{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := uc.categories.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// List devuelve las categorías del usuario.
func (uc *UseCase) List(ctx context.Context, userID string) ([]*entity.Category, error) {
	return uc.categories.ListByUser(ctx, userID)
}

// Update renombra una categoría del dueño.
func (uc *UseCase) Update(ctx context.Context, userID, id, name string) (*entity.Category, error) {
	cat, err := uc.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	cat.Name = name
	if err := uc.categories.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// Delete elimina una categoría del dueño.
func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.owned(ctx, userID, id); err != nil {
		return err
	}
	return uc.categories.Delete(ctx, id)
}

func (uc *UseCase) owned(ctx context.Context, userID, id string) (*entity.Category, error) {
	cat, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	if cat.UserID != userID {
		return nil, domain.ErrAuthorizationDenied
	}
	return cat, nil
}
