package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ghsoft/finanzas-api/internal/application/categories"
	"github.com/ghsoft/finanzas-api/internal/application/dto"
	"github.com/ghsoft/finanzas-api/internal/domain"
	"github.com/ghsoft/finanzas-api/internal/domain/entity"
)

// CategoryHandler CRUD de categorías del usuario autenticado.
type CategoryHandler struct {
	uc *categories.UseCase
}

// NewCategoryHandler construye el handler de categorías.
func NewCategoryHandler(uc *categories.UseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create crea una categoría.
// POST /api/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(dto.KindValidation, "cuerpo inválido"))
	}
	cat, err := h.uc.Create(c.Context(), GetUserID(c), in.Name)
	if err != nil {
		return categoryError(c, err, "error al crear la categoría")
	}
	return c.Status(fiber.StatusCreated).JSON(toCategoryResponse(cat))
}

// List devuelve las categorías del usuario.
// GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.uc.List(c.Context(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(
			dto.NewError(dto.KindInternal, "error al listar categorías").WithDetails(err.Error()))
	}
	out := dto.CategoryListResponse{Categories: make([]dto.CategoryResponse, 0, len(cats))}
	for _, cat := range cats {
		out.Categories = append(out.Categories, toCategoryResponse(cat))
	}
	return c.JSON(out)
}

// Update renombra una categoría del dueño.
// PUT /api/categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(dto.KindValidation, "cuerpo inválido"))
	}
	cat, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in.Name)
	if err != nil {
		return categoryError(c, err, "error al actualizar la categoría")
	}
	return c.JSON(toCategoryResponse(cat))
}

// Delete elimina una categoría del dueño.
// DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return categoryError(c, err, "error al eliminar la categoría")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func categoryError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError(dto.KindNotFound, "categoría no encontrada"))
	case errors.Is(err, domain.ErrAuthorizationDenied):
		return c.Status(fiber.StatusForbidden).JSON(dto.NewError(dto.KindAuthorizationDenied, "la categoría pertenece a otro usuario"))
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(dto.KindValidation, "el nombre es requerido"))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(
			dto.NewError(dto.KindInternal, fallback).WithDetails(err.Error()))
	}
}

func toCategoryResponse(cat *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        cat.ID,
		UserID:    cat.UserID,
		Name:      cat.Name,
		CreatedAt: cat.CreatedAt,
	}
}
