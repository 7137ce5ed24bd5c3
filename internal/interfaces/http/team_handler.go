package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ghsoft/finanzas-api/internal/application/dto"
	"github.com/ghsoft/finanzas-api/internal/application/teams"
	"github.com/ghsoft/finanzas-api/internal/domain"
)

// TeamHandler maneja equipos y membresías.
type TeamHandler struct {
	uc *teams.UseCase
}

// NewTeamHandler construye el handler de equipos.
func NewTeamHandler(uc *teams.UseCase) *TeamHandler {
	return &TeamHandler{uc: uc}
}

// Create crea un equipo y enlaza al creador. Solo admins.
// POST /api/teams
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	var in dto.TeamRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(dto.KindValidation, "cuerpo inválido"))
	}

	team, err := h.uc.Create(c.Context(), GetUserID(c), in.Name, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(dto.KindValidation, "el nombre del equipo es requerido"))
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.NewError(dto.KindDuplicateViolation, "el código de equipo ya existe; reintente"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(
			dto.NewError(dto.KindInternal, "error al crear el equipo").WithDetails(err.Error()))
	}

	return c.Status(fiber.StatusCreated).JSON(dto.TeamCreatedResponse{Team: dto.TeamResponse{
		ID:        team.ID,
		Code:      team.Code,
		Name:      team.Name,
		CreatedBy: team.CreatedBy,
		CreatedAt: team.CreatedAt,
	}})
}

// Members lista los perfiles enlazados al código del equipo.
// GET /api/teams/:code/members
func (h *TeamHandler) Members(c *fiber.Ctx) error {
	members, err := h.uc.Members(c.Context(), c.Params("code"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.NewError(dto.KindNotFound, "equipo no encontrado"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(
			dto.NewError(dto.KindInternal, "error al listar miembros").WithDetails(err.Error()))
	}

	out := dto.TeamMembersResponse{Members: make([]dto.UserResponse, 0, len(members))}
	for _, m := range members {
		out.Members = append(out.Members, toUserResponse(m))
	}
	return c.JSON(out)
}
