package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ghsoft/finanzas-api/internal/application/auth"
	"github.com/ghsoft/finanzas-api/internal/application/dto"
	"github.com/ghsoft/finanzas-api/internal/domain"
	"github.com/ghsoft/finanzas-api/internal/domain/entity"
)

// AuthHandler maneja registro y login.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Signup registra una cuenta y aprovisiona el perfil.
// POST /api/auth/signup
//
//   - 201: identidad y perfil creados.
//   - 206: identidad creada pero perfil no aprovisionado; la cuenta sirve
//     para login y el perfil debe repararse fuera de banda.
//   - 400: el proveedor de identidad rechazó el registro.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(dto.KindValidation, "cuerpo inválido"))
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(dto.KindValidation, "email y password son requeridos"))
	}

	result, err := h.uc.Signup(c.Context(), auth.SignupInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
		TeamCode: in.TeamCode,
	})
	if err != nil {
		if errors.Is(err, domain.ErrIdentityCreationFailed) {
			return c.Status(fiber.StatusBadRequest).JSON(
				dto.NewError(dto.KindIdentityCreationFailed, "error al registrar usuario en Auth").WithDetails(err.Error()))
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(dto.KindValidation, "datos de registro inválidos"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(
			dto.NewError(dto.KindInternal, "error en el proceso de registro").WithDetails(err.Error()))
	}

	if result.Partial {
		return c.Status(fiber.StatusPartialContent).JSON(dto.SignupPartialResponse{
			PartialSuccess: true,
			Message:        "usuario creado en Auth pero sin perfil",
			User: dto.UserResponse{
				AuthUserID:        result.AuthUserID,
				Name:              in.Name,
				Role:              in.Role,
				TeamCode:          in.TeamCode,
				CreatedInAuthOnly: true,
			},
			Err: result.PartialErr.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SignupResponse{
		Success: true,
		Message: "usuario registrado correctamente",
		User:    toUserResponse(result.User),
	})
}

// Login inicia sesión y devuelve token más perfil.
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(dto.KindValidation, "cuerpo inválido"))
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(dto.KindValidation, "email y password son requeridos"))
	}

	out, err := h.uc.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError(dto.KindUnauthorized, "credenciales inválidas"))
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(
				dto.NewError(dto.KindNotFound, "la cuenta no tiene perfil; contacte a soporte"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(
			dto.NewError(dto.KindInternal, "error al iniciar sesión").WithDetails(err.Error()))
	}

	return c.JSON(dto.LoginResponse{Token: out.Token, User: toUserResponse(out.User)})
}

func toUserResponse(u *entity.User) dto.UserResponse {
	if u == nil {
		return dto.UserResponse{}
	}
	return dto.UserResponse{
		AuthUserID: u.AuthUserID,
		Name:       u.Name,
		Role:       u.Role,
		TeamCode:   u.TeamCode,
		CreatedAt:  u.CreatedAt,
	}
}
