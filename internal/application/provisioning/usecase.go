// Package provisioning implementa la conversión idempotente de una cuenta
// del proveedor de identidad en exactamente un perfil interno.
package provisioning

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ghsoft/finanzas-api/internal/domain"
	"github.com/ghsoft/finanzas-api/internal/domain/entity"
	"github.com/ghsoft/finanzas-api/internal/domain/repository"
)

// RetryPolicy acota los reintentos del insert de perfil ante errores
// transitorios del store. No aplica a balance ni KPIs.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultRetryPolicy política de reintentos por defecto.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, Backoff: 500 * time.Millisecond}

// Input datos para aprovisionar un perfil.
type Input struct {
	AuthUserID string
	Name       string
	Role       string
	TeamCode   string
}

// UseCase aprovisiona perfiles de usuario de forma idempotente.
type UseCase struct {
	users  repository.UserRepository
	policy RetryPolicy
	log    zerolog.Logger
}

// New construye el caso de uso con su política de reintentos.
func New(users repository.UserRepository, policy RetryPolicy, log zerolog.Logger) *UseCase {
	if policy.MaxAttempts <= 0 {
		policy = DefaultRetryPolicy
	}
	return &UseCase{users: users, policy: policy, log: log}
}

// Provision crea el perfil asociado a una identidad. Es idempotente: dos
// llamadas con el mismo AuthUserID (secuenciales o concurrentes) dejan
// exactamente una fila, y la segunda devuelve la fila existente en lugar de
// fallar. La exclusión la garantiza el constraint único sobre auth_user_id.
//
// Orden de intentos:
//  1. Insert directo.
//  2. Violación de unicidad: fetch de la fila existente (convergencia).
//  3. Otros errores: reintentos acotados con backoff fijo.
//  4. Último recurso: insert privilegiado que salta la política por fila; el
//     resultado debe ser idéntico al del insert directo.
//
// Si todas las rutas fallan devuelve domain.ErrProvisioningFailed.
func (uc *UseCase) Provision(ctx context.Context, in Input) (*entity.User, error) {
	if in.AuthUserID == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	now := time.Now()
	user := &entity.User{
		ID:         uuid.New().String(),
		AuthUserID: in.AuthUserID,
		Name:       in.Name,
		Role:       role,
		TeamCode:   in.TeamCode,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var lastErr error
	for attempt := 1; attempt <= uc.policy.MaxAttempts; attempt++ {
		err := uc.users.Create(ctx, user)
		if err == nil {
			return user, nil
		}
		if errors.Is(err, domain.ErrDuplicate) {
			// Ya existe un perfil para esta identidad: éxito por convergencia.
			existing, fetchErr := uc.users.GetByAuthID(ctx, in.AuthUserID)
			if fetchErr == nil && existing != nil {
				return existing, nil
			}
			lastErr = err
			break
		}
		lastErr = err
		uc.log.Warn().Err(err).
			Str("auth_user_id", in.AuthUserID).
			Int("attempt", attempt).
			Msg("insert de perfil falló, reintentando")
		if attempt < uc.policy.MaxAttempts {
			if err := sleep(ctx, uc.policy.Backoff); err != nil {
				return nil, err
			}
		}
	}

	// Ruta privilegiada de último recurso: produce la misma fila que habría
	// producido el insert directo, exista ya o no.
	created, err := uc.users.CreatePrivileged(ctx, user)
	if err == nil && created != nil {
		uc.log.Info().Str("auth_user_id", in.AuthUserID).Msg("perfil aprovisionado por la ruta privilegiada")
		return created, nil
	}
	if err != nil {
		lastErr = err
	}
	uc.log.Error().Err(lastErr).Str("auth_user_id", in.AuthUserID).Msg("aprovisionamiento de perfil agotado")
	return nil, domain.ErrProvisioningFailed
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
