// Package auth orquesta registro y login contra el proveedor de identidad y
// el protocolo de aprovisionamiento de perfiles.
package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ghsoft/finanzas-api/internal/application/provisioning"
	"github.com/ghsoft/finanzas-api/internal/domain"
	"github.com/ghsoft/finanzas-api/internal/domain/entity"
	"github.com/ghsoft/finanzas-api/internal/domain/repository"
	"github.com/ghsoft/finanzas-api/pkg/jwt"
)

// JWTConfig configuración para emisión de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SignupResult resultado del registro. Cuando Partial es true la identidad
// existe pero el perfil no pudo aprovisionarse: la cuenta sirve para login y
// el perfil debe repararse fuera de banda.
type SignupResult struct {
	User       *entity.User
	AuthUserID string
	Partial    bool
	PartialErr error
}

// UseCase casos de uso de autenticación.
type UseCase struct {
	identity    IdentityProvider
	provisioner *provisioning.UseCase
	users       repository.UserRepository
	jwtCfg      JWTConfig
	log         zerolog.Logger
}

// New construye el caso de uso de auth.
func New(identity IdentityProvider, provisioner *provisioning.UseCase, users repository.UserRepository, jwtCfg JWTConfig, log zerolog.Logger) *UseCase {
	return &UseCase{identity: identity, provisioner: provisioner, users: users, jwtCfg: jwtCfg, log: log}
}

// SignupInput datos de registro.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	TeamCode string
}

// Signup crea la identidad y aprovisiona el perfil.
//
// Un fallo del proveedor de identidad es fatal (ErrIdentityCreationFailed;
// jamás se intenta crear el perfil). Un fallo del aprovisionamiento después
// de crear la identidad degrada a éxito parcial en lugar de fallar el
// registro completo.
func (uc *UseCase) Signup(ctx context.Context, in SignupInput) (*SignupResult, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	authUserID, err := uc.identity.SignUp(ctx, in.Email, in.Password)
	if err != nil {
		uc.log.Error().Err(err).Str("email", in.Email).Msg("registro en el proveedor de identidad falló")
		return nil, fmt.Errorf("%w: %v", domain.ErrIdentityCreationFailed, err)
	}

	user, err := uc.provisioner.Provision(ctx, provisioning.Input{
		AuthUserID: authUserID,
		Name:       in.Name,
		Role:       in.Role,
		TeamCode:   in.TeamCode,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("auth_user_id", authUserID).
			Msg("identidad creada pero el perfil no pudo aprovisionarse")
		return &SignupResult{AuthUserID: authUserID, Partial: true, PartialErr: err}, nil
	}

	return &SignupResult{User: user, AuthUserID: authUserID}, nil
}

// LoginResult token de sesión más el perfil.
type LoginResult struct {
	Token string
	User  *entity.User
}

// Login valida credenciales contra el proveedor de identidad, carga el perfil
// y emite el token de sesión.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	authUserID, err := uc.identity.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByAuthID(ctx, authUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Identidad válida sin perfil (registro parcial no reparado).
		return nil, domain.ErrNotFound
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.AuthUserID, user.Role, user.TeamCode, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}
