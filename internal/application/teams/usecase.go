// Package teams gestiona equipos y su código de acceso compartido.
package teams

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ghsoft/finanzas-api/internal/domain"
	"github.com/ghsoft/finanzas-api/internal/domain/entity"
	"github.com/ghsoft/finanzas-api/internal/domain/repository"
)

// UseCase casos de uso de equipos.
type UseCase struct {
	teams repository.TeamRepository
	users repository.UserRepository
}

// New construye el caso de uso.
func New(teams repository.TeamRepository, users repository.UserRepository) *UseCase {
	return &UseCase{teams: teams, users: users}
}

// GenerateCode deriva el código del equipo: prefijo de 3 letras mayúsculas
// del nombre más un sufijo de 4 dígitos aleatorios (ej. "ACM-4821").
func GenerateCode(name string) string {
	prefix := strings.ToUpper(name)
	if runes := []rune(prefix); len(runes) > 3 {
		prefix = string(runes[:3])
	}
	// 1000..9999: siempre 4 dígitos.
	return prefix + "-" + strconv.Itoa(1000+rand.Intn(9000))
}

// Create crea el equipo y enlaza al creador vía su team_code.
func (uc *UseCase) Create(ctx context.Context, creatorAuthID, name, password string) (*entity.Team, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	team := &entity.Team{
		ID:        uuid.New().String(),
		Code:      GenerateCode(name),
		Name:      name,
		Password:  password,
		CreatedBy: creatorAuthID,
		CreatedAt: time.Now(),
	}
	if err := uc.teams.Create(ctx, team); err != nil {
		return nil, err
	}
	if _, err := uc.users.Update(ctx, creatorAuthID, repository.UserUpdates{TeamCode: &team.Code}); err != nil {
		return nil, err
	}
	return team, nil
}

// Members lista los perfiles que referencian el código del equipo.
func (uc *UseCase) Members(ctx context.Context, code string) ([]*entity.User, error) {
	team, err := uc.teams.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, domain.ErrNotFound
	}
	return uc.users.ListByTeamCode(ctx, code)
}
