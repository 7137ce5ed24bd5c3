package provisioning_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghsoft/finanzas-api/internal/application/provisioning"
	"github.com/ghsoft/finanzas-api/internal/domain"
	"github.com/ghsoft/finanzas-api/internal/domain/entity"
	"github.com/ghsoft/finanzas-api/internal/domain/repository"
)

// fakeUserRepo implementa repository.UserRepository en memoria, con fallos
// programables por llamada para ejercitar los reintentos.
type fakeUserRepo struct {
	byAuthID map[string]*entity.User

	createErrs     []error // se consumen en orden; vacío = éxito
	createCalls    int
	privilegedErr  error
	privilegedCall int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byAuthID: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.createCalls++
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}
	if _, ok := f.byAuthID[user.AuthUserID]; ok {
		return domain.ErrDuplicate
	}
	f.byAuthID[user.AuthUserID] = user
	return nil
}

func (f *fakeUserRepo) CreatePrivileged(_ context.Context, user *entity.User) (*entity.User, error) {
	f.privilegedCall++
	if f.privilegedErr != nil {
		return nil, f.privilegedErr
	}
	if existing, ok := f.byAuthID[user.AuthUserID]; ok {
		return existing, nil
	}
	f.byAuthID[user.AuthUserID] = user
	return user, nil
}

func (f *fakeUserRepo) GetByAuthID(_ context.Context, authUserID string) (*entity.User, error) {
	return f.byAuthID[authUserID], nil
}

func (f *fakeUserRepo) Update(_ context.Context, authUserID string, updates repository.UserUpdates) (*entity.User, error) {
	u := f.byAuthID[authUserID]
	if u == nil {
		return nil, domain.ErrNotFound
	}
	if updates.Name != nil {
		u.Name = *updates.Name
	}
	if updates.TeamCode != nil {
		u.TeamCode = *updates.TeamCode
	}
	return u, nil
}

func (f *fakeUserRepo) ListByTeamCode(_ context.Context, teamCode string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.byAuthID {
		if u.TeamCode == teamCode {
			out = append(out, u)
		}
	}
	return out, nil
}

// Política sin backoff para que los tests no duerman.
var testPolicy = provisioning.RetryPolicy{MaxAttempts: 3, Backoff: time.Millisecond}

func newUseCase(repo *fakeUserRepo) *provisioning.UseCase {
	return provisioning.New(repo, testPolicy, zerolog.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Provision
// ──────────────────────────────────────────────────────────────────────────────

func TestProvision_CreaPerfil(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUseCase(repo)

	user, err := uc.Provision(context.Background(), provisioning.Input{
		AuthUserID: "auth-1",
		Name:       "Ana",
		Role:       entity.RoleAdmin,
		TeamCode:   "ACM-1234",
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "auth-1", user.AuthUserID)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	assert.Equal(t, 1, repo.createCalls)
}

func TestProvision_RolVacioPorDefectoUser(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUseCase(repo)

	user, err := uc.Provision(context.Background(), provisioning.Input{AuthUserID: "auth-1"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, user.Role)
}

// Idempotencia: la segunda llamada con el mismo AuthUserID devuelve el perfil
// existente en lugar de fallar, y queda exactamente una fila.
func TestProvision_Idempotente(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUseCase(repo)

	first, err := uc.Provision(context.Background(), provisioning.Input{AuthUserID: "auth-1", Name: "Ana"})
	require.NoError(t, err)
	second, err := uc.Provision(context.Background(), provisioning.Input{AuthUserID: "auth-1", Name: "Otro Nombre"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "la segunda llamada debe devolver la fila existente")
	assert.Equal(t, "Ana", second.Name, "el perfil existente no se sobreescribe")
	assert.Len(t, repo.byAuthID, 1)
	assert.Equal(t, 0, repo.privilegedCall, "la convergencia no debe pasar por la ruta privilegiada")
}

// Errores transitorios se reintentan hasta MaxAttempts antes del fallback.
func TestProvision_ReintentaErroresTransitorios(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErrs = []error{errors.New("timeout"), errors.New("timeout")}
	uc := newUseCase(repo)

	user, err := uc.Provision(context.Background(), provisioning.Input{AuthUserID: "auth-1"})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 3, repo.createCalls, "dos fallos más el intento exitoso")
	assert.Equal(t, 0, repo.privilegedCall)
}

// Si todos los intentos directos fallan se usa la ruta privilegiada.
func TestProvision_FallbackPrivilegiado(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErrs = []error{errors.New("rls"), errors.New("rls"), errors.New("rls")}
	uc := newUseCase(repo)

	user, err := uc.Provision(context.Background(), provisioning.Input{AuthUserID: "auth-1", Name: "Ana"})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 3, repo.createCalls, "los reintentos se agotan antes del fallback")
	assert.Equal(t, 1, repo.privilegedCall)
	assert.Equal(t, "auth-1", user.AuthUserID)
}

// Si también falla la ruta privilegiada, el error final es ErrProvisioningFailed.
func TestProvision_TodoFallaDevuelveErrProvisioningFailed(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErrs = []error{errors.New("rls"), errors.New("rls"), errors.New("rls")}
	repo.privilegedErr = errors.New("rls")
	uc := newUseCase(repo)

	user, err := uc.Provision(context.Background(), provisioning.Input{AuthUserID: "auth-1"})
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrProvisioningFailed)
}

func TestProvision_SinAuthUserID(t *testing.T) {
	uc := newUseCase(newFakeUserRepo())
	_, err := uc.Provision(context.Background(), provisioning.Input{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El contexto cancelado corta los reintentos durante el backoff.
func TestProvision_ContextoCanceladoCortaReintentos(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErrs = []error{errors.New("timeout"), errors.New("timeout"), errors.New("timeout")}
	uc := provisioning.New(repo, provisioning.RetryPolicy{MaxAttempts: 3, Backoff: time.Minute}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.Provision(ctx, provisioning.Input{AuthUserID: "auth-1"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, repo.createCalls, "no debe reintentar con el contexto cancelado")
}
