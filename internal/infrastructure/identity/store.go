// Package identity implementa el proveedor de identidad sobre PostgreSQL.
//
// Las cuentas viven en auth_users, separadas de los perfiles de la tabla
// users: crear la cuenta y aprovisionar el perfil son dos pasos no
// transaccionales que el protocolo de registro hace converger.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	appauth "github.com/ghsoft/finanzas-api/internal/application/auth"
	"github.com/ghsoft/finanzas-api/internal/domain"
)

var _ appauth.IdentityProvider = (*Store)(nil)

// Store proveedor de identidad respaldado por la tabla auth_users.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore construye el proveedor.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// SignUp crea la cuenta con el password hasheado (bcrypt) y devuelve el
// auth_user_id emitido. El email es único.
func (s *Store) SignUp(ctx context.Context, email, password string) (string, error) {
	if email == "" || len(password) < 6 {
		return "", fmt.Errorf("identity: email o password inválidos")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("identity: hashear password: %w", err)
	}
	id := uuid.New().String()
	query := `INSERT INTO auth_users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := s.pool.Exec(ctx, query, id, email, string(hash), time.Now()); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", fmt.Errorf("identity: el email ya está registrado: %w", domain.ErrDuplicate)
		}
		return "", fmt.Errorf("identity: crear cuenta: %w", err)
	}
	return id, nil
}

// SignIn valida credenciales y devuelve el auth_user_id.
// Devuelve domain.ErrUnauthorized tanto para email inexistente como para
// password incorrecto.
func (s *Store) SignIn(ctx context.Context, email, password string) (string, error) {
	query := `SELECT id, password_hash FROM auth_users WHERE email = $1`
	var id, hash string
	err := s.pool.QueryRow(ctx, query, email).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrUnauthorized
		}
		return "", fmt.Errorf("identity: buscar cuenta: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}
	return id, nil
}
