package auth

import "context"

// IdentityProvider es el colaborador externo que emite y valida identidades.
// Es independiente del almacenamiento de filas: crear la identidad y crear el
// perfil son dos pasos no transaccionales que deben converger.
type IdentityProvider interface {
	// SignUp crea la cuenta y devuelve el identificador inmutable de la
	// identidad (auth_user_id).
	SignUp(ctx context.Context, email, password string) (authUserID string, err error)
	// SignIn valida credenciales y devuelve el auth_user_id de la identidad.
	SignIn(ctx context.Context, email, password string) (authUserID string, err error)
}
