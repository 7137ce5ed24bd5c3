package dto

// Kinds de error expuestos en las respuestas HTTP (taxonomía única para todos
// los endpoints; reemplaza los objetos {error, details} ad hoc).
const (
	KindIdentityCreationFailed = "identity_creation_failed"
	KindProvisioningFailed     = "provisioning_failed"
	KindBalanceReadFailed      = "balance_read_failed"
	KindBalanceWriteFailed     = "balance_write_failed"
	KindKpiComputeFailed       = "kpi_compute_failed"
	KindAuthorizationDenied    = "authorization_denied"
	KindNotFound               = "not_found"
	KindDuplicateViolation     = "duplicate_violation"
	KindValidation             = "validation"
	KindUnauthorized           = "unauthorized"
	KindInternal               = "internal"
)

// ErrorResponse cuerpo de error HTTP. Toda falla produce este shape; ningún
// error termina en una respuesta de éxito vacía.
type ErrorResponse struct {
	Error   bool   `json:"error"` // siempre true
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// NewError construye el cuerpo de error estándar.
func NewError(kind, message string) ErrorResponse {
	return ErrorResponse{Error: true, Kind: kind, Message: message}
}

// WithDetails añade el detalle legible del error subyacente.
func (e ErrorResponse) WithDetails(details string) ErrorResponse {
	e.Details = details
	return e
}
