package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// La política de propagación es asimétrica a propósito: un fallo al crear la
// identidad aborta el registro completo, un fallo al aprovisionar el perfil
// degrada a éxito parcial (HTTP 206), y un fallo en balance o KPIs después de
// persistir la transacción se registra en el log pero no se reporta al caller.
var (
	ErrIdentityCreationFailed = errors.New("no se pudo crear la cuenta en el proveedor de identidad")
	ErrProvisioningFailed     = errors.New("no se pudo aprovisionar el perfil de usuario")
	ErrBalanceRead            = errors.New("no se pudo leer el balance")
	ErrBalanceWrite           = errors.New("no se pudo escribir el balance")
	ErrKpiCompute             = errors.New("no se pudieron calcular los KPIs")
	ErrAuthorizationDenied    = errors.New("operación denegada por la política de acceso")
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrUnauthorized           = errors.New("no autorizado")
)
