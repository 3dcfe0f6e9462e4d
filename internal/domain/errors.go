package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Errores del ledger de inventario.
	ErrInvalidItemType         = errors.New("tipo de ítem de inventario desconocido")
	ErrDepletionExceedsBalance = errors.New("el consumo supera el saldo disponible")
	ErrBatchNotFound           = errors.New("lote no encontrado")
	ErrNoChicksTransaction     = errors.New("el lote no tiene transacciones de pollitos")
)
