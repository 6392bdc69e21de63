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
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// Errores del libro de existencias (población por estanque/ciclo).
// Todos son fallos de validación: ninguno se reintenta automáticamente.
var (
	// ErrInsufficientStock el movimiento dejaría el saldo de población en negativo.
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrOutOfOrderEvent la fecha del evento es anterior al último evento registrado del ciclo.
	ErrOutOfOrderEvent = errors.New("evento fuera de orden cronológico")
	// ErrZeroDelta un ajuste manual se envió con delta cero.
	ErrZeroDelta = errors.New("el ajuste requiere un delta distinto de cero")
	// ErrCycleAlreadyActive el estanque ya tiene un ciclo en estado growing.
	ErrCycleAlreadyActive = errors.New("el estanque ya tiene un ciclo activo")
	// ErrUnknownEventKind el despacho recibió un tipo de evento sin handler registrado.
	ErrUnknownEventKind = errors.New("tipo de evento desconocido")
)
