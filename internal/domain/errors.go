package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los adaptadores de persistencia envuelven sus errores con estos centinelas (%w)
// para que la capa HTTP decida el status con errors.Is.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrForeignKey   = errors.New("referencia a un recurso inexistente")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUnavailable  = errors.New("fallo de acceso a la base de datos")
)
