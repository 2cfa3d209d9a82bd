package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrOriginRejected     = errors.New("origen rechazado")
	ErrRateLimited        = errors.New("demasiados intentos")
	ErrPersistence        = errors.New("fallo de persistencia")
	ErrMisconfigured      = errors.New("configuración incompleta")
)

// Variantes con mensaje propio; errors.Is sigue resolviendo a la categoría.
var (
	ErrEmptyCart         = fmt.Errorf("%w: carrito vacío", ErrInvalidInput)
	ErrInvalidCart       = fmt.Errorf("%w: items del carrito inválidos", ErrInvalidInput)
	ErrInvalidTransition = fmt.Errorf("%w: transición de estado no permitida", ErrConflict)
	ErrTicketIDTaken     = fmt.Errorf("%w: código de ticket ya usado", ErrConflict)
)

// OriginReason clasifica el rechazo de la validación de origen.
type OriginReason string

const (
	OriginCrossOrigin     OriginReason = "cross-origin"
	OriginCrossSite       OriginReason = "cross-site"
	OriginInvalidReferrer OriginReason = "invalid-referrer"
	OriginMissing         OriginReason = "missing-origin"
)

// OriginError rechazo clasificado de una petición mutante.
type OriginError struct {
	Reason OriginReason
}

func (e *OriginError) Error() string {
	switch e.Reason {
	case OriginCrossOrigin:
		return "no se permiten peticiones de otro origen"
	case OriginCrossSite:
		return "no se permiten peticiones de otro sitio"
	case OriginInvalidReferrer:
		return "referrer inválido"
	default:
		return "origen ausente"
	}
}

// Unwrap permite errors.Is(err, ErrOriginRejected).
func (e *OriginError) Unwrap() error { return ErrOriginRejected }
