package domain

import (
	"errors"
	"fmt"
)

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

// DuplicateNumberError indica que ya existe un documento del mismo tipo con ese número.
// Se desenvuelve a ErrDuplicate para que los handlers puedan usar errors.Is.
type DuplicateNumberError struct {
	DocType string
	Number  string
}

func (e *DuplicateNumberError) Error() string {
	return fmt.Sprintf("ya existe un documento %s con número %q", e.DocType, e.Number)
}

func (e *DuplicateNumberError) Unwrap() error { return ErrDuplicate }
