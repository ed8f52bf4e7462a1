package billing

import (
	"fmt"

	"github.com/jhoicas/Comercial-api/internal/domain"
)

// ValidationCode código estable (machine-readable) de un error de validación.
type ValidationCode string

const (
	CodeEmptyDocument         ValidationCode = "EMPTY_DOCUMENT"
	CodeInvalidQuantity       ValidationCode = "INVALID_QUANTITY"
	CodeInvalidPrice          ValidationCode = "INVALID_PRICE"
	CodeInvalidTaxRate        ValidationCode = "INVALID_TAX_RATE"
	CodeMissingIdentification ValidationCode = "MISSING_IDENTIFICATION"
)

// ValidationError describe por qué una línea (o el documento completo) es
// inválido. Line es el índice base cero de la línea ofensora, o -1 cuando el
// error aplica al documento completo (ej. sin líneas).
type ValidationError struct {
	Code    ValidationCode
	Line    int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Line >= 0 {
		return fmt.Sprintf("línea %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Unwrap permite errors.Is(err, domain.ErrInvalidInput) en los handlers.
func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

func newLineError(code ValidationCode, line int, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Line: line, Message: fmt.Sprintf(format, args...)}
}
