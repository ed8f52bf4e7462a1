package billing

import (
	"errors"
	"fmt"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ErrInvalidDocument agrupa errores de consistencia de un documento persistido.
var ErrInvalidDocument = errors.New("documento inconsistente")

// VerifyDocument comprueba que los totales de la cabecera coinciden con la
// suma de sus líneas y que cada línea cumple Total = Subtotal + TaxAmount.
// Se ejecuta antes de generar PDF o XML: un documento que no cuadra nunca
// debe salir del sistema.
func VerifyDocument(doc *entity.Document, lines []*entity.DocumentLine) error {
	if doc == nil {
		return fmt.Errorf("%w: documento nulo", ErrInvalidDocument)
	}
	var errs []error

	if len(lines) == 0 {
		errs = append(errs, fmt.Errorf("%w: el documento debe tener al menos una línea", ErrInvalidDocument))
	} else {
		var sumSubtotal, sumTax decimal.Decimal
		for i, l := range lines {
			if !l.Total.Equal(l.Subtotal.Add(l.TaxAmount)) {
				errs = append(errs, fmt.Errorf("línea %d: total (%s) no es subtotal + impuesto (%s)",
					i, l.Total.String(), l.Subtotal.Add(l.TaxAmount).String()))
			}
			sumSubtotal = sumSubtotal.Add(l.Subtotal)
			sumTax = sumTax.Add(l.TaxAmount)
		}
		if !doc.Subtotal.Equal(sumSubtotal) {
			errs = append(errs, fmt.Errorf("subtotal (%s) no coincide con la suma de subtotales de líneas (%s)",
				doc.Subtotal.String(), sumSubtotal.String()))
		}
		if !doc.TaxTotal.Equal(sumTax) {
			errs = append(errs, fmt.Errorf("tax total (%s) no coincide con la suma de impuestos por línea (%s)",
				doc.TaxTotal.String(), sumTax.String()))
		}
		expectedGrand := sumSubtotal.Add(sumTax)
		if !doc.GrandTotal.Equal(expectedGrand) {
			errs = append(errs, fmt.Errorf("grand total (%s) no coincide con subtotal + impuestos (%s)",
				doc.GrandTotal.String(), expectedGrand.String()))
		}
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidDocument}, errs...)...)
	}
	return nil
}
