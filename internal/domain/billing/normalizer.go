package billing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Normalize valida cada línea cruda y devuelve las líneas normalizadas.
// Reglas:
//   - el documento debe tener al menos una línea
//   - Quantity > 0
//   - UnitPrice >= 0
//   - TaxRate en [0,100]; el valor cero queda como 0% (exento)
//   - sin ProductID se exige Description no vacía (identificación de la línea)
//
// Falla rápido: retorna el primer error encontrado con el índice de la línea.
// Puro, sin efectos secundarios.
func Normalize(raw []RawLineItem) ([]LineItem, error) {
	if len(raw) == 0 {
		return nil, &ValidationError{
			Code:    CodeEmptyDocument,
			Line:    -1,
			Message: "el documento debe tener al menos una línea",
		}
	}

	items := make([]LineItem, 0, len(raw))
	for i, r := range raw {
		if !r.Quantity.GreaterThan(decimal.Zero) {
			return nil, newLineError(CodeInvalidQuantity, i,
				"cantidad debe ser mayor que cero (recibido %s)", r.Quantity.String())
		}
		if r.UnitPrice.LessThan(decimal.Zero) {
			return nil, newLineError(CodeInvalidPrice, i,
				"precio unitario no puede ser negativo (recibido %s)", r.UnitPrice.String())
		}
		if r.TaxRate.LessThan(decimal.Zero) || r.TaxRate.GreaterThan(hundred) {
			return nil, newLineError(CodeInvalidTaxRate, i,
				"tarifa de impuesto fuera de rango [0,100] (recibido %s)", r.TaxRate.String())
		}
		if r.ProductID == "" && r.Description == "" {
			return nil, newLineError(CodeMissingIdentification, i,
				"la línea requiere producto o descripción")
		}

		description := r.Description
		if description == "" {
			description = r.ProductID
		}
		items = append(items, LineItem{
			ProductID:   r.ProductID,
			Description: description,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			TaxRate:     r.TaxRate,
		})
	}
	return items, nil
}
