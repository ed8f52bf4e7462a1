package entity

import "github.com/shopspring/decimal"

// DocumentLine representa una línea de un documento comercial con sus
// valores ya calculados. Invariante post-redondeo: Total = Subtotal + TaxAmount.
type DocumentLine struct {
	ID          string
	DocumentID  string
	ProductID   string // vacío para líneas de texto libre (requieren Description)
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal // porcentaje [0,100]
	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	Total       decimal.Decimal
	Position    int // orden de la línea dentro del documento
}
