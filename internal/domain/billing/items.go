// Package billing contiene el motor de cálculo de documentos comerciales:
// normalización/validación de líneas, cálculo de subtotales/impuestos/totales
// con aritmética decimal de punto fijo y una sola política de redondeo
// (half-up), y la huella SHA-384 del documento.
//
// Todo el paquete es puro: sin estado, sin I/O, sin dependencias de
// persistencia. El mismo input produce siempre el mismo output, byte a byte,
// lo que permite recalcular totales de forma idempotente cuando se editan
// las líneas de un documento.
package billing

import "github.com/shopspring/decimal"

// DefaultPrecision decimales de la moneda por defecto (centavos).
const DefaultPrecision int32 = 2

// RawLineItem es la línea tal como llega del caller, antes de validar.
// TaxRate es porcentaje [0,100]; el valor cero significa exento (0%).
type RawLineItem struct {
	ProductID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
}

// LineItem es una línea ya validada y normalizada. Inmutable una vez creada:
// el calculador nunca la modifica.
type LineItem struct {
	ProductID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal // porcentaje [0,100], ya con default aplicado
}

// ComputedLine es una línea con sus tres valores derivados, cada uno
// redondeado de forma independiente a la precisión configurada.
// Invariante: Total = Subtotal + TaxAmount exacto post-redondeo, porque
// Total se construye como la suma de los dos valores ya redondeados y no
// redondeando Subtotal*(1+tarifa) directamente.
type ComputedLine struct {
	LineItem
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// DocumentTotals son los agregados a nivel de documento. Se construyen
// sumando los valores por línea ya redondeados, de modo que el total del
// documento siempre coincide con la suma literal de lo que se imprime en
// cada línea.
type DocumentTotals struct {
	Subtotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
}

// Computation es el resultado completo del calculador.
type Computation struct {
	Lines  []ComputedLine
	Totals DocumentTotals
}
