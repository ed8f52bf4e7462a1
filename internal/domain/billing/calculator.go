package billing

import "github.com/shopspring/decimal"

// ComputeTotals calcula los valores derivados por línea y los agregados del
// documento. Las líneas deben venir ya validadas por Normalize; con input
// validado no existe camino de error.
//
// Por línea, con redondeo half-up (shopspring Round: mitad se aleja de cero)
// a la precisión dada:
//
//	Subtotal  = round(Quantity * UnitPrice)
//	TaxAmount = round(Quantity * UnitPrice * TaxRate / 100)
//	Total     = Subtotal + TaxAmount
//
// El impuesto se redondea sobre el subtotal crudo y el total se arma sumando
// los dos valores ya redondeados; redondear Subtotal*(1+tarifa) produciría el
// clásico descuadre de doble redondeo ("mi factura no suma").
//
// Los totales del documento son la suma de los valores por línea ya
// redondeados, nunca se recalculan desde las tarifas: el total siempre
// coincide con la suma literal de las líneas impresas.
//
// precision < 0 usa DefaultPrecision. Determinista: el mismo input produce
// siempre el mismo output, byte a byte.
func ComputeTotals(items []LineItem, precision int32) Computation {
	if precision < 0 {
		precision = DefaultPrecision
	}

	lines := make([]ComputedLine, 0, len(items))
	var subtotal, taxTotal decimal.Decimal
	for _, it := range items {
		raw := it.Quantity.Mul(it.UnitPrice)
		lineSubtotal := raw.Round(precision)
		lineTax := raw.Mul(it.TaxRate).Div(hundred).Round(precision)
		lines = append(lines, ComputedLine{
			LineItem:  it,
			Subtotal:  lineSubtotal,
			TaxAmount: lineTax,
			Total:     lineSubtotal.Add(lineTax),
		})
		subtotal = subtotal.Add(lineSubtotal)
		taxTotal = taxTotal.Add(lineTax)
	}

	return Computation{
		Lines: lines,
		Totals: DocumentTotals{
			Subtotal:   subtotal,
			TaxTotal:   taxTotal,
			GrandTotal: subtotal.Add(taxTotal),
		},
	}
}
