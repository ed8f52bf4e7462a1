package billing_test

import (
	"testing"

	"github.com/jhoicas/Comercial-api/internal/domain/billing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineaDe(cantidad, precio, tarifa string) billing.LineItem {
	return billing.LineItem{
		ProductID:   "prod-1",
		Description: "línea de prueba",
		Quantity:    decimal.RequireFromString(cantidad),
		UnitPrice:   decimal.RequireFromString(precio),
		TaxRate:     decimal.RequireFromString(tarifa),
	}
}

// TestComputeTotals_EscenarioCompleto reproduce el escenario de referencia:
// 2 x 100 al 10% y 1 x 50 exento deben dar subtotal 250.00, impuestos 20.00
// y total 270.00, con cada línea cuadrando por separado.
func TestComputeTotals_EscenarioCompleto(t *testing.T) {
	items := []billing.LineItem{
		lineaDe("2", "100", "10"),
		lineaDe("1", "50", "0"),
	}

	out := billing.ComputeTotals(items, 2)

	require.Len(t, out.Lines, 2)

	assert.Equal(t, "200.00", out.Lines[0].Subtotal.StringFixed(2))
	assert.Equal(t, "20.00", out.Lines[0].TaxAmount.StringFixed(2))
	assert.Equal(t, "220.00", out.Lines[0].Total.StringFixed(2))

	assert.Equal(t, "50.00", out.Lines[1].Subtotal.StringFixed(2))
	assert.Equal(t, "0.00", out.Lines[1].TaxAmount.StringFixed(2))
	assert.Equal(t, "50.00", out.Lines[1].Total.StringFixed(2))

	assert.Equal(t, "250.00", out.Totals.Subtotal.StringFixed(2))
	assert.Equal(t, "20.00", out.Totals.TaxTotal.StringFixed(2))
	assert.Equal(t, "270.00", out.Totals.GrandTotal.StringFixed(2))
}

// TestComputeTotals_RedondeoHalfUp verifica el caso frontera del redondeo:
// 3 x 0.105 = 0.315 debe redondear a 0.32 (half-up), nunca a 0.31.
func TestComputeTotals_RedondeoHalfUp(t *testing.T) {
	items := []billing.LineItem{lineaDe("3", "0.105", "0")}

	out := billing.ComputeTotals(items, 2)

	assert.Equal(t, "0.32", out.Lines[0].Subtotal.StringFixed(2),
		"0.315 debe redondear half-up a 0.32")
	assert.Equal(t, "0.32", out.Totals.GrandTotal.StringFixed(2))
}

// TestComputeTotals_Aditividad verifica el invariante central: después de
// redondear, Total = Subtotal + TaxAmount por línea y a nivel de documento,
// sin deriva de centavos, incluso con tarifas y cantidades incómodas.
func TestComputeTotals_Aditividad(t *testing.T) {
	casos := []struct {
		nombre string
		items  []billing.LineItem
	}{
		{"una línea con IVA 19", []billing.LineItem{lineaDe("7", "3.333", "19")}},
		{"tarifa fraccionaria", []billing.LineItem{lineaDe("1", "99.99", "7.5")}},
		{"varias líneas mezcladas", []billing.LineItem{
			lineaDe("2", "100", "10"),
			lineaDe("3", "0.105", "19"),
			lineaDe("11", "1.01", "5"),
			lineaDe("1", "0.01", "100"),
		}},
		{"cantidades decimales", []billing.LineItem{
			lineaDe("0.5", "19.99", "19"),
			lineaDe("2.25", "4.44", "5"),
		}},
	}

	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			out := billing.ComputeTotals(tc.items, 2)

			var sumaSubtotal, sumaImpuesto decimal.Decimal
			for i, l := range out.Lines {
				assert.True(t, l.Total.Equal(l.Subtotal.Add(l.TaxAmount)),
					"línea %d: total %s debe ser subtotal %s + impuesto %s",
					i, l.Total, l.Subtotal, l.TaxAmount)
				sumaSubtotal = sumaSubtotal.Add(l.Subtotal)
				sumaImpuesto = sumaImpuesto.Add(l.TaxAmount)
			}

			assert.True(t, out.Totals.Subtotal.Equal(sumaSubtotal),
				"subtotal del documento debe ser la suma de las líneas redondeadas")
			assert.True(t, out.Totals.TaxTotal.Equal(sumaImpuesto),
				"impuesto del documento debe ser la suma de las líneas redondeadas")
			assert.True(t, out.Totals.GrandTotal.Equal(out.Totals.Subtotal.Add(out.Totals.TaxTotal)),
				"grand total debe ser subtotal + impuestos exacto post-redondeo")
		})
	}
}

// TestComputeTotals_Idempotente verifica que dos invocaciones con el mismo
// input producen output idéntico byte a byte (requisito para recalcular
// totales al editar líneas).
func TestComputeTotals_Idempotente(t *testing.T) {
	items := []billing.LineItem{
		lineaDe("3", "0.105", "19"),
		lineaDe("2", "100", "10"),
	}

	a := billing.ComputeTotals(items, 2)
	b := billing.ComputeTotals(items, 2)

	require.Len(t, b.Lines, len(a.Lines))
	for i := range a.Lines {
		assert.Equal(t, a.Lines[i].Subtotal.String(), b.Lines[i].Subtotal.String())
		assert.Equal(t, a.Lines[i].TaxAmount.String(), b.Lines[i].TaxAmount.String())
		assert.Equal(t, a.Lines[i].Total.String(), b.Lines[i].Total.String())
	}
	assert.Equal(t, a.Totals.Subtotal.String(), b.Totals.Subtotal.String())
	assert.Equal(t, a.Totals.TaxTotal.String(), b.Totals.TaxTotal.String())
	assert.Equal(t, a.Totals.GrandTotal.String(), b.Totals.GrandTotal.String())
}

// TestComputeTotals_PrecisionConfigurable verifica que la precisión se
// respeta (ej. COP sin centavos = precisión 0) y que negativa usa el default.
func TestComputeTotals_PrecisionConfigurable(t *testing.T) {
	items := []billing.LineItem{lineaDe("3", "0.105", "0")}

	cero := billing.ComputeTotals(items, 0)
	assert.Equal(t, "0", cero.Lines[0].Subtotal.String(), "precisión 0: 0.315 redondea a 0")

	def := billing.ComputeTotals(items, -1)
	assert.Equal(t, "0.32", def.Lines[0].Subtotal.StringFixed(2), "precisión negativa usa DefaultPrecision")
}

// TestComputeTotals_ImpuestoSobreSubtotalCrudo fija el orden de las
// operaciones: el impuesto se calcula sobre cantidad*precio sin redondear.
// Con 3 x 0.105 al 19%: crudo 0.315, impuesto = round(0.05985) = 0.06,
// subtotal = 0.32, total = 0.38.
func TestComputeTotals_ImpuestoSobreSubtotalCrudo(t *testing.T) {
	items := []billing.LineItem{lineaDe("3", "0.105", "19")}

	out := billing.ComputeTotals(items, 2)

	assert.Equal(t, "0.32", out.Lines[0].Subtotal.StringFixed(2))
	assert.Equal(t, "0.06", out.Lines[0].TaxAmount.StringFixed(2))
	assert.Equal(t, "0.38", out.Lines[0].Total.StringFixed(2))
}

func TestComputeTotals_SinLineas(t *testing.T) {
	out := billing.ComputeTotals(nil, 2)

	assert.Empty(t, out.Lines)
	assert.True(t, out.Totals.GrandTotal.IsZero())
}
