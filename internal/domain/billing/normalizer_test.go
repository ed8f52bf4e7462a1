package billing_test

import (
	"errors"
	"testing"

	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/billing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawDe(cantidad, precio, tarifa string) billing.RawLineItem {
	return billing.RawLineItem{
		ProductID: "prod-1",
		Quantity:  decimal.RequireFromString(cantidad),
		UnitPrice: decimal.RequireFromString(precio),
		TaxRate:   decimal.RequireFromString(tarifa),
	}
}

func TestNormalize_DocumentoVacio(t *testing.T) {
	_, err := billing.Normalize(nil)

	var vErr *billing.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, billing.CodeEmptyDocument, vErr.Code)
	assert.Equal(t, -1, vErr.Line, "error de documento completo lleva índice -1")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput),
		"ValidationError debe desenvolverse a ErrInvalidInput")
}

// TestNormalize_CantidadInvalida verifica que cantidad <= 0 se rechaza con el
// índice de la línea ofensora, sin importar que las demás líneas sean válidas.
func TestNormalize_CantidadInvalida(t *testing.T) {
	casos := []struct {
		nombre   string
		cantidad string
	}{
		{"negativa", "-1"},
		{"cero", "0"},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			raw := []billing.RawLineItem{
				rawDe("2", "100", "10"), // válida
				rawDe(tc.cantidad, "50", "0"),
			}

			_, err := billing.Normalize(raw)

			var vErr *billing.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, billing.CodeInvalidQuantity, vErr.Code)
			assert.Equal(t, 1, vErr.Line, "debe señalar la línea ofensora")
		})
	}
}

func TestNormalize_PrecioNegativo(t *testing.T) {
	raw := []billing.RawLineItem{rawDe("1", "-0.01", "0")}

	_, err := billing.Normalize(raw)

	var vErr *billing.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, billing.CodeInvalidPrice, vErr.Code)
	assert.Equal(t, 0, vErr.Line)
}

func TestNormalize_TarifaFueraDeRango(t *testing.T) {
	casos := []string{"-1", "100.01", "150"}
	for _, tarifa := range casos {
		t.Run(tarifa, func(t *testing.T) {
			raw := []billing.RawLineItem{rawDe("1", "10", tarifa)}

			_, err := billing.Normalize(raw)

			var vErr *billing.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, billing.CodeInvalidTaxRate, vErr.Code)
		})
	}
}

// TestNormalize_TarifasLimite verifica que 0 y 100 son tarifas válidas
// (los extremos del rango están incluidos).
func TestNormalize_TarifasLimite(t *testing.T) {
	raw := []billing.RawLineItem{
		rawDe("1", "10", "0"),
		rawDe("1", "10", "100"),
	}

	items, err := billing.Normalize(raw)

	require.NoError(t, err)
	require.Len(t, items, 2)
}

// TestNormalize_SinIdentificacion: una línea sin producto requiere descripción.
func TestNormalize_SinIdentificacion(t *testing.T) {
	raw := []billing.RawLineItem{{
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.NewFromInt(10),
	}}

	_, err := billing.Normalize(raw)

	var vErr *billing.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, billing.CodeMissingIdentification, vErr.Code)
}

// TestNormalize_DescripcionLibre: una línea de texto libre (sin producto)
// con descripción es válida.
func TestNormalize_DescripcionLibre(t *testing.T) {
	raw := []billing.RawLineItem{{
		Description: "Servicio de instalación",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromInt(150),
	}}

	items, err := billing.Normalize(raw)

	require.NoError(t, err)
	assert.Equal(t, "Servicio de instalación", items[0].Description)
	assert.True(t, items[0].TaxRate.IsZero(), "tarifa omitida queda en 0 (exento)")
}

// TestNormalize_DescripcionPorDefecto: sin descripción, se usa la referencia
// del producto como fallback.
func TestNormalize_DescripcionPorDefecto(t *testing.T) {
	raw := []billing.RawLineItem{rawDe("1", "10", "19")}

	items, err := billing.Normalize(raw)

	require.NoError(t, err)
	assert.Equal(t, "prod-1", items[0].Description)
}

// TestNormalize_NoMutaInput verifica que Normalize es pura: el slice crudo
// queda intacto.
func TestNormalize_NoMutaInput(t *testing.T) {
	raw := []billing.RawLineItem{rawDe("1", "10", "19")}
	original := raw[0]

	_, err := billing.Normalize(raw)

	require.NoError(t, err)
	assert.Equal(t, original, raw[0])
}
