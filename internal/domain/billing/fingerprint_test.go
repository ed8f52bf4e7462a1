package billing_test

import (
	"testing"

	"github.com/jhoicas/Comercial-api/internal/domain/billing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestFingerprint_VectorExacto valida que el cálculo SHA-384 de la huella
// produce el hash exacto esperado para parámetros conocidos.
//
// Si alguien modifica inadvertidamente la cadena de concatenación, el
// algoritmo o el formato de los montos, este test falla de inmediato.
//
// Vector calculado manualmente con SHA-384:
//
//	Cadena = DocType + Number + FecDoc + Subtotal + TaxTotal + GrandTotal +
//	         NitEmisor + NitTercero
//	       = "QUOTE" + "Q-0001" + "2025-03-15" + "250.00" + "20.00" +
//	         "270.00" + "900123456" + "800987654"
// ──────────────────────────────────────────────────────────────────────────────

const (
	testHuellaEsperada = "6e80ad0d1afa003579f45c139118d3d683c1a183f65b8b95b5acc93f7a0e7bfb04e1b2b621deec65ca58d2dba9a216b6"

	testNitEmisor  = "900123456"
	testNitTercero = "800987654"
)

func buildTestParams() *billing.FingerprintParams {
	return &billing.FingerprintParams{
		DocType:    "QUOTE",
		Number:     "Q-0001",
		FecDoc:     "2025-03-15",
		Subtotal:   decimal.NewFromInt(250),
		TaxTotal:   decimal.NewFromInt(20),
		GrandTotal: decimal.NewFromInt(270),
		NitEmisor:  testNitEmisor,
		NitTercero: testNitTercero,
	}
}

func TestFingerprint_VectorExacto(t *testing.T) {
	svc := billing.NewFingerprintService()

	huella, err := svc.Calculate(buildTestParams())

	require.NoError(t, err, "Calculate no debe retornar error con parámetros válidos")
	assert.Equal(t, testHuellaEsperada, huella,
		"la huella debe coincidir exactamente con el vector SHA-384 de referencia")
}

// TestFingerprint_Determinista verifica que llamar Calculate dos veces con los
// mismos parámetros produce siempre el mismo hash.
func TestFingerprint_Determinista(t *testing.T) {
	svc := billing.NewFingerprintService()

	h1, err1 := svc.Calculate(buildTestParams())
	h2, err2 := svc.Calculate(buildTestParams())

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, h1, h2, "el mismo input siempre debe producir la misma huella")
}

// TestFingerprint_SensibleAlNumero verifica que cambiar el número del
// documento produce un hash distinto.
func TestFingerprint_SensibleAlNumero(t *testing.T) {
	svc := billing.NewFingerprintService()

	p1 := buildTestParams()
	p2 := buildTestParams()
	p2.Number = "Q-0002" // solo cambia el número

	h1, _ := svc.Calculate(p1)
	h2, _ := svc.Calculate(p2)

	assert.NotEqual(t, h1, h2, "documentos con números distintos deben tener huellas distintas")
}

// TestFingerprint_SensibleAlTipo verifica que el mismo número en tipos
// distintos (namespaces independientes) produce huellas distintas.
func TestFingerprint_SensibleAlTipo(t *testing.T) {
	svc := billing.NewFingerprintService()

	pQuote := buildTestParams()
	pOrden := buildTestParams()
	pOrden.DocType = "PURCHASE_ORDER"

	hQuote, _ := svc.Calculate(pQuote)
	hOrden, _ := svc.Calculate(pOrden)

	assert.NotEqual(t, hQuote, hOrden)
}

// TestFingerprint_SensibleALosTotales verifica que editar las líneas (y por
// tanto los totales) cambia la huella.
func TestFingerprint_SensibleALosTotales(t *testing.T) {
	svc := billing.NewFingerprintService()

	p1 := buildTestParams()
	p2 := buildTestParams()
	p2.GrandTotal = decimal.NewFromFloat(270.01)

	h1, _ := svc.Calculate(p1)
	h2, _ := svc.Calculate(p2)

	assert.NotEqual(t, h1, h2)
}

// ── Errores de validación ─────────────────────────────────────────────────────

func TestFingerprint_ErrorSiNilParams(t *testing.T) {
	svc := billing.NewFingerprintService()
	_, err := svc.Calculate(nil)
	assert.Error(t, err, "Calculate con nil debe retornar error")
}

func TestFingerprint_ErrorSiNumeroVacio(t *testing.T) {
	svc := billing.NewFingerprintService()
	p := buildTestParams()
	p.Number = "   "
	_, err := svc.Calculate(p)
	assert.Error(t, err, "Calculate sin Number debe retornar error")
}

func TestFingerprint_ErrorSiNitEmisorVacio(t *testing.T) {
	svc := billing.NewFingerprintService()
	p := buildTestParams()
	p.NitEmisor = "sin-digitos"
	_, err := svc.Calculate(p)
	assert.Error(t, err, "NitEmisor sin dígitos debe retornar error")
}

// TestFingerprint_LongitudHash valida que el hash SHA-384 tenga exactamente
// 96 caracteres hexadecimales.
func TestFingerprint_LongitudHash(t *testing.T) {
	svc := billing.NewFingerprintService()
	huella, err := svc.Calculate(buildTestParams())
	require.NoError(t, err)
	assert.Len(t, huella, 96, "la huella debe tener 96 caracteres hexadecimales (SHA-384)")
}

// TestFingerprint_NumeroConEspacios verifica que los espacios del número se
// eliminan antes de concatenar (misma huella con o sin espacios).
func TestFingerprint_NumeroConEspacios(t *testing.T) {
	svc := billing.NewFingerprintService()

	p1 := buildTestParams()
	p2 := buildTestParams()
	p2.Number = " Q-0001 "

	h1, _ := svc.Calculate(p1)
	h2, _ := svc.Calculate(p2)

	assert.Equal(t, h1, h2)
}
