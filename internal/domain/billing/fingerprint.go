package billing

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// FingerprintParams contiene los datos de la huella del documento en orden
// estricto. La huella identifica de forma única el contenido económico del
// documento: si cambian las líneas (y por tanto los totales) cambia la huella.
type FingerprintParams struct {
	DocType    string          // QUOTE | PURCHASE_ORDER | INVOICE
	Number     string          // número del documento (sin espacios)
	FecDoc     string          // fecha de emisión YYYY-MM-DD
	Subtotal   decimal.Decimal // total sin impuestos
	TaxTotal   decimal.Decimal // total de impuestos
	GrandTotal decimal.Decimal // total a pagar
	NitEmisor  string          // NIT de la empresa emisora (solo dígitos)
	NitTercero string          // NIT/Cédula del cliente o proveedor (solo dígitos)
}

// FingerprintService calcula la huella SHA-384 de un documento comercial.
type FingerprintService struct{}

// NewFingerprintService crea el servicio.
func NewFingerprintService() *FingerprintService {
	return &FingerprintService{}
}

var wsPattern = regexp.MustCompile(`\s+`)

// Calculate genera la huella (hash hexadecimal de 96 caracteres) a partir de
// los parámetros. Fórmula (sin separadores):
//
//	DocType + Number + FecDoc + Subtotal + TaxTotal + GrandTotal + NitEmisor + NitTercero
//
// Algoritmo: SHA-384. Montos sin separador de miles, punto decimal, dos
// decimales (ej: 1500.00), independiente de la precisión del motor para que
// la huella sea estable.
func (s *FingerprintService) Calculate(p *FingerprintParams) (string, error) {
	if p == nil {
		return "", fmt.Errorf("billing: FingerprintParams es obligatorio")
	}
	number := wsPattern.ReplaceAllString(strings.TrimSpace(p.Number), "")
	if number == "" {
		return "", fmt.Errorf("billing: Number es obligatorio para la huella")
	}
	if p.DocType == "" {
		return "", fmt.Errorf("billing: DocType es obligatorio para la huella")
	}
	if p.FecDoc == "" {
		return "", fmt.Errorf("billing: FecDoc es obligatoria (YYYY-MM-DD)")
	}
	nitEmisor := onlyDigits(p.NitEmisor)
	if nitEmisor == "" {
		return "", fmt.Errorf("billing: NitEmisor es obligatorio para la huella")
	}
	nitTercero := onlyDigits(p.NitTercero)

	// Orden estricto, sin separadores
	cadena := p.DocType +
		number +
		p.FecDoc +
		formatAmount(p.Subtotal) +
		formatAmount(p.TaxTotal) +
		formatAmount(p.GrandTotal) +
		nitEmisor +
		nitTercero

	hash := sha512.Sum384([]byte(cadena))
	return hex.EncodeToString(hash[:]), nil
}

// formatAmount formatea montos para la cadena de la huella: sin separador de
// miles, punto decimal, 2 decimales (ej: 1500.00).
func formatAmount(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

// onlyDigits deja solo dígitos 0-9 (para NIT y documento de identidad).
func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
