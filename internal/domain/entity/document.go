package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento comercial. Cada tipo numera de forma independiente:
// puede existir la cotización "Q-0001" y la orden de compra "Q-0001" a la vez.
const (
	DocTypeQuote         = "QUOTE"
	DocTypePurchaseOrder = "PURCHASE_ORDER"
	DocTypeInvoice       = "INVOICE"
)

// Estados del documento.
const (
	DocStatusIssued    = "ISSUED"
	DocStatusCancelled = "CANCELLED"
)

// ValidDocType indica si t es un tipo de documento conocido.
func ValidDocType(t string) bool {
	switch t {
	case DocTypeQuote, DocTypePurchaseOrder, DocTypeInvoice:
		return true
	}
	return false
}

// Document representa la cabecera de un documento comercial (cotización,
// orden de compra o factura). Los totales son derivados: siempre salen del
// motor de cálculo, nunca se escriben a mano.
type Document struct {
	ID          string
	CompanyID   string
	DocType     string
	Number      string // único por (company, doc_type)
	PartyID     string // Customer (QUOTE/INVOICE) o Supplier (PURCHASE_ORDER)
	Date        time.Time
	Subtotal    decimal.Decimal
	TaxTotal    decimal.Decimal
	GrandTotal  decimal.Decimal
	Status      string
	Fingerprint string // SHA-384 sobre los campos canónicos (ver domain/billing)
	Notes       string
	CreatedBy   string // User.ID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
