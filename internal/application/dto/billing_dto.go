package dto

import "github.com/shopspring/decimal"

// DocumentLineRequest línea cruda de un documento comercial.
// UnitPrice y TaxRate son opcionales cuando hay ProductID: se heredan del
// catálogo (precio de lista y tarifa por defecto del producto).
type DocumentLineRequest struct {
	ProductID   string           `json:"product_id,omitempty"`
	Description string           `json:"description,omitempty"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	TaxRate     *decimal.Decimal `json:"tax_rate,omitempty"` // porcentaje [0,100]
}

// CreateDocumentRequest body para POST /api/documents.
// Number opcional: si va vacío se genera <prefijo>-<unix> según el tipo.
type CreateDocumentRequest struct {
	DocType string                `json:"doc_type"` // QUOTE | PURCHASE_ORDER | INVOICE
	Number  string                `json:"number,omitempty"`
	PartyID string                `json:"party_id"` // cliente o proveedor según el tipo
	Date    string                `json:"date,omitempty"` // YYYY-MM-DD; vacío = hoy
	Notes   string                `json:"notes,omitempty"`
	Lines   []DocumentLineRequest `json:"lines"`
}

// ReplaceLinesRequest body para PUT /api/documents/:id/lines.
// Reemplaza todas las líneas y recalcula totales de forma idempotente.
type ReplaceLinesRequest struct {
	Lines []DocumentLineRequest `json:"lines"`
}

// DocumentLineResponse línea calculada en respuestas.
type DocumentLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	Total       decimal.Decimal `json:"total"`
	Position    int             `json:"position"`
}

// DocumentTotalsResponse agregados del documento.
type DocumentTotalsResponse struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxTotal   decimal.Decimal `json:"tax_total"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// DocumentResponse documento completo para respuestas.
type DocumentResponse struct {
	ID          string                 `json:"id"`
	CompanyID   string                 `json:"company_id"`
	DocType     string                 `json:"doc_type"`
	Number      string                 `json:"number"`
	PartyID     string                 `json:"party_id"`
	PartyName   string                 `json:"party_name,omitempty"`
	Date        string                 `json:"date"`
	Status      string                 `json:"status"`
	Fingerprint string                 `json:"fingerprint,omitempty"`
	Notes       string                 `json:"notes,omitempty"`
	Lines       []DocumentLineResponse `json:"lines"`
	Totals      DocumentTotalsResponse `json:"totals"`
}

// DocumentSummaryResponse cabecera sin líneas, para listados.
type DocumentSummaryResponse struct {
	ID         string          `json:"id"`
	DocType    string          `json:"doc_type"`
	Number     string          `json:"number"`
	PartyID    string          `json:"party_id"`
	Date       string          `json:"date"`
	Status     string          `json:"status"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}
