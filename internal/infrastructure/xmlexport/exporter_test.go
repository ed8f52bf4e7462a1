package xmlexport

import (
	"strings"
	"testing"
	"time"

	appbilling "github.com/jhoicas/Comercial-api/internal/application/billing"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func documentoDePrueba() (*entity.Document, *entity.Company, appbilling.PartyInfo, []*entity.DocumentLine) {
	doc := &entity.Document{
		ID:          "doc-1",
		CompanyID:   "co-1",
		DocType:     entity.DocTypeInvoice,
		Number:      "FAC-100",
		Date:        time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Subtotal:    decimal.RequireFromString("250.00"),
		TaxTotal:    decimal.RequireFromString("20.00"),
		GrandTotal:  decimal.RequireFromString("270.00"),
		Status:      entity.DocStatusIssued,
		Fingerprint: "abc123",
	}
	company := &entity.Company{ID: "co-1", Name: "ACME SAS", NIT: "900123456"}
	party := appbilling.PartyInfo{Name: "Cliente Uno", TaxID: "800987654"}
	lines := []*entity.DocumentLine{
		{
			ID: "l1", DocumentID: "doc-1", Description: "Servicio A", Position: 0,
			Quantity:  decimal.RequireFromString("2"),
			UnitPrice: decimal.RequireFromString("100"),
			TaxRate:   decimal.RequireFromString("10"),
			Subtotal:  decimal.RequireFromString("200.00"),
			TaxAmount: decimal.RequireFromString("20.00"),
			Total:     decimal.RequireFromString("220.00"),
		},
		{
			ID: "l2", DocumentID: "doc-1", ProductID: "prod-1", Description: "Servicio B", Position: 1,
			Quantity:  decimal.RequireFromString("1"),
			UnitPrice: decimal.RequireFromString("50"),
			TaxRate:   decimal.Zero,
			Subtotal:  decimal.RequireFromString("50.00"),
			TaxAmount: decimal.Zero,
			Total:     decimal.RequireFromString("50.00"),
		},
	}
	return doc, company, party, lines
}

func TestExport_ContenidoUBL(t *testing.T) {
	doc, company, party, lines := documentoDePrueba()

	xmlBytes, digest, err := NewEtreeDocumentExporter().Export(doc, company, party, lines)
	require.NoError(t, err)

	out := string(xmlBytes)
	assert.Contains(t, out, "<Invoice")
	assert.Contains(t, out, "<cbc:ID>FAC-100</cbc:ID>")
	assert.Contains(t, out, `<cbc:UUID schemeName="SHA-384">abc123</cbc:UUID>`)
	assert.Contains(t, out, "<cbc:IssueDate>2025-03-15</cbc:IssueDate>")
	assert.Contains(t, out, `<cbc:PayableAmount currencyID="COP">270.00</cbc:PayableAmount>`)
	assert.Contains(t, out, "<cbc:RegistrationName>ACME SAS</cbc:RegistrationName>")
	assert.Contains(t, out, "<cbc:Description>Servicio A</cbc:Description>")
	// una línea por cada detalle
	assert.Equal(t, 2, strings.Count(out, "<cac:DocumentLine>"))

	assert.Len(t, digest, 64, "digest SHA-256 hex")
}

func TestExport_DigestDeterminista(t *testing.T) {
	doc, company, party, lines := documentoDePrueba()
	exporter := NewEtreeDocumentExporter()

	_, digest1, err := exporter.Export(doc, company, party, lines)
	require.NoError(t, err)
	_, digest2, err := exporter.Export(doc, company, party, lines)
	require.NoError(t, err)
	assert.Equal(t, digest1, digest2)

	// cualquier cambio de contenido cambia el digest
	doc.GrandTotal = decimal.RequireFromString("271.00")
	_, digest3, err := exporter.Export(doc, company, party, lines)
	require.NoError(t, err)
	assert.NotEqual(t, digest1, digest3)
}

func TestExport_RaizSegunTipo(t *testing.T) {
	doc, company, party, lines := documentoDePrueba()
	exporter := NewEtreeDocumentExporter()

	doc.DocType = entity.DocTypeQuote
	out, _, err := exporter.Export(doc, company, party, lines)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<Quotation")

	doc.DocType = entity.DocTypePurchaseOrder
	out, _, err = exporter.Export(doc, company, party, lines)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<Order")
}

func TestExport_SinDocumentoFalla(t *testing.T) {
	_, _, err := NewEtreeDocumentExporter().Export(nil, nil, appbilling.PartyInfo{}, nil)
	assert.Error(t, err)
}
