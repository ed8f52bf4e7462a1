// Package xmlexport serializa documentos comerciales a XML con vocabulario
// UBL (cbc/cac) para intercambio con sistemas contables externos. Junto al
// XML se entrega el digest SHA-256 de su forma canónica (C14N): dos archivos
// con el mismo contenido lógico producen el mismo digest aunque difieran en
// espacios o en el orden de los atributos.
package xmlexport

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	appbilling "github.com/jhoicas/Comercial-api/internal/application/billing"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// Namespaces UBL 2.1 (componentes básicos y agregados).
const (
	nsCbc = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
	nsCac = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"

	currencyCode = "COP"
)

// rootName elemento raíz según el tipo de documento.
func rootName(docType string) string {
	switch docType {
	case entity.DocTypePurchaseOrder:
		return "Order"
	case entity.DocTypeInvoice:
		return "Invoice"
	default:
		return "Quotation"
	}
}

var _ appbilling.DocumentExporter = (*EtreeDocumentExporter)(nil)

// EtreeDocumentExporter implementa billing.DocumentExporter con etree.
type EtreeDocumentExporter struct{}

// NewEtreeDocumentExporter construye el exportador.
func NewEtreeDocumentExporter() *EtreeDocumentExporter { return &EtreeDocumentExporter{} }

// Export genera el XML del documento y el digest SHA-256 hex de su forma
// canónica. El fingerprint SHA-384 del documento viaja en cbc:UUID para que
// el receptor pueda cotejarlo contra los totales.
func (e *EtreeDocumentExporter) Export(
	doc *entity.Document,
	company *entity.Company,
	party appbilling.PartyInfo,
	lines []*entity.DocumentLine,
) ([]byte, string, error) {
	if doc == nil || company == nil {
		return nil, "", fmt.Errorf("xmlexport: documento y empresa son obligatorios")
	}

	d := etree.NewDocument()
	d.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := d.CreateElement(rootName(doc.DocType))
	root.CreateAttr("xmlns:cbc", nsCbc)
	root.CreateAttr("xmlns:cac", nsCac)

	root.CreateElement("cbc:ID").SetText(doc.Number)
	uuid := root.CreateElement("cbc:UUID")
	uuid.CreateAttr("schemeName", "SHA-384")
	uuid.SetText(doc.Fingerprint)
	root.CreateElement("cbc:IssueDate").SetText(doc.Date.Format("2006-01-02"))
	root.CreateElement("cbc:DocumentStatusCode").SetText(doc.Status)
	if doc.Notes != "" {
		root.CreateElement("cbc:Note").SetText(doc.Notes)
	}
	root.CreateElement("cbc:DocumentCurrencyCode").SetText(currencyCode)
	root.CreateElement("cbc:LineCountNumeric").SetText(fmt.Sprintf("%d", len(lines)))

	supplier := root.CreateElement("cac:AccountingSupplierParty")
	addParty(supplier, company.Name, company.NIT)

	customerEl := root.CreateElement("cac:AccountingCustomerParty")
	addParty(customerEl, party.Name, party.TaxID)

	taxTotal := root.CreateElement("cac:TaxTotal")
	addAmount(taxTotal, "cbc:TaxAmount", doc.TaxTotal)

	monetary := root.CreateElement("cac:LegalMonetaryTotal")
	addAmount(monetary, "cbc:LineExtensionAmount", doc.Subtotal)
	addAmount(monetary, "cbc:TaxInclusiveAmount", doc.GrandTotal)
	addAmount(monetary, "cbc:PayableAmount", doc.GrandTotal)

	for _, l := range lines {
		lineEl := root.CreateElement("cac:DocumentLine")
		lineEl.CreateElement("cbc:ID").SetText(fmt.Sprintf("%d", l.Position+1))
		qty := lineEl.CreateElement("cbc:InvoicedQuantity")
		qty.SetText(l.Quantity.String())
		addAmount(lineEl, "cbc:LineExtensionAmount", l.Subtotal)

		lineTax := lineEl.CreateElement("cac:TaxTotal")
		addAmount(lineTax, "cbc:TaxAmount", l.TaxAmount)
		lineTax.CreateElement("cbc:Percent").SetText(l.TaxRate.String())

		item := lineEl.CreateElement("cac:Item")
		item.CreateElement("cbc:Description").SetText(l.Description)
		if l.ProductID != "" {
			ident := item.CreateElement("cac:SellersItemIdentification")
			ident.CreateElement("cbc:ID").SetText(l.ProductID)
		}
		price := lineEl.CreateElement("cac:Price")
		addAmount(price, "cbc:PriceAmount", l.UnitPrice)
	}

	d.Indent(2)
	xmlBytes, err := d.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("xmlexport: serializar: %w", err)
	}

	digest, err := canonicalDigest(xmlBytes)
	if err != nil {
		return nil, "", err
	}
	return xmlBytes, digest, nil
}

func addParty(parent *etree.Element, name, taxID string) {
	p := parent.CreateElement("cac:Party")
	legal := p.CreateElement("cac:PartyLegalEntity")
	legal.CreateElement("cbc:RegistrationName").SetText(name)
	id := legal.CreateElement("cbc:CompanyID")
	id.CreateAttr("schemeName", "NIT")
	id.SetText(taxID)
}

func addAmount(parent *etree.Element, tag string, amount decimal.Decimal) {
	el := parent.CreateElement(tag)
	el.CreateAttr("currencyID", currencyCode)
	el.SetText(amount.Round(2).StringFixed(2))
}

// canonicalDigest canonicaliza el XML (C14N) y retorna el SHA-256 hex.
func canonicalDigest(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("xmlexport: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
