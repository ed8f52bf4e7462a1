package billing

import (
	"context"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// DocumentsTxRunner ejecuta fn dentro de una transacción de base de datos.
// El repo que recibe fn opera sobre la misma tx: cabecera y líneas se
// persisten atómicamente o no se persiste nada.
type DocumentsTxRunner interface {
	RunDocuments(ctx context.Context, fn func(docRepo repository.DocumentRepository) error) error
}

// PartyInfo datos mínimos del tercero (cliente o proveedor) para PDF/XML.
type PartyInfo struct {
	Name  string
	TaxID string
	Email string
}

// DocumentPDFGenerator genera la representación gráfica de un documento comercial.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc *entity.Document, company *entity.Company, party PartyInfo, lines []*entity.DocumentLine) ([]byte, error)
}

// DocumentExporter serializa un documento a XML canónico.
// Retorna el XML y el digest SHA-256 hex de su forma canónica (C14N).
type DocumentExporter interface {
	Export(doc *entity.Document, company *entity.Company, party PartyInfo, lines []*entity.DocumentLine) (xmlBytes []byte, digest string, err error)
}
