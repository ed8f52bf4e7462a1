package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Comercial-api/internal/domain"
	domainbilling "github.com/jhoicas/Comercial-api/internal/domain/billing"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// ExportUseCase exporta un documento comercial como XML con digest canónico,
// pensado para intercambio con sistemas contables externos. Igual que el PDF,
// verifica la consistencia aritmética antes de exportar.
type ExportUseCase struct {
	docRepo      repository.DocumentRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	exporter     DocumentExporter
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	docRepo repository.DocumentRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	exporter DocumentExporter,
) *ExportUseCase {
	return &ExportUseCase{
		docRepo:      docRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		exporter:     exporter,
	}
}

// ExportDocumentXML genera el XML del documento y el digest SHA-256 de su
// forma canónica (C14N). El digest permite al receptor verificar que el
// archivo no fue alterado en tránsito.
func (uc *ExportUseCase) ExportDocumentXML(
	ctx context.Context,
	companyID, documentID string,
) (xmlBytes []byte, digest, filename string, err error) {
	doc, err := uc.docRepo.GetByID(documentID)
	if err != nil {
		return nil, "", "", fmt.Errorf("export: obtener documento: %w", err)
	}
	if doc == nil {
		return nil, "", "", domain.ErrNotFound
	}
	if doc.CompanyID != companyID {
		return nil, "", "", domain.ErrForbidden
	}

	lines, err := uc.docRepo.GetLinesByDocumentID(documentID)
	if err != nil {
		return nil, "", "", fmt.Errorf("export: obtener líneas: %w", err)
	}
	if err := domainbilling.VerifyDocument(doc, lines); err != nil {
		return nil, "", "", err
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, "", "", fmt.Errorf("export: obtener empresa: %w", err)
	}
	party, err := uc.loadParty(doc)
	if err != nil {
		return nil, "", "", err
	}

	xmlBytes, digest, err = uc.exporter.Export(doc, company, party, lines)
	if err != nil {
		return nil, "", "", fmt.Errorf("export: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("%s_%s.xml", strings.ToLower(doc.DocType), doc.Number)
	return xmlBytes, digest, filename, nil
}

func (uc *ExportUseCase) loadParty(doc *entity.Document) (PartyInfo, error) {
	if doc.DocType == entity.DocTypePurchaseOrder {
		supplier, err := uc.supplierRepo.GetByID(doc.PartyID)
		if err != nil || supplier == nil {
			return PartyInfo{}, fmt.Errorf("export: obtener proveedor: %w", domain.ErrNotFound)
		}
		return PartyInfo{Name: supplier.Name, TaxID: supplier.TaxID, Email: supplier.Email}, nil
	}
	customer, err := uc.customerRepo.GetByID(doc.PartyID)
	if err != nil || customer == nil {
		return PartyInfo{}, fmt.Errorf("export: obtener cliente: %w", domain.ErrNotFound)
	}
	return PartyInfo{Name: customer.Name, TaxID: customer.TaxID, Email: customer.Email}, nil
}
