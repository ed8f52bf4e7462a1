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

// PDFUseCase genera la representación gráfica (PDF) de un documento comercial.
// Antes de generar se verifica la consistencia aritmética del documento
// persistido: un documento que no cuadra nunca sale del sistema.
type PDFUseCase struct {
	docRepo      repository.DocumentRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	generator    DocumentPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	docRepo repository.DocumentRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	generator DocumentPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		docRepo:      docRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		generator:    generator,
	}
}

// DownloadDocumentPDF recupera el documento completo, verifica que sus
// totales cuadran contra las líneas y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el documento no existe.
//   - domain.ErrForbidden        si el documento no pertenece a la empresa del token.
//   - billing.ErrInvalidDocument si los totales persistidos no cuadran.
func (uc *PDFUseCase) DownloadDocumentPDF(
	ctx context.Context,
	companyID, documentID string,
) (pdfBytes []byte, filename string, err error) {
	doc, err := uc.docRepo.GetByID(documentID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener documento: %w", err)
	}
	if doc == nil {
		return nil, "", domain.ErrNotFound
	}
	if doc.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}

	lines, err := uc.docRepo.GetLinesByDocumentID(documentID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	if err := domainbilling.VerifyDocument(doc, lines); err != nil {
		return nil, "", err
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	party, err := uc.loadParty(doc)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err = uc.generator.GenerateDocumentPDF(ctx, doc, company, party, lines)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("%s_%s.pdf", strings.ToLower(doc.DocType), doc.Number)
	return pdfBytes, filename, nil
}

func (uc *PDFUseCase) loadParty(doc *entity.Document) (PartyInfo, error) {
	if doc.DocType == entity.DocTypePurchaseOrder {
		supplier, err := uc.supplierRepo.GetByID(doc.PartyID)
		if err != nil || supplier == nil {
			return PartyInfo{}, fmt.Errorf("pdf: obtener proveedor: %w", domain.ErrNotFound)
		}
		return PartyInfo{Name: supplier.Name, TaxID: supplier.TaxID, Email: supplier.Email}, nil
	}
	customer, err := uc.customerRepo.GetByID(doc.PartyID)
	if err != nil || customer == nil {
		return PartyInfo{}, fmt.Errorf("pdf: obtener cliente: %w", domain.ErrNotFound)
	}
	return PartyInfo{Name: customer.Name, TaxID: customer.TaxID, Email: customer.Email}, nil
}
