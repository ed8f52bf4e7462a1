package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/domain"
	domainbilling "github.com/jhoicas/Comercial-api/internal/domain/billing"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// Params parámetros del motor para el caso de uso (vienen de config).
type Params struct {
	Precision     int32
	QuotePrefix   string
	OrderPrefix   string
	InvoicePrefix string
}

func (p Params) prefixFor(docType string) string {
	switch docType {
	case entity.DocTypePurchaseOrder:
		return p.OrderPrefix
	case entity.DocTypeInvoice:
		return p.InvoicePrefix
	default:
		return p.QuotePrefix
	}
}

// CreateDocumentUseCase orquesta la creación de documentos comerciales:
// valida la cabecera, resuelve precios y tarifas desde el catálogo, normaliza
// las líneas, verifica unicidad del número, calcula totales y huella, y
// persiste cabecera y líneas en una sola transacción.
type CreateDocumentUseCase struct {
	txRunner     DocumentsTxRunner
	docRepo      repository.DocumentRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	guard        *NumberGuard
	fingerprint  *domainbilling.FingerprintService
	params       Params
}

// NewCreateDocumentUseCase construye el caso de uso.
func NewCreateDocumentUseCase(
	txRunner DocumentsTxRunner,
	docRepo repository.DocumentRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	fingerprint *domainbilling.FingerprintService,
	params Params,
) *CreateDocumentUseCase {
	return &CreateDocumentUseCase{
		txRunner:     txRunner,
		docRepo:      docRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		guard:        NewNumberGuard(docRepo),
		fingerprint:  fingerprint,
		params:       params,
	}
}

// Create crea un documento comercial completo. Orden de etapas:
//
//  1. validación de cabecera y de líneas (Normalize)
//  2. número: el del request o generado <prefijo>-<unix>
//  3. unicidad del número en (empresa, tipo)
//  4. cálculo de totales y huella
//  5. persistencia transaccional de cabecera y líneas
//
// Un documento inválido nunca llega a consultar unicidad ni a persistencia.
// Si otra petición gana la carrera del número entre el chequeo y el INSERT,
// la violación del índice único se degrada al mismo DuplicateNumberError.
func (uc *CreateDocumentUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if !entity.ValidDocType(in.DocType) {
		return nil, fmt.Errorf("%w: tipo de documento desconocido %q", domain.ErrInvalidInput, in.DocType)
	}
	if in.PartyID == "" {
		return nil, fmt.Errorf("%w: party_id es obligatorio", domain.ErrInvalidInput)
	}

	now := time.Now()
	docDate := now
	if in.Date != "" {
		parsed, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha inválida %q (formato YYYY-MM-DD)", domain.ErrInvalidInput, in.Date)
		}
		docDate = parsed
	}

	// Empresa emisora (NIT para la huella)
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}

	party, err := uc.resolveParty(companyID, in.DocType, in.PartyID)
	if err != nil {
		return nil, err
	}

	// Resolver precios/tarifas del catálogo y validar líneas.
	// Un documento inválido falla aquí, antes de tocar numeración o persistencia.
	raw, err := uc.resolveLines(companyID, in.Lines)
	if err != nil {
		return nil, err
	}
	items, err := domainbilling.Normalize(raw)
	if err != nil {
		return nil, err
	}

	number := strings.TrimSpace(in.Number)
	if number == "" {
		number = fmt.Sprintf("%s-%d", uc.params.prefixFor(in.DocType), now.Unix())
	}
	if err := uc.guard.EnsureUnique(companyID, in.DocType, number); err != nil {
		return nil, err
	}

	comp := domainbilling.ComputeTotals(items, uc.params.Precision)

	huella, err := uc.fingerprint.Calculate(&domainbilling.FingerprintParams{
		DocType:    in.DocType,
		Number:     number,
		FecDoc:     docDate.Format("2006-01-02"),
		Subtotal:   comp.Totals.Subtotal,
		TaxTotal:   comp.Totals.TaxTotal,
		GrandTotal: comp.Totals.GrandTotal,
		NitEmisor:  company.NIT,
		NitTercero: party.TaxID,
	})
	if err != nil {
		return nil, fmt.Errorf("calcular huella: %w", err)
	}

	doc := &entity.Document{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		DocType:     in.DocType,
		Number:      number,
		PartyID:     in.PartyID,
		Date:        docDate,
		Subtotal:    comp.Totals.Subtotal,
		TaxTotal:    comp.Totals.TaxTotal,
		GrandTotal:  comp.Totals.GrandTotal,
		Status:      entity.DocStatusIssued,
		Fingerprint: huella,
		Notes:       in.Notes,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	lines := buildLines(doc.ID, comp.Lines)

	err = uc.txRunner.RunDocuments(ctx, func(docRepo repository.DocumentRepository) error {
		if err := docRepo.Create(doc); err != nil {
			// Carrera perdida: otra petición insertó el mismo número entre el
			// chequeo del guard y este INSERT.
			if errors.Is(err, domain.ErrDuplicate) {
				return &domain.DuplicateNumberError{DocType: doc.DocType, Number: doc.Number}
			}
			return err
		}
		for _, line := range lines {
			if err := docRepo.CreateLine(line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toDocumentResponse(doc, party.Name, lines), nil
}

// Get obtiene un documento por ID con sus líneas.
func (uc *CreateDocumentUseCase) Get(ctx context.Context, companyID, id string) (*dto.DocumentResponse, error) {
	doc, lines, err := uc.loadOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	partyName := ""
	if party, pErr := uc.resolveParty(companyID, doc.DocType, doc.PartyID); pErr == nil {
		partyName = party.Name
	}
	return toDocumentResponse(doc, partyName, lines), nil
}

// List lista las cabeceras de la empresa; docType vacío lista todos los tipos.
func (uc *CreateDocumentUseCase) List(ctx context.Context, companyID, docType string, limit, offset int) ([]*dto.DocumentSummaryResponse, error) {
	if docType != "" && !entity.ValidDocType(docType) {
		return nil, fmt.Errorf("%w: tipo de documento desconocido %q", domain.ErrInvalidInput, docType)
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	docs, err := uc.docRepo.ListByCompany(companyID, docType, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DocumentSummaryResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, &dto.DocumentSummaryResponse{
			ID:         d.ID,
			DocType:    d.DocType,
			Number:     d.Number,
			PartyID:    d.PartyID,
			Date:       d.Date.Format("2006-01-02"),
			Status:     d.Status,
			GrandTotal: d.GrandTotal,
		})
	}
	return out, nil
}

// Cancel anula un documento emitido. Anular dos veces es conflicto, no es
// idempotente: la segunda anulación casi siempre es un error del operador.
func (uc *CreateDocumentUseCase) Cancel(ctx context.Context, companyID, id string) (*dto.DocumentResponse, error) {
	doc, lines, err := uc.loadOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	if doc.Status == entity.DocStatusCancelled {
		return nil, fmt.Errorf("%w: el documento %s ya está anulado", domain.ErrConflict, doc.Number)
	}
	doc.Status = entity.DocStatusCancelled
	doc.UpdatedAt = time.Now()
	if err := uc.docRepo.Update(doc); err != nil {
		return nil, err
	}
	return toDocumentResponse(doc, "", lines), nil
}

// loadOwned carga documento y líneas verificando pertenencia a la empresa.
func (uc *CreateDocumentUseCase) loadOwned(companyID, id string) (*entity.Document, []*entity.DocumentLine, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil || doc == nil {
		return nil, nil, domain.ErrNotFound
	}
	if doc.CompanyID != companyID {
		return nil, nil, domain.ErrForbidden
	}
	lines, err := uc.docRepo.GetLinesByDocumentID(id)
	if err != nil {
		return nil, nil, err
	}
	return doc, lines, nil
}

// resolveParty carga el tercero según el tipo de documento: cotizaciones y
// facturas apuntan a un cliente, órdenes de compra a un proveedor.
func (uc *CreateDocumentUseCase) resolveParty(companyID, docType, partyID string) (PartyInfo, error) {
	if docType == entity.DocTypePurchaseOrder {
		supplier, err := uc.supplierRepo.GetByID(partyID)
		if err != nil || supplier == nil {
			return PartyInfo{}, domain.ErrNotFound
		}
		if supplier.CompanyID != companyID {
			return PartyInfo{}, domain.ErrForbidden
		}
		return PartyInfo{Name: supplier.Name, TaxID: supplier.TaxID, Email: supplier.Email}, nil
	}
	customer, err := uc.customerRepo.GetByID(partyID)
	if err != nil || customer == nil {
		return PartyInfo{}, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return PartyInfo{}, domain.ErrForbidden
	}
	return PartyInfo{Name: customer.Name, TaxID: customer.TaxID, Email: customer.Email}, nil
}

// resolveLines convierte los requests en líneas crudas para el normalizador.
// Con ProductID se heredan del catálogo el nombre, el precio de lista y la
// tarifa por defecto; un valor explícito en el request (incluido cero) gana
// siempre sobre el del catálogo.
func (uc *CreateDocumentUseCase) resolveLines(companyID string, in []dto.DocumentLineRequest) ([]domainbilling.RawLineItem, error) {
	raw := make([]domainbilling.RawLineItem, 0, len(in))
	for _, l := range in {
		item := domainbilling.RawLineItem{
			ProductID:   l.ProductID,
			Description: l.Description,
			Quantity:    l.Quantity,
		}
		if l.UnitPrice != nil {
			item.UnitPrice = *l.UnitPrice
		}
		if l.TaxRate != nil {
			item.TaxRate = *l.TaxRate
		}
		if l.ProductID != "" {
			product, err := uc.productRepo.GetByID(l.ProductID)
			if err != nil || product == nil {
				return nil, domain.ErrNotFound
			}
			if product.CompanyID != companyID {
				return nil, domain.ErrForbidden
			}
			if item.Description == "" {
				item.Description = product.Name
			}
			if l.UnitPrice == nil {
				item.UnitPrice = product.Price
			}
			if l.TaxRate == nil {
				item.TaxRate = product.TaxRate
			}
		}
		raw = append(raw, item)
	}
	return raw, nil
}

// buildLines materializa las líneas calculadas como entidades persistibles.
func buildLines(documentID string, computed []domainbilling.ComputedLine) []*entity.DocumentLine {
	lines := make([]*entity.DocumentLine, 0, len(computed))
	for i, cl := range computed {
		lines = append(lines, &entity.DocumentLine{
			ID:          uuid.New().String(),
			DocumentID:  documentID,
			ProductID:   cl.ProductID,
			Description: cl.Description,
			Quantity:    cl.Quantity,
			UnitPrice:   cl.UnitPrice,
			TaxRate:     cl.TaxRate,
			Subtotal:    cl.Subtotal,
			TaxAmount:   cl.TaxAmount,
			Total:       cl.Total,
			Position:    i,
		})
	}
	return lines
}

func toDocumentResponse(doc *entity.Document, partyName string, lines []*entity.DocumentLine) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:          doc.ID,
		CompanyID:   doc.CompanyID,
		DocType:     doc.DocType,
		Number:      doc.Number,
		PartyID:     doc.PartyID,
		PartyName:   partyName,
		Date:        doc.Date.Format("2006-01-02"),
		Status:      doc.Status,
		Fingerprint: doc.Fingerprint,
		Notes:       doc.Notes,
		Lines:       make([]dto.DocumentLineResponse, 0, len(lines)),
		Totals: dto.DocumentTotalsResponse{
			Subtotal:   doc.Subtotal,
			TaxTotal:   doc.TaxTotal,
			GrandTotal: doc.GrandTotal,
		},
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.DocumentLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TaxRate:     l.TaxRate,
			Subtotal:    l.Subtotal,
			TaxAmount:   l.TaxAmount,
			Total:       l.Total,
			Position:    l.Position,
		})
	}
	return resp
}
