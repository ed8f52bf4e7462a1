package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/domain"
	domainbilling "github.com/jhoicas/Comercial-api/internal/domain/billing"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// ReplaceLines reemplaza todas las líneas de un documento emitido y recalcula
// totales y huella. La operación es idempotente: repetir el mismo request
// produce exactamente los mismos totales y la misma huella, porque el motor
// de cálculo es determinista y las líneas anteriores se descartan completas.
// Un documento anulado no se edita (conflicto).
func (uc *CreateDocumentUseCase) ReplaceLines(ctx context.Context, companyID, id string, in dto.ReplaceLinesRequest) (*dto.DocumentResponse, error) {
	doc, _, err := uc.loadOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	if doc.Status == entity.DocStatusCancelled {
		return nil, fmt.Errorf("%w: el documento %s está anulado y no admite edición", domain.ErrConflict, doc.Number)
	}

	party, err := uc.resolveParty(companyID, doc.DocType, doc.PartyID)
	if err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}

	raw, err := uc.resolveLines(companyID, in.Lines)
	if err != nil {
		return nil, err
	}
	items, err := domainbilling.Normalize(raw)
	if err != nil {
		return nil, err
	}

	comp := domainbilling.ComputeTotals(items, uc.params.Precision)
	huella, err := uc.fingerprint.Calculate(&domainbilling.FingerprintParams{
		DocType:    doc.DocType,
		Number:     doc.Number,
		FecDoc:     doc.Date.Format("2006-01-02"),
		Subtotal:   comp.Totals.Subtotal,
		TaxTotal:   comp.Totals.TaxTotal,
		GrandTotal: comp.Totals.GrandTotal,
		NitEmisor:  company.NIT,
		NitTercero: party.TaxID,
	})
	if err != nil {
		return nil, fmt.Errorf("recalcular huella: %w", err)
	}

	doc.Subtotal = comp.Totals.Subtotal
	doc.TaxTotal = comp.Totals.TaxTotal
	doc.GrandTotal = comp.Totals.GrandTotal
	doc.Fingerprint = huella
	doc.UpdatedAt = time.Now()
	lines := buildLines(doc.ID, comp.Lines)

	err = uc.txRunner.RunDocuments(ctx, func(docRepo repository.DocumentRepository) error {
		if err := docRepo.DeleteLinesByDocumentID(doc.ID); err != nil {
			return err
		}
		for _, line := range lines {
			if err := docRepo.CreateLine(line); err != nil {
				return err
			}
		}
		return docRepo.Update(doc)
	})
	if err != nil {
		return nil, err
	}

	return toDocumentResponse(doc, party.Name, lines), nil
}
