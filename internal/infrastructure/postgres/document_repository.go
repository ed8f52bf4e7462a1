package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create persiste la cabecera del documento. Una violación del índice único
// (company_id, doc_type, number) se traduce a domain.ErrDuplicate: es la
// carrera de número duplicado, no un fallo de infraestructura.
func (r *DocumentRepo) Create(doc *entity.Document) error {
	query := `
		INSERT INTO documents (id, company_id, doc_type, number, party_id, date,
		                       subtotal, tax_total, grand_total, status, fingerprint,
		                       notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.CompanyID, doc.DocType, doc.Number, doc.PartyID, doc.Date,
		doc.Subtotal, doc.TaxTotal, doc.GrandTotal, doc.Status, doc.Fingerprint,
		nullIfEmpty(doc.Notes), doc.CreatedBy, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// CreateLine persiste una línea del documento.
func (r *DocumentRepo) CreateLine(line *entity.DocumentLine) error {
	query := `
		INSERT INTO document_lines (id, document_id, product_id, description, quantity,
		                            unit_price, tax_rate, subtotal, tax_amount, total, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.DocumentID, nullIfEmpty(line.ProductID), line.Description, line.Quantity,
		line.UnitPrice, line.TaxRate, line.Subtotal, line.TaxAmount, line.Total, line.Position,
	)
	if err != nil {
		return fmt.Errorf("insert document line: %w", err)
	}
	return nil
}

// Update actualiza totales, huella, estado y notas de la cabecera.
func (r *DocumentRepo) Update(doc *entity.Document) error {
	query := `
		UPDATE documents
		SET subtotal    = $2,
		    tax_total   = $3,
		    grand_total = $4,
		    status      = $5,
		    fingerprint = $6,
		    notes       = $7,
		    updated_at  = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.Subtotal, doc.TaxTotal, doc.GrandTotal,
		doc.Status, doc.Fingerprint, nullIfEmpty(doc.Notes), doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

const documentColumns = `id, company_id, doc_type, number, party_id, date,
	subtotal, tax_total, grand_total, status, fingerprint,
	COALESCE(notes, ''), created_by, created_at, updated_at`

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	err := row.Scan(
		&d.ID, &d.CompanyID, &d.DocType, &d.Number, &d.PartyID, &d.Date,
		&d.Subtotal, &d.TaxTotal, &d.GrandTotal, &d.Status, &d.Fingerprint,
		&d.Notes, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetByID obtiene la cabecera de un documento por ID.
func (r *DocumentRepo) GetByID(id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	doc, err := scanDocument(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// FindByNumber busca por número dentro del namespace (company, doc_type).
// Retorna (nil, nil) si no existe.
func (r *DocumentRepo) FindByNumber(companyID, docType, number string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + `
		FROM documents WHERE company_id = $1 AND doc_type = $2 AND number = $3`
	doc, err := scanDocument(r.q.QueryRow(context.Background(), query, companyID, docType, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find document by number: %w", err)
	}
	return doc, nil
}

// GetLinesByDocumentID obtiene las líneas del documento en su orden original.
func (r *DocumentRepo) GetLinesByDocumentID(documentID string) ([]*entity.DocumentLine, error) {
	query := `
		SELECT id, document_id, COALESCE(product_id, ''), description, quantity,
		       unit_price, tax_rate, subtotal, tax_amount, total, position
		FROM document_lines WHERE document_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.DocumentLine
	for rows.Next() {
		var l entity.DocumentLine
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.ProductID, &l.Description, &l.Quantity,
			&l.UnitPrice, &l.TaxRate, &l.Subtotal, &l.TaxAmount, &l.Total, &l.Position); err != nil {
			return nil, fmt.Errorf("scan document line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// DeleteLinesByDocumentID elimina todas las líneas del documento (edición: se
// reemplazan completas, nunca se parchean individualmente).
func (r *DocumentRepo) DeleteLinesByDocumentID(documentID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM document_lines WHERE document_id = $1`, documentID)
	if err != nil {
		return fmt.Errorf("delete document lines: %w", err)
	}
	return nil
}

// ListByCompany lista cabeceras de la empresa; docType vacío = todos los tipos.
func (r *DocumentRepo) ListByCompany(companyID, docType string, limit, offset int) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + `
		FROM documents
		WHERE company_id = $1 AND ($2 = '' OR doc_type = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, docType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, doc)
	}
	return list, rows.Err()
}
