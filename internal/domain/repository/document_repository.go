package repository

import "github.com/jhoicas/Comercial-api/internal/domain/entity"

// DocumentRepository define el puerto de persistencia para Document y sus líneas.
// FindByNumber es la lectura del guard de unicidad; Create debe retornar
// domain.ErrDuplicate ante una violación del índice único (company, tipo,
// número) para que el orquestador degrade la carrera número-duplicado a un
// error de negocio y no a un fallo opaco de persistencia.
type DocumentRepository interface {
	Create(doc *entity.Document) error
	CreateLine(line *entity.DocumentLine) error
	// Update actualiza totales, huella, estado y notas de la cabecera.
	Update(doc *entity.Document) error
	GetByID(id string) (*entity.Document, error)
	// FindByNumber busca por número dentro del namespace (company, docType).
	// Retorna (nil, nil) si no existe.
	FindByNumber(companyID, docType, number string) (*entity.Document, error)
	GetLinesByDocumentID(documentID string) ([]*entity.DocumentLine, error)
	DeleteLinesByDocumentID(documentID string) error
	// ListByCompany lista documentos de la empresa; docType vacío = todos los tipos.
	ListByCompany(companyID, docType string, limit, offset int) ([]*entity.Document, error)
}
