package billing

import (
	"fmt"

	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// NumberGuard garantiza la unicidad del número de documento dentro del
// namespace (empresa, tipo): la cotización "Q-0001" y la factura "Q-0001"
// pueden convivir, dos facturas "Q-0001" de la misma empresa no.
//
// El chequeo es best-effort: entre la lectura y el INSERT otra petición puede
// colarse con el mismo número. La garantía real la da el índice único en la
// base de datos; el repositorio traduce esa violación a domain.ErrDuplicate
// y el orquestador la degrada al mismo DuplicateNumberError que produce este
// guard, así el caller ve un solo tipo de error gane quien gane la carrera.
type NumberGuard struct {
	docRepo repository.DocumentRepository
}

// NewNumberGuard construye el guard sobre el repositorio de documentos.
func NewNumberGuard(docRepo repository.DocumentRepository) *NumberGuard {
	return &NumberGuard{docRepo: docRepo}
}

// EnsureUnique retorna *domain.DuplicateNumberError si ya existe un documento
// con ese número en el namespace (companyID, docType), nil si está libre.
func (g *NumberGuard) EnsureUnique(companyID, docType, number string) error {
	existing, err := g.docRepo.FindByNumber(companyID, docType, number)
	if err != nil {
		return fmt.Errorf("verificar número %q: %w", number, err)
	}
	if existing != nil {
		return &domain.DuplicateNumberError{DocType: docType, Number: number}
	}
	return nil
}
