package billing_test

import (
	"testing"

	"github.com/jhoicas/Comercial-api/internal/domain/billing"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func documentoCuadrado() (*entity.Document, []*entity.DocumentLine) {
	out := billing.ComputeTotals([]billing.LineItem{
		lineaDe("2", "100", "10"),
		lineaDe("1", "50", "0"),
	}, 2)

	doc := &entity.Document{
		ID:         "doc-1",
		DocType:    entity.DocTypeQuote,
		Number:     "Q-0001",
		Subtotal:   out.Totals.Subtotal,
		TaxTotal:   out.Totals.TaxTotal,
		GrandTotal: out.Totals.GrandTotal,
	}
	lines := make([]*entity.DocumentLine, 0, len(out.Lines))
	for i, l := range out.Lines {
		lines = append(lines, &entity.DocumentLine{
			ID:         "line-" + l.ProductID,
			DocumentID: doc.ID,
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			TaxRate:    l.TaxRate,
			Subtotal:   l.Subtotal,
			TaxAmount:  l.TaxAmount,
			Total:      l.Total,
			Position:   i,
		})
	}
	return doc, lines
}

// TestVerifyDocument_Consistente: un documento producido por el calculador
// siempre pasa la verificación.
func TestVerifyDocument_Consistente(t *testing.T) {
	doc, lines := documentoCuadrado()
	assert.NoError(t, billing.VerifyDocument(doc, lines))
}

func TestVerifyDocument_TotalAlterado(t *testing.T) {
	doc, lines := documentoCuadrado()
	doc.GrandTotal = doc.GrandTotal.Add(decimal.NewFromFloat(0.01))

	err := billing.VerifyDocument(doc, lines)

	require.Error(t, err)
	assert.ErrorIs(t, err, billing.ErrInvalidDocument)
}

func TestVerifyDocument_LineaDescuadrada(t *testing.T) {
	doc, lines := documentoCuadrado()
	lines[0].TaxAmount = lines[0].TaxAmount.Sub(decimal.NewFromFloat(0.01))

	err := billing.VerifyDocument(doc, lines)

	require.Error(t, err)
	assert.ErrorIs(t, err, billing.ErrInvalidDocument)
}

func TestVerifyDocument_SinLineas(t *testing.T) {
	doc, _ := documentoCuadrado()
	assert.Error(t, billing.VerifyDocument(doc, nil))
}

func TestVerifyDocument_Nulo(t *testing.T) {
	assert.Error(t, billing.VerifyDocument(nil, nil))
}
