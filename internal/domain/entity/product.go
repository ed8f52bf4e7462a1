package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o servicio del catálogo comercial.
// Price es el precio de lista; TaxRate es la tarifa por defecto que hereda
// la línea de documento cuando el request no la especifica.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	Description string
	Price       decimal.Decimal // precio de lista (venta)
	TaxRate     decimal.Decimal // porcentaje IVA: 0, 5 o 19 (Colombia)
	UnitMeasure string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
