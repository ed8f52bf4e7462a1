package entity

import "time"

// Supplier representa un proveedor de la empresa (órdenes de compra).
type Supplier struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string // NIT (Colombia)
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
