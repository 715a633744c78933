package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto veterinario vendible.
// StockLevel y Status solo cambian a través del ledger de stock.
type Product struct {
	ID          string
	Name        string
	CategoryID  string // vacío si no tiene categoría
	StockLevel  int
	Status      StockStatus
	UnitPrice   decimal.Decimal // precio de venta unitario
	BatchNumber string
	ExpiryDate  *time.Time
	LastUpdated time.Time
	CreatedAt   time.Time
}
