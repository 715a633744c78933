package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado comercial de una venta.
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCancelled SaleStatus = "cancelled"
)

func (s SaleStatus) Valid() bool {
	switch s {
	case SaleStatusCompleted, SaleStatusPending, SaleStatusCancelled:
		return true
	}
	return false
}

func (s *SaleStatus) UnmarshalText(b []byte) error {
	v := SaleStatus(b)
	if !v.Valid() {
		return fmt.Errorf("estado de venta desconocido: %q", string(b))
	}
	*s = v
	return nil
}

// SaleTransaction es una salida de stock con metadatos comerciales.
// Se registra aparte de los movimientos genéricos y no tiene reversión.
type SaleTransaction struct {
	ID        string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Amount    decimal.Decimal
	Customer  string
	Status    SaleStatus
	Date      time.Time
	CreatedAt time.Time
}
