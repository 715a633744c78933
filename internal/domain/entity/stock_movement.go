package entity

import (
	"fmt"
	"time"
)

// MovementType tipo de movimiento de inventario.
type MovementType string

const (
	MovementTypeIn  MovementType = "in"  // entrada (recepción)
	MovementTypeOut MovementType = "out" // salida (despacho)
)

// Valid indica si el tipo es In u Out.
func (t MovementType) Valid() bool {
	return t == MovementTypeIn || t == MovementTypeOut
}

func (t *MovementType) UnmarshalText(b []byte) error {
	v := MovementType(b)
	if !v.Valid() {
		return fmt.Errorf("tipo de movimiento desconocido: %q", string(b))
	}
	*t = v
	return nil
}

// StockMovement representa una entrada o salida de stock de un producto.
// Inmutable una vez registrado; solo puede eliminarse revirtiendo su efecto.
type StockMovement struct {
	ID        string
	ProductID string
	Type      MovementType
	Quantity  int // siempre positivo; el signo lo da Type
	Notes     string
	Date      time.Time
	CreatedAt time.Time
}
