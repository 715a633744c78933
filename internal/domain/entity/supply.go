package entity

import "time"

// Supply insumo operativo (no vendible). Mismo cálculo de estado que Product,
// colección independiente.
type Supply struct {
	ID         string
	Name       string
	Category   string
	StockLevel int
	Status     StockStatus
	Location   string
	LastUsed   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
