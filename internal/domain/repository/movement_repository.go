package repository

import (
	"context"

	"github.com/jhoicas/vetstock-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos de stock.
type MovementRepository interface {
	// Create persiste el movimiento; asigna ID si viene vacío.
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	ListAll(ctx context.Context) ([]*entity.StockMovement, error)
	Delete(ctx context.Context, id string) error
}
