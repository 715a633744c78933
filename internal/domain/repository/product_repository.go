package repository

import (
	"context"
	"time"

	"github.com/jhoicas/vetstock-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los getters devuelven domain.ErrNotFound si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update actualiza solo metadatos; stock y estado se manejan vía UpdateStock.
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id string, stockLevel int, status entity.StockStatus, at time.Time) error
	ListAll(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
	CountByCategory(ctx context.Context, categoryID string) (int, error)
}
