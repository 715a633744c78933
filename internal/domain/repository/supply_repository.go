package repository

import (
	"context"
	"time"

	"github.com/jhoicas/vetstock-api/internal/domain/entity"
)

// SupplyRepository define el puerto de persistencia para insumos operativos.
type SupplyRepository interface {
	Create(ctx context.Context, supply *entity.Supply) error
	GetByID(ctx context.Context, id string) (*entity.Supply, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Supply, error)
	Update(ctx context.Context, supply *entity.Supply) error
	// UpdateStock fija nivel y estado; lastUsed nil conserva el valor actual.
	UpdateStock(ctx context.Context, id string, stockLevel int, status entity.StockStatus, lastUsed *time.Time, at time.Time) error
	ListAll(ctx context.Context) ([]*entity.Supply, error)
	Delete(ctx context.Context, id string) error
}
