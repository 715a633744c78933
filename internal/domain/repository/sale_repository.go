package repository

import (
	"context"

	"github.com/jhoicas/vetstock-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.SaleTransaction) error
	GetByID(ctx context.Context, id string) (*entity.SaleTransaction, error)
	ListAll(ctx context.Context) ([]*entity.SaleTransaction, error)
	UpdateStatus(ctx context.Context, id string, status entity.SaleStatus) error
}
