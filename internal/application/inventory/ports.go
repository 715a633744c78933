package inventory

import (
	"context"

	"github.com/jhoicas/vetstock-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Products  repository.ProductRepository
	Movements repository.MovementRepository
	Sales     repository.SaleRepository
	Supplies  repository.SupplyRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil, Rollback en cualquier otro caso: ningún lector ve un movimiento
// sin la actualización de stock correspondiente, ni al revés.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx TxRepos) error) error
}
