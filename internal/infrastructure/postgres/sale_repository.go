package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vetstock-api/internal/domain/entity"
	"github.com/jhoicas/vetstock-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, product_id, quantity, unit_price, amount, customer, status, date, created_at`

// SaleRepo implementación de SaleRepository sobre PostgreSQL (tabla sales_transactions).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el repositorio. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func scanSale(row pgx.Row) (*entity.SaleTransaction, error) {
	var (
		s      entity.SaleTransaction
		status string
	)
	if err := row.Scan(&s.ID, &s.ProductID, &s.Quantity, &s.UnitPrice, &s.Amount, &s.Customer, &status, &s.Date, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.Status = entity.SaleStatus(status)
	return &s, nil
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.SaleTransaction) error {
	if s.ID == "" {
		s.ID = newID()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales_transactions (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.ProductID, s.Quantity, s.UnitPrice, s.Amount, s.Customer, string(s.Status), s.Date, s.CreatedAt,
	)
	return mapError("insert sale", err)
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.SaleTransaction, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales_transactions WHERE id = $1`, id))
	if err != nil {
		return nil, mapError("get sale", err)
	}
	return s, nil
}

func (r *SaleRepo) ListAll(ctx context.Context) ([]*entity.SaleTransaction, error) {
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` FROM sales_transactions ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, mapError("list sales", err)
	}
	defer rows.Close()
	var list []*entity.SaleTransaction
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, mapError("scan sale", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list sales", err)
	}
	return list, nil
}

func (r *SaleRepo) UpdateStatus(ctx context.Context, id string, status entity.SaleStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE sales_transactions SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return mapError("update sale status", err)
	}
	return expectOne(tag)
}
