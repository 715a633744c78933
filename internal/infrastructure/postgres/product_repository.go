package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vetstock-api/internal/domain/entity"
	"github.com/jhoicas/vetstock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, category_id, stock_level, status, unit_price, batch_number, expiry_date, last_updated, created_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p          entity.Product
		categoryID *string
		status     string
	)
	if err := row.Scan(
		&p.ID, &p.Name, &categoryID, &p.StockLevel, &status, &p.UnitPrice,
		&p.BatchNumber, &p.ExpiryDate, &p.LastUpdated, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.CategoryID = derefString(categoryID)
	st, ok := entity.ParseStockStatusKey(status)
	if !ok {
		return nil, fmt.Errorf("estado de stock desconocido %q", status)
	}
	p.Status = st
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = newID()
	}
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, nullableString(product.CategoryID), product.StockLevel,
		product.Status.Key(), product.UnitPrice, product.BatchNumber, product.ExpiryDate,
		product.LastUpdated, product.CreatedAt,
	)
	return mapError("insert product", err)
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, mapError("get product", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto y bloquea la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, mapError("get product for update", err)
	}
	return p, nil
}

// Update actualiza metadatos. No toca stock_level ni status.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, category_id = $3, unit_price = $4, batch_number = $5, expiry_date = $6, last_updated = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		product.ID, product.Name, nullableString(product.CategoryID), product.UnitPrice,
		product.BatchNumber, product.ExpiryDate, product.LastUpdated,
	)
	if err != nil {
		return mapError("update product", err)
	}
	return expectOne(tag)
}

// UpdateStock fija nivel y estado calculados por el ledger.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stockLevel int, status entity.StockStatus, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE products SET stock_level = $2, status = $3, last_updated = $4 WHERE id = $1`,
		id, stockLevel, status.Key(), at,
	)
	if err != nil {
		return mapError("update product stock", err)
	}
	return expectOne(tag)
}

// ListAll lista todos los productos (filtros y orden en la capa de aplicación).
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, mapError("list products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, mapError("scan product", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list products", err)
	}
	return list, nil
}

// Delete elimina el producto; movimientos y ventas caen por ON DELETE CASCADE.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapError("delete product", err)
	}
	return expectOne(tag)
}

// CountByCategory cuenta productos que referencian la categoría.
func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products WHERE category_id = $1`, categoryID).Scan(&n); err != nil {
		return 0, mapError("count products by category", err)
	}
	return n, nil
}
