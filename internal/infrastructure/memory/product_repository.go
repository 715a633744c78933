package memory

import (
	"context"
	"time"

	"github.com/jhoicas/vetstock-api/internal/domain"
	"github.com/jhoicas/vetstock-api/internal/domain/entity"
	"github.com/jhoicas/vetstock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	sc *scope
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.sc.write(func(st *state) error {
		if product.ID == "" {
			product.ID = newID()
		}
		if _, ok := st.products[product.ID]; ok {
			return domain.ErrDuplicate
		}
		if product.CategoryID != "" {
			if _, ok := st.categories[product.CategoryID]; !ok {
				return domain.ErrNotFound
			}
		}
		st.products[product.ID] = *product
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out entity.Product
	err := r.sc.read(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetForUpdate dentro de Run el mutex del Store ya serializa a los escritores.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.sc.write(func(st *state) error {
		cur, ok := st.products[product.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if product.CategoryID != "" {
			if _, ok := st.categories[product.CategoryID]; !ok {
				return domain.ErrNotFound
			}
		}
		next := *product
		next.StockLevel = cur.StockLevel
		next.Status = cur.Status
		next.CreatedAt = cur.CreatedAt
		st.products[product.ID] = next
		return nil
	})
}

func (r *ProductRepo) UpdateStock(_ context.Context, id string, stockLevel int, status entity.StockStatus, at time.Time) error {
	return r.sc.write(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.StockLevel = stockLevel
		p.Status = status
		p.LastUpdated = at
		st.products[id] = p
		return nil
	})
}

func (r *ProductRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.sc.read(func(st *state) error {
		list = make([]*entity.Product, 0, len(st.products))
		for _, p := range st.products {
			p := p
			list = append(list, &p)
		}
		return nil
	})
	sortByCreated(list, func(p *entity.Product) (time.Time, string) { return p.CreatedAt, p.ID })
	return list, err
}

// Delete elimina el producto y, como ON DELETE CASCADE, sus movimientos y ventas.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.products, id)
		for mid, m := range st.movements {
			if m.ProductID == id {
				delete(st.movements, mid)
			}
		}
		for sid, s := range st.sales {
			if s.ProductID == id {
				delete(st.sales, sid)
			}
		}
		return nil
	})
}

func (r *ProductRepo) CountByCategory(_ context.Context, categoryID string) (int, error) {
	n := 0
	err := r.sc.read(func(st *state) error {
		for _, p := range st.products {
			if p.CategoryID == categoryID {
				n++
			}
		}
		return nil
	})
	return n, err
}
