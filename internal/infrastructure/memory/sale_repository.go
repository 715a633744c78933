package memory

import (
	"context"
	"time"

	"github.com/jhoicas/vetstock-api/internal/domain"
	"github.com/jhoicas/vetstock-api/internal/domain/entity"
	"github.com/jhoicas/vetstock-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación en memoria de SaleRepository.
type SaleRepo struct {
	sc *scope
}

func (r *SaleRepo) Create(_ context.Context, sale *entity.SaleTransaction) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.products[sale.ProductID]; !ok {
			return domain.ErrNotFound
		}
		if sale.ID == "" {
			sale.ID = newID()
		}
		st.sales[sale.ID] = *sale
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.SaleTransaction, error) {
	var out entity.SaleTransaction
	err := r.sc.read(func(st *state) error {
		s, ok := st.sales[id]
		if !ok {
			return domain.ErrNotFound
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *SaleRepo) ListAll(_ context.Context) ([]*entity.SaleTransaction, error) {
	var list []*entity.SaleTransaction
	err := r.sc.read(func(st *state) error {
		list = make([]*entity.SaleTransaction, 0, len(st.sales))
		for _, s := range st.sales {
			s := s
			list = append(list, &s)
		}
		return nil
	})
	sortByCreated(list, func(s *entity.SaleTransaction) (time.Time, string) { return s.Date, s.ID })
	return list, err
}

func (r *SaleRepo) UpdateStatus(_ context.Context, id string, status entity.SaleStatus) error {
	return r.sc.write(func(st *state) error {
		s, ok := st.sales[id]
		if !ok {
			return domain.ErrNotFound
		}
		s.Status = status
		st.sales[id] = s
		return nil
	})
}
