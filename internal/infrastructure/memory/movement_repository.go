package memory

import (
	"context"
	"time"

	"github.com/jhoicas/vetstock-api/internal/domain"
	"github.com/jhoicas/vetstock-api/internal/domain/entity"
	"github.com/jhoicas/vetstock-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación en memoria de MovementRepository.
type MovementRepo struct {
	sc *scope
}

func (r *MovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.products[movement.ProductID]; !ok {
			return domain.ErrNotFound
		}
		if movement.ID == "" {
			movement.ID = newID()
		}
		st.movements[movement.ID] = *movement
		return nil
	})
}

func (r *MovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	var out entity.StockMovement
	err := r.sc.read(func(st *state) error {
		m, ok := st.movements[id]
		if !ok {
			return domain.ErrNotFound
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *MovementRepo) ListAll(_ context.Context) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	err := r.sc.read(func(st *state) error {
		list = make([]*entity.StockMovement, 0, len(st.movements))
		for _, m := range st.movements {
			m := m
			list = append(list, &m)
		}
		return nil
	})
	sortByCreated(list, func(m *entity.StockMovement) (time.Time, string) { return m.Date, m.ID })
	return list, err
}

func (r *MovementRepo) Delete(_ context.Context, id string) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.movements[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.movements, id)
		return nil
	})
}
