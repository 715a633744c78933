package memory

import (
	"context"
	"time"

	"github.com/jhoicas/vetstock-api/internal/domain"
	"github.com/jhoicas/vetstock-api/internal/domain/entity"
	"github.com/jhoicas/vetstock-api/internal/domain/repository"
)

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

// SupplyRepo implementación en memoria de SupplyRepository.
type SupplyRepo struct {
	sc *scope
}

func (r *SupplyRepo) Create(_ context.Context, supply *entity.Supply) error {
	return r.sc.write(func(st *state) error {
		if supply.ID == "" {
			supply.ID = newID()
		}
		if _, ok := st.supplies[supply.ID]; ok {
			return domain.ErrDuplicate
		}
		st.supplies[supply.ID] = *supply
		return nil
	})
}

func (r *SupplyRepo) GetByID(_ context.Context, id string) (*entity.Supply, error) {
	var out entity.Supply
	err := r.sc.read(func(st *state) error {
		s, ok := st.supplies[id]
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

func (r *SupplyRepo) GetForUpdate(ctx context.Context, id string) (*entity.Supply, error) {
	return r.GetByID(ctx, id)
}

func (r *SupplyRepo) Update(_ context.Context, supply *entity.Supply) error {
	return r.sc.write(func(st *state) error {
		cur, ok := st.supplies[supply.ID]
		if !ok {
			return domain.ErrNotFound
		}
		next := *supply
		next.StockLevel = cur.StockLevel
		next.Status = cur.Status
		next.LastUsed = cur.LastUsed
		next.CreatedAt = cur.CreatedAt
		st.supplies[supply.ID] = next
		return nil
	})
}

func (r *SupplyRepo) UpdateStock(_ context.Context, id string, stockLevel int, status entity.StockStatus, lastUsed *time.Time, at time.Time) error {
	return r.sc.write(func(st *state) error {
		s, ok := st.supplies[id]
		if !ok {
			return domain.ErrNotFound
		}
		s.StockLevel = stockLevel
		s.Status = status
		if lastUsed != nil {
			lu := *lastUsed
			s.LastUsed = &lu
		}
		s.UpdatedAt = at
		st.supplies[id] = s
		return nil
	})
}

func (r *SupplyRepo) ListAll(_ context.Context) ([]*entity.Supply, error) {
	var list []*entity.Supply
	err := r.sc.read(func(st *state) error {
		list = make([]*entity.Supply, 0, len(st.supplies))
		for _, s := range st.supplies {
			s := s
			list = append(list, &s)
		}
		return nil
	})
	sortByCreated(list, func(s *entity.Supply) (time.Time, string) { return s.CreatedAt, s.ID })
	return list, err
}

func (r *SupplyRepo) Delete(_ context.Context, id string) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.supplies[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.supplies, id)
		return nil
	})
}
