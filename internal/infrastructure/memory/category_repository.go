package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/vetstock-api/internal/domain"
	"github.com/jhoicas/vetstock-api/internal/domain/entity"
	"github.com/jhoicas/vetstock-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository.
// Los nombres son únicos sin distinguir mayúsculas, como el índice lower(name).
type CategoryRepo struct {
	sc *scope
}

func nameTaken(st *state, name, exceptID string) bool {
	for id, c := range st.categories {
		if id != exceptID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	return r.sc.write(func(st *state) error {
		if category.ID == "" {
			category.ID = newID()
		}
		if nameTaken(st, category.Name, "") {
			return domain.ErrDuplicate
		}
		st.categories[category.ID] = *category
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out entity.Category
	err := r.sc.read(func(st *state) error {
		c, ok := st.categories[id]
		if !ok {
			return domain.ErrNotFound
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CategoryRepo) Update(_ context.Context, category *entity.Category) error {
	return r.sc.write(func(st *state) error {
		cur, ok := st.categories[category.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if nameTaken(st, category.Name, category.ID) {
			return domain.ErrDuplicate
		}
		cur.Name = category.Name
		cur.Description = category.Description
		st.categories[category.ID] = cur
		return nil
	})
}

func (r *CategoryRepo) ListAll(_ context.Context) ([]*entity.Category, error) {
	var list []*entity.Category
	err := r.sc.read(func(st *state) error {
		list = make([]*entity.Category, 0, len(st.categories))
		for _, c := range st.categories {
			c := c
			list = append(list, &c)
		}
		return nil
	})
	sortByCreated(list, func(c *entity.Category) (time.Time, string) { return c.CreatedAt, c.ID })
	return list, err
}

// Delete respeta la restricción de clave foránea de products.category_id.
func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	return r.sc.write(func(st *state) error {
		if _, ok := st.categories[id]; !ok {
			return domain.ErrNotFound
		}
		n := 0
		for _, p := range st.products {
			if p.CategoryID == id {
				n++
			}
		}
		if n > 0 {
			return &domain.CategoryInUseError{CategoryID: id, Count: n}
		}
		delete(st.categories, id)
		return nil
	})
}
