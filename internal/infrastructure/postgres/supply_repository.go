package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vetstock-api/internal/domain/entity"
	"github.com/jhoicas/vetstock-api/internal/domain/repository"
)

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

const supplyColumns = `id, name, category, stock_level, status, location, last_used, created_at, updated_at`

// SupplyRepo implementación de SupplyRepository sobre PostgreSQL (tabla operational_supplies).
type SupplyRepo struct {
	q Querier
}

// NewSupplyRepository construye el repositorio. Pasar pool o tx (Querier).
func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

func scanSupply(row pgx.Row) (*entity.Supply, error) {
	var (
		s      entity.Supply
		status string
	)
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.StockLevel, &status, &s.Location, &s.LastUsed, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	st, ok := entity.ParseStockStatusKey(status)
	if !ok {
		return nil, fmt.Errorf("estado de stock desconocido %q", status)
	}
	s.Status = st
	return &s, nil
}

func (r *SupplyRepo) Create(ctx context.Context, s *entity.Supply) error {
	if s.ID == "" {
		s.ID = newID()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO operational_supplies (`+supplyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.Name, s.Category, s.StockLevel, s.Status.Key(), s.Location, s.LastUsed, s.CreatedAt, s.UpdatedAt,
	)
	return mapError("insert supply", err)
}

func (r *SupplyRepo) GetByID(ctx context.Context, id string) (*entity.Supply, error) {
	s, err := scanSupply(r.q.QueryRow(ctx, `SELECT `+supplyColumns+` FROM operational_supplies WHERE id = $1`, id))
	if err != nil {
		return nil, mapError("get supply", err)
	}
	return s, nil
}

func (r *SupplyRepo) GetForUpdate(ctx context.Context, id string) (*entity.Supply, error) {
	s, err := scanSupply(r.q.QueryRow(ctx, `SELECT `+supplyColumns+` FROM operational_supplies WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, mapError("get supply for update", err)
	}
	return s, nil
}

func (r *SupplyRepo) Update(ctx context.Context, s *entity.Supply) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE operational_supplies SET name = $2, category = $3, location = $4, updated_at = $5
		WHERE id = $1`,
		s.ID, s.Name, s.Category, s.Location, s.UpdatedAt,
	)
	if err != nil {
		return mapError("update supply", err)
	}
	return expectOne(tag)
}

// UpdateStock fija nivel y estado; lastUsed nil conserva el valor actual (COALESCE).
func (r *SupplyRepo) UpdateStock(ctx context.Context, id string, stockLevel int, status entity.StockStatus, lastUsed *time.Time, at time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE operational_supplies
		SET stock_level = $2, status = $3, last_used = COALESCE($4, last_used), updated_at = $5
		WHERE id = $1`,
		id, stockLevel, status.Key(), lastUsed, at,
	)
	if err != nil {
		return mapError("update supply stock", err)
	}
	return expectOne(tag)
}

func (r *SupplyRepo) ListAll(ctx context.Context) ([]*entity.Supply, error) {
	rows, err := r.q.Query(ctx, `SELECT `+supplyColumns+` FROM operational_supplies ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, mapError("list supplies", err)
	}
	defer rows.Close()
	var list []*entity.Supply
	for rows.Next() {
		s, err := scanSupply(rows)
		if err != nil {
			return nil, mapError("scan supply", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list supplies", err)
	}
	return list, nil
}

func (r *SupplyRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM operational_supplies WHERE id = $1`, id)
	if err != nil {
		return mapError("delete supply", err)
	}
	return expectOne(tag)
}
