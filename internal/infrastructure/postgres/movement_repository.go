package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vetstock-api/internal/domain/entity"
	"github.com/jhoicas/vetstock-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, type, quantity, notes, date, created_at`

// MovementRepo implementación de MovementRepository sobre PostgreSQL (tabla product_movements).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el repositorio. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var (
		m   entity.StockMovement
		typ string
	)
	if err := row.Scan(&m.ID, &m.ProductID, &typ, &m.Quantity, &m.Notes, &m.Date, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(typ)
	return &m, nil
}

// Create registra el movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = newID()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.ProductID, string(m.Type), m.Quantity, m.Notes, m.Date, m.CreatedAt,
	)
	return mapError("insert movement", err)
}

func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM product_movements WHERE id = $1`, id))
	if err != nil {
		return nil, mapError("get movement", err)
	}
	return m, nil
}

func (r *MovementRepo) ListAll(ctx context.Context) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, `SELECT `+movementColumns+` FROM product_movements ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, mapError("list movements", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, mapError("scan movement", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list movements", err)
	}
	return list, nil
}

func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM product_movements WHERE id = $1`, id)
	if err != nil {
		return mapError("delete movement", err)
	}
	return expectOne(tag)
}
