package inventory

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/PoFerry/atelierculinairepof/internal/units"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, m *Movement) error {
	query := `
		INSERT INTO stock_movements (
			ingredient_id, qty, unit, quantity_base, movement_type, unit_cost, note
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query,
		m.IngredientID, m.Quantity, string(m.Unit), m.QuantityBase,
		m.Type, m.UnitCost, m.Note,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]*Movement, error) {
	query := `
		SELECT id, ingredient_id, qty, unit, quantity_base, movement_type, unit_cost, note, created_at
		FROM stock_movements
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*Movement
	for rows.Next() {
		var m Movement
		var unit string
		if err := rows.Scan(
			&m.ID, &m.IngredientID, &m.Quantity, &unit, &m.QuantityBase,
			&m.Type, &m.UnitCost, &m.Note, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		m.Unit = units.Unit(unit)
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}

func (r *PostgresRepository) StockByIngredient(ctx context.Context) (map[int]decimal.Decimal, error) {
	query := `
		SELECT ingredient_id, COALESCE(SUM(quantity_base), 0)
		FROM stock_movements
		GROUP BY ingredient_id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]decimal.Decimal)
	for rows.Next() {
		var id int
		var qty decimal.Decimal
		if err := rows.Scan(&id, &qty); err != nil {
			return nil, err
		}
		out[id] = qty
	}
	return out, rows.Err()
}
