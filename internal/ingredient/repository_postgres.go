package ingredient

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PoFerry/atelierculinairepof/internal/units"
)

var (
	ErrNotFound   = errors.New("ingredient not found")
	ErrReferenced = errors.New("ingredient is referenced by a recipe")
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const ingredientColumns = `
	id, name, category, supplier_id, supplier_code,
	pack_size, pack_unit, purchase_price, price_per_base_unit, base_unit,
	created_at
`

func (r *PostgresRepository) Create(ctx context.Context, ing *Ingredient) error {
	query := `
		INSERT INTO ingredients (
			name, category, supplier_id, supplier_code,
			pack_size, pack_unit, purchase_price, price_per_base_unit, base_unit
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query,
		ing.Name, ing.Category, ing.SupplierID, ing.SupplierCode,
		ing.PackSize, string(ing.PackUnit), ing.PurchasePrice,
		ing.PricePerBaseUnit, string(ing.BaseUnit),
	).Scan(&ing.ID, &ing.CreatedAt)
}

func (r *PostgresRepository) Update(ctx context.Context, ing *Ingredient) error {
	query := `
		UPDATE ingredients
		SET name = $1, category = $2, supplier_id = $3, supplier_code = $4,
		    pack_size = $5, pack_unit = $6, purchase_price = $7,
		    price_per_base_unit = $8, base_unit = $9
		WHERE id = $10
	`
	tag, err := r.db.Exec(ctx, query,
		ing.Name, ing.Category, ing.SupplierID, ing.SupplierCode,
		ing.PackSize, string(ing.PackUnit), ing.PurchasePrice,
		ing.PricePerBaseUnit, string(ing.BaseUnit), ing.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1`

	ing, err := scanIngredient(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return ing, err
}

func (r *PostgresRepository) GetByIDs(ctx context.Context, ids []int) (map[int]*Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]*Ingredient, len(ids))
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		out[ing.ID] = ing
	}
	return out, rows.Err()
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []*Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

// foreignKeyViolation reports whether err is a Postgres foreign key
// violation (SQLSTATE 23503).
func foreignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// Delete relies on the recipe_items foreign key: deleting a referenced
// ingredient fails at the database and surfaces as ErrReferenced.
// Other database failures pass through unchanged.
func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	if foreignKeyViolation(err) {
		return ErrReferenced
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanIngredient(row pgx.Row) (*Ingredient, error) {
	var ing Ingredient
	var packUnit, baseUnit string

	err := row.Scan(
		&ing.ID, &ing.Name, &ing.Category, &ing.SupplierID, &ing.SupplierCode,
		&ing.PackSize, &packUnit, &ing.PurchasePrice, &ing.PricePerBaseUnit,
		&baseUnit, &ing.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	ing.PackUnit = units.Unit(packUnit)
	ing.BaseUnit = units.Unit(baseUnit)
	return &ing, nil
}
