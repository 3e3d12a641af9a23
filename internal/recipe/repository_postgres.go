package recipe

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PoFerry/atelierculinairepof/internal/units"
)

var (
	ErrNotFound   = errors.New("recipe not found")
	ErrReferenced = errors.New("recipe is referenced by a menu")
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rec *Recipe) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO recipes (name, category, servings, instructions)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, rec.Name, rec.Category, rec.Servings, rec.Instructions).Scan(&rec.ID)
	if err != nil {
		return err
	}

	if err := insertLines(ctx, tx, rec); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PostgresRepository) Update(ctx context.Context, rec *Recipe) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE recipes
		SET name = $1, category = $2, servings = $3, instructions = $4
		WHERE id = $5
	`, rec.Name, rec.Category, rec.Servings, rec.Instructions, rec.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM recipe_items WHERE recipe_id = $1`, rec.ID); err != nil {
		return err
	}
	if err := insertLines(ctx, tx, rec); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertLines(ctx context.Context, tx pgx.Tx, rec *Recipe) error {
	for i, line := range rec.Lines {
		_, err := tx.Exec(ctx, `
			INSERT INTO recipe_items (recipe_id, ingredient_id, quantity, unit, position)
			VALUES ($1, $2, $3, $4, $5)
		`, rec.ID, line.IngredientID, line.Quantity, string(line.Unit), i)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*Recipe, error) {
	recipes, err := r.GetByIDs(ctx, []int{id})
	if err != nil {
		return nil, err
	}
	rec, ok := recipes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (r *PostgresRepository) GetByIDs(ctx context.Context, ids []int) (map[int]*Recipe, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, category, servings, instructions
		FROM recipes
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]*Recipe, len(ids))
	for rows.Next() {
		var rec Recipe
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Category, &rec.Servings, &rec.Instructions); err != nil {
			return nil, err
		}
		out[rec.ID] = &rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lineRows, err := r.db.Query(ctx, `
		SELECT recipe_id, ingredient_id, quantity, unit
		FROM recipe_items
		WHERE recipe_id = ANY($1)
		ORDER BY recipe_id, position
	`, ids)
	if err != nil {
		return nil, err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var recipeID int
		var line Line
		var unit string
		if err := lineRows.Scan(&recipeID, &line.IngredientID, &line.Quantity, &unit); err != nil {
			return nil, err
		}
		line.Unit = units.Unit(unit)
		if rec, ok := out[recipeID]; ok {
			rec.Lines = append(rec.Lines, line)
		}
	}
	return out, lineRows.Err()
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Recipe, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM recipes ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byID, err := r.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	recipes := make([]*Recipe, 0, len(ids))
	for _, id := range ids {
		if rec, ok := byID[id]; ok {
			recipes = append(recipes, rec)
		}
	}
	return recipes, nil
}

// foreignKeyViolation reports whether err is a Postgres foreign key
// violation (SQLSTATE 23503).
func foreignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// Delete removes the recipe and its lines. Menus referencing the
// recipe keep it alive through the menu_items foreign key; other
// database failures pass through unchanged.
func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM recipe_items WHERE recipe_id = $1`, id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if foreignKeyViolation(err) {
		return ErrReferenced
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}
