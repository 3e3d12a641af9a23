package menu

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("menu not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, m *Menu) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO menus (name, notes)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, m.Name, m.Notes).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return err
	}

	if err := insertLines(ctx, tx, m); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PostgresRepository) Update(ctx context.Context, m *Menu) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE menus SET name = $1, notes = $2 WHERE id = $3
	`, m.Name, m.Notes, m.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM menu_items WHERE menu_id = $1`, m.ID); err != nil {
		return err
	}
	if err := insertLines(ctx, tx, m); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertLines(ctx context.Context, tx pgx.Tx, m *Menu) error {
	for i, line := range m.Lines {
		_, err := tx.Exec(ctx, `
			INSERT INTO menu_items (menu_id, recipe_id, batches, position)
			VALUES ($1, $2, $3, $4)
		`, m.ID, line.RecipeID, line.Batches, i)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*Menu, error) {
	var m Menu
	err := r.db.QueryRow(ctx, `
		SELECT id, name, notes, created_at FROM menus WHERE id = $1
	`, id).Scan(&m.ID, &m.Name, &m.Notes, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT recipe_id, batches
		FROM menu_items
		WHERE menu_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line Line
		if err := rows.Scan(&line.RecipeID, &line.Batches); err != nil {
			return nil, err
		}
		m.Lines = append(m.Lines, line)
	}
	return &m, rows.Err()
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Menu, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM menus ORDER BY name`)
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

	menus := make([]*Menu, 0, len(ids))
	for _, id := range ids {
		m, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	return menus, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM menu_items WHERE menu_id = $1`, id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM menus WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}
