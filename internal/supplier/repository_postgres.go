package supplier

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("supplier not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *Supplier) error {
	query := `
		INSERT INTO suppliers (name, contact, phone, email, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query,
		s.Name, s.Contact, s.Phone, s.Email, s.Notes,
	).Scan(&s.ID)
}

func (r *PostgresRepository) Update(ctx context.Context, s *Supplier) error {
	query := `
		UPDATE suppliers
		SET name = $1, contact = $2, phone = $3, email = $4, notes = $5
		WHERE id = $6
	`
	tag, err := r.db.Exec(ctx, query,
		s.Name, s.Contact, s.Phone, s.Email, s.Notes, s.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*Supplier, error) {
	query := `
		SELECT id, name, contact, phone, email, notes
		FROM suppliers
		WHERE id = $1
	`
	var s Supplier
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Contact, &s.Phone, &s.Email, &s.Notes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Supplier, error) {
	query := `
		SELECT id, name, contact, phone, email, notes
		FROM suppliers
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []*Supplier
	for rows.Next() {
		var s Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Contact, &s.Phone, &s.Email, &s.Notes); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, &s)
	}
	return suppliers, rows.Err()
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
