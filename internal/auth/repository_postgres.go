package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Save(user *User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	query := `
		INSERT INTO users (id, name, email, password, role)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(context.Background(), query,
		user.ID, user.Name, user.Email, user.Password, user.Role,
	)
	return err
}

func (r *PostgresUserRepository) ExistsByEmail(email string) (bool, error) {
	row := r.db.QueryRow(context.Background(),
		`SELECT 1 FROM users WHERE email = $1 LIMIT 1`, email)

	var exists int
	err := row.Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *PostgresUserRepository) FindByEmail(email string) (*User, error) {
	row := r.db.QueryRow(context.Background(), `
		SELECT id, name, email, password, role
		FROM users
		WHERE email = $1
	`, email)

	user := &User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
