package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	if err := initSchema(pool); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return pool
}

// initSchema creates or updates the database schema. Column additions
// are kept as separate ALTERs so existing databases migrate in place.
func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'CHEF',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS suppliers (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			contact VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(50) NOT NULL DEFAULT '',
			email VARCHAR(255) NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS ingredients (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			category VARCHAR(100) NOT NULL DEFAULT 'Autre',
			supplier_id INT REFERENCES suppliers(id),
			pack_size NUMERIC(20,6) NOT NULL DEFAULT 0,
			pack_unit VARCHAR(20) NOT NULL DEFAULT 'g',
			purchase_price NUMERIC(20,6) NOT NULL DEFAULT 0,
			price_per_base_unit NUMERIC(20,10) NOT NULL DEFAULT 0,
			base_unit VARCHAR(20) NOT NULL DEFAULT 'g',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`ALTER TABLE ingredients
			ADD COLUMN IF NOT EXISTS supplier_code VARCHAR(100) NOT NULL DEFAULT ''`,

		`CREATE UNIQUE INDEX IF NOT EXISTS uix_ingredients_supplier_code
			ON ingredients (supplier_id, supplier_code)
			WHERE supplier_code <> ''`,

		`CREATE TABLE IF NOT EXISTS recipes (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			category VARCHAR(100) NOT NULL DEFAULT '',
			servings INT NOT NULL DEFAULT 1,
			instructions TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS recipe_items (
			id SERIAL PRIMARY KEY,
			recipe_id INT NOT NULL REFERENCES recipes(id),
			ingredient_id INT NOT NULL REFERENCES ingredients(id),
			quantity NUMERIC(20,6) NOT NULL DEFAULT 0,
			unit VARCHAR(20) NOT NULL DEFAULT 'g',
			position INT NOT NULL DEFAULT 0,
			UNIQUE (recipe_id, ingredient_id)
		)`,

		`CREATE TABLE IF NOT EXISTS menus (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`ALTER TABLE menus
			ADD COLUMN IF NOT EXISTS notes TEXT NOT NULL DEFAULT ''`,

		`CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			menu_id INT NOT NULL REFERENCES menus(id),
			recipe_id INT NOT NULL REFERENCES recipes(id),
			batches INT NOT NULL DEFAULT 1,
			position INT NOT NULL DEFAULT 0,
			UNIQUE (menu_id, recipe_id)
		)`,

		`CREATE TABLE IF NOT EXISTS stock_movements (
			id SERIAL PRIMARY KEY,
			ingredient_id INT NOT NULL REFERENCES ingredients(id),
			qty NUMERIC(20,6) NOT NULL DEFAULT 0,
			unit VARCHAR(20) NOT NULL DEFAULT 'g',
			quantity_base NUMERIC(20,6) NOT NULL DEFAULT 0,
			movement_type VARCHAR(20) NOT NULL DEFAULT 'in',
			unit_cost NUMERIC(20,6) NOT NULL DEFAULT 0,
			note TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
