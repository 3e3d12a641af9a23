package inventory

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Add(ctx context.Context, m *Movement) error
	ListRecent(ctx context.Context, limit int) ([]*Movement, error)
	// StockByIngredient sums quantity_base grouped by ingredient.
	StockByIngredient(ctx context.Context) (map[int]decimal.Decimal, error)
}
