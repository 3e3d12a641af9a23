package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type InMemoryRepository struct {
	movements []*Movement
	nextID    int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Add(_ context.Context, m *Movement) error {
	m.ID = r.nextID
	m.CreatedAt = time.Now()
	r.nextID++
	copied := *m
	r.movements = append(r.movements, &copied)
	return nil
}

func (r *InMemoryRepository) ListRecent(_ context.Context, limit int) ([]*Movement, error) {
	out := make([]*Movement, 0, limit)
	for i := len(r.movements) - 1; i >= 0 && len(out) < limit; i-- {
		copied := *r.movements[i]
		out = append(out, &copied)
	}
	return out, nil
}

func (r *InMemoryRepository) StockByIngredient(_ context.Context) (map[int]decimal.Decimal, error) {
	out := make(map[int]decimal.Decimal)
	for _, m := range r.movements {
		out[m.IngredientID] = out[m.IngredientID].Add(m.QuantityBase)
	}
	return out, nil
}
