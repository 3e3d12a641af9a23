package ingredient

import (
	"context"
	"time"
)

type InMemoryRepository struct {
	ingredients map[int]*Ingredient
	nextID      int

	// referenced mirrors the recipe_items foreign key for tests.
	referenced map[int]bool
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		ingredients: make(map[int]*Ingredient),
		referenced:  make(map[int]bool),
		nextID:      1,
	}
}

func (r *InMemoryRepository) MarkReferenced(id int) {
	r.referenced[id] = true
}

func (r *InMemoryRepository) Create(_ context.Context, ing *Ingredient) error {
	ing.ID = r.nextID
	ing.CreatedAt = time.Now()
	r.nextID++
	copied := *ing
	r.ingredients[ing.ID] = &copied
	return nil
}

func (r *InMemoryRepository) Update(_ context.Context, ing *Ingredient) error {
	if _, ok := r.ingredients[ing.ID]; !ok {
		return ErrNotFound
	}
	copied := *ing
	r.ingredients[ing.ID] = &copied
	return nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int) (*Ingredient, error) {
	ing, ok := r.ingredients[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *ing
	return &copied, nil
}

func (r *InMemoryRepository) GetByIDs(_ context.Context, ids []int) (map[int]*Ingredient, error) {
	out := make(map[int]*Ingredient, len(ids))
	for _, id := range ids {
		if ing, ok := r.ingredients[id]; ok {
			copied := *ing
			out[id] = &copied
		}
	}
	return out, nil
}

func (r *InMemoryRepository) List(_ context.Context) ([]*Ingredient, error) {
	out := make([]*Ingredient, 0, len(r.ingredients))
	for id := 1; id < r.nextID; id++ {
		if ing, ok := r.ingredients[id]; ok {
			copied := *ing
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id int) error {
	if _, ok := r.ingredients[id]; !ok {
		return ErrNotFound
	}
	if r.referenced[id] {
		return ErrReferenced
	}
	delete(r.ingredients, id)
	return nil
}
