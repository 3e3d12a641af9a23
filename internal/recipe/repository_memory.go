package recipe

import "context"

type InMemoryRepository struct {
	recipes map[int]*Recipe
	nextID  int

	referenced map[int]bool
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		recipes:    make(map[int]*Recipe),
		referenced: make(map[int]bool),
		nextID:     1,
	}
}

func (r *InMemoryRepository) MarkReferenced(id int) {
	r.referenced[id] = true
}

func clone(rec *Recipe) *Recipe {
	copied := *rec
	copied.Lines = append([]Line(nil), rec.Lines...)
	return &copied
}

func (r *InMemoryRepository) Create(_ context.Context, rec *Recipe) error {
	rec.ID = r.nextID
	r.nextID++
	r.recipes[rec.ID] = clone(rec)
	return nil
}

func (r *InMemoryRepository) Update(_ context.Context, rec *Recipe) error {
	if _, ok := r.recipes[rec.ID]; !ok {
		return ErrNotFound
	}
	r.recipes[rec.ID] = clone(rec)
	return nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int) (*Recipe, error) {
	rec, ok := r.recipes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(rec), nil
}

func (r *InMemoryRepository) GetByIDs(_ context.Context, ids []int) (map[int]*Recipe, error) {
	out := make(map[int]*Recipe, len(ids))
	for _, id := range ids {
		if rec, ok := r.recipes[id]; ok {
			out[id] = clone(rec)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) List(_ context.Context) ([]*Recipe, error) {
	out := make([]*Recipe, 0, len(r.recipes))
	for id := 1; id < r.nextID; id++ {
		if rec, ok := r.recipes[id]; ok {
			out = append(out, clone(rec))
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id int) error {
	if _, ok := r.recipes[id]; !ok {
		return ErrNotFound
	}
	if r.referenced[id] {
		return ErrReferenced
	}
	delete(r.recipes, id)
	return nil
}
