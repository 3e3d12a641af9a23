package supplier

import "context"

type InMemoryRepository struct {
	suppliers map[int]*Supplier
	nextID    int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		suppliers: make(map[int]*Supplier),
		nextID:    1,
	}
}

func (r *InMemoryRepository) Create(_ context.Context, s *Supplier) error {
	s.ID = r.nextID
	r.nextID++
	copied := *s
	r.suppliers[s.ID] = &copied
	return nil
}

func (r *InMemoryRepository) Update(_ context.Context, s *Supplier) error {
	if _, ok := r.suppliers[s.ID]; !ok {
		return ErrNotFound
	}
	copied := *s
	r.suppliers[s.ID] = &copied
	return nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int) (*Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *InMemoryRepository) List(_ context.Context) ([]*Supplier, error) {
	out := make([]*Supplier, 0, len(r.suppliers))
	for id := 1; id < r.nextID; id++ {
		if s, ok := r.suppliers[id]; ok {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id int) error {
	if _, ok := r.suppliers[id]; !ok {
		return ErrNotFound
	}
	delete(r.suppliers, id)
	return nil
}
