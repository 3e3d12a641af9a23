package menu

import (
	"context"
	"time"
)

type InMemoryRepository struct {
	menus  map[int]*Menu
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		menus:  make(map[int]*Menu),
		nextID: 1,
	}
}

func clone(m *Menu) *Menu {
	copied := *m
	copied.Lines = append([]Line(nil), m.Lines...)
	return &copied
}

func (r *InMemoryRepository) Create(_ context.Context, m *Menu) error {
	m.ID = r.nextID
	m.CreatedAt = time.Now()
	r.nextID++
	r.menus[m.ID] = clone(m)
	return nil
}

func (r *InMemoryRepository) Update(_ context.Context, m *Menu) error {
	if _, ok := r.menus[m.ID]; !ok {
		return ErrNotFound
	}
	r.menus[m.ID] = clone(m)
	return nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int) (*Menu, error) {
	m, ok := r.menus[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(m), nil
}

func (r *InMemoryRepository) List(_ context.Context) ([]*Menu, error) {
	out := make([]*Menu, 0, len(r.menus))
	for id := 1; id < r.nextID; id++ {
		if m, ok := r.menus[id]; ok {
			out = append(out, clone(m))
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id int) error {
	if _, ok := r.menus[id]; !ok {
		return ErrNotFound
	}
	delete(r.menus, id)
	return nil
}
