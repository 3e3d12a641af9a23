package menu

import "context"

type Repository interface {
	Create(ctx context.Context, m *Menu) error
	Update(ctx context.Context, m *Menu) error
	GetByID(ctx context.Context, id int) (*Menu, error)
	List(ctx context.Context) ([]*Menu, error)
	Delete(ctx context.Context, id int) error
}
