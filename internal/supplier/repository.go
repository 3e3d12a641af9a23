package supplier

import "context"

type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	Update(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, id int) (*Supplier, error)
	List(ctx context.Context) ([]*Supplier, error)
	Delete(ctx context.Context, id int) error
}
