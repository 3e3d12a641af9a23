package recipe

import "context"

type Repository interface {
	Create(ctx context.Context, r *Recipe) error
	Update(ctx context.Context, r *Recipe) error
	GetByID(ctx context.Context, id int) (*Recipe, error)
	GetByIDs(ctx context.Context, ids []int) (map[int]*Recipe, error)
	List(ctx context.Context) ([]*Recipe, error)
	Delete(ctx context.Context, id int) error
}
