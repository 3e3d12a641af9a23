package ingredient

import "context"

type Repository interface {
	Create(ctx context.Context, ing *Ingredient) error
	Update(ctx context.Context, ing *Ingredient) error
	GetByID(ctx context.Context, id int) (*Ingredient, error)
	GetByIDs(ctx context.Context, ids []int) (map[int]*Ingredient, error)
	List(ctx context.Context) ([]*Ingredient, error)
	Delete(ctx context.Context, id int) error
}
