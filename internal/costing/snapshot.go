package costing

// Snapshot is a map-backed Resolver for callers that load their
// records up front.
type Snapshot struct {
	Ingredients map[int]*Ingredient
	Recipes     map[int]*Recipe
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		Ingredients: make(map[int]*Ingredient),
		Recipes:     make(map[int]*Recipe),
	}
}

func (s *Snapshot) Ingredient(id int) (*Ingredient, bool) {
	ing, ok := s.Ingredients[id]
	return ing, ok
}

func (s *Snapshot) Recipe(id int) (*Recipe, bool) {
	r, ok := s.Recipes[id]
	return r, ok
}
