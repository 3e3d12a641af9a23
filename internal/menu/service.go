package menu

import (
	"context"
	"errors"
	"strings"

	"github.com/PoFerry/atelierculinairepof/internal/costing"
	"github.com/PoFerry/atelierculinairepof/internal/ingredient"
	"github.com/PoFerry/atelierculinairepof/internal/recipe"
)

// RecipeSource and IngredientSource are the repository slices the
// aggregation snapshot is built from.
type RecipeSource interface {
	GetByIDs(ctx context.Context, ids []int) (map[int]*recipe.Recipe, error)
}

type IngredientSource interface {
	GetByIDs(ctx context.Context, ids []int) (map[int]*ingredient.Ingredient, error)
}

type Service struct {
	repo        Repository
	recipes     RecipeSource
	ingredients IngredientSource
}

func NewService(repo Repository, recipes RecipeSource, ingredients IngredientSource) *Service {
	return &Service{repo: repo, recipes: recipes, ingredients: ingredients}
}

type LineInput struct {
	RecipeID int
	Batches  int
}

type Input struct {
	Name  string
	Notes string
	Lines []LineInput
}

func (s *Service) validate(ctx context.Context, in Input) (*Menu, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("menu name is required")
	}

	m := &Menu{
		Name:  name,
		Notes: strings.TrimSpace(in.Notes),
		Lines: make([]Line, 0, len(in.Lines)),
	}

	ids := make([]int, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.Batches <= 0 {
			return nil, costing.ErrInvalidBatchCount
		}
		ids = append(ids, l.RecipeID)
	}

	resolved, err := s.recipes.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, l := range in.Lines {
		if _, ok := resolved[l.RecipeID]; !ok {
			return nil, costing.ErrDanglingReference
		}
		m.Lines = append(m.Lines, Line{RecipeID: l.RecipeID, Batches: l.Batches})
	}

	return m, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*Menu, error) {
	m, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, id int, in Input) (*Menu, error) {
	m, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	m.ID = id
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Menu, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Menu, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// Aggregate loads a consistent snapshot of the menu's recipes and
// their ingredients, then delegates to the costing core. A recipe or
// ingredient deleted since the menu was saved surfaces as a dangling
// reference and aborts the whole aggregation.
func (s *Service) Aggregate(ctx context.Context, id int) (*costing.MenuCost, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	recipes, err := s.recipes.GetByIDs(ctx, m.RecipeIDs())
	if err != nil {
		return nil, err
	}

	snap := costing.NewSnapshot()
	var ingredientIDs []int
	seen := make(map[int]bool)
	for rid, rec := range recipes {
		snap.Recipes[rid] = rec.CostingRecord()
		for _, ingID := range rec.IngredientIDs() {
			if !seen[ingID] {
				seen[ingID] = true
				ingredientIDs = append(ingredientIDs, ingID)
			}
		}
	}

	ingredients, err := s.ingredients.GetByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, err
	}
	for ingID, ing := range ingredients {
		snap.Ingredients[ingID] = ing.CostingRecord()
	}

	return costing.Aggregate(m.CostingRecord(), snap)
}
