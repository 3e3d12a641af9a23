package recipe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/PoFerry/atelierculinairepof/internal/costing"
	"github.com/PoFerry/atelierculinairepof/internal/ingredient"
	"github.com/PoFerry/atelierculinairepof/internal/units"
)

// IngredientSource is the slice of the ingredient repository the
// recipe service needs for validation and costing snapshots.
type IngredientSource interface {
	GetByIDs(ctx context.Context, ids []int) (map[int]*ingredient.Ingredient, error)
}

type Service struct {
	repo        Repository
	ingredients IngredientSource
}

func NewService(repo Repository, ingredients IngredientSource) *Service {
	return &Service{repo: repo, ingredients: ingredients}
}

type LineInput struct {
	IngredientID int
	Quantity     decimal.Decimal
	Unit         string
}

type Input struct {
	Name         string
	Category     string
	Servings     int
	Instructions string
	Lines        []LineInput
}

// validate checks servings, resolves every referenced ingredient and
// rejects line units that cannot convert into the ingredient's class.
func (s *Service) validate(ctx context.Context, in Input) (*Recipe, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("recipe name is required")
	}
	if in.Servings <= 0 {
		return nil, costing.ErrInvalidPortionCount
	}

	rec := &Recipe{
		Name:         name,
		Category:     strings.TrimSpace(in.Category),
		Servings:     in.Servings,
		Instructions: in.Instructions,
		Lines:        make([]Line, 0, len(in.Lines)),
	}

	ids := make([]int, 0, len(in.Lines))
	for _, l := range in.Lines {
		ids = append(ids, l.IngredientID)
	}
	resolved, err := s.ingredients.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, l := range in.Lines {
		ing, ok := resolved[l.IngredientID]
		if !ok {
			return nil, fmt.Errorf("ingredient %d: %w", l.IngredientID, costing.ErrDanglingReference)
		}

		unit, err := units.Normalize(l.Unit)
		if err != nil {
			return nil, err
		}
		if _, err := units.Convert(decimal.NewFromInt(1), unit, ing.BaseUnit); err != nil {
			return nil, fmt.Errorf("ingredient %q: %w", ing.Name, err)
		}

		rec.Lines = append(rec.Lines, Line{
			IngredientID: l.IngredientID,
			Quantity:     l.Quantity,
			Unit:         unit,
		})
	}

	return rec, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*Recipe, error) {
	rec, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Update(ctx context.Context, id int, in Input) (*Recipe, error) {
	rec, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Recipe, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Recipe, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// Cost loads the recipe and its ingredients into a snapshot and
// delegates to the costing core.
func (s *Service) Cost(ctx context.Context, id int) (*costing.RecipeCost, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshot(ctx, rec)
	if err != nil {
		return nil, err
	}
	return costing.Cost(rec.CostingRecord(), snap)
}

func (s *Service) snapshot(ctx context.Context, rec *Recipe) (*costing.Snapshot, error) {
	resolved, err := s.ingredients.GetByIDs(ctx, rec.IngredientIDs())
	if err != nil {
		return nil, err
	}

	snap := costing.NewSnapshot()
	for id, ing := range resolved {
		snap.Ingredients[id] = ing.CostingRecord()
	}
	return snap, nil
}
