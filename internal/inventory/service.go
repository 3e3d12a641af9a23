package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/PoFerry/atelierculinairepof/internal/ingredient"
	"github.com/PoFerry/atelierculinairepof/internal/units"
)

// IngredientSource resolves the ingredient whose base unit a movement
// quantity is converted into.
type IngredientSource interface {
	GetByID(ctx context.Context, id int) (*ingredient.Ingredient, error)
	List(ctx context.Context) ([]*ingredient.Ingredient, error)
}

type Service struct {
	repo        Repository
	ingredients IngredientSource
}

func NewService(repo Repository, ingredients IngredientSource) *Service {
	return &Service{repo: repo, ingredients: ingredients}
}

type Input struct {
	IngredientID int
	Quantity     decimal.Decimal
	Unit         string
	Type         string
	UnitCost     decimal.Decimal
	Note         string
}

// Add records a stock movement. Quantities are converted to the
// ingredient's base unit and signed by movement type; stock is never
// depleted automatically by menu production.
func (s *Service) Add(ctx context.Context, in Input) (*Movement, error) {
	if in.Type != MovementIn && in.Type != MovementOut && in.Type != MovementAdjust {
		return nil, fmt.Errorf("movement type must be in, out or adjust; got %q", in.Type)
	}

	ing, err := s.ingredients.GetByID(ctx, in.IngredientID)
	if err != nil {
		return nil, err
	}

	unit, err := units.Normalize(in.Unit)
	if err != nil {
		return nil, err
	}

	qtyBase, err := units.Convert(in.Quantity, unit, ing.BaseUnit)
	if err != nil {
		return nil, fmt.Errorf("ingredient %q: %w", ing.Name, err)
	}

	switch in.Type {
	case MovementIn:
		qtyBase = qtyBase.Abs()
	case MovementOut:
		qtyBase = qtyBase.Abs().Neg()
	}

	m := &Movement{
		IngredientID: in.IngredientID,
		Quantity:     in.Quantity,
		Unit:         unit,
		QuantityBase: qtyBase,
		Type:         in.Type,
		UnitCost:     in.UnitCost,
		Note:         in.Note,
	}
	if err := s.repo.Add(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Recent(ctx context.Context, limit int) ([]*Movement, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	return s.repo.ListRecent(ctx, limit)
}

// CurrentStock returns one level per known ingredient, in list order,
// including zero levels for ingredients with no movements.
func (s *Service) CurrentStock(ctx context.Context) ([]*StockLevel, error) {
	sums, err := s.repo.StockByIngredient(ctx)
	if err != nil {
		return nil, err
	}

	ings, err := s.ingredients.List(ctx)
	if err != nil {
		return nil, err
	}

	levels := make([]*StockLevel, 0, len(ings))
	for _, ing := range ings {
		levels = append(levels, &StockLevel{
			IngredientID: ing.ID,
			Quantity:     sums[ing.ID],
			Unit:         ing.BaseUnit,
		})
	}
	return levels, nil
}
