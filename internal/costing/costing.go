package costing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/PoFerry/atelierculinairepof/internal/units"
)

// PricePerBaseUnit derives the ingredient's price per canonical unit
// (per gram, per milliliter, or per piece) from its purchase format.
func PricePerBaseUnit(ing *Ingredient) (decimal.Decimal, error) {
	packInBase, err := units.Convert(ing.PackSize, ing.PackUnit, ing.BaseUnit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ingredient %q: %w", ing.Name, err)
	}
	if packInBase.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("ingredient %q: %w", ing.Name, ErrInvalidPurchaseFormat)
	}
	return ing.PurchasePrice.Div(packInBase), nil
}

// Cost sums a recipe's line costs into total and per-portion figures.
// Each line quantity is converted into its ingredient's base unit and
// multiplied by that ingredient's price per base unit.
func Cost(r *Recipe, resolve Resolver) (*RecipeCost, error) {
	if r.Servings <= 0 {
		return nil, fmt.Errorf("recipe %q: %w", r.Name, ErrInvalidPortionCount)
	}

	out := &RecipeCost{
		RecipeID: r.ID,
		Lines:    make([]LineCost, 0, len(r.Lines)),
	}

	for _, line := range r.Lines {
		ing, ok := resolve.Ingredient(line.IngredientID)
		if !ok {
			return nil, fmt.Errorf("recipe %q: ingredient %d: %w", r.Name, line.IngredientID, ErrDanglingReference)
		}

		qtyBase, err := units.Convert(line.Quantity, line.Unit, ing.BaseUnit)
		if err != nil {
			return nil, fmt.Errorf("recipe %q, ingredient %q: %w", r.Name, ing.Name, err)
		}

		pricePerBase, err := PricePerBaseUnit(ing)
		if err != nil {
			return nil, err
		}

		lineCost := qtyBase.Mul(pricePerBase)
		out.Lines = append(out.Lines, LineCost{
			IngredientID: ing.ID,
			QuantityBase: qtyBase,
			Unit:         ing.BaseUnit,
			Cost:         lineCost,
		})
		out.Total = out.Total.Add(lineCost)
	}

	out.PerPortion = out.Total.Div(decimal.NewFromInt(int64(r.Servings)))
	return out, nil
}

// Aggregate rolls every menu line up into a consolidated shopping
// list keyed by ingredient identity, each recipe scaled by its batch
// count. It either fully succeeds or returns an error with no partial
// result; recipe costs are computed once per recipe even when a menu
// references the same recipe on several lines.
func Aggregate(m *Menu, resolve Resolver) (*MenuCost, error) {
	out := &MenuCost{MenuID: m.ID}

	memo := make(map[int]*RecipeCost)
	index := make(map[int]int)

	for _, line := range m.Lines {
		if line.Batches <= 0 {
			return nil, fmt.Errorf("menu %q, recipe %d: %w", m.Name, line.RecipeID, ErrInvalidBatchCount)
		}

		r, ok := resolve.Recipe(line.RecipeID)
		if !ok {
			return nil, fmt.Errorf("menu %q: recipe %d: %w", m.Name, line.RecipeID, ErrDanglingReference)
		}

		rc, ok := memo[r.ID]
		if !ok {
			var err error
			rc, err = Cost(r, resolve)
			if err != nil {
				return nil, err
			}
			memo[r.ID] = rc
		}

		batches := decimal.NewFromInt(int64(line.Batches))
		out.TotalCost = out.TotalCost.Add(rc.Total.Mul(batches))

		for _, lc := range rc.Lines {
			i, seen := index[lc.IngredientID]
			if !seen {
				ing, _ := resolve.Ingredient(lc.IngredientID)
				index[lc.IngredientID] = len(out.ShoppingList)
				i = len(out.ShoppingList)
				out.ShoppingList = append(out.ShoppingList, ShoppingItem{
					IngredientID: ing.ID,
					Name:         ing.Name,
					SupplierID:   ing.SupplierID,
					Unit:         lc.Unit,
				})
			}
			item := &out.ShoppingList[i]
			item.QuantityBase = item.QuantityBase.Add(lc.QuantityBase.Mul(batches))
			item.Cost = item.Cost.Add(lc.Cost.Mul(batches))
		}
	}

	return out, nil
}
