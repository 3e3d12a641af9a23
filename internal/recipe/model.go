package recipe

import (
	"github.com/shopspring/decimal"

	"github.com/PoFerry/atelierculinairepof/internal/costing"
	"github.com/PoFerry/atelierculinairepof/internal/units"
)

type Line struct {
	IngredientID int             `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         units.Unit      `json:"unit"`
}

type Recipe struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Servings     int    `json:"servings"`
	Instructions string `json:"instructions"`
	Lines        []Line `json:"lines"`
}

func (r *Recipe) CostingRecord() *costing.Recipe {
	lines := make([]costing.RecipeLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, costing.RecipeLine{
			IngredientID: l.IngredientID,
			Quantity:     l.Quantity,
			Unit:         l.Unit,
		})
	}
	return &costing.Recipe{
		ID:       r.ID,
		Name:     r.Name,
		Servings: r.Servings,
		Lines:    lines,
	}
}

// IngredientIDs returns the distinct ingredient ids referenced by the
// recipe lines, in line order.
func (r *Recipe) IngredientIDs() []int {
	seen := make(map[int]bool, len(r.Lines))
	ids := make([]int, 0, len(r.Lines))
	for _, l := range r.Lines {
		if !seen[l.IngredientID] {
			seen[l.IngredientID] = true
			ids = append(ids, l.IngredientID)
		}
	}
	return ids
}
