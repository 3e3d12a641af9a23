package export

import (
	"bytes"
	"encoding/csv"

	"github.com/PoFerry/atelierculinairepof/internal/costing"
)

// Quantities and costs stay exact all the way through aggregation;
// rounding happens here, at the presentation step only.
const (
	quantityPlaces = 3
	costPlaces     = 2
)

// ShoppingListCSV renders one row per aggregated ingredient:
// name, total base-unit quantity, unit label, total cost.
func ShoppingListCSV(mc *costing.MenuCost) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"ingredient", "quantity", "unit", "total_cost"}); err != nil {
		return nil, err
	}

	for _, item := range mc.ShoppingList {
		row := []string{
			item.Name,
			item.QuantityBase.Round(quantityPlaces).String(),
			string(item.Unit),
			item.Cost.Round(costPlaces).StringFixed(costPlaces),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	if err := w.Write([]string{"TOTAL", "", "", mc.TotalCost.Round(costPlaces).StringFixed(costPlaces)}); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RecipeCardRow is one ingredient row of a recipe card.
type RecipeCardRow struct {
	Ingredient   string
	Quantity     string
	Unit         string
	Supplier     string
	PricePerBase string
	LineCost     string
}

type RecipeCard struct {
	Name       string
	Category   string
	Servings   int
	Rows       []RecipeCardRow
	Total      string
	PerPortion string
}

// RecipeCardCSV renders the recipe card: ingredient rows followed by a
// cost footer.
func RecipeCardCSV(card *RecipeCard) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"ingredient", "quantity", "unit", "supplier", "price_per_base_unit", "line_cost"}); err != nil {
		return nil, err
	}

	for _, row := range card.Rows {
		if err := w.Write([]string{
			row.Ingredient, row.Quantity, row.Unit,
			row.Supplier, row.PricePerBase, row.LineCost,
		}); err != nil {
			return nil, err
		}
	}

	footer := [][]string{
		{"TOTAL", "", "", "", "", card.Total},
		{"PER_PORTION", "", "", "", "", card.PerPortion},
	}
	for _, row := range footer {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
