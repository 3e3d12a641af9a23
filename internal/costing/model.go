package costing

import (
	"github.com/shopspring/decimal"

	"github.com/PoFerry/atelierculinairepof/internal/units"
)

// Plain snapshot records. The storage layer maps its rows into these
// before calling the costing functions; the core never touches a
// database or the network.

type Ingredient struct {
	ID            int
	Name          string
	Category      string
	SupplierID    *int
	PackSize      decimal.Decimal
	PackUnit      units.Unit
	PurchasePrice decimal.Decimal
	BaseUnit      units.Unit
}

type RecipeLine struct {
	IngredientID int
	Quantity     decimal.Decimal
	Unit         units.Unit
}

type Recipe struct {
	ID       int
	Name     string
	Servings int
	Lines    []RecipeLine
}

type MenuLine struct {
	RecipeID int
	Batches  int
}

type Menu struct {
	ID    int
	Name  string
	Lines []MenuLine
}

// Resolver supplies snapshot lookups by id. The caller guarantees the
// snapshot is internally consistent for the duration of a computation.
type Resolver interface {
	Ingredient(id int) (*Ingredient, bool)
	Recipe(id int) (*Recipe, bool)
}

type LineCost struct {
	IngredientID int
	QuantityBase decimal.Decimal
	Unit         units.Unit
	Cost         decimal.Decimal
}

type RecipeCost struct {
	RecipeID   int
	Total      decimal.Decimal
	PerPortion decimal.Decimal
	Lines      []LineCost
}

// ShoppingItem is one aggregated row of a menu shopping list.
type ShoppingItem struct {
	IngredientID int
	Name         string
	SupplierID   *int
	QuantityBase decimal.Decimal
	Unit         units.Unit
	Cost         decimal.Decimal
}

// MenuCost holds the menu total and the shopping list in order of
// first appearance, so repeated aggregations render identically.
type MenuCost struct {
	MenuID       int
	TotalCost    decimal.Decimal
	ShoppingList []ShoppingItem
}
