package costing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/PoFerry/atelierculinairepof/internal/units"
)

type snapshot struct {
	ingredients map[int]*Ingredient
	recipes     map[int]*Recipe
}

func (s *snapshot) Ingredient(id int) (*Ingredient, bool) {
	ing, ok := s.ingredients[id]
	return ing, ok
}

func (s *snapshot) Recipe(id int) (*Recipe, bool) {
	r, ok := s.recipes[id]
	return r, ok
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Flour: 1 kg for $2.00, used 500 g in a 4-portion bread recipe.
func breadSnapshot() *snapshot {
	return &snapshot{
		ingredients: map[int]*Ingredient{
			1: {
				ID:            1,
				Name:          "Flour",
				PackSize:      dec("1"),
				PackUnit:      units.Kilogram,
				PurchasePrice: dec("2.00"),
				BaseUnit:      units.Gram,
			},
		},
		recipes: map[int]*Recipe{
			10: {
				ID:       10,
				Name:     "Bread",
				Servings: 4,
				Lines: []RecipeLine{
					{IngredientID: 1, Quantity: dec("500"), Unit: units.Gram},
				},
			},
		},
	}
}

func TestPricePerBaseUnit(t *testing.T) {
	snap := breadSnapshot()

	price, err := PricePerBaseUnit(snap.ingredients[1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !price.Equal(dec("0.002")) {
		t.Errorf("price per gram = %s, want 0.002", price)
	}
}

func TestPricePerBaseUnitRoundTrip(t *testing.T) {
	ing := &Ingredient{
		Name:          "Olive oil",
		PackSize:      dec("0.75"),
		PackUnit:      units.Liter,
		PurchasePrice: dec("11.25"),
		BaseUnit:      units.Milliliter,
	}

	price, err := PricePerBaseUnit(ing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	packBase, err := units.Convert(ing.PackSize, ing.PackUnit, ing.BaseUnit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	back := price.Mul(packBase)
	if diff := back.Sub(ing.PurchasePrice).Abs(); diff.GreaterThan(dec("0.0000001")) {
		t.Errorf("round trip: %s × %s = %s, want %s", price, packBase, back, ing.PurchasePrice)
	}
}

func TestPricePerBaseUnitRejectsNonPositivePack(t *testing.T) {
	ing := &Ingredient{
		Name:          "Salt",
		PackSize:      decimal.Zero,
		PackUnit:      units.Gram,
		PurchasePrice: dec("1.00"),
		BaseUnit:      units.Gram,
	}

	if _, err := PricePerBaseUnit(ing); !errors.Is(err, ErrInvalidPurchaseFormat) {
		t.Errorf("expected ErrInvalidPurchaseFormat, got %v", err)
	}
}

func TestPricePerBaseUnitRejectsCrossClassPack(t *testing.T) {
	ing := &Ingredient{
		Name:          "Milk",
		PackSize:      dec("1"),
		PackUnit:      units.Liter,
		PurchasePrice: dec("1.80"),
		BaseUnit:      units.Gram,
	}

	if _, err := PricePerBaseUnit(ing); !errors.Is(err, units.ErrIncompatibleUnits) {
		t.Errorf("expected ErrIncompatibleUnits, got %v", err)
	}
}

func TestRecipeCost(t *testing.T) {
	snap := breadSnapshot()

	rc, err := Cost(snap.recipes[10], snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !rc.Total.Equal(dec("1.00")) {
		t.Errorf("total = %s, want 1.00", rc.Total)
	}
	if !rc.PerPortion.Equal(dec("0.25")) {
		t.Errorf("per portion = %s, want 0.25", rc.PerPortion)
	}

	// per-portion × portions == total
	portions := decimal.NewFromInt(int64(snap.recipes[10].Servings))
	if !rc.PerPortion.Mul(portions).Equal(rc.Total) {
		t.Errorf("per portion × portions = %s, want %s", rc.PerPortion.Mul(portions), rc.Total)
	}

	// total == sum of line costs
	var sum decimal.Decimal
	for _, l := range rc.Lines {
		sum = sum.Add(l.Cost)
	}
	if !sum.Equal(rc.Total) {
		t.Errorf("sum of line costs = %s, want %s", sum, rc.Total)
	}
}

func TestRecipeCostRejectsNonPositiveServings(t *testing.T) {
	snap := breadSnapshot()
	snap.recipes[10].Servings = 0

	if _, err := Cost(snap.recipes[10], snap); !errors.Is(err, ErrInvalidPortionCount) {
		t.Errorf("expected ErrInvalidPortionCount, got %v", err)
	}
}

func TestRecipeCostRejectsCrossClassLine(t *testing.T) {
	snap := breadSnapshot()
	snap.recipes[10].Lines[0].Unit = units.Liter

	if _, err := Cost(snap.recipes[10], snap); !errors.Is(err, units.ErrIncompatibleUnits) {
		t.Errorf("expected ErrIncompatibleUnits, got %v", err)
	}
}

func TestRecipeCostDanglingIngredient(t *testing.T) {
	snap := breadSnapshot()
	snap.recipes[10].Lines = append(snap.recipes[10].Lines, RecipeLine{
		IngredientID: 99, Quantity: dec("10"), Unit: units.Gram,
	})

	if _, err := Cost(snap.recipes[10], snap); !errors.Is(err, ErrDanglingReference) {
		t.Errorf("expected ErrDanglingReference, got %v", err)
	}
}

func TestMenuAggregate(t *testing.T) {
	snap := breadSnapshot()
	menu := &Menu{
		ID:    100,
		Name:  "Market day",
		Lines: []MenuLine{{RecipeID: 10, Batches: 3}},
	}

	mc, err := Aggregate(menu, snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !mc.TotalCost.Equal(dec("3.00")) {
		t.Errorf("total cost = %s, want 3.00", mc.TotalCost)
	}
	if len(mc.ShoppingList) != 1 {
		t.Fatalf("shopping list has %d items, want 1", len(mc.ShoppingList))
	}

	item := mc.ShoppingList[0]
	if item.Name != "Flour" {
		t.Errorf("item name = %q, want Flour", item.Name)
	}
	if !item.QuantityBase.Equal(dec("1500")) {
		t.Errorf("quantity = %s g, want 1500", item.QuantityBase)
	}
	if item.Unit != units.Gram {
		t.Errorf("unit = %s, want g", item.Unit)
	}
	if !item.Cost.Equal(dec("3.00")) {
		t.Errorf("item cost = %s, want 3.00", item.Cost)
	}
}

func TestMenuAggregateAccumulatesAcrossRecipes(t *testing.T) {
	snap := breadSnapshot()
	snap.ingredients[2] = &Ingredient{
		ID:            2,
		Name:          "Butter",
		PackSize:      dec("250"),
		PackUnit:      units.Gram,
		PurchasePrice: dec("3.50"),
		BaseUnit:      units.Gram,
	}
	snap.recipes[11] = &Recipe{
		ID:       11,
		Name:     "Brioche",
		Servings: 8,
		Lines: []RecipeLine{
			{IngredientID: 2, Quantity: dec("100"), Unit: units.Gram},
			{IngredientID: 1, Quantity: dec("0.25"), Unit: units.Kilogram},
		},
	}

	menu := &Menu{
		ID:   101,
		Name: "Weekend",
		Lines: []MenuLine{
			{RecipeID: 10, Batches: 2},
			{RecipeID: 11, Batches: 4},
		},
	}

	mc, err := Aggregate(menu, snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Flour first (bread is the first line), butter second.
	if len(mc.ShoppingList) != 2 {
		t.Fatalf("shopping list has %d items, want 2", len(mc.ShoppingList))
	}
	if mc.ShoppingList[0].Name != "Flour" || mc.ShoppingList[1].Name != "Butter" {
		t.Errorf("order = [%s, %s], want [Flour, Butter]",
			mc.ShoppingList[0].Name, mc.ShoppingList[1].Name)
	}

	// Flour: 2×500g + 4×250g = 2000g at 0.002/g = 4.00.
	flour := mc.ShoppingList[0]
	if !flour.QuantityBase.Equal(dec("2000")) {
		t.Errorf("flour quantity = %s, want 2000", flour.QuantityBase)
	}
	if !flour.Cost.Equal(dec("4.00")) {
		t.Errorf("flour cost = %s, want 4.00", flour.Cost)
	}

	// Butter: 4×100g at 0.014/g = 5.60.
	butter := mc.ShoppingList[1]
	if !butter.QuantityBase.Equal(dec("400")) {
		t.Errorf("butter quantity = %s, want 400", butter.QuantityBase)
	}
	if !butter.Cost.Equal(dec("5.60")) {
		t.Errorf("butter cost = %s, want 5.60", butter.Cost)
	}

	// Menu total == sum over lines of batches × recipe total.
	bread, err := Cost(snap.recipes[10], snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	brioche, err := Cost(snap.recipes[11], snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := bread.Total.Mul(dec("2")).Add(brioche.Total.Mul(dec("4")))
	if !mc.TotalCost.Equal(want) {
		t.Errorf("total cost = %s, want %s", mc.TotalCost, want)
	}

	// Item costs sum to the menu total.
	var sum decimal.Decimal
	for _, item := range mc.ShoppingList {
		sum = sum.Add(item.Cost)
	}
	if !sum.Equal(mc.TotalCost) {
		t.Errorf("sum of item costs = %s, want %s", sum, mc.TotalCost)
	}
}

// Aggregating the same menu with its lines in a different order must
// produce the same total and the same per-ingredient amounts; only the
// shopping-list ordering may change.
func TestMenuAggregateOrderIndependentAmounts(t *testing.T) {
	snap := breadSnapshot()
	snap.ingredients[2] = &Ingredient{
		ID:            2,
		Name:          "Butter",
		PackSize:      dec("250"),
		PackUnit:      units.Gram,
		PurchasePrice: dec("3.50"),
		BaseUnit:      units.Gram,
	}
	snap.recipes[11] = &Recipe{
		ID:       11,
		Name:     "Brioche",
		Servings: 8,
		Lines: []RecipeLine{
			{IngredientID: 2, Quantity: dec("100"), Unit: units.Gram},
			{IngredientID: 1, Quantity: dec("0.25"), Unit: units.Kilogram},
		},
	}

	forward := &Menu{
		ID:   104,
		Name: "Weekend",
		Lines: []MenuLine{
			{RecipeID: 10, Batches: 2},
			{RecipeID: 11, Batches: 4},
		},
	}
	reversed := &Menu{
		ID:   104,
		Name: "Weekend",
		Lines: []MenuLine{
			{RecipeID: 11, Batches: 4},
			{RecipeID: 10, Batches: 2},
		},
	}

	a, err := Aggregate(forward, snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Aggregate(reversed, snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !a.TotalCost.Equal(b.TotalCost) {
		t.Errorf("totals differ by line order: %s vs %s", a.TotalCost, b.TotalCost)
	}
	if len(a.ShoppingList) != len(b.ShoppingList) {
		t.Fatalf("shopping lists have %d and %d items", len(a.ShoppingList), len(b.ShoppingList))
	}

	byName := make(map[string]ShoppingItem, len(b.ShoppingList))
	for _, item := range b.ShoppingList {
		byName[item.Name] = item
	}
	for _, item := range a.ShoppingList {
		other, ok := byName[item.Name]
		if !ok {
			t.Errorf("%s missing from reversed aggregation", item.Name)
			continue
		}
		if !item.QuantityBase.Equal(other.QuantityBase) {
			t.Errorf("%s quantity differs by line order: %s vs %s",
				item.Name, item.QuantityBase, other.QuantityBase)
		}
		if !item.Cost.Equal(other.Cost) {
			t.Errorf("%s cost differs by line order: %s vs %s",
				item.Name, item.Cost, other.Cost)
		}
	}
}

func TestMenuAggregateDanglingRecipe(t *testing.T) {
	snap := breadSnapshot()
	menu := &Menu{
		ID:   102,
		Name: "Broken",
		Lines: []MenuLine{
			{RecipeID: 10, Batches: 1},
			{RecipeID: 77, Batches: 1},
		},
	}

	mc, err := Aggregate(menu, snap)
	if !errors.Is(err, ErrDanglingReference) {
		t.Errorf("expected ErrDanglingReference, got %v", err)
	}
	if mc != nil {
		t.Errorf("expected no partial result, got %+v", mc)
	}
}

func TestMenuAggregateRejectsNonPositiveBatches(t *testing.T) {
	snap := breadSnapshot()
	menu := &Menu{
		ID:    103,
		Name:  "Zero",
		Lines: []MenuLine{{RecipeID: 10, Batches: 0}},
	}

	if _, err := Aggregate(menu, snap); !errors.Is(err, ErrInvalidBatchCount) {
		t.Errorf("expected ErrInvalidBatchCount, got %v", err)
	}
}
