package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/PoFerry/atelierculinairepof/internal/costing"
	"github.com/PoFerry/atelierculinairepof/internal/ingredient"
	"github.com/PoFerry/atelierculinairepof/internal/menu"
	"github.com/PoFerry/atelierculinairepof/internal/recipe"
	"github.com/PoFerry/atelierculinairepof/internal/supplier"
	"github.com/PoFerry/atelierculinairepof/internal/units"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestShoppingListCSV(t *testing.T) {
	mc := &costing.MenuCost{
		MenuID:    1,
		TotalCost: dec("3.00"),
		ShoppingList: []costing.ShoppingItem{
			{IngredientID: 1, Name: "Flour", QuantityBase: dec("1500"), Unit: units.Gram, Cost: dec("3.00")},
		},
	}

	data, err := ShoppingListCSV(mc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}

	want := [][]string{
		{"ingredient", "quantity", "unit", "total_cost"},
		{"Flour", "1500", "g", "3.00"},
		{"TOTAL", "", "", "3.00"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("csv = %v, want %v", records, want)
	}
}

func TestShoppingListCSVRoundsAtPresentation(t *testing.T) {
	mc := &costing.MenuCost{
		MenuID:    2,
		TotalCost: dec("1.23456"),
		ShoppingList: []costing.ShoppingItem{
			{IngredientID: 1, Name: "Saffron", QuantityBase: dec("0.33333333"), Unit: units.Gram, Cost: dec("1.23456")},
		},
	}

	data, err := ShoppingListCSV(mc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}

	if records[1][1] != "0.333" {
		t.Errorf("quantity = %s, want 0.333", records[1][1])
	}
	if records[1][3] != "1.23" {
		t.Errorf("cost = %s, want 1.23", records[1][3])
	}
}

func TestRecipeCardService(t *testing.T) {
	ctx := context.Background()

	supplierRepo := supplier.NewInMemoryRepository()
	sup := &supplier.Supplier{Name: "Moulin du Nord"}
	if err := supplierRepo.Create(ctx, sup); err != nil {
		t.Fatalf("create supplier: %v", err)
	}

	ingredientRepo := ingredient.NewInMemoryRepository()
	ingredientService := ingredient.NewService(ingredientRepo)
	flour, err := ingredientService.Create(ctx, ingredient.Input{
		Name:          "Flour",
		SupplierID:    &sup.ID,
		PackSize:      decimal.NewFromInt(1),
		PackUnit:      "kg",
		PurchasePrice: dec("2.00"),
		BaseUnit:      "g",
	})
	if err != nil {
		t.Fatalf("create flour: %v", err)
	}

	recipeRepo := recipe.NewInMemoryRepository()
	recipeService := recipe.NewService(recipeRepo, ingredientRepo)
	bread, err := recipeService.Create(ctx, recipe.Input{
		Name:     "Bread",
		Servings: 4,
		Lines: []recipe.LineInput{
			{IngredientID: flour.ID, Quantity: dec("500"), Unit: "g"},
		},
	})
	if err != nil {
		t.Fatalf("create bread: %v", err)
	}

	menuService := menu.NewService(menu.NewInMemoryRepository(), recipeRepo, ingredientRepo)
	service := NewService(menuService, recipeService, ingredientRepo, supplierRepo, nil)

	data, filename, err := service.RecipeCard(ctx, bread.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filename == "" {
		t.Error("expected a filename")
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}

	want := [][]string{
		{"ingredient", "quantity", "unit", "supplier", "price_per_base_unit", "line_cost"},
		{"Flour", "500", "g", "Moulin du Nord", "0.002", "1.00"},
		{"TOTAL", "", "", "", "", "1.00"},
		{"PER_PORTION", "", "", "", "", "0.25"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("csv = %v, want %v", records, want)
	}
}

func TestPublishWithoutStorage(t *testing.T) {
	ingredientRepo := ingredient.NewInMemoryRepository()
	recipeRepo := recipe.NewInMemoryRepository()
	menuService := menu.NewService(menu.NewInMemoryRepository(), recipeRepo, ingredientRepo)
	recipeService := recipe.NewService(recipeRepo, ingredientRepo)
	service := NewService(menuService, recipeService, ingredientRepo, supplier.NewInMemoryRepository(), nil)

	_, err := service.PublishShoppingList(context.Background(), 1)
	if err != ErrNoStorage {
		t.Errorf("expected ErrNoStorage, got %v", err)
	}
}
