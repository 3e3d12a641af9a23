package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/PoFerry/atelierculinairepof/internal/costing"
	"github.com/PoFerry/atelierculinairepof/internal/ingredient"
	"github.com/PoFerry/atelierculinairepof/internal/menu"
	"github.com/PoFerry/atelierculinairepof/internal/recipe"
	"github.com/PoFerry/atelierculinairepof/internal/supplier"
)

var ErrNoStorage = errors.New("object storage is not configured")

type MenuSource interface {
	Get(ctx context.Context, id int) (*menu.Menu, error)
	Aggregate(ctx context.Context, id int) (*costing.MenuCost, error)
}

type RecipeSource interface {
	Get(ctx context.Context, id int) (*recipe.Recipe, error)
	Cost(ctx context.Context, id int) (*costing.RecipeCost, error)
}

type IngredientSource interface {
	GetByIDs(ctx context.Context, ids []int) (map[int]*ingredient.Ingredient, error)
}

type SupplierSource interface {
	GetByID(ctx context.Context, id int) (*supplier.Supplier, error)
}

// Uploader publishes a generated file to object storage and returns
// its public URL.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

type Service struct {
	menus       MenuSource
	recipes     RecipeSource
	ingredients IngredientSource
	suppliers   SupplierSource
	uploader    Uploader
}

func NewService(
	menus MenuSource,
	recipes RecipeSource,
	ingredients IngredientSource,
	suppliers SupplierSource,
	uploader Uploader,
) *Service {
	return &Service{
		menus:       menus,
		recipes:     recipes,
		ingredients: ingredients,
		suppliers:   suppliers,
		uploader:    uploader,
	}
}

// ShoppingList aggregates the menu and renders the CSV bytes along
// with a download filename.
func (s *Service) ShoppingList(ctx context.Context, menuID int) ([]byte, string, error) {
	m, err := s.menus.Get(ctx, menuID)
	if err != nil {
		return nil, "", err
	}

	mc, err := s.menus.Aggregate(ctx, menuID)
	if err != nil {
		return nil, "", err
	}

	data, err := ShoppingListCSV(mc)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("shopping-list-menu-%d.csv", m.ID), nil
}

// RecipeCard renders the recipe's ingredient table and cost footer.
func (s *Service) RecipeCard(ctx context.Context, recipeID int) ([]byte, string, error) {
	rec, err := s.recipes.Get(ctx, recipeID)
	if err != nil {
		return nil, "", err
	}

	rc, err := s.recipes.Cost(ctx, recipeID)
	if err != nil {
		return nil, "", err
	}

	ings, err := s.ingredients.GetByIDs(ctx, rec.IngredientIDs())
	if err != nil {
		return nil, "", err
	}

	card := &RecipeCard{
		Name:       rec.Name,
		Category:   rec.Category,
		Servings:   rec.Servings,
		Total:      rc.Total.Round(costPlaces).StringFixed(costPlaces),
		PerPortion: rc.PerPortion.Round(costPlaces).StringFixed(costPlaces),
	}

	for i, line := range rec.Lines {
		ing, ok := ings[line.IngredientID]
		if !ok {
			return nil, "", fmt.Errorf("ingredient %d: %w", line.IngredientID, costing.ErrDanglingReference)
		}

		supplierName := ""
		if ing.SupplierID != nil {
			sup, err := s.suppliers.GetByID(ctx, *ing.SupplierID)
			if err == nil {
				supplierName = sup.Name
			}
		}

		card.Rows = append(card.Rows, RecipeCardRow{
			Ingredient:   ing.Name,
			Quantity:     line.Quantity.Round(quantityPlaces).String(),
			Unit:         string(line.Unit),
			Supplier:     supplierName,
			PricePerBase: ing.PricePerBaseUnit.Round(4).String(),
			LineCost:     rc.Lines[i].Cost.Round(costPlaces).StringFixed(costPlaces),
		})
	}

	data, err := RecipeCardCSV(card)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("recipe-card-%d.csv", rec.ID), nil
}

// PublishShoppingList generates the CSV and uploads it to object
// storage under a unique key. Returns the public URL.
func (s *Service) PublishShoppingList(ctx context.Context, menuID int) (string, error) {
	if s.uploader == nil {
		return "", ErrNoStorage
	}

	data, _, err := s.ShoppingList(ctx, menuID)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("exports/menus/%d/%s.csv", menuID, uuid.New().String())
	return s.uploader.Upload(ctx, key, "text/csv", bytes.NewReader(data))
}
