package ingredient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/PoFerry/atelierculinairepof/internal/costing"
	"github.com/PoFerry/atelierculinairepof/internal/units"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Name          string
	Category      string
	SupplierID    *int
	SupplierCode  string
	PackSize      decimal.Decimal
	PackUnit      string
	PurchasePrice decimal.Decimal
	BaseUnit      string
}

// validate normalizes the purchase format and derives the price per
// base unit. Unit-class mismatches are rejected here, at construction,
// so they can never surface later inside an aggregation.
func (s *Service) validate(in Input) (*Ingredient, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("ingredient name is required")
	}

	packUnit, err := units.Normalize(in.PackUnit)
	if err != nil {
		return nil, err
	}
	baseUnit, err := units.Normalize(in.BaseUnit)
	if err != nil {
		return nil, err
	}

	baseClass, _ := units.ClassOf(baseUnit)
	if baseUnit != units.BaseOf(baseClass) {
		return nil, fmt.Errorf("base unit must be one of g, ml, unit; got %q", in.BaseUnit)
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = "Autre"
	}

	ing := &Ingredient{
		Name:          name,
		Category:      category,
		SupplierID:    in.SupplierID,
		SupplierCode:  strings.TrimSpace(in.SupplierCode),
		PackSize:      in.PackSize,
		PackUnit:      packUnit,
		PurchasePrice: in.PurchasePrice,
		BaseUnit:      baseUnit,
	}

	price, err := costing.PricePerBaseUnit(ing.CostingRecord())
	if err != nil {
		return nil, err
	}
	ing.PricePerBaseUnit = price

	return ing, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*Ingredient, error) {
	ing, err := s.validate(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

func (s *Service) Update(ctx context.Context, id int, in Input) (*Ingredient, error) {
	ing, err := s.validate(in)
	if err != nil {
		return nil, err
	}
	ing.ID = id
	if err := s.repo.Update(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

func (s *Service) Get(ctx context.Context, id int) (*Ingredient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Ingredient, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
