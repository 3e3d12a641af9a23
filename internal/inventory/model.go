package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/PoFerry/atelierculinairepof/internal/units"
)

// Movement types. "out" movements are stored with a negative base
// quantity so the current stock is a plain sum.
const (
	MovementIn     = "in"
	MovementOut    = "out"
	MovementAdjust = "adjust"
)

type Movement struct {
	ID           int             `json:"id"`
	IngredientID int             `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         units.Unit      `json:"unit"`
	QuantityBase decimal.Decimal `json:"quantity_base"`
	Type         string          `json:"movement_type"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Note         string          `json:"note"`
	CreatedAt    time.Time       `json:"created_at"`
}

// StockLevel is one row of the current-stock view.
type StockLevel struct {
	IngredientID int             `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         units.Unit      `json:"unit"`
}
