package ingredient

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/PoFerry/atelierculinairepof/internal/costing"
	"github.com/PoFerry/atelierculinairepof/internal/units"
)

type Ingredient struct {
	ID               int             `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	SupplierID       *int            `json:"supplier_id,omitempty"`
	SupplierCode     string          `json:"supplier_code,omitempty"`
	PackSize         decimal.Decimal `json:"pack_size"`
	PackUnit         units.Unit      `json:"pack_unit"`
	PurchasePrice    decimal.Decimal `json:"purchase_price"`
	PricePerBaseUnit decimal.Decimal `json:"price_per_base_unit"`
	BaseUnit         units.Unit      `json:"base_unit"`
	CreatedAt        time.Time       `json:"created_at"`
}

// CostingRecord maps the stored row into the plain record the costing
// core computes over.
func (i *Ingredient) CostingRecord() *costing.Ingredient {
	return &costing.Ingredient{
		ID:            i.ID,
		Name:          i.Name,
		Category:      i.Category,
		SupplierID:    i.SupplierID,
		PackSize:      i.PackSize,
		PackUnit:      i.PackUnit,
		PurchasePrice: i.PurchasePrice,
		BaseUnit:      i.BaseUnit,
	}
}
