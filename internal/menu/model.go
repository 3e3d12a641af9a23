package menu

import (
	"time"

	"github.com/PoFerry/atelierculinairepof/internal/costing"
)

type Line struct {
	RecipeID int `json:"recipe_id"`
	Batches  int `json:"batches"`
}

type Menu struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes"`
	Lines     []Line    `json:"lines"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *Menu) CostingRecord() *costing.Menu {
	lines := make([]costing.MenuLine, 0, len(m.Lines))
	for _, l := range m.Lines {
		lines = append(lines, costing.MenuLine{
			RecipeID: l.RecipeID,
			Batches:  l.Batches,
		})
	}
	return &costing.Menu{ID: m.ID, Name: m.Name, Lines: lines}
}

// RecipeIDs returns the distinct recipe ids referenced by the menu
// lines, in line order.
func (m *Menu) RecipeIDs() []int {
	seen := make(map[int]bool, len(m.Lines))
	ids := make([]int, 0, len(m.Lines))
	for _, l := range m.Lines {
		if !seen[l.RecipeID] {
			seen[l.RecipeID] = true
			ids = append(ids, l.RecipeID)
		}
	}
	return ids
}
