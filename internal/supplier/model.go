package supplier

// Supplier is informational metadata: ingredients reference one for
// display and exports, costing never reads it.
type Supplier struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Notes   string `json:"notes"`
}
