package units

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrIncompatibleUnits = errors.New("incompatible units")
	ErrUnknownUnit       = errors.New("unknown unit")
)

// Class is a dimension class. Units convert only within their class.
type Class int

const (
	Mass Class = iota
	Volume
	Count
)

func (c Class) String() string {
	switch c {
	case Mass:
		return "mass"
	case Volume:
		return "volume"
	case Count:
		return "count"
	}
	return "unknown"
}

type Unit string

const (
	Milligram  Unit = "mg"
	Gram       Unit = "g"
	Kilogram   Unit = "kg"
	Milliliter Unit = "ml"
	Liter      Unit = "l"
	Piece      Unit = "unit"
)

// factor converts each unit into its class base (g, ml, or unit).
var factors = map[Unit]struct {
	class Class
	scale decimal.Decimal
}{
	Milligram:  {Mass, decimal.New(1, -3)},
	Gram:       {Mass, decimal.New(1, 0)},
	Kilogram:   {Mass, decimal.New(1, 3)},
	Milliliter: {Volume, decimal.New(1, 0)},
	Liter:      {Volume, decimal.New(1, 3)},
	Piece:      {Count, decimal.New(1, 0)},
}

var aliases = map[string]Unit{
	"un":    Piece,
	"pcs":   Piece,
	"piece": Piece,
	"pièce": Piece,
}

// Normalize lowercases s and resolves count aliases (un, pcs, piece).
func Normalize(s string) (Unit, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if u, ok := aliases[lower]; ok {
		return u, nil
	}
	u := Unit(lower)
	if _, ok := factors[u]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return u, nil
}

func ClassOf(u Unit) (Class, bool) {
	f, ok := factors[u]
	return f.class, ok
}

// BaseOf returns the canonical unit of a class: g, ml, or unit.
func BaseOf(c Class) Unit {
	switch c {
	case Mass:
		return Gram
	case Volume:
		return Milliliter
	default:
		return Piece
	}
}

// Convert scales q from one unit to another within the same class.
// Cross-class conversion (e.g. grams to liters) is a hard error: this
// system models no densities.
func Convert(q decimal.Decimal, from, to Unit) (decimal.Decimal, error) {
	ff, ok := factors[from]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownUnit, from)
	}
	ft, ok := factors[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownUnit, to)
	}
	if ff.class != ft.class {
		return decimal.Zero, fmt.Errorf("%w: %s (%s) -> %s (%s)",
			ErrIncompatibleUnits, from, ff.class, to, ft.class)
	}
	return q.Mul(ff.scale).Div(ft.scale), nil
}

// ToBase converts q into the base unit of its own class and returns
// that base unit alongside.
func ToBase(q decimal.Decimal, from Unit) (decimal.Decimal, Unit, error) {
	f, ok := factors[from]
	if !ok {
		return decimal.Zero, "", fmt.Errorf("%w: %q", ErrUnknownUnit, from)
	}
	base := BaseOf(f.class)
	converted, err := Convert(q, from, base)
	if err != nil {
		return decimal.Zero, "", err
	}
	return converted, base, nil
}
