package units

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestConvertWithinClass(t *testing.T) {
	cases := []struct {
		qty  string
		from Unit
		to   Unit
		want string
	}{
		{"1", Kilogram, Gram, "1000"},
		{"500", Gram, Kilogram, "0.5"},
		{"250", Milligram, Gram, "0.25"},
		{"2", Liter, Milliliter, "2000"},
		{"330", Milliliter, Liter, "0.33"},
		{"3", Piece, Piece, "3"},
	}

	for _, c := range cases {
		got, err := Convert(decimal.RequireFromString(c.qty), c.from, c.to)
		if err != nil {
			t.Fatalf("Convert(%s %s -> %s): unexpected error: %v", c.qty, c.from, c.to, err)
		}
		if !got.Equal(decimal.RequireFromString(c.want)) {
			t.Errorf("Convert(%s %s -> %s) = %s, want %s", c.qty, c.from, c.to, got, c.want)
		}
	}
}

func TestConvertAcrossClassesFails(t *testing.T) {
	cases := []struct{ from, to Unit }{
		{Gram, Liter},
		{Liter, Kilogram},
		{Piece, Gram},
		{Milliliter, Piece},
	}

	for _, c := range cases {
		_, err := Convert(decimal.NewFromInt(1), c.from, c.to)
		if !errors.Is(err, ErrIncompatibleUnits) {
			t.Errorf("Convert(%s -> %s): expected ErrIncompatibleUnits, got %v", c.from, c.to, err)
		}
	}
}

func TestConvertUnknownUnit(t *testing.T) {
	_, err := Convert(decimal.NewFromInt(1), Unit("cup"), Gram)
	if !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("expected ErrUnknownUnit, got %v", err)
	}
}

func TestNormalizeAliases(t *testing.T) {
	for _, alias := range []string{"un", "pcs", "piece", "UNIT", " Unit "} {
		u, err := Normalize(alias)
		if err != nil {
			t.Fatalf("Normalize(%q): unexpected error: %v", alias, err)
		}
		if u != Piece {
			t.Errorf("Normalize(%q) = %s, want %s", alias, u, Piece)
		}
	}

	if _, err := Normalize("tbsp"); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("Normalize(tbsp): expected ErrUnknownUnit, got %v", err)
	}
}

func TestToBase(t *testing.T) {
	qty, base, err := ToBase(decimal.RequireFromString("1.5"), Kilogram)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if base != Gram {
		t.Errorf("base = %s, want g", base)
	}
	if !qty.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("qty = %s, want 1500", qty)
	}
}
