package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	t.Parallel()

	aliases := DefaultAliases()

	tests := []struct {
		name       string
		ingredient string
		unit       string
		want       bool
	}{
		{name: "plain ingredient", ingredient: "olive oil", unit: "tbsp", want: true},
		{name: "missing name", ingredient: "", unit: "tbsp", want: false},
		{name: "missing unit", ingredient: "olive oil", unit: "", want: false},
		{name: "composite marker", ingredient: "peanut butter & jelly", unit: "cup", want: false},
		{name: "servings unit", ingredient: "parsley", unit: "servings", want: false},
		{name: "servings unit mixed case", ingredient: "parsley", unit: "Servings", want: false},
		{name: "serving singular is allowed", ingredient: "parsley", unit: "serving", want: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, aliases.Valid(tc.ingredient, tc.unit))
		})
	}
}

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	aliases := DefaultAliases()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases and trims", in: "  Olive Oil ", want: "olive oil"},
		{name: "alias substitution", in: "Scallions", want: "green onions"},
		{name: "second alias for same canonical name", in: "spring onions", want: "green onions"},
		{name: "unknown name passes through", in: "Dragonfruit", want: "dragonfruit"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, aliases.NormalizeName(tc.in))
		})
	}
}

func TestNormalizeUnit(t *testing.T) {
	t.Parallel()

	aliases := DefaultAliases()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "tablespoon folds to tbsp", in: "Tablespoon", want: "tbsp"},
		{name: "tablespoons folds to tbsp", in: "tablespoons", want: "tbsp"},
		{name: "ounces folds to oz", in: "ounces", want: "oz"},
		{name: "pound folds to lb", in: "pound", want: "lb"},
		{name: "unknown unit passes through", in: " Cup ", want: "cup"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, aliases.NormalizeUnit(tc.in))
		})
	}
}

// Normalization must be idempotent: alias values never map onward.
func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	aliases := DefaultAliases()

	names := []string{"Scallions", "spring onions", "olive oil", "  Rice "}
	for _, n := range names {
		once := aliases.NormalizeName(n)
		assert.Equal(t, once, aliases.NormalizeName(once), "name %q", n)
	}

	units := []string{"Tablespoons", "tablespoon", "teaspoons", "ounces", "pound", "cup"}
	for _, u := range units {
		once := aliases.NormalizeUnit(u)
		assert.Equal(t, once, aliases.NormalizeUnit(once), "unit %q", u)
	}
}
