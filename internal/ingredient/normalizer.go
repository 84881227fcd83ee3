// Package ingredient normalizes raw recipe ingredients and caches the
// per-recipe ingredient sets fetched from the recipe provider.
package ingredient

import "strings"

// Aliases holds the canonicalization tables mapping synonymous ingredient
// names and unit spellings to a single form. The maps are read-only after
// construction; share one value across the process.
type Aliases struct {
	Names map[string]string
	Units map[string]string
}

// DefaultAliases returns the built-in alias tables. Every value is its own
// fixed point, so normalization is idempotent.
func DefaultAliases() Aliases {
	return Aliases{
		Names: map[string]string{
			"scallions":     "green onions",
			"spring onions": "green onions",
		},
		Units: map[string]string{
			"tablespoons": "tbsp",
			"tablespoon":  "tbsp",
			"teaspoons":   "tsp",
			"teaspoon":    "tsp",
			"ounces":      "oz",
			"ounce":       "oz",
			"pounds":      "lb",
			"pound":       "lb",
		},
	}
}

// Valid reports whether a raw ingredient is shoppable. Ingredients without a
// name or unit are rejected, as are composite lines marked with "&" and the
// non-shoppable "servings" unit.
func (a Aliases) Valid(name, unit string) bool {
	if name == "" || strings.Contains(name, "&") {
		return false
	}
	if unit == "" || strings.EqualFold(unit, "servings") {
		return false
	}
	return true
}

// NormalizeName lowercases and trims a raw ingredient name, then substitutes
// through the name alias table. Unknown names pass through unchanged.
func (a Aliases) NormalizeName(name string) string {
	cleaned := strings.TrimSpace(strings.ToLower(name))
	if canonical, ok := a.Names[cleaned]; ok {
		return canonical
	}
	return cleaned
}

// NormalizeUnit lowercases and trims a raw unit string, then substitutes
// through the unit alias table. Unknown units pass through unchanged.
func (a Aliases) NormalizeUnit(unit string) string {
	cleaned := strings.TrimSpace(strings.ToLower(unit))
	if canonical, ok := a.Units[cleaned]; ok {
		return canonical
	}
	return cleaned
}
