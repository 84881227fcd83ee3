package ingredient

// Record is the canonical persisted form of one recipe ingredient: the
// provider's recipe id plus a normalized name/unit and an amount. The full
// set of records for a recipe id is always written and replaced as a whole.
type Record struct {
	ID       int64   `db:"id" json:"-"`
	RecipeID int     `db:"recipe_id" json:"recipe_id"`
	Name     string  `db:"name" json:"name"`
	Unit     string  `db:"unit" json:"unit"`
	Amount   float64 `db:"amount" json:"amount"`
}
