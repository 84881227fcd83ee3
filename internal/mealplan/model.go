// Package mealplan manages saved recipes and scheduled meals.
package mealplan

import "time"

// SavedRecipe is a reference to a provider recipe a user has saved: the
// external recipe id plus display title and image. Immutable once created.
type SavedRecipe struct {
	ID          int64  `db:"id" json:"id"`
	UserID      int64  `db:"user_id" json:"user_id"`
	RecipeID    int    `db:"recipe_id" json:"recipe_id"`
	RecipeTitle string `db:"recipe_title" json:"recipe_title"`
	ImageURL    string `db:"image_url" json:"image_url"`
}

// Entry is one scheduled meal: a saved recipe on a date with a meal-type tag.
// The recipe fields are denormalized from the joined saved recipe for
// responses.
type Entry struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	PlannedDate   time.Time `db:"planned_date" json:"planned_date"`
	MealType      string    `db:"meal_type" json:"meal_type"`
	SavedRecipeID int64     `db:"saved_recipe_id" json:"saved_recipe_id"`
	RecipeID      int       `db:"recipe_id" json:"recipe_id"`
	RecipeTitle   string    `db:"recipe_title" json:"recipe_title"`
	ImageURL      string    `db:"image_url" json:"image_url"`
}
