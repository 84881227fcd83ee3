package mealplan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for meal-plan persistence.
type Store interface {
	// SavedRecipe returns the user's saved recipe for the provider recipe id,
	// or nil if not saved.
	SavedRecipe(ctx context.Context, userID int64, recipeID int) (*SavedRecipe, error)
	SaveRecipe(ctx context.Context, recipe *SavedRecipe) error
	CreateEntry(ctx context.Context, entry *Entry) error
	// EntriesBetween returns the user's scheduled meals with planned dates in
	// [start, end], joined with their saved recipes.
	EntriesBetween(ctx context.Context, userID int64, start, end time.Time) ([]Entry, error)
}

// PostgresStore implements Store on PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// SavedRecipe looks up a saved recipe by user and provider recipe id.
func (s *PostgresStore) SavedRecipe(ctx context.Context, userID int64, recipeID int) (*SavedRecipe, error) {
	var r SavedRecipe
	err := s.db.GetContext(ctx, &r,
		"SELECT id, user_id, recipe_id, recipe_title, image_url FROM saved_recipes WHERE user_id = $1 AND recipe_id = $2",
		userID, recipeID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get saved recipe: %w", err)
	}
	return &r, nil
}

// SaveRecipe inserts a saved recipe and fills in its generated id.
func (s *PostgresStore) SaveRecipe(ctx context.Context, recipe *SavedRecipe) error {
	err := s.db.GetContext(ctx, &recipe.ID,
		"INSERT INTO saved_recipes (user_id, recipe_id, recipe_title, image_url) VALUES ($1, $2, $3, $4) RETURNING id",
		recipe.UserID, recipe.RecipeID, recipe.RecipeTitle, recipe.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}
	return nil
}

// CreateEntry inserts a meal plan entry and fills in its generated id.
func (s *PostgresStore) CreateEntry(ctx context.Context, entry *Entry) error {
	err := s.db.GetContext(ctx, &entry.ID,
		"INSERT INTO meal_plan_entries (user_id, planned_date, meal_type, saved_recipe_id) VALUES ($1, $2, $3, $4) RETURNING id",
		entry.UserID, entry.PlannedDate, entry.MealType, entry.SavedRecipeID,
	)
	if err != nil {
		return fmt.Errorf("failed to create meal plan entry: %w", err)
	}
	return nil
}

// EntriesBetween returns scheduled meals in the inclusive date range.
func (s *PostgresStore) EntriesBetween(ctx context.Context, userID int64, start, end time.Time) ([]Entry, error) {
	entries := []Entry{}
	err := s.db.SelectContext(ctx, &entries, `
		SELECT e.id, e.user_id, e.planned_date, e.meal_type, e.saved_recipe_id,
		       r.recipe_id, r.recipe_title, r.image_url
		FROM meal_plan_entries e
		JOIN saved_recipes r ON r.id = e.saved_recipe_id
		WHERE e.user_id = $1 AND e.planned_date BETWEEN $2 AND $3
		ORDER BY e.planned_date, e.id`,
		userID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plan entries: %w", err)
	}
	return entries, nil
}
