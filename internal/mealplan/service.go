package mealplan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sc0723/PantryPlanner/internal/auth"
)

// DateLayout is the wire format for planner dates.
const DateLayout = "2006-01-02"

var (
	// ErrNotSaved is returned when scheduling a recipe the user has not saved.
	ErrNotSaved = errors.New("recipe not found in user's saved recipes")
	// ErrInvalidDate is returned when a planned date fails to parse.
	ErrInvalidDate = errors.New("invalid date")
)

// Service implements meal-plan operations on top of the user and plan stores.
type Service struct {
	users auth.UserStore
	store Store
}

// NewService creates a meal-plan Service.
func NewService(users auth.UserStore, store Store) *Service {
	return &Service{users: users, store: store}
}

// SaveRecipe records a provider recipe in the user's saved list. Saving the
// same recipe twice returns the existing row.
func (s *Service) SaveRecipe(ctx context.Context, username string, recipeID int, title, imageURL string) (*SavedRecipe, error) {
	user, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.SavedRecipe(ctx, user.ID, recipeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	recipe := &SavedRecipe{
		UserID:      user.ID,
		RecipeID:    recipeID,
		RecipeTitle: title,
		ImageURL:    imageURL,
	}
	if err := s.store.SaveRecipe(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// ScheduleMeal puts a saved recipe on the user's plan for a date and meal
// type. The recipe must have been saved first.
func (s *Service) ScheduleMeal(ctx context.Context, username string, recipeID int, plannedDate, mealType string) (*Entry, error) {
	user, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	saved, err := s.store.SavedRecipe(ctx, user.ID, recipeID)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, ErrNotSaved
	}

	date, err := time.Parse(DateLayout, plannedDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, plannedDate)
	}

	entry := &Entry{
		UserID:        user.ID,
		PlannedDate:   date,
		MealType:      mealType,
		SavedRecipeID: saved.ID,
		RecipeID:      saved.RecipeID,
		RecipeTitle:   saved.RecipeTitle,
		ImageURL:      saved.ImageURL,
	}
	if err := s.store.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// EntriesBetween returns the user's scheduled meals with planned dates in
// [start, end]. This is the meal-plan query feeding grocery-list generation.
func (s *Service) EntriesBetween(ctx context.Context, username string, start, end time.Time) ([]Entry, error) {
	user, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.store.EntriesBetween(ctx, user.ID, start, end)
}
