// Package grocery turns a user's scheduled meals for a date range into a
// deduplicated, normalized shopping list.
package grocery

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/sc0723/PantryPlanner/internal/ingredient"
	"github.com/sc0723/PantryPlanner/internal/mealplan"
	"github.com/sc0723/PantryPlanner/internal/platform/spoonacular"
)

// ErrInvalidRange is returned when a date fails to parse or the start date is
// after the end date.
var ErrInvalidRange = errors.New("invalid date range")

// Item is one line of a generated grocery list. Amounts for the same
// normalized name are summed; units are not converted, the first occurrence
// wins.
type Item struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// List is a generated grocery list. It echoes the requested date range and is
// never persisted.
type List struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Items     []Item `json:"items"`
}

// MealPlanQuery supplies the scheduled meals for a user and date range.
type MealPlanQuery interface {
	EntriesBetween(ctx context.Context, username string, start, end time.Time) ([]mealplan.Entry, error)
}

// BulkFetcher fetches raw ingredient lists for a batch of recipe ids in one
// round trip.
type BulkFetcher interface {
	FetchIngredientsBulk(ctx context.Context, recipeIDs []int) (map[int][]spoonacular.Ingredient, error)
}

// Aggregator generates grocery lists: meal plan -> distinct recipe ids ->
// cache-aside ingredient fetch -> normalize -> merge -> sort.
type Aggregator struct {
	meals   MealPlanQuery
	store   ingredient.Store
	fetcher BulkFetcher
	aliases ingredient.Aliases
	flights *flightGroup
	logger  *zap.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(meals MealPlanQuery, store ingredient.Store, fetcher BulkFetcher, aliases ingredient.Aliases, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		meals:   meals,
		store:   store,
		fetcher: fetcher,
		aliases: aliases,
		flights: newFlightGroup(),
		logger:  logger,
	}
}

// Generate builds the grocery list for the user's scheduled meals between
// startDate and endDate (inclusive, "2006-01-02"). Provider failures degrade
// to whatever is cached; only bad input or an unknown user fail the request.
func (a *Aggregator) Generate(ctx context.Context, username, startDate, endDate string) (*List, error) {
	start, err := time.Parse(mealplan.DateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start date %q", ErrInvalidRange, startDate)
	}
	end, err := time.Parse(mealplan.DateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end date %q", ErrInvalidRange, endDate)
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: start %s after end %s", ErrInvalidRange, startDate, endDate)
	}

	entries, err := a.meals.EntriesBetween(ctx, username, start, end)
	if err != nil {
		return nil, err
	}

	list := &List{StartDate: startDate, EndDate: endDate, Items: []Item{}}

	recipeIDs := distinctRecipeIDs(entries)
	if len(recipeIDs) == 0 {
		return list, nil
	}

	if err := a.refresh(ctx, recipeIDs); err != nil {
		return nil, err
	}

	merged := make(map[string]*Item)
	var order []string
	for _, id := range recipeIDs {
		records, err := a.store.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if item, ok := merged[rec.Name]; ok {
				item.Amount += rec.Amount
				continue
			}
			merged[rec.Name] = &Item{Name: rec.Name, Amount: rec.Amount, Unit: rec.Unit}
			order = append(order, rec.Name)
		}
	}

	sort.Strings(order)
	for _, name := range order {
		list.Items = append(list.Items, *merged[name])
	}
	return list, nil
}

// refresh fills the ingredient cache for any recipe ids not yet fetched.
// Fetches for the same id are coalesced across concurrent requests, and all
// ids this request owns go out in a single bulk call. Provider errors are
// logged and absorbed: the recipe ids stay missing and the next request
// retries them.
func (a *Aggregator) refresh(ctx context.Context, recipeIDs []int) error {
	missing, err := a.store.FindMissing(ctx, recipeIDs)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}

	owned, waits := a.flights.claim(missing)
	if len(owned) > 0 {
		func() {
			defer a.flights.release(owned)
			a.fetchAndStore(ctx, owned)
		}()
	}

	return a.flights.wait(ctx, waits)
}

// fetchAndStore bulk-fetches the given recipe ids and caches the normalized
// ingredient sets. A recipe whose ingredients are all filtered out is cached
// as an empty set so it is not refetched.
func (a *Aggregator) fetchAndStore(ctx context.Context, recipeIDs []int) {
	fetched, err := a.fetcher.FetchIngredientsBulk(ctx, recipeIDs)
	if err != nil {
		a.logger.Error("bulk ingredient fetch failed",
			zap.Ints("recipe_ids", recipeIDs),
			zap.Error(err),
		)
		return
	}

	for _, id := range recipeIDs {
		raws, ok := fetched[id]
		if !ok {
			// Provider does not know this recipe; leave it missing.
			continue
		}

		records := make([]ingredient.Record, 0, len(raws))
		for _, raw := range raws {
			if !a.aliases.Valid(raw.Name, raw.Unit) {
				continue
			}
			records = append(records, ingredient.Record{
				RecipeID: id,
				Name:     a.aliases.NormalizeName(raw.Name),
				Unit:     a.aliases.NormalizeUnit(raw.Unit),
				Amount:   raw.Amount,
			})
		}

		if err := a.store.PutAll(ctx, id, records); err != nil {
			a.logger.Error("failed to cache ingredient set",
				zap.Int("recipe_id", id),
				zap.Error(err),
			)
		}
	}
}

// distinctRecipeIDs collects the unique recipe ids of the entries, sorted for
// deterministic batching.
func distinctRecipeIDs(entries []mealplan.Entry) []int {
	seen := make(map[int]struct{}, len(entries))
	ids := make([]int, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.RecipeID]; ok {
			continue
		}
		seen[e.RecipeID] = struct{}{}
		ids = append(ids, e.RecipeID)
	}
	sort.Ints(ids)
	return ids
}
