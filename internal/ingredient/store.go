package ingredient

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Store defines the cache-aside persistence for per-recipe ingredient sets.
// Records have no expiry: a set stays valid until a later PutAll for the same
// recipe id replaces it.
type Store interface {
	// FindMissing returns the subset of recipeIDs with no cached ingredient
	// set. An empty input yields an empty result without touching the store.
	FindMissing(ctx context.Context, recipeIDs []int) ([]int, error)
	// Get returns the cached records for one recipe, or an empty slice if
	// none exist. A cached-but-empty set and a cache miss look the same here;
	// both contribute nothing downstream.
	Get(ctx context.Context, recipeID int) ([]Record, error)
	// PutAll replaces the full record set for a recipe id. The write is
	// atomic per recipe id: readers never observe a partially written set.
	// An empty records slice still marks the recipe as fetched.
	PutAll(ctx context.Context, recipeID int, records []Record) error
}

// PostgresStore implements Store on PostgreSQL. Fetch completion is tracked
// in ingredient_fetches so an empty ingredient set is still a cache hit.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// FindMissing returns the requested recipe ids that have never been fetched,
// sorted ascending for deterministic batching.
func (s *PostgresStore) FindMissing(ctx context.Context, recipeIDs []int) ([]int, error) {
	if len(recipeIDs) == 0 {
		return nil, nil
	}

	var present []int
	err := s.db.SelectContext(ctx, &present,
		"SELECT recipe_id FROM ingredient_fetches WHERE recipe_id = ANY($1)",
		pq.Array(recipeIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query fetched recipe ids: %w", err)
	}

	missing := missingFrom(recipeIDs, present)
	sort.Ints(missing)
	return missing, nil
}

// missingFrom returns requested minus present, deduplicated.
func missingFrom(requested, present []int) []int {
	seen := make(map[int]struct{}, len(present))
	for _, id := range present {
		seen[id] = struct{}{}
	}

	missing := make([]int, 0, len(requested))
	for _, id := range requested {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		missing = append(missing, id)
	}
	return missing
}

// Get returns the cached records for one recipe id.
func (s *PostgresStore) Get(ctx context.Context, recipeID int) ([]Record, error) {
	records := []Record{}
	err := s.db.SelectContext(ctx, &records,
		"SELECT id, recipe_id, name, unit, amount FROM recipe_ingredients WHERE recipe_id = $1 ORDER BY id",
		recipeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredients for recipe %d: %w", recipeID, err)
	}
	return records, nil
}

// PutAll overwrites the full record set for a recipe id in one transaction:
// mark the recipe as fetched, drop the prior set, insert the new one.
func (s *PostgresStore) PutAll(ctx context.Context, recipeID int, records []Record) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		"INSERT INTO ingredient_fetches (recipe_id, fetched_at) VALUES ($1, now()) ON CONFLICT (recipe_id) DO UPDATE SET fetched_at = EXCLUDED.fetched_at",
		recipeID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark recipe %d as fetched: %w", recipeID, err)
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM recipe_ingredients WHERE recipe_id = $1", recipeID)
	if err != nil {
		return fmt.Errorf("failed to clear ingredients for recipe %d: %w", recipeID, err)
	}

	for _, rec := range records {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO recipe_ingredients (recipe_id, name, unit, amount) VALUES ($1, $2, $3, $4)",
			recipeID, rec.Name, rec.Unit, rec.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert ingredient for recipe %d: %w", recipeID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ingredient set for recipe %d: %w", recipeID, err)
	}
	return nil
}
