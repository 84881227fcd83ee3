package spoonacular

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		apiKey:     "test-key",
		baseURL:    srv.URL,
		httpClient: srv.Client(),
	}
}

func TestFetchIngredientsBulk(t *testing.T) {
	t.Parallel()

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/recipes/informationBulk", r.URL.Path)
		assert.Equal(t, "10,11", r.URL.Query().Get("ids"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 10, "title": "Pasta", "extendedIngredients": [
				{"id": 1, "name": "Olive Oil", "amount": 2, "unit": "tablespoons"}
			]},
			{"id": 11, "title": "Rice Bowl", "extendedIngredients": [
				{"id": 2, "name": "rice", "amount": 1, "unit": "cup"}
			]}
		]`))
	}))
	defer srv.Close()

	client := newTestClient(srv)
	got, err := client.FetchIngredientsBulk(context.Background(), []int{10, 11})
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "bulk fetch must be a single round trip")
	require.Len(t, got, 2)
	require.Len(t, got[10], 1)
	assert.Equal(t, "Olive Oil", got[10][0].Name)
	assert.Equal(t, 2.0, got[10][0].Amount)
	assert.Equal(t, "tablespoons", got[10][0].Unit)
	require.Len(t, got[11], 1)
	assert.Equal(t, "rice", got[11][0].Name)
}

func TestFetchIngredientsBulk_UnknownIDsAbsent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 10, "extendedIngredients": []}]`))
	}))
	defer srv.Close()

	client := newTestClient(srv)
	got, err := client.FetchIngredientsBulk(context.Background(), []int{10, 99})
	require.NoError(t, err)

	_, ok := got[99]
	assert.False(t, ok, "unrecognized recipe ids must be absent, not an error")
	assert.Contains(t, got, 10)
}

func TestFetchIngredientsBulk_EmptyInput(t *testing.T) {
	t.Parallel()

	client := NewClient("key", "http://localhost:0", time.Second)
	got, err := client.FetchIngredientsBulk(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetchIngredientsBulk_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	_, err := client.FetchIngredientsBulk(context.Background(), []int{10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "402")
}

func TestSearchRecipes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/complexSearch", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "pasta", q.Get("query"))
		assert.Equal(t, "vegan,gluten free", q.Get("diet"))
		assert.Equal(t, "dinner", q.Get("type"))
		assert.Equal(t, "600", q.Get("maxCalories"))
		assert.Equal(t, "true", q.Get("addRecipeInformation"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"offset":0,"number":5,"totalResults":1,"results":[
			{"id":42,"title":"Vegan Pasta","image":"img.jpg","readyInMinutes":25,"servings":2}
		]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv)
	got, err := client.SearchRecipes(context.Background(), SearchParams{
		Query:       "pasta",
		Health:      []string{"vegan", "gluten free"},
		MealType:    "dinner",
		MaxCalories: "600",
	})
	require.NoError(t, err)
	require.Len(t, got.Results, 1)
	assert.Equal(t, 42, got.Results[0].ID)
	assert.Equal(t, "Vegan Pasta", got.Results[0].Title)
	assert.Equal(t, 1, got.TotalResults)
}

func TestRecipeByID(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/42/information", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("includeNutrition"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":42,"title":"Vegan Pasta","servings":2,
			"extendedIngredients":[{"id":1,"name":"pasta","amount":200,"unit":"g"}],
			"analyzedInstructions":[{"name":"","steps":[{"number":1,"step":"Boil water."}]}],
			"nutrition":{"nutrients":[{"name":"Calories","amount":450,"unit":"kcal"}]}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv)
	got, err := client.RecipeByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Vegan Pasta", got.Title)
	require.Len(t, got.ExtendedIngredients, 1)
	require.NotNil(t, got.Nutrition)
	assert.Equal(t, "Calories", got.Nutrition.Nutrients[0].Name)
}
