// Package spoonacular is a client for the Spoonacular recipe API.
package spoonacular

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is a client for the Spoonacular API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Spoonacular client.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Ingredient is one raw ingredient line of a provider recipe.
type Ingredient struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// BulkRecipe is one entry of an informationBulk response.
type BulkRecipe struct {
	ID                  int          `json:"id"`
	Title               string       `json:"title"`
	ExtendedIngredients []Ingredient `json:"extendedIngredients"`
}

// RecipePreview is a search result entry.
type RecipePreview struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Image          string `json:"image"`
	ImageType      string `json:"imageType"`
	HealthScore    int    `json:"healthScore"`
	ReadyInMinutes int    `json:"readyInMinutes"`
	Servings       int    `json:"servings"`
}

// ComplexSearch is the response of the complexSearch endpoint.
type ComplexSearch struct {
	Offset       int             `json:"offset"`
	Number       int             `json:"number"`
	Results      []RecipePreview `json:"results"`
	TotalResults int             `json:"totalResults"`
}

// InstructionStep is one numbered step of a recipe instruction.
type InstructionStep struct {
	Number int    `json:"number"`
	Step   string `json:"step"`
}

// AnalyzedInstruction groups the instruction steps of a recipe.
type AnalyzedInstruction struct {
	Name  string            `json:"name"`
	Steps []InstructionStep `json:"steps"`
}

// Nutrient is a single nutrition fact.
type Nutrient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Nutrition wraps the nutrient list of a recipe.
type Nutrition struct {
	Nutrients []Nutrient `json:"nutrients"`
}

// RecipeDetail is the full recipe information response.
type RecipeDetail struct {
	ID                   int                   `json:"id"`
	Title                string                `json:"title"`
	Image                string                `json:"image"`
	ReadyInMinutes       int                   `json:"readyInMinutes"`
	Servings             int                   `json:"servings"`
	PreparationMinutes   int                   `json:"preparationMinutes"`
	CookingMinutes       int                   `json:"cookingMinutes"`
	Summary              string                `json:"summary"`
	SourceURL            string                `json:"sourceUrl"`
	ExtendedIngredients  []Ingredient          `json:"extendedIngredients"`
	AnalyzedInstructions []AnalyzedInstruction `json:"analyzedInstructions"`
	Nutrition            *Nutrition            `json:"nutrition,omitempty"`
}

// SearchParams are the filters for SearchRecipes. Query is required, the rest
// are optional.
type SearchParams struct {
	Query       string
	Health      []string
	MealType    string
	MaxCalories string
	MaxTime     string
}

// FetchIngredientsBulk fetches the raw ingredient lists for a batch of recipe
// ids in a single round trip. Recipe ids the provider does not recognize are
// simply absent from the returned map.
func (c *Client) FetchIngredientsBulk(ctx context.Context, recipeIDs []int) (map[int][]Ingredient, error) {
	if len(recipeIDs) == 0 {
		return map[int][]Ingredient{}, nil
	}

	idStrings := make([]string, len(recipeIDs))
	for i, id := range recipeIDs {
		idStrings[i] = strconv.Itoa(id)
	}

	query := url.Values{}
	query.Set("ids", strings.Join(idStrings, ","))

	var recipes []BulkRecipe
	if err := c.getJSON(ctx, "/recipes/informationBulk", query, &recipes); err != nil {
		return nil, err
	}

	byID := make(map[int][]Ingredient, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r.ExtendedIngredients
	}
	return byID, nil
}

// SearchRecipes queries the complexSearch endpoint.
func (c *Client) SearchRecipes(ctx context.Context, params SearchParams) (*ComplexSearch, error) {
	query := url.Values{}
	query.Set("query", params.Query)
	query.Set("addRecipeInformation", "true")
	query.Set("number", "5")
	if len(params.Health) > 0 {
		query.Set("diet", strings.Join(params.Health, ","))
	}
	if params.MealType != "" {
		query.Set("type", params.MealType)
	}
	if params.MaxCalories != "" {
		query.Set("maxCalories", params.MaxCalories)
	}
	if params.MaxTime != "" {
		query.Set("time", params.MaxTime)
	}

	var result ComplexSearch
	if err := c.getJSON(ctx, "/recipes/complexSearch", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RecipeByID fetches the full information for one recipe, including nutrition.
func (c *Client) RecipeByID(ctx context.Context, id int) (*RecipeDetail, error) {
	query := url.Values{}
	query.Set("includeNutrition", "true")

	var result RecipeDetail
	if err := c.getJSON(ctx, fmt.Sprintf("/recipes/%d/information", id), query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// getJSON performs a GET request against the provider and decodes the JSON
// response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	query.Set("apiKey", c.apiKey)
	reqURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call spoonacular: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("spoonacular returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode spoonacular response: %w", err)
	}
	return nil
}
