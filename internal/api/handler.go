// Package api wires the HTTP surface: routing, request binding, and mapping
// service errors to status codes.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sc0723/PantryPlanner/internal/auth"
	"github.com/sc0723/PantryPlanner/internal/grocery"
	"github.com/sc0723/PantryPlanner/internal/mealplan"
	"github.com/sc0723/PantryPlanner/internal/platform/spoonacular"
)

// AuthService registers users and exchanges credentials for tokens.
type AuthService interface {
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// RecipeSearcher proxies recipe search and detail lookups to the provider.
type RecipeSearcher interface {
	SearchRecipes(ctx context.Context, params spoonacular.SearchParams) (*spoonacular.ComplexSearch, error)
	RecipeByID(ctx context.Context, id int) (*spoonacular.RecipeDetail, error)
}

// MealPlanner manages saved recipes and scheduled meals.
type MealPlanner interface {
	SaveRecipe(ctx context.Context, username string, recipeID int, title, imageURL string) (*mealplan.SavedRecipe, error)
	ScheduleMeal(ctx context.Context, username string, recipeID int, plannedDate, mealType string) (*mealplan.Entry, error)
	EntriesBetween(ctx context.Context, username string, start, end time.Time) ([]mealplan.Entry, error)
}

// GroceryLists generates grocery lists from the meal plan.
type GroceryLists interface {
	Generate(ctx context.Context, username, startDate, endDate string) (*grocery.List, error)
}

// Handler handles HTTP requests.
type Handler struct {
	Auth    AuthService
	Recipes RecipeSearcher
	Plans   MealPlanner
	Grocery GroceryLists
	Logger  *zap.Logger
}

// NewHandler creates a new Handler.
func NewHandler(authSvc AuthService, recipes RecipeSearcher, plans MealPlanner, groceryLists GroceryLists, logger *zap.Logger) *Handler {
	return &Handler{Auth: authSvc, Recipes: recipes, Plans: plans, Grocery: groceryLists, Logger: logger}
}

// Routes registers all endpoints. Everything under /api/v1 requires a valid
// bearer token.
func (h *Handler) Routes(r *gin.Engine, tokens *auth.TokenService) {
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)

	v1 := r.Group("/api/v1", auth.Middleware(tokens))
	v1.GET("/recipes/search", h.SearchRecipes)
	v1.GET("/recipes/:id", h.RecipeByID)
	v1.POST("/plan/recipes/save", h.SaveRecipe)
	v1.POST("/plan/meals/schedule", h.ScheduleMeal)
	v1.GET("/plan/meals", h.MealPlan)
	v1.GET("/plan/grocery-list", h.GroceryList)
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register creates a new account and returns a token for it.
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	token, err := h.Auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "username is already taken"})
			return
		}
		h.serverError(c, "register failed", err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Login exchanges credentials for a token.
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	token, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) || errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		h.serverError(c, "login failed", err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// SearchRecipes proxies a recipe search to the provider.
func (h *Handler) SearchRecipes(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	result, err := h.Recipes.SearchRecipes(c.Request.Context(), spoonacular.SearchParams{
		Query:       query,
		Health:      c.QueryArray("health"),
		MealType:    c.Query("mealType"),
		MaxCalories: c.Query("calories"),
		MaxTime:     c.Query("time"),
	})
	if err != nil {
		h.Logger.Error("recipe search failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "recipe search failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// RecipeByID proxies a recipe detail lookup to the provider.
func (h *Handler) RecipeByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	result, err := h.Recipes.RecipeByID(c.Request.Context(), id)
	if err != nil {
		h.Logger.Error("recipe lookup failed", zap.Int("recipe_id", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "recipe lookup failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

type saveRecipeRequest struct {
	RecipeID    int    `json:"recipeId" binding:"required"`
	RecipeTitle string `json:"recipeTitle"`
	ImageURL    string `json:"imageUrl"`
}

// SaveRecipe stores a provider recipe in the user's saved list.
func (h *Handler) SaveRecipe(c *gin.Context) {
	var req saveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipeId is required"})
		return
	}

	saved, err := h.Plans.SaveRecipe(c.Request.Context(), auth.Username(c), req.RecipeID, req.RecipeTitle, req.ImageURL)
	if err != nil {
		h.planError(c, "save recipe failed", err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

type scheduleMealRequest struct {
	RecipeID    int    `json:"recipeId" binding:"required"`
	PlannedDate string `json:"plannedDate" binding:"required"`
	MealType    string `json:"mealType" binding:"required"`
}

// ScheduleMeal puts a saved recipe on the user's meal plan.
func (h *Handler) ScheduleMeal(c *gin.Context) {
	var req scheduleMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipeId, plannedDate and mealType are required"})
		return
	}

	entry, err := h.Plans.ScheduleMeal(c.Request.Context(), auth.Username(c), req.RecipeID, req.PlannedDate, req.MealType)
	if err != nil {
		if errors.Is(err, mealplan.ErrNotSaved) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "recipe must be saved before scheduling"})
			return
		}
		if errors.Is(err, mealplan.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "plannedDate must be YYYY-MM-DD"})
			return
		}
		h.planError(c, "schedule meal failed", err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// MealPlan lists the user's scheduled meals in a date range.
func (h *Handler) MealPlan(c *gin.Context) {
	start, err := time.Parse(mealplan.DateLayout, c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be YYYY-MM-DD"})
		return
	}
	end, err := time.Parse(mealplan.DateLayout, c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must be YYYY-MM-DD"})
		return
	}

	entries, err := h.Plans.EntriesBetween(c.Request.Context(), auth.Username(c), start, end)
	if err != nil {
		h.planError(c, "list meal plan failed", err)
		return
	}
	if entries == nil {
		entries = []mealplan.Entry{}
	}
	c.JSON(http.StatusOK, entries)
}

// GroceryList generates the shopping list for a date range.
func (h *Handler) GroceryList(c *gin.Context) {
	list, err := h.Grocery.Generate(c.Request.Context(), auth.Username(c), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		if errors.Is(err, grocery.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "startDate and endDate must be YYYY-MM-DD with startDate <= endDate"})
			return
		}
		if errors.Is(err, auth.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.serverError(c, "grocery list generation failed", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// planError maps meal-plan service errors to responses.
func (h *Handler) planError(c *gin.Context, msg string, err error) {
	if errors.Is(err, auth.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	h.serverError(c, msg, err)
}

func (h *Handler) serverError(c *gin.Context, msg string, err error) {
	h.Logger.Error(msg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
