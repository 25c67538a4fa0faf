// Package service provides business logic for the application.
package service

import (
	"context"
	"strings"

	"github.com/pantrychef/pantrychef/internal/metrics"
	"github.com/pantrychef/pantrychef/internal/model"
	"github.com/pantrychef/pantrychef/internal/recipe"
)

// IngredientStore persists expiring ingredients.
type IngredientStore interface {
	AddExpiringItems(ctx context.Context, userID string, items []model.ExpiryItem) ([]*model.ExpiringIngredient, error)
	ListExpiringByUser(ctx context.Context, userID string) ([]*model.ExpiringIngredient, error)
}

// FavoriteStore persists favorite recipes.
type FavoriteStore interface {
	SaveFavorite(ctx context.Context, userID, recipeID, title, image string) (*model.FavoriteRecipe, error)
	ListFavoritesByUser(ctx context.Context, userID string) ([]*model.FavoriteRecipe, error)
}

// RecipeLookup queries the upstream recipe service.
type RecipeLookup interface {
	FindByIngredients(ctx context.Context, ingredients []string, limit int) ([]recipe.Summary, error)
	GetAnalyzedSteps(ctx context.Context, recipeID string) ([]string, error)
}

// PantryService handles expiring items, favorites and recipe lookups.
// Every method makes exactly one downstream call.
type PantryService struct {
	ingredients IngredientStore
	favorites   FavoriteStore
	recipes     RecipeLookup
	resultLimit int
	metrics     metrics.Recorder
}

// NewPantryService creates a new PantryService.
// resultLimit <= 0 falls back to recipe.DefaultLimit.
func NewPantryService(ingredients IngredientStore, favorites FavoriteStore, recipes RecipeLookup, resultLimit int, recorder metrics.Recorder) *PantryService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if resultLimit <= 0 {
		resultLimit = recipe.DefaultLimit
	}
	return &PantryService{
		ingredients: ingredients,
		favorites:   favorites,
		recipes:     recipes,
		resultLimit: resultLimit,
		metrics:     recorder,
	}
}

// AddExpiringItems stores a batch of ingredients for a user.
func (s *PantryService) AddExpiringItems(ctx context.Context, userID string, items []model.ExpiryItem) ([]*model.ExpiringIngredient, error) {
	records, err := s.ingredients.AddExpiringItems(ctx, userID, items)
	if err != nil {
		return nil, err
	}
	s.metrics.AddExpiringItems(len(records))
	return records, nil
}

// ListExpiringItems returns every ingredient a user has recorded.
func (s *PantryService) ListExpiringItems(ctx context.Context, userID string) ([]*model.ExpiringIngredient, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, model.NewValidationError("user_id", "is required")
	}
	return s.ingredients.ListExpiringByUser(ctx, userID)
}

// SaveFavorite bookmarks a recipe for a user.
func (s *PantryService) SaveFavorite(ctx context.Context, userID, recipeID, title, image string) (*model.FavoriteRecipe, error) {
	fav, err := s.favorites.SaveFavorite(ctx, userID, recipeID, title, image)
	if err != nil {
		return nil, err
	}
	s.metrics.IncFavoriteSaved()
	return fav, nil
}

// ListFavorites returns a user's bookmarked recipes.
func (s *PantryService) ListFavorites(ctx context.Context, userID string) ([]*model.FavoriteRecipe, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, model.NewValidationError("user_id", "is required")
	}
	return s.favorites.ListFavoritesByUser(ctx, userID)
}

// FindRecipes searches upstream recipes by ingredient names.
func (s *PantryService) FindRecipes(ctx context.Context, ingredients []string) ([]recipe.Summary, error) {
	return s.recipes.FindByIngredients(ctx, ingredients, s.resultLimit)
}

// GetRecipeSteps returns the flattened preparation steps of a recipe.
func (s *PantryService) GetRecipeSteps(ctx context.Context, recipeID string) ([]string, error) {
	return s.recipes.GetAnalyzedSteps(ctx, recipeID)
}
