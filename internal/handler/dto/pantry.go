// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/pantrychef/pantrychef/internal/model"
	"github.com/pantrychef/pantrychef/internal/recipe"
)

// ExpiryItemRequest is one ingredient of an AddExpiringItemsRequest.
type ExpiryItemRequest struct {
	Name       string `json:"name"`
	ExpiryDate string `json:"expiry_date"`
}

// AddExpiringItemsRequest represents the request body for recording expiring ingredients.
type AddExpiringItemsRequest struct {
	UserID      string              `json:"user_id"`
	Ingredients []ExpiryItemRequest `json:"ingredients"`
}

// ToExpiryItems converts the request items to model input.
func (r *AddExpiringItemsRequest) ToExpiryItems() []model.ExpiryItem {
	items := make([]model.ExpiryItem, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		items[i] = model.ExpiryItem{Name: ing.Name, ExpiryDate: ing.ExpiryDate}
	}
	return items
}

// RecipeSearchRequest represents the request body for an ingredient search.
type RecipeSearchRequest struct {
	Ingredients []string `json:"ingredients"`
}

// SaveFavoriteRequest represents the request body for bookmarking a recipe.
type SaveFavoriteRequest struct {
	UserID   string         `json:"user_id"`
	RecipeID FlexibleString `json:"recipe_id"`
	Title    string         `json:"title"`
	Image    string         `json:"image"`
}

// FlexibleString accepts either a JSON string or a JSON number.
// Upstream recipe ids are numeric, but callers often echo them back as strings.
type FlexibleString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexibleString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexibleString(str)
		return nil
	default:
		var num json.Number
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&num); err != nil {
			return errors.New("must be a string or a number")
		}
		*s = FlexibleString(num.String())
		return nil
	}
}

// MessageResponse confirms a write.
type MessageResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
	ID      int64  `json:"id,omitempty"`
}

// RecipeResponse is a recipe search hit.
type RecipeResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

// RecipeListResponse wraps recipe search hits.
type RecipeListResponse struct {
	Recipes []RecipeResponse `json:"recipes"`
}

// RecipeStepsResponse lists the preparation steps of a recipe.
type RecipeStepsResponse struct {
	RecipeID string   `json:"recipe_id"`
	Steps    []string `json:"steps"`
}

// ExpiringItemResponse represents a stored expiring ingredient.
type ExpiringItemResponse struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	Ingredient string    `json:"ingredient"`
	ExpiryDate string    `json:"expiry_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// ExpiringItemListResponse wraps a user's expiring ingredients.
type ExpiringItemListResponse struct {
	Items []ExpiringItemResponse `json:"items"`
}

// FavoriteResponse represents a stored favorite recipe.
type FavoriteResponse struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	RecipeID  string    `json:"recipe_id"`
	Title     string    `json:"title"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteListResponse wraps a user's favorites.
type FavoriteListResponse struct {
	Favorites []FavoriteResponse `json:"favorites"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToRecipeListResponse converts search summaries to the response shape.
func ToRecipeListResponse(summaries []recipe.Summary) *RecipeListResponse {
	recipes := make([]RecipeResponse, len(summaries))
	for i, s := range summaries {
		recipes[i] = RecipeResponse{ID: s.ID, Title: s.Title, Image: s.Image}
	}
	return &RecipeListResponse{Recipes: recipes}
}

// ToExpiringItemListResponse converts ingredient models to the response shape.
func ToExpiringItemListResponse(items []*model.ExpiringIngredient) *ExpiringItemListResponse {
	responses := make([]ExpiringItemResponse, len(items))
	for i, item := range items {
		responses[i] = ExpiringItemResponse{
			ID:         item.ID,
			UserID:     item.UserID,
			Ingredient: item.Ingredient,
			ExpiryDate: model.FormatDate(item.ExpiryDate),
			CreatedAt:  item.CreatedAt,
		}
	}
	return &ExpiringItemListResponse{Items: responses}
}

// ToFavoriteListResponse converts favorite models to the response shape.
func ToFavoriteListResponse(favorites []*model.FavoriteRecipe) *FavoriteListResponse {
	responses := make([]FavoriteResponse, len(favorites))
	for i, fav := range favorites {
		responses[i] = FavoriteResponse{
			ID:        fav.ID,
			UserID:    fav.UserID,
			RecipeID:  fav.RecipeID,
			Title:     fav.Title,
			Image:     fav.Image,
			CreatedAt: fav.CreatedAt,
		}
	}
	return &FavoriteListResponse{Favorites: responses}
}
