package model

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Column limits for favorite_recipes.
const (
	MaxRecipeIDLength = 50
	MaxTitleLength    = 200
	MaxImageLength    = 500
)

// FavoriteRecipe is a recipe from the upstream service bookmarked by a user.
type FavoriteRecipe struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	RecipeID  string    `json:"recipe_id"`
	Title     string    `json:"title"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFavoriteRecipe validates the four required fields and builds a record.
func NewFavoriteRecipe(userID, recipeID, title, image string) (*FavoriteRecipe, error) {
	fav := &FavoriteRecipe{
		UserID:   strings.TrimSpace(userID),
		RecipeID: strings.TrimSpace(recipeID),
		Title:    strings.TrimSpace(title),
		Image:    strings.TrimSpace(image),
	}
	if err := fav.Validate(); err != nil {
		return nil, err
	}
	return fav, nil
}

// Validate checks that every field is present and fits its column.
func (f *FavoriteRecipe) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"user_id", f.UserID, MaxUserIDLength},
		{"recipe_id", f.RecipeID, MaxRecipeIDLength},
		{"title", f.Title, MaxTitleLength},
		{"image", f.Image, MaxImageLength},
	}

	for _, fld := range fields {
		if fld.value == "" {
			return NewValidationError(fld.name, "is required")
		}
		if utf8.RuneCountInString(fld.value) > fld.max {
			return NewValidationError(fld.name, fmt.Sprintf("must be at most %d characters", fld.max))
		}
	}
	return nil
}
