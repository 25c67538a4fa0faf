package model

import (
	"strings"
	"testing"
)

func TestNewFavoriteRecipe_Valid(t *testing.T) {
	t.Parallel()

	fav, err := NewFavoriteRecipe("user-1", "716429", "Pasta", "https://img.example.com/716429.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fav.RecipeID != "716429" {
		t.Errorf("RecipeID = %s, want 716429", fav.RecipeID)
	}
	if fav.ID != 0 {
		t.Errorf("ID should be unassigned, got %d", fav.ID)
	}
}

func TestNewFavoriteRecipe_MissingField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                           string
		userID, recipeID, title, image string
		wantField                      string
	}{
		{"missing user", "", "1", "t", "i", "user_id"},
		{"missing recipe", "u", " ", "t", "i", "recipe_id"},
		{"missing title", "u", "1", "", "i", "title"},
		{"missing image", "u", "1", "t", "", "image"},
		{"title too long", "u", "1", strings.Repeat("t", MaxTitleLength+1), "i", "title"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewFavoriteRecipe(tt.userID, tt.recipeID, tt.title, tt.image)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			ve, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
			if !IsValidationError(err) {
				t.Error("IsValidationError = false, want true")
			}
		})
	}
}
