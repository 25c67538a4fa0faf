package repository

import (
	"context"
	"testing"

	"github.com/pantrychef/pantrychef/internal/model"
)

func TestRepository_SaveFavorite(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	fav, err := repo.SaveFavorite(ctx, "user-1", "716429", "Pasta with Garlic", "https://img.spoonacular.com/716429.jpg")
	if err != nil {
		t.Fatalf("save favorite: %v", err)
	}
	if fav.ID == 0 {
		t.Fatal("expected assigned ID")
	}

	favorites, err := repo.ListFavoritesByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("list favorites: %v", err)
	}
	if len(favorites) != 1 {
		t.Fatalf("expected exactly 1 favorite, got %d", len(favorites))
	}

	got := favorites[0]
	if got.RecipeID != "716429" || got.Title != "Pasta with Garlic" || got.Image != "https://img.spoonacular.com/716429.jpg" {
		t.Fatalf("unexpected favorite: %+v", got)
	}
}

func TestRepository_SaveFavorite_DuplicatesAllowed(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	for i := 0; i < 2; i++ {
		if _, err := repo.SaveFavorite(ctx, "user-1", "42", "Soup", "soup.jpg"); err != nil {
			t.Fatalf("save favorite #%d: %v", i+1, err)
		}
	}

	favorites, err := repo.ListFavoritesByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("list favorites: %v", err)
	}
	if len(favorites) != 2 {
		t.Fatalf("expected 2 favorites, got %d", len(favorites))
	}
}

func TestRepository_SaveFavorite_MissingFieldPersistsNothing(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t, ctx)

	if _, err := repo.SaveFavorite(ctx, "user-1", "42", "", "soup.jpg"); !model.IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	favorites, err := repo.ListFavoritesByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("list favorites: %v", err)
	}
	if len(favorites) != 0 {
		t.Fatalf("expected no favorites, got %d", len(favorites))
	}
}
