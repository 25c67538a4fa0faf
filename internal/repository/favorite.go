package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pantrychef/pantrychef/internal/model"
)

// SaveFavorite validates and inserts one favorite recipe.
// Saving the same recipe twice for a user creates two rows.
func (r *Repository) SaveFavorite(ctx context.Context, userID, recipeID, title, image string) (*model.FavoriteRecipe, error) {
	fav, err := model.NewFavoriteRecipe(userID, recipeID, title, image)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO favorite_recipes (user_id, recipe_id, title, image)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(ctx, query, fav.UserID, fav.RecipeID, fav.Title, fav.Image).
		Scan(&fav.ID, &fav.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to save favorite: %w", err)
	}

	return fav, nil
}

// ListFavoritesByUser returns a user's favorites, oldest first.
func (r *Repository) ListFavoritesByUser(ctx context.Context, userID string) ([]*model.FavoriteRecipe, error) {
	query := `
		SELECT id, user_id, recipe_id, title, image, created_at
		FROM favorite_recipes
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]*model.FavoriteRecipe, 0)
	for rows.Next() {
		fav, err := scanFavorite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, fav)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorites: %w", err)
	}

	return favorites, nil
}

// scanFavorite scans a single row into a FavoriteRecipe model.
func scanFavorite(row pgx.Row) (*model.FavoriteRecipe, error) {
	var fav model.FavoriteRecipe
	err := row.Scan(
		&fav.ID,
		&fav.UserID,
		&fav.RecipeID,
		&fav.Title,
		&fav.Image,
		&fav.CreatedAt,
	)
	return &fav, err
}
