package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pantrychef/pantrychef/internal/model"
)

// AddExpiringItems validates and inserts a batch of expiring ingredients for one user.
// All rows are written in a single transaction: a failure persists nothing.
func (r *Repository) AddExpiringItems(ctx context.Context, userID string, items []model.ExpiryItem) ([]*model.ExpiringIngredient, error) {
	records, err := model.NewExpiringIngredients(userID, items)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO expiring_ingredients (user_id, ingredient, expiry_date)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, rec := range records {
			if err := tx.QueryRow(ctx, query, rec.UserID, rec.Ingredient, rec.ExpiryDate).
				Scan(&rec.ID, &rec.CreatedAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add expiring items: %w", err)
	}

	return records, nil
}

// FindExpiringOn returns every record whose expiry date equals the calendar day of day.
func (r *Repository) FindExpiringOn(ctx context.Context, day time.Time) ([]*model.ExpiringIngredient, error) {
	query := `
		SELECT id, user_id, ingredient, expiry_date, created_at
		FROM expiring_ingredients
		WHERE expiry_date = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, model.CivilDate(day))
	if err != nil {
		return nil, fmt.Errorf("failed to find expiring items: %w", err)
	}
	defer rows.Close()

	return scanIngredients(rows)
}

// ListExpiringByUser returns a user's records ordered by expiry date.
func (r *Repository) ListExpiringByUser(ctx context.Context, userID string) ([]*model.ExpiringIngredient, error) {
	query := `
		SELECT id, user_id, ingredient, expiry_date, created_at
		FROM expiring_ingredients
		WHERE user_id = $1
		ORDER BY expiry_date, id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring items: %w", err)
	}
	defer rows.Close()

	return scanIngredients(rows)
}

// scanIngredients drains rows into ExpiringIngredient models.
func scanIngredients(rows pgx.Rows) ([]*model.ExpiringIngredient, error) {
	items := make([]*model.ExpiringIngredient, 0)
	for rows.Next() {
		var item model.ExpiringIngredient
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Ingredient,
			&item.ExpiryDate,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expiring item: %w", err)
		}
		item.ExpiryDate = model.CivilDate(item.ExpiryDate)
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expiring items: %w", err)
	}

	return items, nil
}
