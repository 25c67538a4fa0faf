package model

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Column limits for expiring_ingredients.
const (
	MaxUserIDLength     = 50
	MaxIngredientLength = 100
)

// ExpiringIngredient is a food item a user recorded as expiring on a given day.
type ExpiringIngredient struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	Ingredient string    `json:"ingredient"`
	ExpiryDate time.Time `json:"expiry_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// ExpiresOn reports whether the ingredient expires on the calendar day of t.
func (e *ExpiringIngredient) ExpiresOn(t time.Time) bool {
	return CivilDate(e.ExpiryDate).Equal(CivilDate(t))
}

// ExpiryItem is one unparsed entry of an add-expiring-items request.
type ExpiryItem struct {
	Name       string
	ExpiryDate string
}

// NewExpiringIngredients validates a batch submission and converts it to records.
// Either every item is valid and a record is returned for each, or an error is
// returned and nothing should be persisted.
func NewExpiringIngredients(userID string, items []ExpiryItem) ([]*ExpiringIngredient, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, NewValidationError("user_id", "is required")
	}
	if utf8.RuneCountInString(userID) > MaxUserIDLength {
		return nil, NewValidationError("user_id", fmt.Sprintf("must be at most %d characters", MaxUserIDLength))
	}
	if len(items) == 0 {
		return nil, NewValidationError("ingredients", "at least one ingredient is required")
	}

	records := make([]*ExpiringIngredient, 0, len(items))
	for i, item := range items {
		field := fmt.Sprintf("ingredients[%d]", i)

		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, NewValidationError(field+".name", "is required")
		}
		if utf8.RuneCountInString(name) > MaxIngredientLength {
			return nil, NewValidationError(field+".name", fmt.Sprintf("must be at most %d characters", MaxIngredientLength))
		}

		date, err := ParseDate(item.ExpiryDate)
		if err != nil {
			return nil, NewValidationError(field+".expiry_date", err.Error())
		}

		records = append(records, &ExpiringIngredient{
			UserID:     userID,
			Ingredient: name,
			ExpiryDate: date,
		})
	}

	return records, nil
}
