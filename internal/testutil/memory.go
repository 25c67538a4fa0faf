package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/pantrychef/pantrychef/internal/model"
)

// MemoryStore is an in-process stand-in for the Postgres repository.
// It applies the same model validation and the same all-or-nothing batch rule.
type MemoryStore struct {
	mu          sync.Mutex
	nextID      int64
	ingredients []*model.ExpiringIngredient
	favorites   []*model.FavoriteRecipe

	// Err, when set, is returned by every operation after validation.
	Err error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// AddExpiringItems mirrors repository.AddExpiringItems.
func (s *MemoryStore) AddExpiringItems(ctx context.Context, userID string, items []model.ExpiryItem) ([]*model.ExpiringIngredient, error) {
	records, err := model.NewExpiringIngredients(userID, items)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	now := time.Now().UTC()
	for _, rec := range records {
		s.nextID++
		rec.ID = s.nextID
		rec.CreatedAt = now
		s.ingredients = append(s.ingredients, rec)
	}

	return records, nil
}

// FindExpiringOn mirrors repository.FindExpiringOn.
func (s *MemoryStore) FindExpiringOn(ctx context.Context, day time.Time) ([]*model.ExpiringIngredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	result := make([]*model.ExpiringIngredient, 0)
	for _, rec := range s.ingredients {
		if rec.ExpiresOn(day) {
			result = append(result, rec)
		}
	}
	return result, nil
}

// ListExpiringByUser mirrors repository.ListExpiringByUser.
func (s *MemoryStore) ListExpiringByUser(ctx context.Context, userID string) ([]*model.ExpiringIngredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	result := make([]*model.ExpiringIngredient, 0)
	for _, rec := range s.ingredients {
		if rec.UserID == userID {
			result = append(result, rec)
		}
	}
	return result, nil
}

// SaveFavorite mirrors repository.SaveFavorite.
func (s *MemoryStore) SaveFavorite(ctx context.Context, userID, recipeID, title, image string) (*model.FavoriteRecipe, error) {
	fav, err := model.NewFavoriteRecipe(userID, recipeID, title, image)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	s.nextID++
	fav.ID = s.nextID
	fav.CreatedAt = time.Now().UTC()
	s.favorites = append(s.favorites, fav)

	return fav, nil
}

// ListFavoritesByUser mirrors repository.ListFavoritesByUser.
func (s *MemoryStore) ListFavoritesByUser(ctx context.Context, userID string) ([]*model.FavoriteRecipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	result := make([]*model.FavoriteRecipe, 0)
	for _, fav := range s.favorites {
		if fav.UserID == userID {
			result = append(result, fav)
		}
	}
	return result, nil
}

// IngredientCount returns the number of stored ingredient records.
func (s *MemoryStore) IngredientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ingredients)
}

// FavoriteCount returns the number of stored favorites.
func (s *MemoryStore) FavoriteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.favorites)
}
