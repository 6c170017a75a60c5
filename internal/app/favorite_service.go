package app

import (
	"context"
	"errors"
	"time"

	"labelscanner/internal/domain"
)

// FavoriteService manages the user's bookmarked products.
type FavoriteService struct {
	favorites domain.FavoriteRepository
}

// NewFavoriteService creates a FavoriteService backed by the given repository.
func NewFavoriteService(fr domain.FavoriteRepository) *FavoriteService {
	return &FavoriteService{favorites: fr}
}

// Toggle bookmarks a product, or removes the bookmark if one exists.
// Returns whether the product is a favorite after the call.
func (s *FavoriteService) Toggle(ctx context.Context, userID int64, productName string, calories, protein float64) (bool, error) {
	key := domain.FavoriteKey(productName)
	if key == "" {
		return false, errors.New("product name is required")
	}

	existing, err := s.favorites.GetFavorite(ctx, userID, key)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, s.favorites.DeleteFavorite(ctx, userID, key)
	}

	f := domain.Favorite{
		Key:         key,
		ProductName: productName,
		Calories:    calories,
		Protein:     protein,
		Timestamp:   time.Now().UnixMilli(),
	}
	return true, s.favorites.PutFavorite(ctx, userID, f)
}

// IsFavorite reports whether the product is bookmarked.
func (s *FavoriteService) IsFavorite(ctx context.Context, userID int64, productName string) (bool, error) {
	f, err := s.favorites.GetFavorite(ctx, userID, domain.FavoriteKey(productName))
	if err != nil {
		return false, err
	}
	return f != nil, nil
}

// List returns the user's favorites.
func (s *FavoriteService) List(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	return s.favorites.ListFavorites(ctx, userID)
}
