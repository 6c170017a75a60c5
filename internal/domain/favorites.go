package domain

import (
	"context"
	"strings"
)

// Favorite is a bookmarked product, keyed by its sanitized name.
type Favorite struct {
	Key         string  `json:"key"`
	ProductName string  `json:"productName"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Timestamp   int64   `json:"timestamp"`
}

// FavoriteRepository is the port for favorites persistence.
type FavoriteRepository interface {
	PutFavorite(ctx context.Context, userID int64, f Favorite) error
	DeleteFavorite(ctx context.Context, userID int64, key string) error
	GetFavorite(ctx context.Context, userID int64, key string) (*Favorite, error)
	ListFavorites(ctx context.Context, userID int64) ([]Favorite, error)
}

// FavoriteKey sanitizes a product name into a stable favorites key by
// stripping path-hostile characters.
func FavoriteKey(productName string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '#', '$', '[', ']', '/':
			return -1
		}
		return r
	}, productName)
}
