package repository

import (
	"context"

	"capsule-os/models"
)

// ProductFilter narrows a catalog query. Zero values mean "no constraint".
type ProductFilter struct {
	Categories   []string
	MinPrice     *float64
	MaxPrice     *float64
	ExcludeBrand string
	// OrderByPrice sorts ascending by price, otherwise catalog order (id) is kept
	OrderByPrice bool
	Limit        int
	Offset       int
}

// CatalogRepositoryInterface defines the contract for read-only catalog queries
type CatalogRepositoryInterface interface {
	QueryProducts(ctx context.Context, filter ProductFilter) ([]models.CatalogProduct, error)
	CountProducts(ctx context.Context, filter ProductFilter) (int, error)
}

// ClosetRepositoryInterface defines the contract for closet snapshot storage
type ClosetRepositoryInterface interface {
	ListByUser(ctx context.Context, userID string) ([]models.ClosetItem, error)
	ReplaceForUser(ctx context.Context, userID string, items []models.ClosetItem) (int, error)
}

// ReviewRepositoryInterface defines the contract for stored product reviews
type ReviewRepositoryInterface interface {
	ListForProduct(ctx context.Context, brand, name string) ([]models.ProductReview, error)
}
