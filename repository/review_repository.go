package repository

import (
	"context"
	"database/sql"
	"fmt"

	"capsule-os/models"
)

// maxReviewsPerProduct bounds how many reviews feed one insight
const maxReviewsPerProduct = 200

// ReviewRepository reads stored customer reviews
type ReviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Ensure ReviewRepository implements ReviewRepositoryInterface
var _ ReviewRepositoryInterface = (*ReviewRepository)(nil)

// ListForProduct returns reviews matching brand and name case-insensitively.
// An empty name matches every product of the brand.
func (r *ReviewRepository) ListForProduct(ctx context.Context, brand, name string) ([]models.ProductReview, error) {
	query := `
		SELECT id, brand, name, rating::float8, body
		FROM product_reviews
		WHERE lower(brand) = lower($1)
		  AND ($2 = '' OR lower(name) = lower($2))
		ORDER BY id DESC
		LIMIT $3
	`

	rows, err := r.db.QueryContext(ctx, query, brand, name, maxReviewsPerProduct)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.ProductReview
	for rows.Next() {
		var rv models.ProductReview
		if err := rows.Scan(&rv.ID, &rv.Brand, &rv.Name, &rv.Rating, &rv.Body); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}
	return reviews, nil
}
