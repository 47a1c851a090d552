package repository

import (
	"context"
	"database/sql"
	"fmt"

	"capsule-os/logging"
	"capsule-os/models"
)

// ClosetRepository handles database operations for user closets
type ClosetRepository struct {
	db *sql.DB
}

// NewClosetRepository creates a new ClosetRepository
func NewClosetRepository(db *sql.DB) *ClosetRepository {
	return &ClosetRepository{db: db}
}

// Ensure ClosetRepository implements ClosetRepositoryInterface
var _ ClosetRepositoryInterface = (*ClosetRepository)(nil)

// ListByUser returns the closet snapshot for a user, oldest first
func (r *ClosetRepository) ListByUser(ctx context.Context, userID string) ([]models.ClosetItem, error) {
	query := `
		SELECT id, user_id, brand, category, color, description, price::float8
		FROM closet_items
		WHERE user_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query closet items: %w", err)
	}
	defer rows.Close()

	items := make([]models.ClosetItem, 0)
	for rows.Next() {
		var item models.ClosetItem
		var price sql.NullFloat64
		if err := rows.Scan(&item.ID, &item.UserID, &item.Brand, &item.Category, &item.Color, &item.Description, &price); err != nil {
			return nil, fmt.Errorf("failed to scan closet item: %w", err)
		}
		if price.Valid {
			p := price.Float64
			item.Price = &p
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate closet items: %w", err)
	}
	return items, nil
}

// ReplaceForUser swaps a user's whole closet for the given items in one transaction
func (r *ClosetRepository) ReplaceForUser(ctx context.Context, userID string, items []models.ClosetItem) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM closet_items WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("failed to clear closet: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO closet_items (user_id, brand, category, color, description, price)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare closet insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		var price sql.NullFloat64
		if item.Price != nil {
			price = sql.NullFloat64{Float64: *item.Price, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, userID, item.Brand, item.Category, item.Color, item.Description, price); err != nil {
			return 0, fmt.Errorf("failed to insert closet item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit closet: %w", err)
	}

	logging.Info().Str("user_id", userID).Int("items", len(items)).Msg("✅ Closet replaced")
	return len(items), nil
}
