package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"capsule-os/logging"
	"capsule-os/models"
)

// CatalogRepository handles read-only product queries
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

const productColumns = `
	id,
	brand,
	name,
	category,
	price::float8,
	COALESCE(description, ''),
	COALESCE(array_to_json(colors)::text, '[]'),
	COALESCE(image_url, ''),
	COALESCE(link, ''),
	COALESCE(metadata::text, '{}')`

// buildWhere renders the WHERE clause and its positional args for a filter
func buildWhere(filter ProductFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if len(filter.Categories) > 0 {
		args = append(args, filter.Categories)
		conditions = append(conditions, fmt.Sprintf("category = ANY($%d)", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conditions = append(conditions, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("price <= $%d", len(args)))
	}
	if brand := strings.TrimSpace(filter.ExcludeBrand); brand != "" {
		args = append(args, brand)
		conditions = append(conditions, fmt.Sprintf("lower(brand) <> lower($%d)", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// buildProductQuery renders the SELECT for a filter
func buildProductQuery(filter ProductFilter) (string, []interface{}) {
	where, args := buildWhere(filter)

	query := "SELECT" + productColumns + " FROM products" + where
	if filter.OrderByPrice {
		query += " ORDER BY price ASC, id ASC"
	} else {
		query += " ORDER BY id ASC"
	}

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}

// QueryProducts returns catalog products matching the filter
func (r *CatalogRepository) QueryProducts(ctx context.Context, filter ProductFilter) ([]models.CatalogProduct, error) {
	query, args := buildProductQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logging.Error().Err(err).Strs("categories", filter.Categories).Msg("❌ Error querying products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]models.CatalogProduct, 0)
	for rows.Next() {
		var p models.CatalogProduct
		var colorsJSON, metadataJSON string

		if err := rows.Scan(
			&p.ID,
			&p.Brand,
			&p.Name,
			&p.Category,
			&p.Price,
			&p.Description,
			&colorsJSON,
			&p.ImageURL,
			&p.Link,
			&metadataJSON,
		); err != nil {
			logging.Warn().Err(err).Msg("❌ Error scanning product")
			continue
		}

		if err := json.Unmarshal([]byte(colorsJSON), &p.Colors); err != nil {
			logging.Warn().Err(err).Int64("product_id", p.ID).Msg("⚠️  Invalid colors column, treating as empty")
			p.Colors = nil
		}
		if metadataJSON != "" && metadataJSON != "{}" {
			if err := json.Unmarshal([]byte(metadataJSON), &p.Metadata); err != nil {
				logging.Warn().Err(err).Int64("product_id", p.ID).Msg("⚠️  Invalid metadata column, ignoring")
			}
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	logging.Debug().Int("count", len(products)).Strs("categories", filter.Categories).Msg("🔍 Products fetched")
	return products, nil
}

// CountProducts returns the number of products matching the filter, ignoring limit/offset
func (r *CatalogRepository) CountProducts(ctx context.Context, filter ProductFilter) (int, error) {
	where, args := buildWhere(filter)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products"+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}
