package models

// CatalogProduct represents a product row in the catalog store
type CatalogProduct struct {
	ID          int64                  `json:"id"`
	Brand       string                 `json:"brand"`
	Name        string                 `json:"name"`
	Category    string                 `json:"category"`
	Price       float64                `json:"price"`
	Description string                 `json:"description,omitempty"`
	Colors      []string               `json:"colors"`
	ImageURL    string                 `json:"image_url,omitempty"`
	Link        string                 `json:"link,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// ProductListResponse is the paginated response for GET /api/products
type ProductListResponse struct {
	Products []CatalogProduct `json:"products"`
	Total    int              `json:"total"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}
