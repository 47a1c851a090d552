package models

// ClosetItem represents a piece the user already owns
type ClosetItem struct {
	ID          int64    `json:"id,omitempty"`
	UserID      string   `json:"user_id,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Category    string   `json:"category" validate:"required,max=100"`
	Color       string   `json:"color,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
}

// ClosetUploadRequest represents the request body for POST /api/closet/upload
// Example: {"user_id": "u-123", "items": [{"category": "Jeans", "color": "denim"}]}
type ClosetUploadRequest struct {
	UserID string       `json:"user_id" validate:"required,max=128"`
	Items  []ClosetItem `json:"items" validate:"max=500,dive"`
}

// ClosetUploadResponse represents the response after replacing a closet
type ClosetUploadResponse struct {
	UserID    string `json:"user_id"`
	ItemCount int    `json:"item_count"`
}

// ClosetResponse represents the response for GET /api/closet
type ClosetResponse struct {
	UserID string       `json:"user_id"`
	Items  []ClosetItem `json:"items"`
}
