package controller

import (
	"net/http"
	"strings"

	"capsule-os/logging"
	"capsule-os/models"
	"capsule-os/repository"
)

// ClosetController handles HTTP requests for closet snapshots
type ClosetController struct {
	repository repository.ClosetRepositoryInterface
}

// NewClosetController creates a new ClosetController
func NewClosetController(repo repository.ClosetRepositoryInterface) *ClosetController {
	return &ClosetController{repository: repo}
}

// UploadCloset handles POST /api/closet/upload
// Replaces the user's stored closet with the uploaded items
func (c *ClosetController) UploadCloset(w http.ResponseWriter, r *http.Request) {
	var req models.ClosetUploadRequest
	if !decodeAndValidate(w, r, "UploadCloset", &req) {
		return
	}

	userID := strings.TrimSpace(req.UserID)
	count, err := c.repository.ReplaceForUser(r.Context(), userID, req.Items)
	if err != nil {
		respondInternalError(w, "UploadCloset", err)
		return
	}

	logging.Info().Str("user_id", userID).Int("items", count).Msg("✅ Closet uploaded")
	respondJSON(w, http.StatusOK, models.ClosetUploadResponse{UserID: userID, ItemCount: count})
}

// GetCloset handles GET /api/closet?user_id=
func (c *ClosetController) GetCloset(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		logging.Warn().Msg("❌ GetCloset: user_id parameter is required")
		respondError(w, http.StatusBadRequest, CodeInvalidParam, "user_id parameter is required")
		return
	}

	items, err := c.repository.ListByUser(r.Context(), userID)
	if err != nil {
		respondInternalError(w, "GetCloset", err)
		return
	}
	if items == nil {
		items = []models.ClosetItem{}
	}

	respondJSON(w, http.StatusOK, models.ClosetResponse{UserID: userID, Items: items})
}
