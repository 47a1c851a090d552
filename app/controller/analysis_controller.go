package controller

import (
	"net/http"
	"strings"

	"capsule-os/logging"
	"capsule-os/models"
	"capsule-os/service"
	"capsule-os/validation"
)

// AnalysisController handles HTTP requests for single-item purchase analysis
type AnalysisController struct {
	service service.AnalysisServiceInterface
}

// NewAnalysisController creates a new AnalysisController
func NewAnalysisController(svc service.AnalysisServiceInterface) *AnalysisController {
	return &AnalysisController{service: svc}
}

// AnalyzeItem handles POST /api/analyze-item
func (c *AnalysisController) AnalyzeItem(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if !decodeAndValidate(w, r, "AnalyzeItem", &req) {
		return
	}

	if strings.TrimSpace(req.ProductLink) == "" &&
		strings.TrimSpace(req.ProductDescription) == "" &&
		strings.TrimSpace(req.ProductName) == "" {
		logging.Warn().Msg("❌ AnalyzeItem: no product link, name or description")
		respondError(w, http.StatusBadRequest, validation.ErrorCode,
			"product_link, product_name or product_description is required")
		return
	}
	if req.Price != nil && *req.Price < 0 {
		respondError(w, http.StatusBadRequest, validation.ErrorCode, "price must be greater than or equal to 0")
		return
	}

	result, err := c.service.Analyze(r.Context(), req)
	if err != nil {
		respondInternalError(w, "AnalyzeItem", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
