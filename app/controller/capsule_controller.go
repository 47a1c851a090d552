package controller

import (
	"fmt"
	"net/http"

	"capsule-os/logging"
	"capsule-os/models"
	"capsule-os/service"
	"capsule-os/utils"
)

// CodeBudgetOutOfRange is returned when the budget exceeds the configured ceiling
const CodeBudgetOutOfRange = "BUDGET_OUT_OF_RANGE"

// CapsuleController handles HTTP requests for capsule generation
type CapsuleController struct {
	service   service.CapsuleServiceInterface
	maxBudget float64
}

// NewCapsuleController creates a new CapsuleController
func NewCapsuleController(svc service.CapsuleServiceInterface, maxBudget float64) *CapsuleController {
	return &CapsuleController{
		service:   svc,
		maxBudget: maxBudget,
	}
}

// GenerateCapsule handles POST /api/generate-capsule
func (c *CapsuleController) GenerateCapsule(w http.ResponseWriter, r *http.Request) {
	req, ok := readCapsuleRequest(w, r, "GenerateCapsule", c.maxBudget)
	if !ok {
		return
	}

	result, err := c.service.Generate(r.Context(), req)
	if err != nil {
		respondInternalError(w, "GenerateCapsule", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// readCapsuleRequest decodes and validates a capsule request, enforcing the budget ceiling
func readCapsuleRequest(w http.ResponseWriter, r *http.Request, handler string, maxBudget float64) (models.CapsuleRequest, bool) {
	var req models.CapsuleRequest
	if !decodeAndValidate(w, r, handler, &req) {
		return req, false
	}

	if maxBudget > 0 && req.Budget > maxBudget {
		logging.Warn().Float64("budget", req.Budget).Msgf("❌ %s: budget above ceiling", handler)
		respondError(w, http.StatusBadRequest, CodeBudgetOutOfRange,
			fmt.Sprintf("budget must be at most %s", utils.FormatUSD(maxBudget)))
		return req, false
	}
	return req, true
}
