package controller

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"capsule-os/logging"
	"capsule-os/service"
)

// LookbookController handles HTTP requests for capsule lookbook exports
type LookbookController struct {
	capsules  service.CapsuleServiceInterface
	lookbook  service.LookbookServiceInterface
	maxBudget float64
}

// NewLookbookController creates a new LookbookController
func NewLookbookController(capsules service.CapsuleServiceInterface, lookbook service.LookbookServiceInterface, maxBudget float64) *LookbookController {
	return &LookbookController{
		capsules:  capsules,
		lookbook:  lookbook,
		maxBudget: maxBudget,
	}
}

// validFormats is a map of valid format values
var validFormats = map[service.LookbookFormat]bool{
	service.LookbookHTML: true,
	service.LookbookPDF:  true,
}

// ExportLookbook handles POST /api/capsule/lookbook?format=html|pdf
// The body is a capsule request; the generated capsule is rendered as a lookbook
func (c *LookbookController) ExportLookbook(w http.ResponseWriter, r *http.Request) {
	format := service.LookbookFormat(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format"))))
	if format == "" {
		format = service.LookbookHTML
	}
	if !validFormats[format] {
		logging.Warn().Str("format", string(format)).Msg("❌ ExportLookbook: invalid format")
		respondError(w, http.StatusBadRequest, CodeInvalidParam, "Invalid format. Valid formats: html, pdf")
		return
	}

	req, ok := readCapsuleRequest(w, r, "ExportLookbook", c.maxBudget)
	if !ok {
		return
	}

	result, err := c.capsules.Generate(r.Context(), req)
	if err != nil {
		respondInternalError(w, "ExportLookbook", err)
		return
	}

	switch format {
	case service.LookbookPDF:
		pdf, err := c.lookbook.GeneratePDF(r.Context(), result)
		if err != nil {
			respondInternalError(w, "ExportLookbook", err)
			return
		}
		filename := fmt.Sprintf("capsule-%s-%s.pdf", strings.ToLower(string(result.Quarter)), time.Now().Format("20060102"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdf)
	default:
		html, err := c.lookbook.RenderHTML(r.Context(), result, true)
		if err != nil {
			respondInternalError(w, "ExportLookbook", err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(html))
	}
}
