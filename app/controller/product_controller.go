package controller

import (
	"net/http"
	"strconv"
	"strings"

	"capsule-os/models"
	"capsule-os/repository"
)

const (
	defaultProductLimit = 100
	maxProductLimit     = 500
)

// ProductController handles HTTP requests for browsing the catalog
type ProductController struct {
	repository repository.CatalogRepositoryInterface
}

// NewProductController creates a new ProductController
func NewProductController(repo repository.CatalogRepositoryInterface) *ProductController {
	return &ProductController{repository: repo}
}

// ListProducts handles GET /api/products?category=Top,Tee&limit=100&offset=0
func (c *ProductController) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := defaultProductLimit
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxProductLimit {
			respondError(w, http.StatusBadRequest, CodeInvalidParam, "limit must be between 1 and 500")
			return
		}
		limit = parsed
	}

	offset := 0
	if raw := query.Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, CodeInvalidParam, "offset must be a non-negative integer")
			return
		}
		offset = parsed
	}

	var categories []string
	for _, category := range strings.Split(query.Get("category"), ",") {
		if category = strings.TrimSpace(category); category != "" {
			categories = append(categories, category)
		}
	}

	filter := repository.ProductFilter{Categories: categories, Limit: limit, Offset: offset}
	products, err := c.repository.QueryProducts(r.Context(), filter)
	if err != nil {
		respondInternalError(w, "ListProducts", err)
		return
	}
	total, err := c.repository.CountProducts(r.Context(), filter)
	if err != nil {
		respondInternalError(w, "ListProducts", err)
		return
	}
	if products == nil {
		products = []models.CatalogProduct{}
	}

	respondJSON(w, http.StatusOK, models.ProductListResponse{
		Products: products,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	})
}
