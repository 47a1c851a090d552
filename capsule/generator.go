package capsule

import (
	"context"
	"fmt"

	"capsule-os/logging"
	"capsule-os/metrics"
	"capsule-os/models"
	"capsule-os/repository"
	"capsule-os/scoring"
)

// Request is the normalized input of one capsule generation
type Request struct {
	Quarter          models.Quarter
	Climate          models.Climate
	StyleWords       []string
	Budget           float64
	BrandPreferences []string
	Closet           []models.ClosetItem
}

// Generator builds capsules from the template catalog and the product catalog
type Generator struct {
	templates *TemplateCatalog
	selector  *Selector
}

// NewGenerator creates a new Generator
func NewGenerator(templates *TemplateCatalog, catalog repository.CatalogRepositoryInterface) *Generator {
	return &Generator{
		templates: templates,
		selector:  NewSelector(catalog),
	}
}

// Generate runs template lookup, item selection, palette extraction, outfit formulas,
// closet redundancy and coherence scoring for one request
func (g *Generator) Generate(ctx context.Context, req Request) (*models.CapsuleResult, error) {
	template := g.templates.TemplateFor(req.Quarter)

	logging.Info().
		Str("quarter", string(req.Quarter)).
		Str("climate", string(req.Climate)).
		Float64("budget", req.Budget).
		Int("slots", len(template.Items)).
		Msg("🧥 Generating capsule")

	items, err := g.selector.SelectItems(ctx, template, req.Budget, req.BrandPreferences)
	if err != nil {
		return nil, fmt.Errorf("failed to select capsule items: %w", err)
	}

	palette := ExtractPalette(items, template.Palette)
	coherence := scoring.ScoreCapsule(items, palette, req.Closet)

	result := &models.CapsuleResult{
		Quarter:         req.Quarter,
		Palette:         palette,
		OutfitFormulas:  GenerateOutfitFormulas(items),
		Items:           items,
		DoNotBuy:        ComputeDoNotBuy(req.Closet, items),
		StyleWords:      req.StyleWords,
		CoherenceScores: &coherence,
	}

	metrics.CapsulesGenerated.WithLabelValues(string(req.Quarter)).Inc()
	logging.Info().
		Str("quarter", string(req.Quarter)).
		Int("items", len(items)).
		Int("formulas", len(result.OutfitFormulas)).
		Float64("coherence", coherence.TotalScore).
		Msg("✅ Capsule generated")

	return result, nil
}
