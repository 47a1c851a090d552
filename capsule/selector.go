package capsule

import (
	"context"
	"fmt"
	"math"
	"strings"

	"capsule-os/logging"
	"capsule-os/metrics"
	"capsule-os/models"
	"capsule-os/repository"
	"capsule-os/utils"
)

const (
	// MaxCapsuleItems bounds the slots a capsule fills; the budget is split this many ways
	MaxCapsuleItems = 12

	valueCeilingFactor       = 1.2
	valueTargetFactor        = 0.7
	placeholderValueFactor   = 0.6
	placeholderQualityFactor = 1.4
	maxItemPaletteColors     = 3

	reasonValue   = "Great quality-to-price ratio"
	reasonQuality = "Premium materials and construction"
)

// Selector picks a best-value and a best-quality product for each template slot
type Selector struct {
	catalog repository.CatalogRepositoryInterface
}

// NewSelector creates a new Selector
func NewSelector(catalog repository.CatalogRepositoryInterface) *Selector {
	return &Selector{catalog: catalog}
}

// SelectItems fills the template's slots in order, at most MaxCapsuleItems of them
func (s *Selector) SelectItems(ctx context.Context, template models.Template, budget float64, brandPrefs []string) ([]models.CapsuleItem, error) {
	perItemBudget := budget / MaxCapsuleItems

	slots := template.Items
	if len(slots) > MaxCapsuleItems {
		slots = slots[:MaxCapsuleItems]
	}

	items := make([]models.CapsuleItem, 0, len(slots))
	for _, slot := range slots {
		item, err := s.selectForSlot(ctx, slot, template, perItemBudget, brandPrefs)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Selector) selectForSlot(ctx context.Context, slot models.Slot, template models.Template, perItemBudget float64, brandPrefs []string) (models.CapsuleItem, error) {
	categories := utils.MapSlotToCategories(slot)

	candidates, err := s.catalog.QueryProducts(ctx, repository.ProductFilter{Categories: categories})
	if err != nil {
		return models.CapsuleItem{}, fmt.Errorf("failed to query candidates for %s: %w", slot, err)
	}

	if len(candidates) == 0 {
		logging.Debug().Str("slot", string(slot)).Strs("categories", categories).Msg("⚠️  No catalog candidates, using placeholder")
		metrics.PlaceholderItems.Inc()
		return placeholderItem(slot, template, perItemBudget, brandPrefs), nil
	}

	candidates = filterByBrand(candidates, brandPrefs)

	value := SelectBestValue(candidates, perItemBudget)
	quality := SelectBestQuality(candidates)

	name := utils.FormatSlotName(slot)
	return models.CapsuleItem{
		Category:      name,
		ItemName:      name,
		BestValue:     optionFromProduct(value, reasonValue),
		BestQuality:   optionFromProduct(quality, reasonQuality),
		PaletteColors: itemPaletteColors(value, quality, template),
	}, nil
}

// filterByBrand narrows candidates to preferred brands, but only when that leaves something
func filterByBrand(candidates []models.CatalogProduct, brandPrefs []string) []models.CatalogProduct {
	if len(brandPrefs) == 0 {
		return candidates
	}

	preferred := make(map[string]bool, len(brandPrefs))
	for _, b := range brandPrefs {
		if b = strings.ToLower(strings.TrimSpace(b)); b != "" {
			preferred[b] = true
		}
	}

	var matched []models.CatalogProduct
	for _, p := range candidates {
		if preferred[strings.ToLower(strings.TrimSpace(p.Brand))] {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		return candidates
	}
	return matched
}

// SelectBestValue picks the candidate priced closest to 70% of the per-item budget
// among those at or under 120% of it; ties go to the earlier candidate.
// If nothing fits under the ceiling, the cheapest candidate wins.
// candidates must be non-empty.
func SelectBestValue(candidates []models.CatalogProduct, perItemBudget float64) models.CatalogProduct {
	ceiling := perItemBudget * valueCeilingFactor
	target := perItemBudget * valueTargetFactor

	best := -1
	bestDiff := math.Inf(1)
	for i, p := range candidates {
		if p.Price > ceiling {
			continue
		}
		if diff := math.Abs(p.Price - target); diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	if best >= 0 {
		return candidates[best]
	}

	cheapest := 0
	for i, p := range candidates {
		if p.Price < candidates[cheapest].Price {
			cheapest = i
		}
	}
	return candidates[cheapest]
}

// SelectBestQuality picks the most expensive premium-brand candidate,
// or the most expensive candidate overall when no premium brand is present.
// candidates must be non-empty.
func SelectBestQuality(candidates []models.CatalogProduct) models.CatalogProduct {
	best := -1
	for i, p := range candidates {
		if !utils.IsPremiumBrand(p.Brand) {
			continue
		}
		if best < 0 || p.Price > candidates[best].Price {
			best = i
		}
	}
	if best >= 0 {
		return candidates[best]
	}

	best = 0
	for i, p := range candidates {
		if p.Price > candidates[best].Price {
			best = i
		}
	}
	return candidates[best]
}

func optionFromProduct(p models.CatalogProduct, reason string) models.ItemOption {
	return models.ItemOption{
		Brand:    p.Brand,
		Name:     p.Name,
		Price:    p.Price,
		Link:     p.Link,
		ImageURL: p.ImageURL,
		Reason:   reason,
	}
}

// itemPaletteColors unions the colors of both picks, case-insensitively, at most 3
func itemPaletteColors(value, quality models.CatalogProduct, template models.Template) []string {
	seen := make(map[string]bool)
	colors := make([]string, 0, maxItemPaletteColors)
	for _, list := range [][]string{value.Colors, quality.Colors} {
		for _, c := range list {
			key := strings.ToLower(strings.TrimSpace(c))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			colors = append(colors, c)
			if len(colors) == maxItemPaletteColors {
				return colors
			}
		}
	}
	if len(colors) == 0 {
		return templateHead(template, 2)
	}
	return colors
}

func placeholderItem(slot models.Slot, template models.Template, perItemBudget float64, brandPrefs []string) models.CapsuleItem {
	valueBrand, qualityBrand := "Generic", "Premium"
	if len(brandPrefs) > 0 {
		valueBrand = brandPrefs[0]
	}
	if len(brandPrefs) > 1 {
		qualityBrand = brandPrefs[1]
	}

	name := utils.FormatSlotName(slot)
	return models.CapsuleItem{
		Category: name,
		ItemName: name,
		BestValue: models.ItemOption{
			Brand:  valueBrand,
			Name:   "Best Value " + name,
			Price:  perItemBudget * placeholderValueFactor,
			Reason: reasonValue,
		},
		BestQuality: models.ItemOption{
			Brand:  qualityBrand,
			Name:   "Best Quality " + name,
			Price:  perItemBudget * placeholderQualityFactor,
			Reason: reasonQuality,
		},
		PaletteColors: templateHead(template, 2),
		Placeholder:   true,
	}
}

func templateHead(template models.Template, n int) []string {
	if len(template.Palette) < n {
		n = len(template.Palette)
	}
	return append([]string(nil), template.Palette[:n]...)
}
