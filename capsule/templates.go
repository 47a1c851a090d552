package capsule

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"capsule-os/logging"
	"capsule-os/metrics"
	"capsule-os/models"
)

const (
	maxTemplatePalette = 7
	maxTemplateItems   = 12
	minTemplatePalette = 4
)

// defaultQuarter is used when a requested period has no template
const defaultQuarter = models.QuarterQ1

// templateFile is the on-disk shape: {"Q1": {"palette": [...], "items": [...]}, ...}
type templateFile map[models.Quarter]struct {
	Palette []string      `json:"palette"`
	Items   []models.Slot `json:"items"`
}

// TemplateCatalog holds the read-only per-period templates
type TemplateCatalog struct {
	templates map[models.Quarter]models.Template
	builtin   bool
}

// DefaultTemplates returns the built-in two-period template set
func DefaultTemplates() *TemplateCatalog {
	return &TemplateCatalog{
		builtin: true,
		templates: map[models.Quarter]models.Template{
			models.QuarterQ1: {
				Period:  models.QuarterQ1,
				Palette: []string{"black", "navy", "cream", "camel", "gray"},
				Items: []models.Slot{
					models.SlotTrenchCoat, models.SlotSweater, models.SlotJeans, models.SlotBoots, models.SlotScarf,
				},
			},
			models.QuarterQ2: {
				Period:  models.QuarterQ2,
				Palette: []string{"white", "beige", "sage", "denim", "tan"},
				Items: []models.Slot{
					models.SlotBlazer, models.SlotTee, models.SlotTrousers, models.SlotSneakers, models.SlotTote,
				},
			},
		},
	}
}

// LoadTemplates reads the template file once.
// Any read, parse or validation failure degrades to DefaultTemplates.
func LoadTemplates(path string) *TemplateCatalog {
	catalog, err := loadTemplateFile(path)
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("⚠️  Capsule templates unavailable, using built-in defaults")
		metrics.TemplateFallbacks.Inc()
		return DefaultTemplates()
	}
	logging.Info().Str("path", path).Int("periods", len(catalog.templates)).Msg("✅ Capsule templates loaded")
	return catalog
}

func loadTemplateFile(path string) (*TemplateCatalog, error) {
	if path == "" {
		return nil, fmt.Errorf("no template path configured")
	}

	// Resolve relative paths against the working directory
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path = filepath.Join(wd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates: %w", err)
	}

	var raw templateFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	catalog := &TemplateCatalog{templates: make(map[models.Quarter]models.Template, len(raw))}
	for quarter, t := range raw {
		if err := validateTemplate(quarter, t.Palette, t.Items); err != nil {
			return nil, err
		}
		palette := t.Palette
		if len(palette) > maxTemplatePalette {
			palette = palette[:maxTemplatePalette]
		}
		items := t.Items
		if len(items) > maxTemplateItems {
			items = items[:maxTemplateItems]
		}
		catalog.templates[quarter] = models.Template{Period: quarter, Palette: palette, Items: items}
	}

	if _, ok := catalog.templates[defaultQuarter]; !ok {
		return nil, fmt.Errorf("templates must define %s", defaultQuarter)
	}
	return catalog, nil
}

func validateTemplate(quarter models.Quarter, palette []string, items []models.Slot) error {
	switch quarter {
	case models.QuarterQ1, models.QuarterQ2, models.QuarterQ3, models.QuarterQ4:
	default:
		return fmt.Errorf("unknown period %q in templates", quarter)
	}
	if distinct := countDistinctColors(palette); distinct < minTemplatePalette {
		return fmt.Errorf("template %s: palette needs at least %d distinct colors, got %d", quarter, minTemplatePalette, distinct)
	}
	if len(items) == 0 {
		return fmt.Errorf("template %s: no item slots", quarter)
	}
	return nil
}

// countDistinctColors counts non-blank colors, ignoring case
func countDistinctColors(palette []string) int {
	seen := make(map[string]bool, len(palette))
	for _, c := range palette {
		if key := strings.ToLower(strings.TrimSpace(c)); key != "" {
			seen[key] = true
		}
	}
	return len(seen)
}

// TemplateFor returns the template for a period, falling back to Q1
func (c *TemplateCatalog) TemplateFor(quarter models.Quarter) models.Template {
	if t, ok := c.templates[quarter]; ok {
		return t
	}
	return c.templates[defaultQuarter]
}

// IsBuiltin reports whether the built-in defaults are in use
func (c *TemplateCatalog) IsBuiltin() bool {
	return c.builtin
}
