package capsule

import (
	"sort"
	"strings"

	"capsule-os/models"
)

const (
	maxCapsulePalette = 6
	minCapsulePalette = 4
)

// ExtractPalette ranks item colors by frequency (case-insensitive, stable on first
// appearance) and keeps the top 6. With fewer than 4 distinct colors it backfills
// from the template palette, skipping duplicates.
func ExtractPalette(items []models.CapsuleItem, templatePalette []string) []string {
	counts := make(map[string]int)
	var order []string
	for _, item := range items {
		for _, c := range item.PaletteColors {
			key := strings.ToLower(strings.TrimSpace(c))
			if key == "" {
				continue
			}
			if counts[key] == 0 {
				order = append(order, key)
			}
			counts[key]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	palette := order
	if len(palette) > maxCapsulePalette {
		palette = palette[:maxCapsulePalette]
	}

	if len(palette) < minCapsulePalette {
		seen := make(map[string]bool, len(palette))
		for _, c := range palette {
			seen[c] = true
		}
		for _, c := range templatePalette {
			if len(palette) >= maxCapsulePalette {
				break
			}
			key := strings.ToLower(strings.TrimSpace(c))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			palette = append(palette, key)
		}
	}

	if palette == nil {
		return []string{}
	}
	return palette
}
