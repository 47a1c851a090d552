package capsule

import (
	"strings"

	"capsule-os/models"
)

const maxOutfitFormulas = 4

// formulaGroups are the fixed item index triples combined into outfits
var formulaGroups = [maxOutfitFormulas][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{9, 10, 11},
}

// GenerateOutfitFormulas joins complete item triples into "A + B + C" strings.
// Capsules with fewer than 3 items get a single pair formula instead.
func GenerateOutfitFormulas(items []models.CapsuleItem) []string {
	formulas := make([]string, 0, maxOutfitFormulas)
	if len(items) == 0 {
		return formulas
	}

	if len(items) < 3 {
		second := "Accessories"
		if len(items) > 1 {
			second = items[1].Category
		}
		return append(formulas, items[0].Category+" + "+second)
	}

	for _, group := range formulaGroups {
		if group[2] >= len(items) {
			break
		}
		parts := make([]string, len(group))
		for i, idx := range group {
			parts[i] = items[idx].Category
		}
		formulas = append(formulas, strings.Join(parts, " + "))
	}
	return formulas
}
