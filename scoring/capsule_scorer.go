package scoring

import (
	"strings"

	"capsule-os/models"
)

// versatileCategories are category substrings that pair with almost anything
var versatileCategories = []string{"tee", "jeans", "blazer", "trench"}

// ScoreCapsule computes palette fit, versatility and closet overlap of a finished capsule.
// Every score is in [0,1]; TotalScore is their unweighted mean.
func ScoreCapsule(items []models.CapsuleItem, palette []string, closet []models.ClosetItem) models.CoherenceScores {
	scores := models.CoherenceScores{
		PaletteScore:     scorePaletteMatch(items, palette),
		VersatilityScore: scoreVersatility(items),
		OverlapScore:     scoreClosetOverlap(items, closet),
	}
	scores.TotalScore = (scores.PaletteScore + scores.VersatilityScore + scores.OverlapScore) / 3
	return scores
}

// scorePaletteMatch is the share of items with at least one color in the palette
func scorePaletteMatch(items []models.CapsuleItem, palette []string) float64 {
	if len(items) == 0 {
		return 0
	}
	inPalette := lowerSet(palette)

	matched := 0
	for _, item := range items {
		for _, c := range item.PaletteColors {
			if inPalette[strings.ToLower(strings.TrimSpace(c))] {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(items))
}

// scoreVersatility is the share of items whose category names a versatile piece
func scoreVersatility(items []models.CapsuleItem) float64 {
	if len(items) == 0 {
		return 0
	}

	versatile := 0
	for _, item := range items {
		category := strings.ToLower(item.Category)
		for _, v := range versatileCategories {
			if strings.Contains(category, v) {
				versatile++
				break
			}
		}
	}
	return float64(versatile) / float64(len(items))
}

// scoreClosetOverlap is 1 - |closet ∩ new| / |new| over lower-cased categories
func scoreClosetOverlap(items []models.CapsuleItem, closet []models.ClosetItem) float64 {
	if len(closet) == 0 {
		return 1.0
	}

	newCategories := make(map[string]bool, len(items))
	for _, item := range items {
		if c := strings.ToLower(strings.TrimSpace(item.Category)); c != "" {
			newCategories[c] = true
		}
	}
	if len(newCategories) == 0 {
		return 1.0
	}

	owned := make(map[string]bool, len(closet))
	for _, c := range closet {
		owned[strings.ToLower(strings.TrimSpace(c.Category))] = true
	}

	overlap := 0
	for c := range newCategories {
		if owned[c] {
			overlap++
		}
	}
	return 1 - float64(overlap)/float64(len(newCategories))
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			set[v] = true
		}
	}
	return set
}
