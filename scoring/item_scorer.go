package scoring

import (
	"math"
	"strings"

	"capsule-os/models"
)

const (
	priceScoreCeiling   = 500.0
	neutralScore        = 0.5
	defaultPaletteScore = 0.7
	wearsPerSeason      = 30.0
)

// ScorePrice maps price onto [0,1], cheaper is better; unknown or non-positive prices are neutral
func ScorePrice(price *float64) float64 {
	if price == nil || *price <= 0 || math.IsNaN(*price) {
		return neutralScore
	}
	return 1 - math.Min(*price/priceScoreCeiling, 1)
}

// ScoreReview is the insight's sentiment clamped to [0,1], neutral without insight
func ScoreReview(insight *models.ReviewInsight) float64 {
	if insight == nil {
		return neutralScore
	}
	return clamp01(insight.ReviewSentiment)
}

// ScoreQuality maps a quality label to its score
func ScoreQuality(label models.QualityLabel) float64 {
	switch label {
	case models.QualityExcellent:
		return 1.0
	case models.QualityGood:
		return 0.75
	case models.QualityMixed:
		return 0.5
	case models.QualityPoor:
		return 0.25
	case models.QualityUnknown:
		return neutralScore
	default:
		return neutralScore
	}
}

// qualityMultiplier stretches expected wears for better-made items
func qualityMultiplier(label models.QualityLabel) float64 {
	switch label {
	case models.QualityExcellent:
		return 1.5
	case models.QualityGood:
		return 1.0
	case models.QualityMixed:
		return 0.7
	case models.QualityPoor:
		return 0.5
	case models.QualityUnknown:
		return 1.0
	default:
		return 1.0
	}
}

// EstimateCostPerWear is price / (30 × quality multiplier); nil when price is unknown or not positive
func EstimateCostPerWear(price *float64, label models.QualityLabel) *float64 {
	if price == nil || *price <= 0 {
		return nil
	}
	cpw := *price / (wearsPerSeason * qualityMultiplier(label))
	return &cpw
}

// ScorePalette is the share of product colors found in the caller's palette.
// Without colors or palette it returns the neutral 0.7 default.
func ScorePalette(colors, palette []string) float64 {
	if len(colors) == 0 || len(palette) == 0 {
		return defaultPaletteScore
	}
	inPalette := lowerSet(palette)

	total, matched := 0, 0
	for _, c := range colors {
		key := strings.ToLower(strings.TrimSpace(c))
		if key == "" {
			continue
		}
		total++
		if inPalette[key] {
			matched++
		}
	}
	if total == 0 {
		return defaultPaletteScore
	}
	return float64(matched) / float64(total)
}

// ScoreItem computes the full purchase score breakdown for one product.
// TotalScore is the mean of price, review and quality scores; palette is reported separately.
func ScoreItem(info models.ProductInfo, insight *models.ReviewInsight, palette []string) models.ScoreBreakdown {
	label := models.QualityUnknown
	if insight != nil {
		label = insight.Quality
	}

	breakdown := models.ScoreBreakdown{
		PriceScore:   ScorePrice(info.Price),
		ReviewScore:  ScoreReview(insight),
		QualityScore: ScoreQuality(label),
		PaletteScore: ScorePalette(info.Colors, palette),
		CostPerWear:  EstimateCostPerWear(info.Price, label),
	}
	breakdown.TotalScore = (breakdown.PriceScore + breakdown.ReviewScore + breakdown.QualityScore) / 3
	return breakdown
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
