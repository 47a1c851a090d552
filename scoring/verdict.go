package scoring

import (
	"math"
	"strings"

	"capsule-os/models"
	"capsule-os/utils"
)

const (
	buyThreshold  = 0.7
	waitThreshold = 0.4
	maxProsCons   = 5
)

// DetermineVerdict maps a total score to buy (> 0.7), wait (> 0.4) or skip
func DetermineVerdict(total float64) models.Verdict {
	switch {
	case total > buyThreshold:
		return models.VerdictBuy
	case total > waitThreshold:
		return models.VerdictWait
	default:
		return models.VerdictSkip
	}
}

// Confidence reports how sure the verdict is
// TODO: derive from distance to the nearest verdict threshold instead of echoing the total score
func Confidence(total float64) float64 {
	return math.Abs(total)
}

// GenerateProsCons builds the human-readable reasons behind a verdict, at most 5 of each
func GenerateProsCons(scores models.ScoreBreakdown, insight *models.ReviewInsight, info models.ProductInfo) ([]string, []string) {
	pros := make([]string, 0, maxProsCons)
	cons := make([]string, 0, maxProsCons)

	if scores.PaletteScore > buyThreshold {
		pros = append(pros, "Matches your capsule palette")
	} else {
		cons = append(cons, "May not fit your color scheme")
	}

	if insight != nil {
		if insight.ReviewSentiment > buyThreshold {
			pros = append(pros, "Positive reviews from customers")
		} else {
			cons = append(cons, "Mixed customer reviews")
		}

		switch fitSignal(insight) {
		case models.FitRunsSmall:
			cons = append(cons, "Runs small - consider sizing up")
		case models.FitRunsLarge:
			cons = append(cons, "Runs large - consider sizing down")
		}

		if len(insight.CommonComplaints) > 0 {
			cons = append(cons, "Common complaints: "+strings.Join(insight.CommonComplaints, ", "))
		}
	}

	if info.Price != nil {
		price := *info.Price
		if price > 0 && price < 50 {
			pros = append(pros, "Affordable at "+utils.FormatUSD(price))
		} else if price > 150 {
			cons = append(cons, "Investment piece at "+utils.FormatUSD(price))
		}
	}

	if scores.CostPerWear != nil {
		if *scores.CostPerWear < 5 {
			pros = append(pros, "Great cost-per-wear value")
		} else if *scores.CostPerWear > 20 {
			cons = append(cons, "High cost-per-wear - may not get enough use")
		}
	}

	brand := strings.TrimSpace(info.BrandName())
	switch {
	case utils.IsPremiumBrand(brand):
		pros = append(pros, brand+" is known for quality basics")
	case brand != "" && !strings.EqualFold(brand, models.UnknownBrand):
		pros = append(pros, "From "+brand)
	default:
		cons = append(cons, "Unknown brand - quality is hard to judge")
	}

	return capList(pros), capList(cons)
}

func fitSignal(insight *models.ReviewInsight) string {
	if insight.FitSignal != "" {
		return strings.ToLower(insight.FitSignal)
	}
	return strings.ToLower(insight.Fit)
}

func capList(list []string) []string {
	if len(list) > maxProsCons {
		return list[:maxProsCons]
	}
	return list
}
