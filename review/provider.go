package review

import (
	"context"
	"fmt"
	"strings"

	"capsule-os/logging"
	"capsule-os/models"
	"capsule-os/repository"
)

// Provider looks up review insights for a product
type Provider interface {
	Lookup(ctx context.Context, brand, name string) (*models.ReviewInsight, error)
}

// complaintThreshold is the share of reviews that must mention a signal for it to count
const complaintThreshold = 0.1

// fitKeywords are checked in order; ties go to the earlier signal
var fitKeywords = []struct {
	signal   string
	keywords []string
}{
	{models.FitRunsSmall, []string{"small", "tight", "size down", "runs small"}},
	{models.FitRunsLarge, []string{"large", "loose", "size up", "runs large"}},
	{models.FitTrueToSize, []string{"true to size", "fits", "perfect fit"}},
}

var complaintKeywords = []struct {
	complaint string
	keywords  []string
}{
	{"pilling", []string{"pilling", "pills", "fuzzy"}},
	{"see-through", []string{"see through", "see-through", "transparent", "sheer"}},
	{"shrinks", []string{"shrinks", "shrinkage", "shrunk"}},
}

var fabricKeywords = []struct {
	fabric   string
	keywords []string
}{
	{"thin", []string{"thin", "flimsy", "lightweight"}},
	{"thick", []string{"thick", "heavy", "heavyweight"}},
}

// DefaultInsight is returned when no reviews are available
func DefaultInsight() *models.ReviewInsight {
	return &models.ReviewInsight{
		Fit:              models.FitTrueToSize,
		FitSignal:        models.FitTrueToSize,
		Quality:          models.QualityGood,
		Fabric:           "medium weight",
		CommonComplaints: []string{},
		ReviewSentiment:  0.75,
	}
}

// RuleBasedProvider extracts insights from stored reviews with keyword rules
type RuleBasedProvider struct {
	store repository.ReviewRepositoryInterface
}

// NewRuleBasedProvider creates a provider; store may be nil, in which case defaults are returned
func NewRuleBasedProvider(store repository.ReviewRepositoryInterface) *RuleBasedProvider {
	return &RuleBasedProvider{store: store}
}

// Ensure RuleBasedProvider implements Provider
var _ Provider = (*RuleBasedProvider)(nil)

// Lookup summarizes the product's reviews, falling back to DefaultInsight when there are none
func (p *RuleBasedProvider) Lookup(ctx context.Context, brand, name string) (*models.ReviewInsight, error) {
	if p.store == nil || strings.TrimSpace(brand) == "" {
		return DefaultInsight(), nil
	}

	reviews, err := p.store.ListForProduct(ctx, brand, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	if len(reviews) == 0 {
		logging.Debug().Str("brand", brand).Str("name", name).Msg("🔍 No reviews stored, using default insight")
		return DefaultInsight(), nil
	}

	return Analyze(reviews), nil
}

// Analyze builds an insight from a non-empty set of reviews
func Analyze(reviews []models.ProductReview) *models.ReviewInsight {
	texts := make([]string, len(reviews))
	for i, r := range reviews {
		texts[i] = strings.ToLower(r.Body)
	}

	fit := extractFit(texts)
	sentiment := computeSentiment(reviews)

	return &models.ReviewInsight{
		Fit:              fit,
		FitSignal:        fit,
		Quality:          qualityFromSentiment(sentiment),
		Fabric:           extractFabric(texts),
		CommonComplaints: extractComplaints(texts),
		ReviewSentiment:  sentiment,
	}
}

// extractFit returns the fit signal mentioned by the most reviews
func extractFit(texts []string) string {
	best, bestCount := models.FitTrueToSize, 0
	for _, fk := range fitKeywords {
		count := countMentions(texts, fk.keywords)
		if count > bestCount {
			best, bestCount = fk.signal, count
		}
	}
	return best
}

// extractComplaints lists complaints mentioned by more than 10% of reviews
func extractComplaints(texts []string) []string {
	complaints := []string{}
	for _, ck := range complaintKeywords {
		if float64(countMentions(texts, ck.keywords)) > float64(len(texts))*complaintThreshold {
			complaints = append(complaints, ck.complaint)
		}
	}
	return complaints
}

func extractFabric(texts []string) string {
	best, bestCount := "medium weight", 0
	for _, fk := range fabricKeywords {
		count := countMentions(texts, fk.keywords)
		if count > bestCount {
			best, bestCount = fk.fabric, count
		}
	}
	return best
}

// computeSentiment uses the mean star rating normalized to [0,1]
func computeSentiment(reviews []models.ProductReview) float64 {
	if len(reviews) == 0 {
		return 0.5
	}
	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	sentiment := sum / float64(len(reviews)) / 5
	if sentiment < 0 {
		return 0
	}
	if sentiment > 1 {
		return 1
	}
	return sentiment
}

func qualityFromSentiment(sentiment float64) models.QualityLabel {
	switch {
	case sentiment >= 0.85:
		return models.QualityExcellent
	case sentiment >= 0.7:
		return models.QualityGood
	case sentiment >= 0.5:
		return models.QualityMixed
	default:
		return models.QualityPoor
	}
}

func countMentions(texts []string, keywords []string) int {
	count := 0
	for _, text := range texts {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				count++
				break
			}
		}
	}
	return count
}
