package service

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"capsule-os/logging"
	"capsule-os/metrics"
	"capsule-os/models"
	"capsule-os/repository"
	"capsule-os/review"
	"capsule-os/scoring"
	"capsule-os/utils"
)

// AnalysisServiceInterface defines the contract for single-item purchase analysis
type AnalysisServiceInterface interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalysisResult, error)
}

// AnalysisService scores one product and decides buy, wait or skip
type AnalysisService struct {
	reviews      review.Provider
	alternatives *scoring.AlternativesFinder
	closets      repository.ClosetRepositoryInterface
}

// NewAnalysisService creates a new AnalysisService; reviews and closets may be nil
func NewAnalysisService(reviews review.Provider, alternatives *scoring.AlternativesFinder, closets repository.ClosetRepositoryInterface) *AnalysisService {
	if reviews == nil {
		reviews = review.NewRuleBasedProvider(nil)
	}
	return &AnalysisService{
		reviews:      reviews,
		alternatives: alternatives,
		closets:      closets,
	}
}

// Ensure AnalysisService implements AnalysisServiceInterface
var _ AnalysisServiceInterface = (*AnalysisService)(nil)

// Analyze runs review lookup, scoring, verdict, closet overlap and alternatives for one product
func (s *AnalysisService) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalysisResult, error) {
	info := NormalizeProductInfo(req)

	logging.Info().
		Str("brand", info.BrandName()).
		Str("name", info.Name).
		Bool("from_link", info.Link != "").
		Msg("🔍 Analyzing item")

	insight, err := s.reviews.Lookup(ctx, info.BrandName(), info.Name)
	if err != nil || insight == nil {
		logging.Warn().Err(err).Str("brand", info.BrandName()).Msg("⚠️  Review lookup failed, using default insight")
		insight = review.DefaultInsight()
	}

	scores := scoring.ScoreItem(info, insight, req.Palette)
	verdict := scoring.DetermineVerdict(scores.TotalScore)
	pros, cons := scoring.GenerateProsCons(scores, insight, info)

	closet, err := s.resolveCloset(ctx, req)
	if err != nil {
		return nil, err
	}

	var alternatives []models.Alternative
	if s.alternatives != nil {
		alternatives = s.alternatives.Find(ctx, info)
	}
	if alternatives == nil {
		alternatives = []models.Alternative{}
	}

	metrics.Verdicts.WithLabelValues(string(verdict)).Inc()
	logging.Info().
		Str("verdict", string(verdict)).
		Float64("total_score", scores.TotalScore).
		Int("alternatives", len(alternatives)).
		Msg("✅ Item analyzed")

	return &models.AnalysisResult{
		Verdict:              verdict,
		Confidence:           scoring.Confidence(scores.TotalScore),
		Pros:                 pros,
		Cons:                 cons,
		ClosetOverlapWarning: ClosetOverlapWarning(info, closet),
		Alternatives:         alternatives,
		ReviewInsights:       insight,
		CostPerWearEstimate:  scores.CostPerWear,
		Scores:               &scores,
	}, nil
}

func (s *AnalysisService) resolveCloset(ctx context.Context, req models.AnalyzeRequest) ([]models.ClosetItem, error) {
	if len(req.Closet) > 0 || req.UserID == "" || s.closets == nil {
		return req.Closet, nil
	}
	closet, err := s.closets.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load closet: %w", err)
	}
	return closet, nil
}

// NormalizeProductInfo builds the candidate product from the request.
// A link yields a stub (brand "Unknown", name from the last path segment, no price)
// which explicit request fields then override. No page is fetched.
func NormalizeProductInfo(req models.AnalyzeRequest) models.ProductInfo {
	info := models.ProductInfo{
		Description: strings.TrimSpace(req.ProductDescription),
		Category:    strings.TrimSpace(req.Category),
		Colors:      req.Colors,
	}

	if link := strings.TrimSpace(req.ProductLink); link != "" {
		unknown := models.UnknownBrand
		info.Link = link
		info.Brand = &unknown
		info.Name = nameFromLink(link)
	}

	if name := strings.TrimSpace(req.ProductName); name != "" {
		info.Name = name
	}
	if req.Brand != nil {
		if brand := strings.TrimSpace(*req.Brand); brand != "" {
			info.Brand = &brand
		}
	}
	if req.Price != nil {
		price := *req.Price
		info.Price = &price
	}
	return info
}

// nameFromLink turns ".../products/organic-cotton-tee?variant=2" into "Organic Cotton Tee"
func nameFromLink(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	segment := path.Base(strings.TrimRight(u.Path, "/"))
	if segment == "." || segment == "/" || segment == "" {
		return ""
	}
	segment = strings.TrimSuffix(segment, path.Ext(segment))
	segment = strings.NewReplacer("-", " ", "_", " ", "+", " ").Replace(segment)
	return utils.CapitalizeWords(segment)
}

// ClosetOverlapWarning reports how many closet items share the product's category.
// The category is the explicit one or inferred from name and description; nil when nothing overlaps.
func ClosetOverlapWarning(info models.ProductInfo, closet []models.ClosetItem) *string {
	if len(closet) == 0 {
		return nil
	}

	var categories []string
	if info.Category != "" {
		categories = []string{info.Category}
	} else {
		categories = utils.InferCategories(info.Name + " " + info.Description)
	}
	if len(categories) == 0 {
		return nil
	}

	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[strings.ToLower(c)] = true
	}

	count := 0
	label := ""
	for _, item := range closet {
		category := strings.TrimSpace(item.Category)
		if wanted[strings.ToLower(category)] {
			count++
			if label == "" {
				label = utils.CapitalizeWords(category)
			}
		}
	}
	if count == 0 {
		return nil
	}

	warning := fmt.Sprintf("You already own %d item(s) in %s", count, label)
	return &warning
}
