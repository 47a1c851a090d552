package scoring

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"capsule-os/metrics"
	"capsule-os/models"
	"capsule-os/repository"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(s string) *string     { return &s }

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func defaultInsight() *models.ReviewInsight {
	return &models.ReviewInsight{
		Fit:              models.FitTrueToSize,
		FitSignal:        models.FitTrueToSize,
		Quality:          models.QualityGood,
		Fabric:           "medium weight",
		CommonComplaints: []string{},
		ReviewSentiment:  0.75,
	}
}

func TestScorePrice(t *testing.T) {
	tests := []struct {
		name  string
		price *float64
		want  float64
	}{
		{"absent", nil, 0.5},
		{"zero", floatPtr(0), 0.5},
		{"negative", floatPtr(-10), 0.5},
		{"cheap", floatPtr(28), 1 - 28.0/500},
		{"ceiling", floatPtr(500), 0},
		{"above ceiling", floatPtr(1200), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScorePrice(tt.price); !approx(got, tt.want) {
				t.Errorf("Expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestScoreQualityAndCostPerWear(t *testing.T) {
	tests := []struct {
		label   models.QualityLabel
		quality float64
		cpw     float64
	}{
		{models.QualityExcellent, 1.0, 90.0 / 45},
		{models.QualityGood, 0.75, 90.0 / 30},
		{models.QualityMixed, 0.5, 90.0 / 21},
		{models.QualityPoor, 0.25, 90.0 / 15},
		{models.QualityUnknown, 0.5, 90.0 / 30},
	}
	for _, tt := range tests {
		if got := ScoreQuality(tt.label); !approx(got, tt.quality) {
			t.Errorf("ScoreQuality(%q): expected %f, got %f", tt.label, tt.quality, got)
		}
		cpw := EstimateCostPerWear(floatPtr(90), tt.label)
		if cpw == nil || !approx(*cpw, tt.cpw) {
			t.Errorf("EstimateCostPerWear(90, %q): expected %f, got %v", tt.label, tt.cpw, cpw)
		}
	}

	if EstimateCostPerWear(nil, models.QualityGood) != nil {
		t.Error("Expected nil cost per wear without a price")
	}
	for _, price := range []float64{0, -10} {
		if cpw := EstimateCostPerWear(floatPtr(price), models.QualityGood); cpw != nil {
			t.Errorf("Expected nil cost per wear for price %v, got %v", price, *cpw)
		}
	}
}

func TestZeroPriceHasNoCostPerWearPro(t *testing.T) {
	brand := "Everlane"
	info := models.ProductInfo{Brand: &brand, Price: floatPtr(0)}
	insight := &models.ReviewInsight{Fit: "true to size", Quality: models.QualityGood, ReviewSentiment: 0.9}

	scores := ScoreItem(info, insight, nil)
	if scores.CostPerWear != nil {
		t.Fatalf("Expected no cost per wear for a zero price, got %v", *scores.CostPerWear)
	}
	if !approx(scores.PriceScore, 0.5) {
		t.Errorf("Expected neutral price score, got %f", scores.PriceScore)
	}

	pros, _ := GenerateProsCons(scores, insight, info)
	for _, p := range pros {
		if strings.Contains(p, "cost-per-wear") {
			t.Errorf("Expected no cost-per-wear pro, got %v", pros)
		}
	}
}

func TestScoreReviewClamps(t *testing.T) {
	if got := ScoreReview(nil); got != 0.5 {
		t.Errorf("Expected 0.5 without insight, got %f", got)
	}
	if got := ScoreReview(&models.ReviewInsight{ReviewSentiment: 1.4}); got != 1 {
		t.Errorf("Expected sentiment clamped to 1, got %f", got)
	}
	if got := ScoreReview(&models.ReviewInsight{ReviewSentiment: -0.2}); got != 0 {
		t.Errorf("Expected sentiment clamped to 0, got %f", got)
	}
}

func TestScorePalette(t *testing.T) {
	if got := ScorePalette(nil, []string{"black"}); got != 0.7 {
		t.Errorf("Expected default 0.7 without colors, got %f", got)
	}
	if got := ScorePalette([]string{"Black", "red"}, []string{"black", "white"}); !approx(got, 0.5) {
		t.Errorf("Expected 0.5, got %f", got)
	}
	if got := ScorePalette([]string{"navy"}, []string{"Navy"}); got != 1 {
		t.Errorf("Expected case-insensitive match, got %f", got)
	}
}

func TestScoreItemEverlaneTee(t *testing.T) {
	info := models.ProductInfo{Brand: strPtr("Everlane"), Price: floatPtr(28), Description: "basic tee"}
	scores := ScoreItem(info, defaultInsight(), nil)

	if !approx(scores.PriceScore, 0.944) {
		t.Errorf("Expected price score 0.944, got %f", scores.PriceScore)
	}
	if !approx(scores.TotalScore, (0.944+0.75+0.75)/3) {
		t.Errorf("Expected total score %f, got %f", (0.944+0.75+0.75)/3, scores.TotalScore)
	}
	if scores.CostPerWear == nil || !approx(*scores.CostPerWear, 28.0/30) {
		t.Errorf("Expected cost per wear %f, got %v", 28.0/30, scores.CostPerWear)
	}
	if DetermineVerdict(scores.TotalScore) != models.VerdictBuy {
		t.Errorf("Expected buy verdict, got %s", DetermineVerdict(scores.TotalScore))
	}
}

func TestDetermineVerdictBoundaries(t *testing.T) {
	tests := []struct {
		total float64
		want  models.Verdict
	}{
		{0.71, models.VerdictBuy},
		{0.70, models.VerdictWait},
		{0.41, models.VerdictWait},
		{0.40, models.VerdictSkip},
		{0, models.VerdictSkip},
	}
	for _, tt := range tests {
		if got := DetermineVerdict(tt.total); got != tt.want {
			t.Errorf("DetermineVerdict(%.2f): expected %s, got %s", tt.total, tt.want, got)
		}
	}

	if got := Confidence(-0.3); got != 0.3 {
		t.Errorf("Expected confidence 0.3, got %f", got)
	}
}

func TestGenerateProsConsEverlane(t *testing.T) {
	info := models.ProductInfo{Brand: strPtr("Everlane"), Price: floatPtr(28)}
	scores := ScoreItem(info, defaultInsight(), nil)
	pros, cons := GenerateProsCons(scores, defaultInsight(), info)

	if len(pros) != 4 {
		t.Errorf("Expected 4 pros, got %d: %v", len(pros), pros)
	}
	if len(cons) != 1 || cons[0] != "May not fit your color scheme" {
		t.Errorf("Expected only the palette con, got %v", cons)
	}
}

func TestGenerateProsConsNegativeSignals(t *testing.T) {
	insight := &models.ReviewInsight{
		FitSignal:        models.FitRunsSmall,
		Quality:          models.QualityPoor,
		CommonComplaints: []string{"pilling", "shrinks"},
		ReviewSentiment:  0.3,
	}
	info := models.ProductInfo{Price: floatPtr(400)}
	scores := ScoreItem(info, insight, nil)
	pros, cons := GenerateProsCons(scores, insight, info)

	if len(pros) != 0 {
		t.Errorf("Expected no pros, got %v", pros)
	}
	if len(cons) != 5 {
		t.Fatalf("Expected cons capped at 5, got %d: %v", len(cons), cons)
	}
	if !strings.Contains(cons[2], "Runs small") {
		t.Errorf("Expected fit con third, got %q", cons[2])
	}
}

func TestGenerateProsConsUnknownBrand(t *testing.T) {
	info := models.ProductInfo{Brand: strPtr(models.UnknownBrand)}
	_, cons := GenerateProsCons(ScoreItem(info, nil, nil), nil, info)

	found := false
	for _, c := range cons {
		if strings.HasPrefix(c, "Unknown brand") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected unknown brand con, got %v", cons)
	}
}

func TestScoreCapsule(t *testing.T) {
	items := []models.CapsuleItem{
		{Category: "Tee", PaletteColors: []string{"White"}},
		{Category: "Jeans", PaletteColors: []string{"denim"}},
		{Category: "Sandals", PaletteColors: []string{"tan"}},
		{Category: "Trench Coat", PaletteColors: []string{"camel"}},
	}
	palette := []string{"white", "camel"}
	closet := []models.ClosetItem{{Category: "jeans"}, {Category: "Boots"}}

	scores := ScoreCapsule(items, palette, closet)
	if !approx(scores.PaletteScore, 0.5) {
		t.Errorf("Expected palette score 0.5, got %f", scores.PaletteScore)
	}
	if !approx(scores.VersatilityScore, 0.75) {
		t.Errorf("Expected versatility score 0.75, got %f", scores.VersatilityScore)
	}
	if !approx(scores.OverlapScore, 0.75) {
		t.Errorf("Expected overlap score 0.75, got %f", scores.OverlapScore)
	}
	if !approx(scores.TotalScore, (0.5+0.75+0.75)/3) {
		t.Errorf("Expected mean total, got %f", scores.TotalScore)
	}
}

func TestScoreCapsuleOverlap(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		closet     []string
		want       float64
	}{
		{"fully owned", []string{"Tee", "Jeans"}, []string{"tee", "jeans"}, 0},
		{"mostly owned", []string{"Tee", "Jeans", "Boots", "Blazer"}, []string{"tee", "JEANS", "boots"}, 0.25},
		{"half owned", []string{"Tee", "Jeans"}, []string{"Tee"}, 0.5},
		{"none owned", []string{"Tee", "Jeans"}, []string{"Scarf"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]models.CapsuleItem, 0, len(tt.categories))
			for _, c := range tt.categories {
				items = append(items, models.CapsuleItem{Category: c})
			}
			closet := make([]models.ClosetItem, 0, len(tt.closet))
			for _, c := range tt.closet {
				closet = append(closet, models.ClosetItem{Category: c})
			}

			got := ScoreCapsule(items, nil, closet).OverlapScore
			if !approx(got, tt.want) {
				t.Errorf("Expected overlap %v, got %v", tt.want, got)
			}
			if tt.want < 0.5 && got >= 0.5 {
				t.Errorf("Expected overlap below 0.5 for a capsule the closet mostly covers, got %v", got)
			}
		})
	}
}

func TestScoreCapsuleEmpty(t *testing.T) {
	scores := ScoreCapsule(nil, []string{"black"}, []models.ClosetItem{{Category: "Tee"}})
	if scores.PaletteScore != 0 || scores.VersatilityScore != 0 {
		t.Errorf("Expected zero palette and versatility, got %+v", scores)
	}
	if scores.OverlapScore != 1 {
		t.Errorf("Expected overlap 1.0 for empty capsule, got %f", scores.OverlapScore)
	}

	noCloset := ScoreCapsule([]models.CapsuleItem{{Category: "Tee"}}, nil, nil)
	if noCloset.OverlapScore != 1 {
		t.Errorf("Expected overlap 1.0 without closet, got %f", noCloset.OverlapScore)
	}
}

type fakeCatalog struct {
	products []models.CatalogProduct
	err      error
	calls    int
	last     repository.ProductFilter
}

func (f *fakeCatalog) QueryProducts(_ context.Context, filter repository.ProductFilter) ([]models.CatalogProduct, error) {
	f.calls++
	f.last = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeCatalog) CountProducts(_ context.Context, _ repository.ProductFilter) (int, error) {
	return len(f.products), f.err
}

func TestAlternativesFinderQueriesPriceBand(t *testing.T) {
	catalog := &fakeCatalog{products: []models.CatalogProduct{
		{ID: 7, Brand: "Uniqlo", Name: "Supima Tee", Price: 19.9},
	}}
	finder := NewAlternativesFinder(catalog, DefaultBreakerConfig())

	alts := finder.Find(context.Background(), models.ProductInfo{Brand: strPtr("Everlane"), Price: floatPtr(28)})
	if len(alts) != 1 || alts[0].Brand != "Uniqlo" {
		t.Fatalf("Expected the catalog alternative, got %+v", alts)
	}
	if !approx(*catalog.last.MinPrice, 14) || !approx(*catalog.last.MaxPrice, 42) {
		t.Errorf("Expected band [14, 42], got [%f, %f]", *catalog.last.MinPrice, *catalog.last.MaxPrice)
	}
	if catalog.last.ExcludeBrand != "Everlane" || !catalog.last.OrderByPrice || catalog.last.Limit != 3 {
		t.Errorf("Unexpected filter: %+v", catalog.last)
	}
}

func TestAlternativesFinderDefaultPrice(t *testing.T) {
	catalog := &fakeCatalog{}
	finder := NewAlternativesFinder(catalog, DefaultBreakerConfig())
	finder.Find(context.Background(), models.ProductInfo{Brand: strPtr(models.UnknownBrand)})

	if !approx(*catalog.last.MinPrice, 25) || !approx(*catalog.last.MaxPrice, 75) {
		t.Errorf("Expected band [25, 75] for default price, got [%f, %f]", *catalog.last.MinPrice, *catalog.last.MaxPrice)
	}
	if catalog.last.ExcludeBrand != "" {
		t.Errorf("Expected no brand exclusion for unknown brand, got %q", catalog.last.ExcludeBrand)
	}
}

func TestAlternativesFinderFallback(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("connection refused")}
	cfg := DefaultBreakerConfig()
	cfg.FailureThreshold = 2
	finder := NewAlternativesFinder(catalog, cfg)
	before := testutil.ToFloat64(metrics.AlternativesFallbacks)

	for i := 0; i < 4; i++ {
		alts := finder.Find(context.Background(), models.ProductInfo{Price: floatPtr(100)})
		if len(alts) != 1 {
			t.Fatalf("Expected one fallback alternative, got %d", len(alts))
		}
		if alts[0].Brand != "Alternative Brand" || !approx(alts[0].Price, 80) || alts[0].Reason != "Similar style, better value" {
			t.Errorf("Unexpected fallback: %+v", alts[0])
		}
	}

	if catalog.calls != 2 {
		t.Errorf("Expected breaker to stop calls after 2 failures, got %d calls", catalog.calls)
	}
	if got := testutil.ToFloat64(metrics.AlternativesFallbacks) - before; got != 4 {
		t.Errorf("Expected 4 fallbacks counted, got %v", got)
	}
}
