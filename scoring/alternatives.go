package scoring

import (
	"context"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"capsule-os/logging"
	"capsule-os/metrics"
	"capsule-os/models"
	"capsule-os/repository"
)

const (
	defaultAlternativePrice = 50.0
	maxAlternatives         = 3
	alternativeReason       = "Similar price point, different brand"
	fallbackReason          = "Similar style, better value"
)

// BreakerConfig tunes the circuit breaker around catalog lookups
type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// DefaultBreakerConfig trips after 5 consecutive failures and probes again after 30s
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// AlternativesFinder suggests cheaper-or-similar catalog items from other brands
type AlternativesFinder struct {
	catalog repository.CatalogRepositoryInterface
	breaker *gobreaker.CircuitBreaker[[]models.CatalogProduct]
}

// NewAlternativesFinder creates a finder with the given breaker settings
func NewAlternativesFinder(catalog repository.CatalogRepositoryInterface, cfg BreakerConfig) *AlternativesFinder {
	settings := gobreaker.Settings{
		Name:        "catalog-alternatives",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("🔄 Circuit breaker state changed")
		},
	}

	return &AlternativesFinder{
		catalog: catalog,
		breaker: gobreaker.NewCircuitBreaker[[]models.CatalogProduct](settings),
	}
}

// Find returns up to 3 catalog items within ±50% of the product's price, excluding its brand.
// Store failures never surface: a single static suggestion is returned instead.
func (f *AlternativesFinder) Find(ctx context.Context, info models.ProductInfo) []models.Alternative {
	price := defaultAlternativePrice
	if info.Price != nil && *info.Price > 0 {
		price = *info.Price
	}

	minPrice := price * 0.5
	maxPrice := price * 1.5
	filter := repository.ProductFilter{
		MinPrice:     &minPrice,
		MaxPrice:     &maxPrice,
		OrderByPrice: true,
		Limit:        maxAlternatives,
	}
	if brand := strings.TrimSpace(info.BrandName()); brand != "" && !strings.EqualFold(brand, models.UnknownBrand) {
		filter.ExcludeBrand = brand
	}

	products, err := f.breaker.Execute(func() ([]models.CatalogProduct, error) {
		return f.catalog.QueryProducts(ctx, filter)
	})
	if err != nil {
		logging.Warn().Err(err).Float64("price", price).Msg("⚠️ Alternatives lookup failed, using fallback suggestion")
		metrics.AlternativesFallbacks.Inc()
		return []models.Alternative{fallbackAlternative(price)}
	}

	alternatives := make([]models.Alternative, 0, len(products))
	for _, p := range products {
		alternatives = append(alternatives, models.Alternative{
			ID:       p.ID,
			Brand:    p.Brand,
			Name:     p.Name,
			Price:    p.Price,
			Link:     p.Link,
			ImageURL: p.ImageURL,
			Reason:   alternativeReason,
		})
	}
	return alternatives
}

func fallbackAlternative(price float64) models.Alternative {
	return models.Alternative{
		Brand:  "Alternative Brand",
		Name:   "Similar Item",
		Price:  price * 0.8,
		Reason: fallbackReason,
	}
}
