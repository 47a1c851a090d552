package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"capsule-os/cache"
	"capsule-os/capsule"
	"capsule-os/logging"
	"capsule-os/metrics"
	"capsule-os/models"
	"capsule-os/repository"
	"capsule-os/utils"
)

const capsuleCacheMethod = "generate_capsule"

// CapsuleServiceInterface defines the contract for capsule generation
type CapsuleServiceInterface interface {
	Generate(ctx context.Context, req models.CapsuleRequest) (*models.CapsuleResult, error)
}

// CapsuleService resolves style words and closet, then generates capsules through a read-through cache
type CapsuleService struct {
	generator *capsule.Generator
	closets   repository.ClosetRepositoryInterface
	cache     cache.Cache
	ttl       time.Duration
}

// NewCapsuleService creates a new CapsuleService; closets may be nil and c defaults to cache.Noop
func NewCapsuleService(generator *capsule.Generator, closets repository.ClosetRepositoryInterface, c cache.Cache, ttl time.Duration) *CapsuleService {
	if c == nil {
		c = cache.Noop{}
	}
	return &CapsuleService{
		generator: generator,
		closets:   closets,
		cache:     c,
		ttl:       ttl,
	}
}

// Ensure CapsuleService implements CapsuleServiceInterface
var _ CapsuleServiceInterface = (*CapsuleService)(nil)

// Generate returns a cached capsule for an identical request or generates a new one
func (s *CapsuleService) Generate(ctx context.Context, req models.CapsuleRequest) (*models.CapsuleResult, error) {
	closet, err := s.resolveCloset(ctx, req)
	if err != nil {
		return nil, err
	}

	genReq := capsule.Request{
		Quarter:          req.Quarter,
		Climate:          req.Climate,
		StyleWords:       utils.ResolveStyleDescriptors(req.StyleThreeWords, req.StyleKeywords),
		Budget:           req.Budget,
		BrandPreferences: req.BrandPreferences,
		Closet:           closet,
	}

	key := cache.GenerateKey(capsuleCacheMethod, cacheParams(genReq))
	if data, ok := s.cache.Get(ctx, key); ok {
		var cached models.CapsuleResult
		if err := json.Unmarshal(data, &cached); err == nil {
			metrics.CacheHits.Inc()
			logging.Debug().Str("key", key).Msg("✓ Capsule served from cache")
			return &cached, nil
		}
		logging.Warn().Str("key", key).Msg("⚠️  Discarding unreadable cache entry")
	}
	metrics.CacheMisses.Inc()

	result, err := s.generator.Generate(ctx, genReq)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		s.cache.Set(ctx, key, data, s.ttl)
	} else {
		logging.Warn().Err(err).Msg("⚠️  Failed to encode capsule for cache")
	}
	return result, nil
}

// resolveCloset prefers an inlined closet and otherwise loads the stored one for user_id
func (s *CapsuleService) resolveCloset(ctx context.Context, req models.CapsuleRequest) ([]models.ClosetItem, error) {
	if len(req.Closet) > 0 || req.UserID == "" || s.closets == nil {
		return req.Closet, nil
	}
	closet, err := s.closets.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load closet: %w", err)
	}
	return closet, nil
}

// cacheParams is the normalized request mapping the cache key is derived from
func cacheParams(req capsule.Request) map[string]interface{} {
	brands := make([]string, len(req.BrandPreferences))
	for i, b := range req.BrandPreferences {
		brands[i] = strings.ToLower(strings.TrimSpace(b))
	}
	closet := make([]string, len(req.Closet))
	for i, c := range req.Closet {
		closet[i] = strings.ToLower(strings.TrimSpace(c.Category))
	}
	return map[string]interface{}{
		"quarter":     req.Quarter,
		"climate":     req.Climate,
		"style_words": req.StyleWords,
		"budget":      req.Budget,
		"brands":      brands,
		"closet":      closet,
	}
}
