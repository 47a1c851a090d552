package utils

import (
	"regexp"
	"strings"

	"capsule-os/models"
)

const (
	maxStyleInputTokens = 5
	maxStyleDescriptors = 10
)

// DefaultStyleDescriptors is returned when the caller gives no style input at all
var DefaultStyleDescriptors = []string{"versatile", "classic", "easy"}

var styleSeparators = regexp.MustCompile(`[,;]+`)

// vibeExpansions maps a coarse vibe word to the descriptors it stands for
var vibeExpansions = map[string][]string{
	"relaxed":      {"relaxed", "comfortable", "easy", "unfussy", "lived-in"},
	"minimal":      {"minimal", "clean", "simple", "understated", "quiet luxury"},
	"french":       {"effortless", "classic", "neutral", "timeless", "understated", "quality basics"},
	"elevated":     {"elevated", "polished", "refined", "intentional", "put-together"},
	"sexy":         {"sexy", "fitted", "confident", "bold", "statement"},
	"classic":      {"classic", "timeless", "traditional", "wardrobe staples", "versatile"},
	"effortless":   {"effortless", "easy", "relaxed", "unfussy", "natural"},
	"cozy":         {"cozy", "soft", "comfortable", "layered", "warm"},
	"edgy":         {"edgy", "bold", "black", "leather", "contrast", "statement"},
	"romantic":     {"romantic", "soft", "feminine", "flowing", "delicate"},
	"sporty":       {"sporty", "active", "clean lines", "comfortable", "functional"},
	"bohemian":     {"bohemian", "flowing", "natural", "layered", "relaxed", "earthy"},
	"professional": {"professional", "polished", "tailored", "classic", "refined"},
	"casual":       {"casual", "relaxed", "everyday", "comfortable", "easy"},
	"neutral":      {"neutral", "earth tones", "beige", "cream", "black", "versatile"},
	"bold":         {"bold", "statement", "color", "confident", "eye-catching"},
	"quiet":        {"quiet luxury", "understated", "minimal", "quality", "refined"},
	"coastal":      {"relaxed", "light", "linen", "neutral", "easy", "breathable"},
	"streetwear":   {"streetwear", "casual", "sneakers", "oversized", "urban"},
	"preppy":       {"preppy", "classic", "tailored", "polished", "traditional"},
}

// RefineStyleWords expands free-text vibe words ("relaxed, minimal, classic")
// into a deduplicated descriptor list of at most 10 entries.
// Unknown words are kept verbatim. Empty input yields DefaultStyleDescriptors.
func RefineStyleWords(threeWords string) []string {
	normalized := strings.ToLower(styleSeparators.ReplaceAllString(threeWords, " "))
	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		return append([]string(nil), DefaultStyleDescriptors...)
	}
	if len(tokens) > maxStyleInputTokens {
		tokens = tokens[:maxStyleInputTokens]
	}

	seen := make(map[string]bool)
	descriptors := make([]string, 0, maxStyleDescriptors)
	add := func(d string) {
		if seen[d] {
			return
		}
		seen[d] = true
		descriptors = append(descriptors, d)
	}

	// A token already emitted as a descriptor is not expanded again
	for _, token := range tokens {
		if seen[token] {
			continue
		}

		if expansion, ok := vibeExpansions[token]; ok {
			for _, d := range expansion {
				add(d)
			}
			continue
		}
		add(token)
	}

	if len(descriptors) > maxStyleDescriptors {
		descriptors = descriptors[:maxStyleDescriptors]
	}
	return descriptors
}

// ResolveStyleDescriptors picks the descriptor list for a capsule request.
// Free text wins when present, explicit keywords pass through unchanged otherwise.
func ResolveStyleDescriptors(threeWords string, keywords []models.StyleKeyword) []string {
	if strings.TrimSpace(threeWords) != "" {
		return RefineStyleWords(threeWords)
	}
	if len(keywords) > 0 {
		out := make([]string, len(keywords))
		for i, k := range keywords {
			out[i] = string(k)
		}
		return out
	}
	return append([]string(nil), DefaultStyleDescriptors...)
}
