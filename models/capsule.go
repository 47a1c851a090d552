package models

// Quarter is a seasonal period key
type Quarter string

const (
	QuarterQ1 Quarter = "Q1"
	QuarterQ2 Quarter = "Q2"
	QuarterQ3 Quarter = "Q3"
	QuarterQ4 Quarter = "Q4"
)

// Climate is the caller's climate label
type Climate string

const (
	ClimateCold     Climate = "cold"
	ClimateModerate Climate = "moderate"
	ClimateWarm     Climate = "warm"
	ClimateHot      Climate = "hot"
)

// StyleKeyword is one of the explicit style keywords a caller may pick
type StyleKeyword string

const (
	StyleEffortless StyleKeyword = "effortless"
	StyleElevated   StyleKeyword = "elevated"
	StyleSexy       StyleKeyword = "sexy"
	StyleMinimal    StyleKeyword = "minimal"
	StyleClassic    StyleKeyword = "classic"
)

// Template is the palette and slot list for one period
type Template struct {
	Period  Quarter  `json:"period"`
	Palette []string `json:"palette"`
	Items   []Slot   `json:"items"`
}

// ItemOption is a single recommended purchase (value or quality variant)
type ItemOption struct {
	Brand    string  `json:"brand"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Link     string  `json:"link,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`
	Reason   string  `json:"reason"`
}

// CapsuleItem is one slot of a generated capsule
type CapsuleItem struct {
	Category      string     `json:"category"`
	ItemName      string     `json:"item_name"`
	BestValue     ItemOption `json:"best_value"`
	BestQuality   ItemOption `json:"best_quality"`
	PaletteColors []string   `json:"palette_colors"`
	Placeholder   bool       `json:"placeholder,omitempty"`
}

// CoherenceScores are the aggregate metrics of a finished capsule
type CoherenceScores struct {
	PaletteScore     float64 `json:"palette_score"`
	VersatilityScore float64 `json:"versatility_score"`
	OverlapScore     float64 `json:"overlap_score"`
	TotalScore       float64 `json:"total_score"`
}

// CapsuleResult is the response for POST /api/generate-capsule
type CapsuleResult struct {
	Quarter         Quarter          `json:"quarter"`
	Palette         []string         `json:"palette"`
	OutfitFormulas  []string         `json:"outfit_formulas"`
	Items           []CapsuleItem    `json:"items"`
	DoNotBuy        []string         `json:"do_not_buy"`
	StyleWords      []string         `json:"style_words,omitempty"`
	CoherenceScores *CoherenceScores `json:"coherence_scores,omitempty"`
}

// CapsuleRequest represents the request body for POST /api/generate-capsule
// Example: {"quarter": "Q1", "climate": "moderate", "style_three_words": "relaxed, minimal, classic", "budget": 800, "brand_preferences": ["Everlane"]}
// Closet may be inlined or loaded from the closet store via user_id
type CapsuleRequest struct {
	Quarter          Quarter        `json:"quarter" validate:"required,oneof=Q1 Q2 Q3 Q4"`
	Climate          Climate        `json:"climate" validate:"required,oneof=cold moderate warm hot"`
	StyleKeywords    []StyleKeyword `json:"style_keywords,omitempty" validate:"max=3,dive,oneof=effortless elevated sexy minimal classic"`
	StyleThreeWords  string         `json:"style_three_words,omitempty" validate:"max=200"`
	Budget           float64        `json:"budget" validate:"gt=0"`
	BrandPreferences []string       `json:"brand_preferences,omitempty" validate:"max=10,dive,max=100"`
	UserID           string         `json:"user_id,omitempty" validate:"max=128"`
	Closet           []ClosetItem   `json:"closet,omitempty" validate:"max=500,dive"`
}
