package models

// Verdict is the purchase decision for a single item
type Verdict string

const (
	VerdictBuy  Verdict = "buy"
	VerdictWait Verdict = "wait"
	VerdictSkip Verdict = "skip"
)

// UnknownBrand is the brand given to products known only by their link
const UnknownBrand = "Unknown"

// AnalyzeRequest represents the request body for POST /api/analyze-item
// Example: {"price": 28, "brand": "Everlane", "product_description": "basic tee"}
// Either product_link or product_description should be set
type AnalyzeRequest struct {
	ProductLink        string       `json:"product_link,omitempty" validate:"omitempty,url,max=2048"`
	ProductName        string       `json:"product_name,omitempty" validate:"max=200"`
	ProductDescription string       `json:"product_description,omitempty" validate:"max=2000"`
	Price              *float64     `json:"price,omitempty"`
	Brand              *string      `json:"brand,omitempty" validate:"omitempty,max=100"`
	Category           string       `json:"category,omitempty" validate:"max=100"`
	Colors             []string     `json:"colors,omitempty" validate:"max=20,dive,max=50"`
	Palette            []string     `json:"palette,omitempty" validate:"max=12,dive,max=50"`
	UserID             string       `json:"user_id,omitempty" validate:"max=128"`
	Closet             []ClosetItem `json:"closet,omitempty" validate:"max=500,dive"`
}

// ProductInfo is the normalized candidate product under analysis
// Price and Brand are nil when the caller did not supply them
type ProductInfo struct {
	Link        string
	Name        string
	Description string
	Brand       *string
	Price       *float64
	Category    string
	Colors      []string
}

// BrandName returns the brand or an empty string
func (p ProductInfo) BrandName() string {
	if p.Brand == nil {
		return ""
	}
	return *p.Brand
}

// ScoreBreakdown is the per-factor purchase score of one item
type ScoreBreakdown struct {
	PriceScore   float64  `json:"price_score"`
	ReviewScore  float64  `json:"review_score"`
	QualityScore float64  `json:"quality_score"`
	PaletteScore float64  `json:"palette_score"`
	TotalScore   float64  `json:"total_score"`
	CostPerWear  *float64 `json:"cost_per_wear,omitempty"`
}

// Alternative is a substitute suggestion for the analyzed item
type Alternative struct {
	ID       int64   `json:"id,omitempty"`
	Brand    string  `json:"brand"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Link     string  `json:"link,omitempty"`
	ImageURL string  `json:"image_url,omitempty"`
	Reason   string  `json:"reason"`
}

// AnalysisResult is the response for POST /api/analyze-item
type AnalysisResult struct {
	Verdict              Verdict         `json:"verdict"`
	Confidence           float64         `json:"confidence"`
	Pros                 []string        `json:"pros"`
	Cons                 []string        `json:"cons"`
	ClosetOverlapWarning *string         `json:"closet_overlap_warning"`
	Alternatives         []Alternative   `json:"alternatives"`
	ReviewInsights       *ReviewInsight  `json:"review_insights"`
	CostPerWearEstimate  *float64        `json:"cost_per_wear_estimate"`
	Scores               *ScoreBreakdown `json:"scores,omitempty"`
}
