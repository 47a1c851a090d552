package models

import "strings"

// QualityLabel is the review-derived quality tier of a product
type QualityLabel string

const (
	QualityExcellent QualityLabel = "excellent"
	QualityGood      QualityLabel = "good"
	QualityMixed     QualityLabel = "mixed"
	QualityPoor      QualityLabel = "poor"
	QualityUnknown   QualityLabel = ""
)

// ParseQualityLabel normalizes a free-form label, unknown values map to QualityUnknown
func ParseQualityLabel(s string) QualityLabel {
	switch QualityLabel(strings.ToLower(strings.TrimSpace(s))) {
	case QualityExcellent:
		return QualityExcellent
	case QualityGood:
		return QualityGood
	case QualityMixed:
		return QualityMixed
	case QualityPoor:
		return QualityPoor
	default:
		return QualityUnknown
	}
}

// Fit signals extracted from reviews
const (
	FitTrueToSize = "true to size"
	FitRunsSmall  = "runs small"
	FitRunsLarge  = "runs large"
)

// ReviewInsight is the summary a review provider returns for one product
type ReviewInsight struct {
	Fit              string       `json:"fit"`
	FitSignal        string       `json:"fit_signal"`
	Quality          QualityLabel `json:"quality"`
	Fabric           string       `json:"fabric"`
	CommonComplaints []string     `json:"common_complaints"`
	ReviewSentiment  float64      `json:"review_sentiment"`
}

// ProductReview represents a stored customer review
type ProductReview struct {
	ID     int64   `json:"id"`
	Brand  string  `json:"brand"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
	Body   string  `json:"body"`
}
