package recommend

import (
	"venturelink/pkg/startups"
)

// Confidence bands derived from the final score.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// RecommendationReason explains one factor's contribution to a match.
type RecommendationReason struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
}

// InvestorView is the denormalized investor + user payload returned with a
// recommendation.
type InvestorView struct {
	ID              int64                   `json:"id"`
	UserUUID        string                  `json:"user_uuid"`
	Name            string                  `json:"name"`
	Email           string                  `json:"email"`
	Company         string                  `json:"company,omitempty"`
	FirmName        string                  `json:"firm_name"`
	Bio             string                  `json:"bio,omitempty"`
	Website         string                  `json:"website,omitempty"`
	Location        string                  `json:"location,omitempty"`
	LinkedinURL     string                  `json:"linkedin_url,omitempty"`
	TwitterURL      string                  `json:"twitter_url,omitempty"`
	InvestmentFocus []startups.Industry     `json:"investment_focus,omitempty"`
	PreferredStages []startups.FundingStage `json:"preferred_stages,omitempty"`
}

// InvestorRecommendation is a single scored and explained match.
type InvestorRecommendation struct {
	Investor        InvestorView           `json:"investor"`
	Score           float64                `json:"score"`
	Confidence      string                 `json:"confidence"`
	Reasons         []RecommendationReason `json:"reasons"`
	MatchPercentage int                    `json:"match_percentage"`
}

// RecommendationResponse is the full ranked result for one founder.
type RecommendationResponse struct {
	Recommendations            []InvestorRecommendation `json:"recommendations"`
	TotalInvestorsAnalyzed     int                      `json:"total_investors_analyzed"`
	StartupProfileCompleteness float64                  `json:"startup_profile_completeness"`
	GeneratedAt                string                   `json:"generated_at"`
	AlgorithmVersion           string                   `json:"algorithm_version"`
}

// Weights holds the five factor weights. They sum to 1.0 and never change at
// runtime; clients read them through the explain endpoint.
type Weights struct {
	IndustryMatch       float64 `json:"industry_match"`
	StageMatch          float64 `json:"stage_match"`
	LocationProximity   float64 `json:"location_proximity"`
	FundingAmount       float64 `json:"funding_amount"`
	ProfileCompleteness float64 `json:"profile_completeness"`
}

// DefaultWeights returns the production scoring weights.
func DefaultWeights() Weights {
	return Weights{
		IndustryMatch:       0.40,
		StageMatch:          0.30,
		LocationProximity:   0.15,
		FundingAmount:       0.10,
		ProfileCompleteness: 0.05,
	}
}
