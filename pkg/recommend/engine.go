package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"venturelink/pkg/investors"
	"venturelink/pkg/startups"
)

// AlgorithmVersion identifies the scoring algorithm in responses.
const AlgorithmVersion = "1.0"

// investorPoolLimit is the page size requested from the investor source. It
// is large enough that the result is treated as the complete candidate pool.
const investorPoolLimit = 1000

// StartupSource looks up the startup owned by a founder. Implementations
// return startups.ErrStartupNotFound when the founder has none.
type StartupSource interface {
	GetStartupByFounder(ctx context.Context, founderUUID string) (startups.Startup, error)
}

// InvestorSource lists investor profiles paired with their owning users.
type InvestorSource interface {
	ListProfilesWithUsers(ctx context.Context, skip, limit int) ([]investors.ProfileWithUser, error)
}

// RegionMatcher decides whether two lowercased free-text locations belong to
// the same geographic region. The default matcher only knows a couple of
// hand-listed regions; swap in a geocoder-backed implementation to widen it.
type RegionMatcher interface {
	Compatible(a, b string) bool
}

// Engine scores investors against a founder's startup profile. It holds no
// mutable state, so a single instance serves concurrent requests.
type Engine struct {
	startups  StartupSource
	investors InvestorSource
	regions   RegionMatcher
	weights   Weights
	version   string
	now       func() time.Time
}

func NewEngine(startupSrc StartupSource, investorSrc InvestorSource) *Engine {
	return &Engine{
		startups:  startupSrc,
		investors: investorSrc,
		regions:   NewTermRegionMatcher(),
		weights:   DefaultWeights(),
		version:   AlgorithmVersion,
		now:       time.Now,
	}
}

// AlgorithmVersion returns the engine's version string.
func (e *Engine) AlgorithmVersion() string { return e.version }

// ScoringWeights returns a copy of the engine's factor weights.
func (e *Engine) ScoringWeights() Weights { return e.weights }

// RecommendationsForFounder ranks the investor pool against the founder's
// startup. A founder without a startup gets an empty response, not an error;
// collaborator failures are propagated as-is.
func (e *Engine) RecommendationsForFounder(ctx context.Context, founderUUID string, maxResults int, minScore float64) (RecommendationResponse, error) {
	generatedAt := e.now().UTC().Format(time.RFC3339)

	startup, err := e.startups.GetStartupByFounder(ctx, founderUUID)
	if err != nil {
		if errors.Is(err, startups.ErrStartupNotFound) {
			return RecommendationResponse{
				Recommendations:  []InvestorRecommendation{},
				GeneratedAt:      generatedAt,
				AlgorithmVersion: e.version,
			}, nil
		}
		return RecommendationResponse{}, err
	}

	pool, err := e.investors.ListProfilesWithUsers(ctx, 0, investorPoolLimit)
	if err != nil {
		return RecommendationResponse{}, err
	}

	recs := make([]InvestorRecommendation, 0, len(pool))
	for _, pair := range pool {
		score, reasons := e.ScoreInvestor(startup, pair.Profile)
		if score >= minScore {
			recs = append(recs, e.buildRecommendation(pair, score, reasons))
		}
	}

	// Stable sort keeps input order for equal scores, so repeated calls over
	// an unchanged pool return identical rankings.
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	if len(recs) > maxResults {
		recs = recs[:maxResults]
	}

	return RecommendationResponse{
		Recommendations:            recs,
		TotalInvestorsAnalyzed:     len(pool),
		StartupProfileCompleteness: profileCompleteness(startup),
		GeneratedAt:                generatedAt,
		AlgorithmVersion:           e.version,
	}, nil
}

// ScoreInvestor computes the composite 0-100 score for one startup/investor
// pair together with the ordered reasons list. Each factor produces its
// subscore and optional reason in one step so explanations cannot drift from
// the score they describe.
func (e *Engine) ScoreInvestor(s startups.Startup, inv investors.InvestorProfile) (float64, []RecommendationReason) {
	reasons := make([]RecommendationReason, 0, 4)
	total := 0.0

	industryScore, industryReason := e.scoreIndustryMatch(s, inv)
	total += industryScore * e.weights.IndustryMatch
	if industryReason != nil {
		reasons = append(reasons, *industryReason)
	}

	stageScore, stageReason := e.scoreStageMatch(s, inv)
	total += stageScore * e.weights.StageMatch
	if stageReason != nil {
		reasons = append(reasons, *stageReason)
	}

	locationScore, locationReason := e.scoreLocationMatch(s, inv)
	total += locationScore * e.weights.LocationProximity
	if locationReason != nil {
		reasons = append(reasons, *locationReason)
	}

	fundingScore, fundingReason := e.scoreFundingCompatibility(s)
	total += fundingScore * e.weights.FundingAmount
	if fundingReason != nil {
		reasons = append(reasons, *fundingReason)
	}

	total += profileCompleteness(s) * e.weights.ProfileCompleteness

	return total * 100, reasons
}

// relatedIndustries gives partial industry credit. Hand-maintained and
// asymmetric; industries not listed never earn related credit.
var relatedIndustries = map[startups.Industry][]startups.Industry{
	startups.IndustryTechnology: {
		startups.IndustryFintech,
		startups.IndustryHealthTech,
		startups.IndustryEdTech,
	},
	startups.IndustryFintech: {
		startups.IndustryTechnology,
		startups.IndustryFinance,
	},
	startups.IndustryHealthTech: {
		startups.IndustryTechnology,
		startups.IndustryHealthcare,
		startups.IndustryBiotechnology,
	},
	startups.IndustryBiotechnology: {
		startups.IndustryHealthcare,
		startups.IndustryHealthTech,
	},
}

func (e *Engine) scoreIndustryMatch(s startups.Startup, inv investors.InvestorProfile) (float64, *RecommendationReason) {
	if len(inv.InvestmentFocus) == 0 {
		return 0.0, nil
	}

	for _, ind := range inv.InvestmentFocus {
		if ind == s.Industry {
			return 1.0, &RecommendationReason{
				Type:        "industry_match",
				Description: fmt.Sprintf("Perfect industry match: %s", s.Industry),
				Weight:      e.weights.IndustryMatch,
			}
		}
	}

	related := relatedIndustries[s.Industry]
	matches := make([]string, 0, len(related))
	for _, ind := range inv.InvestmentFocus {
		for _, rel := range related {
			if ind == rel {
				matches = append(matches, string(ind))
				break
			}
		}
	}
	if len(matches) > 0 {
		return 0.7, &RecommendationReason{
			Type:        "industry_match",
			Description: "Related industry match: " + strings.Join(matches, ", "),
			Weight:      e.weights.IndustryMatch * 0.7,
		}
	}

	return 0.0, nil
}

// stageAdjacencyOrder is the canonical linear order used for adjacent-stage
// credit. Stages outside it (IPO, M&A, Other) never count as adjacent.
var stageAdjacencyOrder = []startups.FundingStage{
	startups.StageIdea,
	startups.StageMVP,
	startups.StagePreSeed,
	startups.StageSeed,
	startups.StageSeriesA,
	startups.StageSeriesB,
	startups.StageSeriesC,
}

func stagePosition(stage startups.FundingStage) int {
	for i, s := range stageAdjacencyOrder {
		if s == stage {
			return i
		}
	}
	return -1
}

func (e *Engine) scoreStageMatch(s startups.Startup, inv investors.InvestorProfile) (float64, *RecommendationReason) {
	if len(inv.PreferredStages) == 0 {
		return 0.5, &RecommendationReason{
			Type:        "stage_match",
			Description: "Investor hasn't specified stage preferences",
			Weight:      e.weights.StageMatch * 0.5,
		}
	}

	for _, st := range inv.PreferredStages {
		if st == s.FundingStage {
			return 1.0, &RecommendationReason{
				Type:        "stage_match",
				Description: fmt.Sprintf("Perfect stage match: %s", s.FundingStage),
				Weight:      e.weights.StageMatch,
			}
		}
	}

	if pos := stagePosition(s.FundingStage); pos >= 0 {
		for _, st := range inv.PreferredStages {
			if invPos := stagePosition(st); invPos >= 0 && abs(pos-invPos) == 1 {
				return 0.6, &RecommendationReason{
					Type:        "stage_match",
					Description: "Compatible with nearby funding stages",
					Weight:      e.weights.StageMatch * 0.6,
				}
			}
		}
	}

	return 0.0, nil
}

func (e *Engine) scoreLocationMatch(s startups.Startup, inv investors.InvestorProfile) (float64, *RecommendationReason) {
	if s.Location == "" || inv.Location == "" {
		return 0.3, nil // missing data is neutral, not a mismatch
	}

	a := strings.ToLower(s.Location)
	b := strings.ToLower(inv.Location)

	if a == b {
		return 1.0, &RecommendationReason{
			Type:        "location_match",
			Description: fmt.Sprintf("Same location: %s", s.Location),
			Weight:      e.weights.LocationProximity,
		}
	}

	if e.regions.Compatible(a, b) {
		return 0.7, &RecommendationReason{
			Type:        "location_match",
			Description: "Compatible geographic region",
			Weight:      e.weights.LocationProximity * 0.7,
		}
	}

	return 0.2, nil // distant locations keep a small floor
}

type amountRange struct {
	min, max float64
}

// stageFundingRanges holds typical raise sizes per stage. Stages without an
// entry score the neutral default.
var stageFundingRanges = map[startups.FundingStage]amountRange{
	startups.StagePreSeed: {50_000, 500_000},
	startups.StageSeed:    {250_000, 2_000_000},
	startups.StageSeriesA: {1_000_000, 15_000_000},
	startups.StageSeriesB: {5_000_000, 50_000_000},
}

func (e *Engine) scoreFundingCompatibility(s startups.Startup) (float64, *RecommendationReason) {
	if s.FundingGoal == nil {
		return 0.5, nil
	}

	if r, ok := stageFundingRanges[s.FundingStage]; ok {
		if goal := *s.FundingGoal; goal >= r.min && goal <= r.max {
			return 1.0, &RecommendationReason{
				Type:        "funding_amount",
				Description: fmt.Sprintf("Funding goal ($%s) fits typical range", groupThousands(goal)),
				Weight:      e.weights.FundingAmount,
			}
		}
	}

	return 0.6, nil
}

// profileCompleteness weighs the five required fields at 80% and the three
// optional fields at 20%.
func profileCompleteness(s startups.Startup) float64 {
	required := []bool{
		s.Name != "",
		s.Description != "",
		s.Industry != "",
		s.FundingStage != "",
		s.Location != "",
	}
	optional := []bool{
		s.FundingGoal != nil,
		s.BusinessModel != "",
		s.TargetMarket != "",
	}

	requiredScore := float64(countTrue(required)) / float64(len(required))
	optionalScore := float64(countTrue(optional)) / float64(len(optional))

	return requiredScore*0.8 + optionalScore*0.2
}

func confidenceFor(score float64) string {
	switch {
	case score >= 80:
		return ConfidenceHigh
	case score >= 60:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func (e *Engine) buildRecommendation(pair investors.ProfileWithUser, score float64, reasons []RecommendationReason) InvestorRecommendation {
	p := pair.Profile
	return InvestorRecommendation{
		Investor: InvestorView{
			ID:              p.ID,
			UserUUID:        p.UserUUID,
			Name:            pair.Name,
			Email:           pair.Email,
			Company:         p.FirmName,
			FirmName:        p.FirmName,
			Bio:             p.Bio,
			Website:         p.Website,
			Location:        p.Location,
			LinkedinURL:     p.LinkedinURL,
			TwitterURL:      p.TwitterURL,
			InvestmentFocus: p.InvestmentFocus,
			PreferredStages: p.PreferredStages,
		},
		Score:           math.Round(score*100) / 100,
		Confidence:      confidenceFor(score),
		Reasons:         reasons,
		MatchPercentage: int(score), // truncated, not rounded
	}
}

type termRegionMatcher struct {
	groups [][]string
}

// NewTermRegionMatcher returns the default region matcher. It knows the Bay
// Area and New York term groups; both locations must mention the same group.
func NewTermRegionMatcher() RegionMatcher {
	return &termRegionMatcher{groups: [][]string{
		{"san francisco", "sf", "bay area", "california", "ca"},
		{"new york", "ny", "nyc"},
	}}
}

func (m *termRegionMatcher) Compatible(a, b string) bool {
	for _, terms := range m.groups {
		if containsAny(a, terms) && containsAny(b, terms) {
			return true
		}
	}
	return false
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func countTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// groupThousands renders a dollar amount with comma separators ("500,000").
func groupThousands(v float64) string {
	s := strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
