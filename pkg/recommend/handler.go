package recommend

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"venturelink/pkg/response"
)

// RecommendationService is the engine surface the HTTP layer depends on.
type RecommendationService interface {
	RecommendationsForFounder(ctx context.Context, founderUUID string, maxResults int, minScore float64) (RecommendationResponse, error)
	AlgorithmVersion() string
	ScoringWeights() Weights
}

type RecommendationHandler struct {
	service RecommendationService
}

func NewRecommendationHandler(service RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

func (h *RecommendationHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/founders/:uuid/recommendations", h.getRecommendations)
	router.GET("/recommendations/explain", h.explainAlgorithm)
}

const (
	defaultMaxResults = 10
	defaultMinScore   = 30.0
)

// @Summary      Get investor recommendations for a founder
// @Description  Analyzes the founder's startup profile and returns a ranked,
// @Description  explained list of matching investors. A founder without a
// @Description  startup profile gets an empty result, not an error.
// @Tags         recommendations
// @Produce      json
// @Param        uuid        path   string  true   "Founder UUID"
// @Param        max_results query  int     false  "Maximum recommendations (1-50)" default(10)
// @Param        min_score   query  number  false  "Minimum score threshold (0-100)" default(30)
// @Success      200  {object}  response.APIResponse{data=RecommendationResponse} "Recommendations generated"
// @Failure      400  {object}  response.APIResponse "Invalid parameters"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /founders/{uuid}/recommendations [get]
func (h *RecommendationHandler) getRecommendations(c *gin.Context) {
	founderUUID := c.Param("uuid")

	maxResults, err := strconv.Atoi(c.DefaultQuery("max_results", strconv.Itoa(defaultMaxResults)))
	if err != nil || maxResults < 1 || maxResults > 50 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "max_results must be between 1 and 50", nil)
		return
	}

	minScore, err := strconv.ParseFloat(c.DefaultQuery("min_score", strconv.FormatFloat(defaultMinScore, 'f', -1, 64)), 64)
	if err != nil || minScore < 0 || minScore > 100 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "min_score must be between 0 and 100", nil)
		return
	}

	result, err := h.service.RecommendationsForFounder(c.Request.Context(), founderUUID, maxResults, minScore)
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, "failed to generate recommendations", nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "recommendations generated", result)
}

// @Summary      Explain the recommendation algorithm
// @Description  Returns the scoring weights and criteria used to rank
// @Description  investors, for client-side explanation UIs.
// @Tags         recommendations
// @Produce      json
// @Success      200  {object}  response.APIResponse "Algorithm explanation"
// @Router       /recommendations/explain [get]
func (h *RecommendationHandler) explainAlgorithm(c *gin.Context) {
	weights := h.service.ScoringWeights()

	explanation := gin.H{
		"algorithm_version": h.service.AlgorithmVersion(),
		"scoring_weights":   weights,
		"criteria": gin.H{
			"industry_match": gin.H{
				"weight":      weights.IndustryMatch,
				"description": "How well the investor's industry focus aligns with the startup's industry",
				"scoring": gin.H{
					"perfect_match": "100% - Investor explicitly focuses on your industry",
					"related_match": "70% - Investor focuses on related industries",
					"no_match":      "0% - No industry alignment",
				},
			},
			"stage_match": gin.H{
				"weight":      weights.StageMatch,
				"description": "How well the investor's preferred funding stages match the startup's stage",
				"scoring": gin.H{
					"perfect_match":  "100% - Investor explicitly invests in your stage",
					"adjacent_match": "60% - Investor invests in nearby stages",
					"no_preference":  "50% - Investor hasn't specified stage preferences",
					"no_match":       "0% - No stage alignment",
				},
			},
			"location_proximity": gin.H{
				"weight":      weights.LocationProximity,
				"description": "Geographic proximity between investor and startup",
				"scoring": gin.H{
					"same_location":     "100% - Same city/region",
					"compatible_region": "70% - Compatible geographic region",
					"different_region":  "20% - Different regions (small penalty)",
				},
			},
			"funding_amount": gin.H{
				"weight":      weights.FundingAmount,
				"description": "How well the funding goal fits typical investment ranges for the stage",
				"scoring": gin.H{
					"typical_range": "100% - Funding goal fits typical range for your stage",
					"outside_range": "60% - Funding goal outside typical ranges",
				},
			},
			"profile_completeness": gin.H{
				"weight":      weights.ProfileCompleteness,
				"description": "Bonus points for a complete startup profile",
				"scoring": gin.H{
					"calculation": "80% weight for required fields + 20% weight for optional fields",
				},
			},
		},
	}

	response.SendAPIResponse(c, http.StatusOK, true, "algorithm explanation", explanation)
}
