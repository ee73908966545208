package recommend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"venturelink/pkg/response"
)

type mockRecommendationService struct {
	mock.Mock
}

func (m *mockRecommendationService) RecommendationsForFounder(ctx context.Context, founderUUID string, maxResults int, minScore float64) (RecommendationResponse, error) {
	args := m.Called(ctx, founderUUID, maxResults, minScore)
	resp, _ := args.Get(0).(RecommendationResponse)
	return resp, args.Error(1)
}

func (m *mockRecommendationService) AlgorithmVersion() string {
	args := m.Called()
	return args.String(0)
}

func (m *mockRecommendationService) ScoringWeights() Weights {
	args := m.Called()
	w, _ := args.Get(0).(Weights)
	return w
}

func setupRouter(service RecommendationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewRecommendationHandler(service)
	h.RegisterRoutes(r)
	return r
}

func TestRecommendationHandler_DefaultsApplied(t *testing.T) {
	svc := new(mockRecommendationService)
	r := setupRouter(svc)

	svc.On("RecommendationsForFounder", mock.Anything, "founder-1", 10, 30.0).
		Return(RecommendationResponse{
			Recommendations:        []InvestorRecommendation{},
			TotalInvestorsAnalyzed: 5,
			AlgorithmVersion:       AlgorithmVersion,
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/founders/founder-1/recommendations", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "recommendations generated", resp.Message)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	require.EqualValues(t, 5, data["total_investors_analyzed"])
	require.Equal(t, AlgorithmVersion, data["algorithm_version"])

	svc.AssertExpectations(t)
}

func TestRecommendationHandler_CustomParams(t *testing.T) {
	svc := new(mockRecommendationService)
	r := setupRouter(svc)

	svc.On("RecommendationsForFounder", mock.Anything, "founder-1", 25, 55.5).
		Return(RecommendationResponse{Recommendations: []InvestorRecommendation{}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/founders/founder-1/recommendations?max_results=25&min_score=55.5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestRecommendationHandler_InvalidParams(t *testing.T) {
	cases := []struct {
		name  string
		query string
		msg   string
	}{
		{"max_results too low", "?max_results=0", "max_results must be between 1 and 50"},
		{"max_results too high", "?max_results=51", "max_results must be between 1 and 50"},
		{"max_results not a number", "?max_results=ten", "max_results must be between 1 and 50"},
		{"min_score negative", "?min_score=-1", "min_score must be between 0 and 100"},
		{"min_score too high", "?min_score=100.5", "min_score must be between 0 and 100"},
		{"min_score not a number", "?min_score=high", "min_score must be between 0 and 100"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockRecommendationService)
			r := setupRouter(svc)

			req := httptest.NewRequest(http.MethodGet, "/founders/founder-1/recommendations"+tc.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp response.APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.False(t, resp.Success)
			require.Equal(t, tc.msg, resp.Message)

			svc.AssertNotCalled(t, "RecommendationsForFounder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRecommendationHandler_ServiceError(t *testing.T) {
	svc := new(mockRecommendationService)
	r := setupRouter(svc)

	svc.On("RecommendationsForFounder", mock.Anything, "founder-1", 10, 30.0).
		Return(RecommendationResponse{}, context.DeadlineExceeded)

	req := httptest.NewRequest(http.MethodGet, "/founders/founder-1/recommendations", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, "failed to generate recommendations", resp.Message)
}

func TestRecommendationHandler_Explain(t *testing.T) {
	svc := new(mockRecommendationService)
	r := setupRouter(svc)

	svc.On("AlgorithmVersion").Return(AlgorithmVersion)
	svc.On("ScoringWeights").Return(DefaultWeights())

	req := httptest.NewRequest(http.MethodGet, "/recommendations/explain", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, AlgorithmVersion, data["algorithm_version"])

	weights, ok := data["scoring_weights"].(map[string]any)
	require.True(t, ok)
	require.InDelta(t, 0.40, weights["industry_match"], 1e-9)
	require.InDelta(t, 0.05, weights["profile_completeness"], 1e-9)

	criteria, ok := data["criteria"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, criteria, "industry_match")
	require.Contains(t, criteria, "stage_match")
	require.Contains(t, criteria, "location_proximity")
	require.Contains(t, criteria, "funding_amount")
	require.Contains(t, criteria, "profile_completeness")
}
