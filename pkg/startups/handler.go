package startups

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"venturelink/pkg/response"
)

type StartupHandler struct {
	service StartupService
}

func NewStartupHandler(service StartupService) *StartupHandler {
	return &StartupHandler{service: service}
}

func (h *StartupHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/startups", h.createStartup)
	router.PUT("/startups/:id", h.updateStartup)
	router.DELETE("/startups/:id", h.deleteStartup)
	router.GET("/startups", h.listStartups)
	router.GET("/startups/:id", h.getStartupByID)
	router.GET("/startups/founder/:uuid", h.getStartupByFounder)
}

type startupRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Industry      string   `json:"industry" binding:"required"`
	FundingStage  string   `json:"funding_stage" binding:"required"`
	Location      string   `json:"location" binding:"required"`
	FundingGoal   *float64 `json:"funding_goal"`
	BusinessModel string   `json:"business_model"`
	TargetMarket  string   `json:"target_market"`
	Website       string   `json:"website"`
	PitchDeckURL  string   `json:"pitch_deck_url"`
	IsPublished   bool     `json:"is_published"`
}

type createStartupRequest struct {
	startupRequest
	FounderUUID string `json:"founder_uuid" binding:"required"`
}

func (req startupRequest) toStartup() Startup {
	return Startup{
		Name:          req.Name,
		Description:   req.Description,
		Industry:      Industry(req.Industry),
		FundingStage:  FundingStage(req.FundingStage),
		Location:      req.Location,
		FundingGoal:   req.FundingGoal,
		BusinessModel: req.BusinessModel,
		TargetMarket:  req.TargetMarket,
		Website:       req.Website,
		PitchDeckURL:  req.PitchDeckURL,
		IsPublished:   req.IsPublished,
	}
}

// @Summary      Create a startup profile
// @Description  Creates the founder's startup profile used for investor matching
// @Tags         startups
// @Accept       json
// @Produce      json
// @Param        request body createStartupRequest true "Startup creation request"
// @Success      201  {object}  response.APIResponse{data=Startup} "Startup created"
// @Failure      400  {object}  response.APIResponse "Invalid request payload"
// @Failure      404  {object}  response.APIResponse "Founder not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /startups [post]
func (h *StartupHandler) createStartup(c *gin.Context) {
	var req createStartupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	input := req.toStartup()
	input.FounderUUID = req.FounderUUID

	startup, err := h.service.CreateStartup(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, ErrFounderNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "founder not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusCreated, true, "startup created", startup)
}

// @Summary      Update a startup profile
// @Tags         startups
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "Startup ID"
// @Param        request body startupRequest true "Startup update request"
// @Success      200  {object}  response.APIResponse{data=Startup} "Startup updated"
// @Failure      400  {object}  response.APIResponse "Invalid request"
// @Failure      404  {object}  response.APIResponse "Startup not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /startups/{id} [put]
func (h *StartupHandler) updateStartup(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid startup id", nil)
		return
	}

	var req startupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	input := req.toStartup()
	input.ID = id

	startup, err := h.service.UpdateStartup(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, ErrStartupNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "startup not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "startup updated", startup)
}

// @Summary      Delete a startup profile
// @Tags         startups
// @Produce      json
// @Param        id   path      int  true  "Startup ID"
// @Success      200  {object}  response.APIResponse "Startup deleted"
// @Failure      400  {object}  response.APIResponse "Invalid startup ID"
// @Failure      404  {object}  response.APIResponse "Startup not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /startups/{id} [delete]
func (h *StartupHandler) deleteStartup(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid startup id", nil)
		return
	}

	if err := h.service.DeleteStartup(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrStartupNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "startup not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "startup deleted", nil)
}

// @Summary      Get startup by ID
// @Tags         startups
// @Produce      json
// @Param        id   path      int  true  "Startup ID"
// @Success      200  {object}  response.APIResponse{data=Startup} "Startup retrieved"
// @Failure      400  {object}  response.APIResponse "Invalid startup ID"
// @Failure      404  {object}  response.APIResponse "Startup not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /startups/{id} [get]
func (h *StartupHandler) getStartupByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid startup id", nil)
		return
	}

	startup, err := h.service.GetStartupByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrStartupNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "startup not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "startup fetched", startup)
}

// @Summary      Get a founder's startup
// @Description  Returns the single startup profile owned by the founder
// @Tags         startups
// @Produce      json
// @Param        uuid   path      string  true  "Founder UUID"
// @Success      200  {object}  response.APIResponse{data=Startup} "Startup retrieved"
// @Failure      404  {object}  response.APIResponse "Startup not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /startups/founder/{uuid} [get]
func (h *StartupHandler) getStartupByFounder(c *gin.Context) {
	founderUUID := c.Param("uuid")

	startup, err := h.service.GetStartupByFounder(c.Request.Context(), founderUUID)
	if err != nil {
		if errors.Is(err, ErrStartupNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "startup not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "startup fetched", startup)
}

// @Summary      List startups
// @Description  Paginated list with optional industry and funding stage filters
// @Tags         startups
// @Produce      json
// @Param        page   query     int  false  "Page number" default(1)
// @Param        limit  query     int  false  "Items per page" default(10)
// @Param        industry query  string false "Industry filter"
// @Param        funding_stage query string false "Funding stage filter"
// @Success      200  {object}  response.APIResponse{data=StartupList} "Startups retrieved"
// @Failure      400  {object}  response.APIResponse "Invalid filter"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /startups [get]
func (h *StartupHandler) listStartups(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	filter := ListFilter{
		Industry:     Industry(c.Query("industry")),
		FundingStage: FundingStage(c.Query("funding_stage")),
	}

	items, total, err := h.service.ListStartups(c.Request.Context(), filter, page, limit)
	if err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}

	data := StartupList{Items: items, Total: total, Page: page, Limit: limit}
	response.SendAPIResponse(c, http.StatusOK, true, "startups listed", data)
}
