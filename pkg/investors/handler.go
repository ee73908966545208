package investors

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"venturelink/pkg/response"
	"venturelink/pkg/startups"
)

type InvestorHandler struct {
	service InvestorService
}

func NewInvestorHandler(service InvestorService) *InvestorHandler {
	return &InvestorHandler{service: service}
}

func (h *InvestorHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/investors", h.createProfile)
	router.PUT("/investors/:id", h.updateProfile)
	router.DELETE("/investors/:id", h.deleteProfile)
	router.GET("/investors", h.listProfiles)
	router.GET("/investors/:id", h.getProfileByID)
	router.GET("/investors/user/:uuid", h.getProfileByUser)
}

type profileRequest struct {
	FirmName        string   `json:"firm_name" binding:"required"`
	Bio             string   `json:"bio"`
	Website         string   `json:"website"`
	Location        string   `json:"location"`
	LinkedinURL     string   `json:"linkedin_url"`
	TwitterURL      string   `json:"twitter_url"`
	InvestmentFocus []string `json:"investment_focus"`
	PreferredStages []string `json:"preferred_stages"`
}

type createProfileRequest struct {
	profileRequest
	UserUUID string `json:"user_uuid" binding:"required"`
}

func (req profileRequest) toProfile() InvestorProfile {
	p := InvestorProfile{
		FirmName:    req.FirmName,
		Bio:         req.Bio,
		Website:     req.Website,
		Location:    req.Location,
		LinkedinURL: req.LinkedinURL,
		TwitterURL:  req.TwitterURL,
	}
	for _, v := range req.InvestmentFocus {
		p.InvestmentFocus = append(p.InvestmentFocus, startups.Industry(v))
	}
	for _, v := range req.PreferredStages {
		p.PreferredStages = append(p.PreferredStages, startups.FundingStage(v))
	}
	return p
}

// @Summary      Create an investor profile
// @Tags         investors
// @Accept       json
// @Produce      json
// @Param        request body createProfileRequest true "Investor profile creation request"
// @Success      201  {object}  response.APIResponse{data=InvestorProfile} "Profile created"
// @Failure      400  {object}  response.APIResponse "Invalid request payload"
// @Failure      404  {object}  response.APIResponse "User not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /investors [post]
func (h *InvestorHandler) createProfile(c *gin.Context) {
	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	input := req.toProfile()
	input.UserUUID = req.UserUUID

	profile, err := h.service.CreateProfile(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "user not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusCreated, true, "investor profile created", profile)
}

// @Summary      Update an investor profile
// @Tags         investors
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "Profile ID"
// @Param        request body profileRequest true "Investor profile update request"
// @Success      200  {object}  response.APIResponse{data=InvestorProfile} "Profile updated"
// @Failure      400  {object}  response.APIResponse "Invalid request"
// @Failure      404  {object}  response.APIResponse "Profile not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /investors/{id} [put]
func (h *InvestorHandler) updateProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid profile id", nil)
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid request payload", nil)
		return
	}

	input := req.toProfile()
	input.ID = id

	profile, err := h.service.UpdateProfile(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "investor profile not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusBadRequest, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "investor profile updated", profile)
}

// @Summary      Delete an investor profile
// @Tags         investors
// @Produce      json
// @Param        id   path      int  true  "Profile ID"
// @Success      200  {object}  response.APIResponse "Profile deleted"
// @Failure      400  {object}  response.APIResponse "Invalid profile ID"
// @Failure      404  {object}  response.APIResponse "Profile not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /investors/{id} [delete]
func (h *InvestorHandler) deleteProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid profile id", nil)
		return
	}

	if err := h.service.DeleteProfile(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "investor profile not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "investor profile deleted", nil)
}

// @Summary      Get investor profile by ID
// @Tags         investors
// @Produce      json
// @Param        id   path      int  true  "Profile ID"
// @Success      200  {object}  response.APIResponse{data=InvestorProfile} "Profile retrieved"
// @Failure      400  {object}  response.APIResponse "Invalid profile ID"
// @Failure      404  {object}  response.APIResponse "Profile not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /investors/{id} [get]
func (h *InvestorHandler) getProfileByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.SendAPIResponse(c, http.StatusBadRequest, false, "invalid profile id", nil)
		return
	}

	profile, err := h.service.GetProfileByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "investor profile not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "investor profile fetched", profile)
}

// @Summary      Get investor profile by user UUID
// @Tags         investors
// @Produce      json
// @Param        uuid   path      string  true  "User UUID"
// @Success      200  {object}  response.APIResponse{data=InvestorProfile} "Profile retrieved"
// @Failure      404  {object}  response.APIResponse "Profile not found"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /investors/user/{uuid} [get]
func (h *InvestorHandler) getProfileByUser(c *gin.Context) {
	userUUID := c.Param("uuid")

	profile, err := h.service.GetProfileByUser(c.Request.Context(), userUUID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			response.SendAPIResponse(c, http.StatusNotFound, false, "investor profile not found", nil)
			return
		}
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	response.SendAPIResponse(c, http.StatusOK, true, "investor profile fetched", profile)
}

// @Summary      List investor profiles
// @Tags         investors
// @Produce      json
// @Param        page   query     int  false  "Page number" default(1)
// @Param        limit  query     int  false  "Items per page" default(10)
// @Success      200  {object}  response.APIResponse{data=InvestorProfileList} "Profiles retrieved"
// @Failure      500  {object}  response.APIResponse "Internal server error"
// @Router       /investors [get]
func (h *InvestorHandler) listProfiles(c *gin.Context) {
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

	items, total, err := h.service.ListProfiles(c.Request.Context(), page, limit)
	if err != nil {
		response.SendAPIResponse(c, http.StatusInternalServerError, false, err.Error(), nil)
		return
	}

	data := InvestorProfileList{Items: items, Total: total, Page: page, Limit: limit}
	response.SendAPIResponse(c, http.StatusOK, true, "investor profiles listed", data)
}
