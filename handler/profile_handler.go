package handler

import (
	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	service *usecase.ProfileService
}

func NewProfileHandler(service *usecase.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), userID.(string), usecase.ProfilePatch{
		AutoSort:         req.AutoSort,
		ArchiveAfterDays: req.ArchiveAfterDays,
		Settings:         req.Settings,
	})
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, profile)
}

// SubmitDiagnosis replaces the user's quiz answers and returns the re-derived
// personality type.
func (h *ProfileHandler) SubmitDiagnosis(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req dto.DiagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	profile, err := h.service.SubmitDiagnosis(c.Request.Context(), userID.(string), req.Answers)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, dto.DiagnosisResponse{
		MainType: profile.MainType,
		SubType:  profile.SubType,
	})
}
