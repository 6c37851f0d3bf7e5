package handler

import (
	"main/model"
	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request")
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		utils.InternalError(c, "login failed")
		return
	}
	if user == nil {
		utils.TrackAuthAttempt("failure", "login")
		utils.Unauthorized(c, "invalid username or password")
		return
	}

	token, err := services.GenerateToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "failed to generate token")
		return
	}
	refreshToken, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "failed to generate refresh token")
		return
	}

	utils.TrackAuthAttempt("success", "login")
	utils.Success(c, gin.H{
		"token":   token,
		"refresh": refreshToken,
		"user_id": user.UserID,
	})
}
