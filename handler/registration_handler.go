package handler

import (
	"main/model"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users *usecase.UserService
}

func NewAuthHandler(users *usecase.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request")
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if err.Error() == "username already exists" {
			utils.TrackAuthAttempt("failure", "register")
			utils.Conflict(c, "username already exists")
			return
		}
		utils.TrackAuthAttempt("failure", "register")
		utils.InternalError(c, "failed to create user")
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

	utils.TrackAuthAttempt("success", "register")
	utils.Created(c, gin.H{
		"message": "user registered successfully",
		"token":   token,
		"refresh": refreshToken,
	})
}
