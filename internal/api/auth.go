package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cookbookhq/backend/internal/model"
	"github.com/cookbookhq/backend/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "firstname, lastname, email and password are required"})
		return
	}

	token, user, err := h.auth.Register(c.Request.Context(), req.Firstname, req.Lastname, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAuthResponse(token, user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "email and password are required"})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAuthResponse(token, user))
}

func toAuthResponse(token string, user *model.User) AuthResponse {
	return AuthResponse{
		Token: token,
		User: UserInfo{
			ID:        user.ID.Hex(),
			Firstname: user.Firstname,
			Lastname:  user.Lastname,
		},
	}
}
