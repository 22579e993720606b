package handler

import (
	"net/http"

	"guardian-portal-go/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles token lifecycle requests.
type AuthHandler struct {
	caregiverService service.CaregiverService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(caregiverService service.CaregiverService) *AuthHandler {
	return &AuthHandler{caregiverService: caregiverService}
}

// RefreshTokenRequest is the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshToken exchanges a valid refresh token for a new token pair.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid request payload", "data": nil})
		return
	}

	accessToken, refreshToken, err := h.caregiverService.RefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "message": "invalid refresh token", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}})
}
