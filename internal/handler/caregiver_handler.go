package handler

import (
	"net/http"

	"guardian-portal-go/internal/model"
	"guardian-portal-go/internal/service"
	"guardian-portal-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// CaregiverHandler handles caregiver account API requests.
type CaregiverHandler struct {
	caregiverService service.CaregiverService
}

// NewCaregiverHandler creates a new CaregiverHandler.
func NewCaregiverHandler(caregiverService service.CaregiverService) *CaregiverHandler {
	return &CaregiverHandler{caregiverService: caregiverService}
}

// RegisterRequest is the request body for caregiver registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name"`
}

// Register handles caregiver account creation.
func (h *CaregiverHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid request payload", "data": nil})
		return
	}

	caregiver, err := h.caregiverService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		log.Error("Register: failed to create caregiver", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": err.Error(), "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": caregiver})
}

// LoginRequest is the request body for caregiver login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a caregiver and issues tokens.
func (h *CaregiverHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid request payload", "data": nil})
		return
	}

	accessToken, refreshToken, err := h.caregiverService.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "message": "invalid credentials", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}})
}

// GetProfile returns the authenticated caregiver.
func (h *CaregiverHandler) GetProfile(c *gin.Context) {
	caregiver := c.MustGet("caregiver").(*model.Caregiver)
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": caregiver})
}

// UpdateToneRequest is the request body for tone guidance updates.
type UpdateToneRequest struct {
	ToneGuidance string `json:"toneGuidance"`
}

// UpdateTone sets the caregiver's tone guidance.
func (h *CaregiverHandler) UpdateTone(c *gin.Context) {
	var req UpdateToneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid request payload", "data": nil})
		return
	}

	caregiver := c.MustGet("caregiver").(*model.Caregiver)
	updated, err := h.caregiverService.UpdateToneGuidance(c.Request.Context(), caregiver.ID, req.ToneGuidance)
	if err != nil {
		log.Error("UpdateTone: failed to update tone guidance", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "failed to update tone guidance", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": updated})
}
