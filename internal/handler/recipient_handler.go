package handler

import (
	"net/http"

	"guardian-portal-go/internal/model"
	"guardian-portal-go/internal/service"
	"guardian-portal-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// RecipientHandler handles recipient profile API requests.
type RecipientHandler struct {
	recipientService service.RecipientService
}

// NewRecipientHandler creates a new RecipientHandler.
func NewRecipientHandler(recipientService service.RecipientService) *RecipientHandler {
	return &RecipientHandler{recipientService: recipientService}
}

// RecipientRequest is the request body for recipient creation.
type RecipientRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Name        string `json:"name"`
}

// Create registers a new recipient phone number.
func (h *RecipientHandler) Create(c *gin.Context) {
	var req RecipientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid request payload", "data": nil})
		return
	}

	caregiver := c.MustGet("caregiver").(*model.Caregiver)
	recipient, err := h.recipientService.Create(caregiver.ID, req.PhoneNumber, req.Name)
	if err != nil {
		log.Error("Create: failed to create recipient", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "failed to create recipient", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": recipient})
}

// List returns all recipients in the caregiver's account.
func (h *RecipientHandler) List(c *gin.Context) {
	caregiver := c.MustGet("caregiver").(*model.Caregiver)
	recipients, err := h.recipientService.List(caregiver.ID)
	if err != nil {
		log.Error("List: failed to list recipients", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "failed to list recipients", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": recipients})
}

// Delete removes a recipient profile.
func (h *RecipientHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	caregiver := c.MustGet("caregiver").(*model.Caregiver)
	if err := h.recipientService.Delete(caregiver.ID, id); err != nil {
		log.Error("Delete: failed to delete recipient", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "failed to delete recipient", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}
