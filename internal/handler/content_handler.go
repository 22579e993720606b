package handler

import (
	"errors"
	"net/http"

	"guardian-portal-go/internal/model"
	"guardian-portal-go/internal/service"
	"guardian-portal-go/pkg/log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ContentHandler handles content item API requests.
type ContentHandler struct {
	contentService service.ContentService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// ContentRequest is the request body for content item create/update.
type ContentRequest struct {
	CategoryID  uint     `json:"categoryId"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	MediaURL    string   `json:"mediaUrl"`
	MediaType   string   `json:"mediaType"`
}

func (r ContentRequest) toInput() service.ContentInput {
	return service.ContentInput{
		Title:       r.Title,
		Description: r.Description,
		Keywords:    r.Keywords,
		MediaURL:    r.MediaURL,
		MediaType:   r.MediaType,
	}
}

// Create handles content item creation.
func (h *ContentHandler) Create(c *gin.Context) {
	var req ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid request payload", "data": nil})
		return
	}
	if req.CategoryID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "categoryId is required", "data": nil})
		return
	}

	caregiver := c.MustGet("caregiver").(*model.Caregiver)
	item, err := h.contentService.Create(c.Request.Context(), caregiver.ID, req.CategoryID, req.toInput())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "category not found", "data": nil})
			return
		}
		log.Error("Create: failed to create content item", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "failed to create content item", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": item})
}

// ListByCategory returns the content items of one category.
func (h *ContentHandler) ListByCategory(c *gin.Context) {
	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	caregiver := c.MustGet("caregiver").(*model.Caregiver)
	items, err := h.contentService.ListByCategory(caregiver.ID, categoryID)
	if err != nil {
		log.Error("ListByCategory: failed to list content items", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "failed to list content items", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": items})
}

// Update handles content item edits.
func (h *ContentHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}
	var req ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid request payload", "data": nil})
		return
	}

	caregiver := c.MustGet("caregiver").(*model.Caregiver)
	item, err := h.contentService.Update(c.Request.Context(), caregiver.ID, id, req.toInput())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "content item not found", "data": nil})
			return
		}
		log.Error("Update: failed to update content item", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "failed to update content item", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": item})
}

// Delete removes a content item.
func (h *ContentHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	caregiver := c.MustGet("caregiver").(*model.Caregiver)
	if err := h.contentService.Delete(c.Request.Context(), caregiver.ID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "content item not found", "data": nil})
			return
		}
		log.Error("Delete: failed to delete content item", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "failed to delete content item", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}
