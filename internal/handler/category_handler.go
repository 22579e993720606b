package handler

import (
	"errors"
	"net/http"
	"strconv"

	"guardian-portal-go/internal/model"
	"guardian-portal-go/internal/service"
	"guardian-portal-go/pkg/log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler handles knowledge category API requests.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest is the request body for category create/update.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// Create handles category creation.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid request payload", "data": nil})
		return
	}

	caregiver := c.MustGet("caregiver").(*model.Caregiver)
	category, err := h.categoryService.Create(c.Request.Context(), caregiver.ID, req.Name, req.Description)
	if err != nil {
		log.Error("Create: failed to create category", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "failed to create category", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": category})
}

// List returns all categories in the caregiver's account.
func (h *CategoryHandler) List(c *gin.Context) {
	caregiver := c.MustGet("caregiver").(*model.Caregiver)
	categories, err := h.categoryService.List(caregiver.ID)
	if err != nil {
		log.Error("List: failed to list categories", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "failed to list categories", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": categories})
}

// Update handles category edits.
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid request payload", "data": nil})
		return
	}

	caregiver := c.MustGet("caregiver").(*model.Caregiver)
	category, err := h.categoryService.Update(c.Request.Context(), caregiver.ID, id, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "category not found", "data": nil})
			return
		}
		log.Error("Update: failed to update category", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "failed to update category", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": category})
}

// Delete removes a category and its content items.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	caregiver := c.MustGet("caregiver").(*model.Caregiver)
	if err := h.categoryService.Delete(c.Request.Context(), caregiver.ID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "category not found", "data": nil})
			return
		}
		log.Error("Delete: failed to delete category", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "failed to delete category", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}

// parseIDParam parses a numeric path parameter, writing the error response
// itself on failure.
func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "invalid id parameter", "data": nil})
		return 0, err
	}
	return uint(id), nil
}
