package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"guardian-portal-go/internal/config"
	"guardian-portal-go/internal/model"
	"guardian-portal-go/pkg/log"
	"guardian-portal-go/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// mediaStore is the subset of the object store the handler uses.
type mediaStore interface {
	Put(ctx context.Context, bucketName, objectName string, reader io.Reader, size int64, contentType string) error
	PresignURL(bucketName, objectName string, expiry time.Duration) (string, error)
}

// minioStore adapts pkg/storage to mediaStore.
type minioStore struct{}

func (minioStore) Put(ctx context.Context, bucketName, objectName string, reader io.Reader, size int64, contentType string) error {
	return storage.PutObject(ctx, bucketName, objectName, reader, size, contentType)
}

func (minioStore) PresignURL(bucketName, objectName string, expiry time.Duration) (string, error) {
	return storage.GetPresignedURL(bucketName, objectName, expiry)
}

// MediaHandler handles content item media attachments backed by MinIO.
type MediaHandler struct {
	cfg   config.MinIOConfig
	store mediaStore
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(cfg config.MinIOConfig) *MediaHandler {
	return &MediaHandler{cfg: cfg, store: minioStore{}}
}

// Upload stores a multipart file in the media bucket and returns its object
// name and a presigned preview URL. The returned name contains no path
// separator so it round-trips through the presign route; the account prefix
// stays internal to the store.
func (h *MediaHandler) Upload(c *gin.Context) {
	caregiver := c.MustGet("caregiver").(*model.Caregiver)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "missing file field", "data": nil})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error("Upload: failed to open uploaded file", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "failed to read uploaded file", "data": nil})
		return
	}
	defer file.Close()

	objectName := uuid.NewString() + filepath.Ext(fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")

	// Scope stored names by account so media never leaks across accounts.
	storedName := storedObjectName(caregiver.ID, objectName)
	if err := h.store.Put(c.Request.Context(), h.cfg.BucketName, storedName, file, fileHeader.Size, contentType); err != nil {
		log.Error("Upload: failed to store media object", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "failed to store media", "data": nil})
		return
	}

	previewURL, err := h.store.PresignURL(h.cfg.BucketName, storedName, time.Hour)
	if err != nil {
		// The object is stored; the preview URL can be fetched later.
		previewURL = ""
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": gin.H{
		"objectName": objectName,
		"mediaType":  contentType,
		"previewUrl": previewURL,
	}})
}

// PresignedURL returns a fresh presigned GET URL for a stored media object.
// The path parameter is the bare name handed out by Upload.
func (h *MediaHandler) PresignedURL(c *gin.Context) {
	caregiver := c.MustGet("caregiver").(*model.Caregiver)

	objectName := c.Param("object")
	if objectName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "missing object name", "data": nil})
		return
	}

	url, err := h.store.PresignURL(h.cfg.BucketName, storedObjectName(caregiver.ID, objectName), time.Hour)
	if err != nil {
		log.Error("PresignedURL: failed to generate URL", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": http.StatusInternalServerError, "message": "failed to generate URL", "data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": gin.H{"url": url}})
}

func storedObjectName(accountID uint, objectName string) string {
	return fmt.Sprintf("%d/%s", accountID, objectName)
}
