package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"guardian-portal-go/internal/config"
	"guardian-portal-go/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMediaStore struct {
	putNames     []string
	presignNames []string
}

func (f *fakeMediaStore) Put(_ context.Context, _, objectName string, _ io.Reader, _ int64, _ string) error {
	f.putNames = append(f.putNames, objectName)
	return nil
}

func (f *fakeMediaStore) PresignURL(_, objectName string, _ time.Duration) (string, error) {
	f.presignNames = append(f.presignNames, objectName)
	return "https://minio.local/" + objectName, nil
}

func mediaRouter(store *fakeMediaStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &MediaHandler{cfg: config.MinIOConfig{BucketName: "guardian-media"}, store: store}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("caregiver", &model.Caregiver{ID: 7})
	})
	r.POST("/api/v1/media", h.Upload)
	r.GET("/api/v1/media/:object/url", h.PresignedURL)
	return r
}

func uploadFile(t *testing.T, r *gin.Engine, filename string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/media", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMediaUpload_ReturnsBareObjectName(t *testing.T) {
	store := &fakeMediaStore{}
	r := mediaRouter(store)

	w := uploadFile(t, r, "photo.png")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			ObjectName string `json:"objectName"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// The client-facing name has no path separator; the account prefix is
	// applied only on the stored name.
	assert.NotContains(t, resp.Data.ObjectName, "/")
	assert.True(t, strings.HasSuffix(resp.Data.ObjectName, ".png"))
	require.Len(t, store.putNames, 1)
	assert.Equal(t, "7/"+resp.Data.ObjectName, store.putNames[0])
}

func TestMediaUpload_ObjectNameRoundTripsThroughPresign(t *testing.T) {
	store := &fakeMediaStore{}
	r := mediaRouter(store)

	w := uploadFile(t, r, "photo.png")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			ObjectName string `json:"objectName"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/media/%s/url", resp.Data.ObjectName), nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	// Using the returned name verbatim must resolve, not 404.
	require.Equal(t, http.StatusOK, w2.Code)
	require.Len(t, store.presignNames, 2) // upload preview + this request
	assert.Equal(t, "7/"+resp.Data.ObjectName, store.presignNames[1])
}

func TestMediaPresign_ScopesToAccount(t *testing.T) {
	store := &fakeMediaStore{}
	r := mediaRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/media/abc.png/url", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.presignNames, 1)
	assert.Equal(t, "7/abc.png", store.presignNames[0])
}
