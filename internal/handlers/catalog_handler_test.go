package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-sync-service/internal/models"
	"catalog-sync-service/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCatalogRouter(t *testing.T) (*gin.Engine, *store.DocumentStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	doc := store.NewDocumentStore(t.TempDir())
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	h := NewCatalogHandler(doc, nil, logger)
	router := gin.New()
	router.GET("/api/v1/storefront/catalog", h.GetCatalog)
	router.GET("/api/v1/storefront/catalog/:view", h.GetView)
	return router, doc
}

func TestGetCatalog(t *testing.T) {
	router, doc := setupCatalogRouter(t)
	_, err := doc.Rebuild([]models.CanonicalProduct{
		{ProductID: "JW-001", Name: "Gold Ring", Category: "Rings", InStock: true},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/storefront/catalog", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                  `json:"success"`
		Data    store.CatalogDocument `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data.Views[store.ViewAll], 1)
}

func TestGetView(t *testing.T) {
	router, doc := setupCatalogRouter(t)
	_, err := doc.Rebuild([]models.CanonicalProduct{
		{ProductID: "JW-001", Name: "Gold Ring", Category: "Rings", InStock: true, IsSale: true},
		{ProductID: "JW-002", Name: "Silver Chain", Category: "Necklaces", InStock: true},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/storefront/catalog/sale", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                      `json:"success"`
		Data    []models.CanonicalProduct `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "JW-001", resp.Data[0].ProductID)
}

func TestGetView_UnknownView(t *testing.T) {
	router, doc := setupCatalogRouter(t)
	_, err := doc.Rebuild(nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/storefront/catalog/nonsense", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VIEW_NOT_FOUND", resp.Error.Code)
}
