package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"catalog-sync-service/internal/models"
	"catalog-sync-service/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	catalogCachePrefix = "catalog:"
	catalogCacheTTL    = 2 * time.Minute
)

// CatalogHandler serves the storefront read path from the projection
// document, with optional redis caching in front of the file read.
type CatalogHandler struct {
	doc    *store.DocumentStore
	redis  *redis.Client
	logger *logrus.Logger
}

func NewCatalogHandler(doc *store.DocumentStore, redisClient *redis.Client, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{doc: doc, redis: redisClient, logger: logger}
}

// GetCatalog returns the full catalog document
// GET /api/v1/storefront/catalog
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	cacheKey := catalogCachePrefix + "document"
	if data, ok := h.cached(c, cacheKey); ok {
		c.Data(http.StatusOK, "application/json", data)
		return
	}

	doc, err := h.doc.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "CATALOG_UNAVAILABLE", Message: err.Error()},
		})
		return
	}

	payload, err := json.Marshal(models.SuccessResponse{Success: true, Data: doc})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "ENCODE_ERROR", Message: err.Error()},
		})
		return
	}

	h.store(c, cacheKey, payload)
	c.Data(http.StatusOK, "application/json", payload)
}

// GetView returns one categorized view's product list
// GET /api/v1/storefront/catalog/:view
func (h *CatalogHandler) GetView(c *gin.Context) {
	view := c.Param("view")
	cacheKey := catalogCachePrefix + "view:" + view
	if data, ok := h.cached(c, cacheKey); ok {
		c.Data(http.StatusOK, "application/json", data)
		return
	}

	doc, err := h.doc.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "CATALOG_UNAVAILABLE", Message: err.Error()},
		})
		return
	}

	products, ok := doc.Views[view]
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VIEW_NOT_FOUND", Message: "unknown catalog view: " + view},
		})
		return
	}

	payload, err := json.Marshal(models.SuccessResponse{Success: true, Data: products})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "ENCODE_ERROR", Message: err.Error()},
		})
		return
	}

	h.store(c, cacheKey, payload)
	c.Data(http.StatusOK, "application/json", payload)
}

func (h *CatalogHandler) cached(c *gin.Context, key string) ([]byte, bool) {
	if h.redis == nil {
		return nil, false
	}
	data, err := h.redis.Get(c.Request.Context(), key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (h *CatalogHandler) store(c *gin.Context, key string, payload []byte) {
	if h.redis == nil {
		return
	}
	if err := h.redis.Set(c.Request.Context(), key, payload, catalogCacheTTL).Err(); err != nil {
		h.logger.WithError(err).Debug("failed to cache catalog payload")
	}
}
