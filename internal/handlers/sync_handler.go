package handlers

import (
	"context"
	"fmt"
	"net/http"

	"catalog-sync-service/internal/models"
	syncpipeline "catalog-sync-service/internal/sync"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type SyncHandler struct {
	svc    *syncpipeline.Service
	redis  *redis.Client
	logger *logrus.Logger
}

func NewSyncHandler(svc *syncpipeline.Service, redisClient *redis.Client, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{svc: svc, redis: redisClient, logger: logger}
}

type triggerSyncRequest struct {
	SourcePath string `json:"sourcePath"`
}

// TriggerSync runs the catalog sync pipeline once. Partial row-level errors
// still yield 200 ("completed with N errors"); only unrecoverable
// conditions fail the request.
// POST /api/v1/sync
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	var req triggerSyncRequest
	_ = c.ShouldBindJSON(&req)

	run, rowErrors, err := h.svc.Run(req.SourcePath)
	if err != nil {
		status := http.StatusInternalServerError
		resp := models.SyncRunResponse{
			Success: false,
			Run:     run,
			Errors:  rowErrors,
			Message: err.Error(),
		}
		c.JSON(status, resp)
		return
	}

	h.invalidateCatalogCache(c.Request.Context())

	message := "sync completed"
	if len(rowErrors) > 0 {
		message = fmt.Sprintf("sync completed with %d errors", len(rowErrors))
	}
	c.JSON(http.StatusOK, models.SyncRunResponse{
		Success: true,
		Run:     run,
		Errors:  rowErrors,
		Message: message,
	})
}

// GetSyncRuns lists recent sync run audit records
// GET /api/v1/sync/runs
func (h *SyncHandler) GetSyncRuns(c *gin.Context) {
	runs, err := h.svc.ListRuns(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "RUN_LOG_ERROR",
				Message: err.Error(),
			},
		})
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: runs})
}

func (h *SyncHandler) invalidateCatalogCache(ctx context.Context) {
	if h.redis == nil {
		return
	}
	iter := h.redis.Scan(ctx, 0, catalogCachePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := h.redis.Del(ctx, iter.Val()).Err(); err != nil {
			h.logger.WithError(err).Debug("failed to drop catalog cache key")
		}
	}
}
