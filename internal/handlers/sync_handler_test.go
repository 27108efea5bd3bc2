package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"catalog-sync-service/internal/config"
	"catalog-sync-service/internal/models"
	syncpipeline "catalog-sync-service/internal/sync"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSyncRouter(t *testing.T, dir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		DocumentOnly:        true,
		DataDir:             dir,
		ListDelimiter:       "|",
		BackupDir:           filepath.Join(dir, "backups"),
		BackupRetentionDays: 14,
		BackupMaxCount:      30,
		DefaultPriceTable:   map[string]float64{"rings": 1500},
		DefaultPrice:        1000,
		SaleMarkupFactor:    1.25,
	}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	h := NewSyncHandler(syncpipeline.NewService(cfg, nil, logger), nil, logger)
	router := gin.New()
	router.POST("/api/v1/sync", h.TriggerSync)
	router.GET("/api/v1/sync/runs", h.GetSyncRuns)
	return router
}

func postSync(t *testing.T, router *gin.Engine, sourcePath string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"sourcePath": sourcePath})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/sync", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestTriggerSync_CompletedWithRowErrors(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "catalog.csv")
	require.NoError(t, os.WriteFile(source, []byte(
		"ID,Product Name,Category,Price\n"+
			"JW-001,Gold Ring,Rings,2490\n"+
			"JW-002,,Rings,1000\n"), 0644))

	router := setupSyncRouter(t, dir)
	w := postSync(t, router, source)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.SyncRunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "sync completed with 1 errors", resp.Message)
	require.NotNil(t, resp.Run)
	assert.Equal(t, models.SyncRunStatusCompleted, resp.Run.Status)
	assert.Equal(t, 1, resp.Run.Inserted)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, models.ErrCodeMissingName, resp.Errors[0].Code)
}

func TestTriggerSync_FatalFailure(t *testing.T) {
	dir := t.TempDir()
	router := setupSyncRouter(t, dir)

	w := postSync(t, router, filepath.Join(dir, "absent.csv"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp models.SyncRunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Message)
}

func TestGetSyncRuns(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "catalog.csv")
	require.NoError(t, os.WriteFile(source, []byte(
		"ID,Product Name,Category,Price\n"+
			"JW-001,Gold Ring,Rings,2490\n"), 0644))

	router := setupSyncRouter(t, dir)
	require.Equal(t, http.StatusOK, postSync(t, router, source).Code)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/sync/runs", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool             `json:"success"`
		Data    []models.SyncRun `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, models.SyncRunStatusCompleted, resp.Data[0].Status)
}
