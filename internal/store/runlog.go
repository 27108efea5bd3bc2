package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"catalog-sync-service/internal/models"
)

const runLogFileName = "sync_runs.json"

// FileRunLog persists SyncRun audit records next to the catalog document.
// It carries the run log in document-only mode, where the sync_runs table
// is unavailable.
type FileRunLog struct {
	path string
}

func NewFileRunLog(dataDir string) *FileRunLog {
	return &FileRunLog{path: filepath.Join(dataDir, runLogFileName)}
}

// CreateRun appends a new run record
func (l *FileRunLog) CreateRun(run *models.SyncRun) error {
	runs, err := l.load()
	if err != nil {
		return err
	}
	runs = append(runs, *run)
	return l.save(runs)
}

// FinalizeRun rewrites the stored record for the given run id. Finalization
// happens exactly once per run; the record is never mutated afterwards.
func (l *FileRunLog) FinalizeRun(run *models.SyncRun) error {
	runs, err := l.load()
	if err != nil {
		return err
	}
	for i := range runs {
		if runs[i].ID == run.ID {
			runs[i] = *run
			return l.save(runs)
		}
	}
	return fmt.Errorf("sync run %s not found in run log", run.ID)
}

// ListRuns returns up to limit runs, most recent first
func (l *FileRunLog) ListRuns(limit int) ([]models.SyncRun, error) {
	runs, err := l.load()
	if err != nil {
		return nil, err
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (l *FileRunLog) load() ([]models.SyncRun, error) {
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return []models.SyncRun{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read run log: %w", err)
	}
	var runs []models.SyncRun
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("failed to parse run log: %w", err)
	}
	return runs, nil
}

func (l *FileRunLog) save(runs []models.SyncRun) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create run log directory: %w", err)
	}
	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode run log: %w", err)
	}
	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write run log: %w", err)
	}
	return os.Rename(tmp, l.path)
}
