package sync

import (
	"fmt"
	"path/filepath"
	"time"

	"catalog-sync-service/internal/catalog"
	"catalog-sync-service/internal/models"
	"catalog-sync-service/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CatalogStore is the authoritative product store a run writes to. Upsert
// returns true when the record was newly created.
type CatalogStore interface {
	Upsert(p *models.CanonicalProduct) (bool, error)
	All() ([]models.CanonicalProduct, error)
}

// RunLog persists SyncRun audit records
type RunLog interface {
	CreateRun(run *models.SyncRun) error
	FinalizeRun(run *models.SyncRun) error
}

// Orchestrator drives one sync run through the stage pipeline:
// INIT → READING → VALIDATING → CLASSIFYING → UPSERTING → MATERIALIZING →
// BACKING_UP → COMPLETED, with FAILED terminal from any stage on an
// unrecoverable error. Per-row problems are collected as diagnostics and
// never abort the run.
type Orchestrator struct {
	Source     string
	Store      CatalogStore
	Runs       RunLog
	Projection *store.DocumentStore
	Backups    *store.BackupManager
	Builder    catalog.Builder
	Logger     *logrus.Entry
}

// Run executes the pipeline once. The returned error is non-nil only for
// fatal conditions (unreadable source, zero parseable rows, unwritable
// output); row-level errors are reported through the diagnostics slice and
// leave the run COMPLETED.
func (o *Orchestrator) Run() (*models.SyncRun, []models.SyncRowError, error) {
	run := &models.SyncRun{
		ID:         uuid.New(),
		SourceFile: filepath.Base(o.Source),
		Status:     models.SyncRunStatusRunning,
		Stage:      models.SyncStageInit,
		StartedAt:  time.Now(),
	}
	if err := o.Runs.CreateRun(run); err != nil {
		return nil, nil, fmt.Errorf("failed to record sync run: %w", err)
	}
	o.Logger.WithFields(logrus.Fields{"run": run.ID, "source": o.Source}).Info("sync run started")

	var diagnostics []models.SyncRowError

	// READING
	run.Stage = models.SyncStageReading
	rows, err := catalog.ParseSource(o.Source)
	if err != nil {
		return run, diagnostics, o.fail(run, fmt.Errorf("source unreadable: %w", err))
	}
	run.RowsRead = len(rows)

	// VALIDATING
	run.Stage = models.SyncStageValidating
	valid := make([]catalog.SourceRow, 0, len(rows))
	seen := make(map[string]int)
	for _, row := range rows {
		if diag := catalog.ValidateRow(row); diag != nil {
			diagnostics = append(diagnostics, *diag)
			continue
		}
		id := row[catalog.FieldProductID]
		if idx, dup := seen[id]; dup {
			// Duplicate identifiers in one run are an error condition;
			// last occurrence wins as the degraded fallback.
			diagnostics = append(diagnostics, models.SyncRowError{
				Row:     row.RowNumber(),
				Field:   catalog.FieldProductID,
				Code:    models.ErrCodeDuplicateID,
				Message: fmt.Sprintf("identifier %q already seen in this run; last occurrence wins", id),
			})
			valid[idx] = row
			continue
		}
		seen[id] = len(valid)
		valid = append(valid, row)
	}
	run.RowsValid = len(valid)
	if len(valid) == 0 {
		return run, diagnostics, o.fail(run, fmt.Errorf("zero parseable rows in %s", run.SourceFile))
	}

	// CLASSIFYING
	run.Stage = models.SyncStageClassifying
	for _, row := range valid {
		colors, sizes := catalog.ResolveColorSizeCells(
			row[catalog.FieldColors], row[catalog.FieldSizes], o.Builder.Delimiter)
		row[catalog.FieldColors] = colors
		row[catalog.FieldSizes] = sizes
	}

	// Snapshot the pre-run document state before any write lands. Backup
	// failures are logged, never fatal.
	if o.Backups != nil {
		if _, err := o.Backups.Snapshot(o.Projection.Path()); err != nil {
			o.Logger.WithError(err).Warn("backup snapshot failed")
		}
	}

	// UPSERTING
	run.Stage = models.SyncStageUpserting
	now := time.Now()
	for _, row := range valid {
		product, diag := o.Builder.Build(row, now)
		if diag != nil {
			diagnostics = append(diagnostics, *diag)
			run.Failed++
			continue
		}
		created, err := o.Store.Upsert(product)
		if err != nil {
			diagnostics = append(diagnostics, models.SyncRowError{
				Row:     row.RowNumber(),
				Code:    models.ErrCodeUpsertFailed,
				Message: err.Error(),
			})
			run.Failed++
			continue
		}
		if created {
			run.Inserted++
		} else {
			run.Updated++
		}
	}
	if run.Inserted+run.Updated == 0 {
		return run, diagnostics, o.fail(run, fmt.Errorf("no records committed: all %d upserts failed", run.Failed))
	}

	// MATERIALIZING — the projection is rebuilt wholesale from the
	// authoritative set, never patched incrementally.
	run.Stage = models.SyncStageMaterializing
	all, err := o.Store.All()
	if err != nil {
		return run, diagnostics, o.fail(run, fmt.Errorf("failed to load canonical set: %w", err))
	}
	if _, err := o.Projection.Rebuild(all); err != nil {
		return run, diagnostics, o.fail(run, fmt.Errorf("projection target unwritable: %w", err))
	}

	// BACKING_UP
	run.Stage = models.SyncStageBackingUp
	if o.Backups != nil {
		o.Backups.Prune()
	}

	run.Stage = models.SyncStageCompleted
	run.Status = models.SyncRunStatusCompleted
	finished := time.Now()
	run.FinishedAt = &finished
	if err := o.Runs.FinalizeRun(run); err != nil {
		o.Logger.WithError(err).Warn("failed to finalize sync run record")
	}

	o.Logger.WithFields(logrus.Fields{
		"run":      run.ID,
		"read":     run.RowsRead,
		"valid":    run.RowsValid,
		"inserted": run.Inserted,
		"updated":  run.Updated,
		"failed":   run.Failed,
	}).Info("sync run completed")

	return run, diagnostics, nil
}

// fail finalizes the run as FAILED with a single root cause. Writes already
// committed before the failure point remain; re-running is safe because
// upserts are idempotent.
func (o *Orchestrator) fail(run *models.SyncRun, cause error) error {
	run.Status = models.SyncRunStatusFailed
	run.Stage = models.SyncStageFailed
	run.ErrorMessage = cause.Error()
	finished := time.Now()
	run.FinishedAt = &finished
	if err := o.Runs.FinalizeRun(run); err != nil {
		o.Logger.WithError(err).Warn("failed to finalize sync run record")
	}
	o.Logger.WithField("run", run.ID).WithError(cause).Error("sync run failed")
	return cause
}
