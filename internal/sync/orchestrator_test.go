package sync

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"catalog-sync-service/internal/catalog"
	"catalog-sync-service/internal/models"
	"catalog-sync-service/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sourceHeader = "ID,Product Name,Category,Price,In Stock,Is Sale,Colors,Sizes\n"

func writeSource(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newOrchestrator(t *testing.T, dir, source string) *Orchestrator {
	t.Helper()
	docStore := store.NewDocumentStore(dir)
	dc, err := store.OpenDocumentCatalog(docStore)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	return &Orchestrator{
		Source:     source,
		Store:      dc,
		Runs:       store.NewFileRunLog(dir),
		Projection: docStore,
		Backups: store.NewBackupManager(
			filepath.Join(dir, "backups"), 14, 30, logger.WithField("component", "backup")),
		Builder: catalog.Builder{
			Policy: catalog.PricePolicy{
				Table:            map[string]float64{"rings": 1500},
				DefaultPrice:     1000,
				SaleMarkupFactor: 1.25,
			},
			Delimiter: "|",
		},
		Logger: logger.WithField("component", "sync"),
	}
}

func TestRun_CleanBatch(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, sourceHeader+
		"JW-001,Gold Ring,Rings,2490,yes,no,Gold|Silver,16|17\n"+
		"JW-002,Silver Chain,Necklaces,1890,yes,no,Silver,45cm\n")

	o := newOrchestrator(t, dir, source)
	run, diags, err := o.Run()
	require.NoError(t, err)
	assert.Empty(t, diags)

	assert.Equal(t, models.SyncRunStatusCompleted, run.Status)
	assert.Equal(t, models.SyncStageCompleted, run.Stage)
	assert.Equal(t, 2, run.RowsRead)
	assert.Equal(t, 2, run.RowsValid)
	assert.Equal(t, 2, run.Inserted)
	assert.Equal(t, 0, run.Updated)
	require.NotNil(t, run.FinishedAt)

	doc, err := o.Projection.Load()
	require.NoError(t, err)
	assert.Len(t, doc.All(), 2)
}

func TestRun_PartialFailureStillCommits(t *testing.T) {
	dir := t.TempDir()
	content := sourceHeader
	for i := 1; i <= 9; i++ {
		content += fmt.Sprintf("JW-%03d,Ring,Rings,1000,yes,no,,\n", i)
	}
	content += "JW-010,,Rings,1000,yes,no,,\n" // missing name
	source := writeSource(t, dir, content)

	o := newOrchestrator(t, dir, source)
	run, diags, err := o.Run()
	require.NoError(t, err)

	assert.Equal(t, models.SyncRunStatusCompleted, run.Status)
	assert.Equal(t, 10, run.RowsRead)
	assert.Equal(t, 9, run.RowsValid)
	assert.Equal(t, 9, run.Inserted)
	require.Len(t, diags, 1)
	assert.Equal(t, models.ErrCodeMissingName, diags[0].Code)
}

func TestRun_SkipsCommentAndSentinelRows(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, sourceHeader+
		"# out of season,Old Ring,Rings,1000,yes,no,,\n"+
		"--- SECTION: Rings ---,,,,,,,\n"+
		"JW-001,Gold Ring,Rings,2490,yes,no,,\n")

	o := newOrchestrator(t, dir, source)
	run, diags, err := o.Run()
	require.NoError(t, err)

	assert.Equal(t, 3, run.RowsRead)
	assert.Equal(t, 1, run.RowsValid)
	assert.Equal(t, 1, run.Inserted)
	require.Len(t, diags, 2)
	assert.Equal(t, models.ErrCodeCommentRow, diags[0].Code)
	assert.Equal(t, models.ErrCodeSentinelRow, diags[1].Code)
}

func TestRun_DuplicateIDLastWins(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, sourceHeader+
		"JW-001,First Version,Rings,1000,yes,no,,\n"+
		"JW-001,Second Version,Rings,2000,yes,no,,\n")

	o := newOrchestrator(t, dir, source)
	run, diags, err := o.Run()
	require.NoError(t, err)

	assert.Equal(t, 1, run.RowsValid)
	assert.Equal(t, 1, run.Inserted)
	require.Len(t, diags, 1)
	assert.Equal(t, models.ErrCodeDuplicateID, diags[0].Code)

	doc, err := o.Projection.Load()
	require.NoError(t, err)
	require.Len(t, doc.All(), 1)
	assert.Equal(t, "Second Version", doc.All()[0].Name)
}

func TestRun_IdempotentReRun(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, sourceHeader+
		"JW-001,Gold Ring,Rings,2490,yes,no,Gold,16\n"+
		"JW-002,Silver Chain,Necklaces,1890,yes,no,Silver,45cm\n")

	first, _, err := newOrchestrator(t, dir, source).Run()
	require.NoError(t, err)
	assert.Equal(t, 2, first.Inserted)

	firstDoc, err := store.NewDocumentStore(dir).Load()
	require.NoError(t, err)

	second, _, err := newOrchestrator(t, dir, source).Run()
	require.NoError(t, err)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 2, second.Updated)

	secondDoc, err := store.NewDocumentStore(dir).Load()
	require.NoError(t, err)

	require.Len(t, secondDoc.All(), 2)
	for i := range firstDoc.All() {
		a, b := firstDoc.All()[i], secondDoc.All()[i]
		assert.True(t, a.ContentEqual(&b), "product %s content changed between identical runs", a.ProductID)
		assert.Equal(t, a.DateAdded, b.DateAdded)
	}
}

func TestRun_UnreadableSourceFails(t *testing.T) {
	dir := t.TempDir()
	o := newOrchestrator(t, dir, filepath.Join(dir, "absent.csv"))

	run, _, err := o.Run()
	require.Error(t, err)
	assert.Equal(t, models.SyncRunStatusFailed, run.Status)
	assert.Equal(t, models.SyncStageFailed, run.Stage)
	assert.NotEmpty(t, run.ErrorMessage)

	runs, err := store.NewFileRunLog(dir).ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, models.SyncRunStatusFailed, runs[0].Status)
}

func TestRun_ZeroValidRowsFails(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, sourceHeader+
		",No ID Here,Rings,1000,yes,no,,\n"+
		"# comment,Name,Rings,1000,yes,no,,\n")

	o := newOrchestrator(t, dir, source)
	run, diags, err := o.Run()
	require.Error(t, err)
	assert.Equal(t, models.SyncRunStatusFailed, run.Status)
	assert.Len(t, diags, 2)
}

func TestRun_WritesBackupSnapshot(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, sourceHeader+
		"JW-001,Gold Ring,Rings,2490,yes,no,,\n")

	// First run creates the document; second run has something to snapshot.
	_, _, err := newOrchestrator(t, dir, source).Run()
	require.NoError(t, err)
	_, _, err = newOrchestrator(t, dir, source).Run()
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "backups"))
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
