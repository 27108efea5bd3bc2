package sync

import (
	"catalog-sync-service/internal/catalog"
	"catalog-sync-service/internal/config"
	"catalog-sync-service/internal/models"
	"catalog-sync-service/internal/repository"
	"catalog-sync-service/internal/store"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service wires scoped store handles for each sync run. The relational
// mirror is used when a DB handle is available and the deployment is not in
// document-only mode; otherwise the catalog document is authoritative.
type Service struct {
	cfg    *config.Config
	db     *gorm.DB
	logger *logrus.Logger
}

func NewService(cfg *config.Config, db *gorm.DB, logger *logrus.Logger) *Service {
	return &Service{cfg: cfg, db: db, logger: logger}
}

func (s *Service) documentOnly() bool {
	return s.cfg.DocumentOnly || s.db == nil
}

// Run executes one sync against sourcePath, falling back to the configured
// default source when empty. Store handles are constructed here and live
// only for the duration of the run.
func (s *Service) Run(sourcePath string) (*models.SyncRun, []models.SyncRowError, error) {
	if sourcePath == "" {
		sourcePath = s.cfg.SourcePath
	}

	docStore := store.NewDocumentStore(s.cfg.DataDir)
	entry := s.logger.WithField("component", "sync")
	backups := store.NewBackupManager(
		s.cfg.BackupDir, s.cfg.BackupRetentionDays, s.cfg.BackupMaxCount,
		s.logger.WithField("component", "backup"))

	var catalogStore CatalogStore
	var runLog RunLog
	if s.documentOnly() {
		dc, err := store.OpenDocumentCatalog(docStore)
		if err != nil {
			return nil, nil, err
		}
		catalogStore = dc
		runLog = store.NewFileRunLog(s.cfg.DataDir)
	} else {
		repo := repository.NewProductsRepository(s.db)
		catalogStore = repo
		runLog = repo
	}

	orch := &Orchestrator{
		Source:     sourcePath,
		Store:      catalogStore,
		Runs:       runLog,
		Projection: docStore,
		Backups:    backups,
		Builder: catalog.Builder{
			Policy: catalog.PricePolicy{
				Table:            s.cfg.DefaultPriceTable,
				DefaultPrice:     s.cfg.DefaultPrice,
				SaleMarkupFactor: s.cfg.SaleMarkupFactor,
			},
			Delimiter: s.cfg.ListDelimiter,
		},
		Logger: entry,
	}
	return orch.Run()
}

// ListRuns returns recent sync run audit records
func (s *Service) ListRuns(limit int) ([]models.SyncRun, error) {
	if s.documentOnly() {
		return store.NewFileRunLog(s.cfg.DataDir).ListRuns(limit)
	}
	return repository.NewProductsRepository(s.db).ListRuns(limit)
}
