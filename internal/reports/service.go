package reports

import (
	"time"

	"catalog-sync-service/internal/config"
	"catalog-sync-service/internal/models"
	"catalog-sync-service/internal/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Result summarizes one report generation
type Result struct {
	DatedPath  string `json:"datedPath"`
	MasterPath string `json:"masterPath"`
	Orders     int    `json:"orders"`
}

// Service generates report workbooks from the order log. The log is read
// from the orders table when a DB handle is available, or from the JSONL
// order log file in document-only mode.
type Service struct {
	cfg    *config.Config
	db     *gorm.DB
	logger *logrus.Entry
}

func NewService(cfg *config.Config, db *gorm.DB, logger *logrus.Logger) *Service {
	return &Service{cfg: cfg, db: db, logger: logger.WithField("component", "reports")}
}

// Generate renders both report artifacts as of now
func (s *Service) Generate(now time.Time) (*Result, error) {
	orders, err := s.loadOrders()
	if err != nil {
		return nil, err
	}

	agg := Aggregate(orders)
	dated, master, err := WriteReport(s.cfg.ReportDir, orders, agg, now)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"orders": len(orders),
		"dated":  dated,
	}).Info("report generated")

	return &Result{DatedPath: dated, MasterPath: master, Orders: len(orders)}, nil
}

func (s *Service) loadOrders() ([]models.OrderRecord, error) {
	if s.cfg.DocumentOnly || s.db == nil {
		return repository.ReadOrderLog(s.cfg.OrderLogPath)
	}
	return repository.NewOrdersRepository(s.db).AllOrders()
}
