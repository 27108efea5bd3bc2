package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"catalog-sync-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis
	RedisURL string

	// Server
	Port        string
	Environment string

	// Operating mode: when true the relational mirror is disabled and the
	// catalog document is the authoritative store (documented deployment
	// mode, not an error condition).
	DocumentOnly bool

	// Catalog sync
	SourcePath    string // default spreadsheet path for sync runs
	DataDir       string // catalog document + run log location
	ListDelimiter string // delimiter for multi-value cells

	// Backups
	BackupDir           string
	BackupRetentionDays int
	BackupMaxCount      int

	// Pricing policy. The category default table and the sale markup are
	// operator-confirmable policy, not fixed business rules.
	DefaultPriceTable map[string]float64
	DefaultPrice      float64
	SaleMarkupFactor  float64

	// Orders / reports
	OrderLogPath        string // JSONL order log, used in document-only mode
	ReportDir           string
	ReportRetentionDays int
	ReportHour          int
	ReportMinute        int
	ReportTimezone      string
	ScheduleEnabled     bool
}

// defaultPriceTable is the documented category-keyed fallback applied when a
// row's price resolves to zero. Overridable via DEFAULT_PRICE_TABLE.
var defaultPriceTable = map[string]float64{
	"rings":     1500,
	"earrings":  1200,
	"necklaces": 2000,
	"bracelets": 1300,
	"pendants":  1100,
	"sets":      3500,
}

func Load() *Config {
	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	documentOnly, _ := strconv.ParseBool(getEnv("DOCUMENT_ONLY", "false"))
	backupRetention, _ := strconv.Atoi(getEnv("BACKUP_RETENTION_DAYS", "14"))
	backupMaxCount, _ := strconv.Atoi(getEnv("BACKUP_MAX_COUNT", "30"))
	defaultPrice, _ := strconv.ParseFloat(getEnv("DEFAULT_PRICE", "1000"), 64)
	saleMarkup, _ := strconv.ParseFloat(getEnv("SALE_MARKUP_FACTOR", "1.25"), 64)
	reportRetention, _ := strconv.Atoi(getEnv("REPORT_RETENTION_DAYS", "30"))
	reportHour, _ := strconv.Atoi(getEnv("REPORT_HOUR", "7"))
	reportMinute, _ := strconv.Atoi(getEnv("REPORT_MINUTE", "0"))
	scheduleEnabled, _ := strconv.ParseBool(getEnv("SCHEDULE_ENABLED", "true"))

	priceTable := defaultPriceTable
	if raw := os.Getenv("DEFAULT_PRICE_TABLE"); raw != "" {
		parsed := map[string]float64{}
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			log.Printf("WARNING: invalid DEFAULT_PRICE_TABLE, using built-in defaults: %v", err)
		} else {
			priceTable = parsed
		}
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "catalog_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		Port:        getEnv("PORT", "8089"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DocumentOnly: documentOnly,

		SourcePath:    getEnv("CATALOG_SOURCE_PATH", "data/catalog_source.xlsx"),
		DataDir:       getEnv("DATA_DIR", "data"),
		ListDelimiter: getEnv("LIST_DELIMITER", "|"),

		BackupDir:           getEnv("BACKUP_DIR", "data/backups"),
		BackupRetentionDays: backupRetention,
		BackupMaxCount:      backupMaxCount,

		DefaultPriceTable: priceTable,
		DefaultPrice:      defaultPrice,
		SaleMarkupFactor:  saleMarkup,

		OrderLogPath:        getEnv("ORDER_LOG_PATH", "data/orders.jsonl"),
		ReportDir:           getEnv("REPORT_DIR", "data/reports"),
		ReportRetentionDays: reportRetention,
		ReportHour:          reportHour,
		ReportMinute:        reportMinute,
		ReportTimezone:      getEnv("REPORT_TIMEZONE", "Europe/Moscow"),
		ScheduleEnabled:     scheduleEnabled,
	}
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	var logLevel logger.LogLevel
	if cfg.Environment == "production" {
		logLevel = logger.Error
	} else {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate owned tables. The orders table belongs to the ordering
	// subsystem and is never migrated from here.
	log.Println("Running auto-migrations...")
	if err := db.AutoMigrate(
		&models.CanonicalProduct{},
		&models.SyncRun{},
	); err != nil {
		return nil, fmt.Errorf("failed to run auto-migrations: %w", err)
	}
	log.Println("Auto-migrations completed successfully")

	return db, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
