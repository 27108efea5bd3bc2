package repository

import (
	"errors"
	"fmt"
	"time"

	"catalog-sync-service/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductsRepository is the relational mirror of the canonical catalog: one
// row per product keyed by product_id, plus the sync_runs audit table.
type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{db: db}
}

// Upsert inserts or updates one product keyed by its stable product_id.
// Each record write runs in its own transaction, so a failing record never
// leaves a half-updated row and never rolls back its batch siblings. On
// update the existing row's DateAdded is preserved and LastUpdated stamped.
// Returns true when a new row was created.
func (r *ProductsRepository) Upsert(p *models.CanonicalProduct) (bool, error) {
	created := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.CanonicalProduct
		err := tx.Where("product_id = ?", p.ProductID).First(&existing).Error

		if err == nil {
			existing.ApplyUpdate(p, time.Now())
			if err := tx.Save(&existing).Error; err != nil {
				return fmt.Errorf("failed to update product %s: %w", p.ProductID, err)
			}
			*p = existing
			return nil
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			if p.ID == uuid.Nil {
				p.ID = uuid.New()
			}
			if err := tx.Create(p).Error; err != nil {
				return fmt.Errorf("failed to create product %s: %w", p.ProductID, err)
			}
			created = true
			return nil
		}

		return fmt.Errorf("failed to look up product %s: %w", p.ProductID, err)
	})
	return created, err
}

// All returns the full canonical set ordered by product_id
func (r *ProductsRepository) All() ([]models.CanonicalProduct, error) {
	var products []models.CanonicalProduct
	if err := r.db.Order("product_id asc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load canonical products: %w", err)
	}
	return products, nil
}

// CreateRun records a new sync run in RUNNING state
func (r *ProductsRepository) CreateRun(run *models.SyncRun) error {
	if err := r.db.Create(run).Error; err != nil {
		return fmt.Errorf("failed to create sync run: %w", err)
	}
	return nil
}

// FinalizeRun persists the run's terminal state and counts
func (r *ProductsRepository) FinalizeRun(run *models.SyncRun) error {
	if err := r.db.Save(run).Error; err != nil {
		return fmt.Errorf("failed to finalize sync run: %w", err)
	}
	return nil
}

// ListRuns returns up to limit runs, most recent first
func (r *ProductsRepository) ListRuns(limit int) ([]models.SyncRun, error) {
	var runs []models.SyncRun
	query := r.db.Order("started_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}
	return runs, nil
}
