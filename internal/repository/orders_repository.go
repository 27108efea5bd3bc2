package repository

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"catalog-sync-service/internal/models"
	"gorm.io/gorm"
)

// OrdersRepository reads the append-only order log. The ordering subsystem
// owns the orders table; nothing here ever writes to it.
type OrdersRepository struct {
	db *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{db: db}
}

// AllOrders returns every order, oldest first
func (r *OrdersRepository) AllOrders() ([]models.OrderRecord, error) {
	var orders []models.OrderRecord
	if err := r.db.Order("created_at asc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to load order log: %w", err)
	}
	return orders, nil
}

// ReadOrderLog reads a JSONL order log file, one order per line. Used in
// document-only mode where the orders table is unavailable.
func ReadOrderLog(path string) ([]models.OrderRecord, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return []models.OrderRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open order log: %w", err)
	}
	defer file.Close()

	var orders []models.OrderRecord
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var order models.OrderRecord
		if err := json.Unmarshal(raw, &order); err != nil {
			return nil, fmt.Errorf("invalid order log entry at line %d: %w", line, err)
		}
		orders = append(orders, order)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order log: %w", err)
	}
	return orders, nil
}
