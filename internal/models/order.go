package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPlaced     OrderStatus = "PLACED"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// OrderItem is a single line of an order
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderItems type for PostgreSQL JSONB (array of order lines)
type OrderItems []OrderItem

func (o OrderItems) Value() (driver.Value, error) {
	if o == nil {
		o = OrderItems{}
	}
	return json.Marshal(o)
}

func (o *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*o = make(OrderItems, 0)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, o)
}

// OrderRecord is one row of the append-only order log. The ordering
// subsystem owns these rows; this service only ever reads them.
type OrderRecord struct {
	ID              uuid.UUID   `json:"id" gorm:"type:uuid;primary_key"`
	OrderNumber     string      `json:"orderNumber" gorm:"not null;index"`
	CustomerName    string      `json:"customerName"`
	CustomerEmail   string      `json:"customerEmail" gorm:"index"`
	ShippingRegion  string      `json:"shippingRegion"`
	ShippingCity    string      `json:"shippingCity"`
	ShippingAddress string      `json:"shippingAddress" gorm:"type:text"`
	Items           OrderItems  `json:"items" gorm:"type:jsonb"`
	Total           float64     `json:"total" gorm:"type:decimal(10,2);not null"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	CreatedAt       time.Time   `json:"createdAt" gorm:"index,sort:desc"`
}

// TableName returns the table name for the OrderRecord model
func (OrderRecord) TableName() string {
	return "orders"
}
