package reports

import (
	"testing"
	"time"

	"catalog-sync-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

func sampleOrders() []models.OrderRecord {
	return []models.OrderRecord{
		{OrderNumber: "ORD-1", CustomerName: "Anna", CustomerEmail: "anna@example.com",
			ShippingRegion: "Moscow", Status: models.OrderStatusDelivered, Total: 100, CreatedAt: day("2026-08-20")},
		{OrderNumber: "ORD-2", CustomerName: "Anna", CustomerEmail: "ANNA@example.com",
			ShippingRegion: "Moscow", Status: models.OrderStatusPlaced, Total: 200, CreatedAt: day("2026-08-20")},
		{OrderNumber: "ORD-3", CustomerName: "Boris", CustomerEmail: "boris@example.com",
			ShippingRegion: "Kazan", Status: models.OrderStatusDelivered, Total: 300, CreatedAt: day("2026-08-20")},
		{OrderNumber: "ORD-4", CustomerName: "Clara", CustomerEmail: "",
			ShippingRegion: "", Status: models.OrderStatusCancelled, Total: 50, CreatedAt: day("2026-08-22")},
	}
}

func TestAggregate_Daily(t *testing.T) {
	agg := Aggregate(sampleOrders())

	require.Len(t, agg.Daily, 2)
	assert.Equal(t, "2026-08-20", agg.Daily[0].Date)
	assert.Equal(t, 3, agg.Daily[0].Count)
	assert.Equal(t, 600.0, agg.Daily[0].Revenue)
	assert.Equal(t, "2026-08-22", agg.Daily[1].Date)
	assert.Equal(t, 1, agg.Daily[1].Count)
}

func TestAggregate_ByStatus(t *testing.T) {
	agg := Aggregate(sampleOrders())

	require.Len(t, agg.ByStatus, 3)
	// Sorted by key
	assert.Equal(t, "CANCELLED", agg.ByStatus[0].Key)
	assert.Equal(t, "DELIVERED", agg.ByStatus[1].Key)
	assert.Equal(t, 2, agg.ByStatus[1].Count)
	assert.Equal(t, 400.0, agg.ByStatus[1].Revenue)
	assert.Equal(t, "PLACED", agg.ByStatus[2].Key)
}

func TestAggregate_ByRegionDefaultsUnknown(t *testing.T) {
	agg := Aggregate(sampleOrders())

	require.Len(t, agg.ByRegion, 3)
	assert.Equal(t, "Kazan", agg.ByRegion[0].Key)
	assert.Equal(t, "Moscow", agg.ByRegion[1].Key)
	assert.Equal(t, 300.0, agg.ByRegion[1].Revenue)
	assert.Equal(t, "Unknown", agg.ByRegion[2].Key)
}

func TestAggregate_CustomersRankedBySpend(t *testing.T) {
	agg := Aggregate(sampleOrders())

	require.Len(t, agg.Customers, 3)
	// Anna's two orders merge case-insensitively on email
	assert.Equal(t, "Anna", agg.Customers[0].Name)
	assert.Equal(t, 2, agg.Customers[0].Orders)
	assert.Equal(t, 300.0, agg.Customers[0].TotalSpend)
	assert.Equal(t, 150.0, agg.Customers[0].AvgOrderValue)

	assert.Equal(t, "Boris", agg.Customers[1].Name)
	assert.Equal(t, "Clara", agg.Customers[2].Name)
}

func TestAggregate_Empty(t *testing.T) {
	agg := Aggregate(nil)
	assert.Empty(t, agg.Daily)
	assert.Empty(t, agg.ByStatus)
	assert.Empty(t, agg.ByRegion)
	assert.Empty(t, agg.Customers)
}

func TestTrailingDaily_ZeroFills(t *testing.T) {
	agg := Aggregate(sampleOrders())
	now := day("2026-08-22")

	window := agg.TrailingDaily(now, 7)
	require.Len(t, window, 7)
	assert.Equal(t, "2026-08-16", window[0].Date)
	assert.Equal(t, "2026-08-22", window[6].Date)

	for _, stat := range window {
		switch stat.Date {
		case "2026-08-20":
			assert.Equal(t, 3, stat.Count)
		case "2026-08-22":
			assert.Equal(t, 1, stat.Count)
		default:
			assert.Equal(t, 0, stat.Count)
			assert.Equal(t, 0.0, stat.Revenue)
		}
	}
}
