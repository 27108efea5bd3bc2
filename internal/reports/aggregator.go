package reports

import (
	"sort"
	"strings"
	"time"

	"catalog-sync-service/internal/models"
)

const dateLayout = "2006-01-02"

// DailyStat is one calendar day's order count and revenue
type DailyStat struct {
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// GroupStat is an order count/revenue rollup for one status or region
type GroupStat struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// CustomerStat is the per-customer rollup, ranked by total spend
type CustomerStat struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Orders        int       `json:"orders"`
	TotalSpend    float64   `json:"totalSpend"`
	AvgOrderValue float64   `json:"avgOrderValue"`
	LastOrderAt   time.Time `json:"lastOrderAt"`
}

// Aggregates holds every grouping the report sheets render
type Aggregates struct {
	Daily     []DailyStat
	ByStatus  []GroupStat
	ByRegion  []GroupStat
	Customers []CustomerStat
}

// Aggregate groups the order log by calendar date, status, shipping region
// and customer identity. Customers are identified by lower-cased email,
// falling back to name when the email is empty.
func Aggregate(orders []models.OrderRecord) *Aggregates {
	daily := make(map[string]*DailyStat)
	byStatus := make(map[string]*GroupStat)
	byRegion := make(map[string]*GroupStat)
	customers := make(map[string]*CustomerStat)

	for _, order := range orders {
		day := order.CreatedAt.Format(dateLayout)
		if _, ok := daily[day]; !ok {
			daily[day] = &DailyStat{Date: day}
		}
		daily[day].Count++
		daily[day].Revenue += order.Total

		status := string(order.Status)
		if _, ok := byStatus[status]; !ok {
			byStatus[status] = &GroupStat{Key: status}
		}
		byStatus[status].Count++
		byStatus[status].Revenue += order.Total

		region := order.ShippingRegion
		if region == "" {
			region = "Unknown"
		}
		if _, ok := byRegion[region]; !ok {
			byRegion[region] = &GroupStat{Key: region}
		}
		byRegion[region].Count++
		byRegion[region].Revenue += order.Total

		key := strings.ToLower(strings.TrimSpace(order.CustomerEmail))
		if key == "" {
			key = strings.ToLower(strings.TrimSpace(order.CustomerName))
		}
		c, ok := customers[key]
		if !ok {
			c = &CustomerStat{Name: order.CustomerName, Email: order.CustomerEmail}
			customers[key] = c
		}
		c.Orders++
		c.TotalSpend += order.Total
		if order.CreatedAt.After(c.LastOrderAt) {
			c.LastOrderAt = order.CreatedAt
		}
	}

	agg := &Aggregates{}
	for _, d := range daily {
		agg.Daily = append(agg.Daily, *d)
	}
	sort.Slice(agg.Daily, func(i, j int) bool { return agg.Daily[i].Date < agg.Daily[j].Date })

	for _, s := range byStatus {
		agg.ByStatus = append(agg.ByStatus, *s)
	}
	sort.Slice(agg.ByStatus, func(i, j int) bool { return agg.ByStatus[i].Key < agg.ByStatus[j].Key })

	for _, r := range byRegion {
		agg.ByRegion = append(agg.ByRegion, *r)
	}
	sort.Slice(agg.ByRegion, func(i, j int) bool { return agg.ByRegion[i].Key < agg.ByRegion[j].Key })

	for _, c := range customers {
		c.AvgOrderValue = c.TotalSpend / float64(c.Orders)
		agg.Customers = append(agg.Customers, *c)
	}
	sort.Slice(agg.Customers, func(i, j int) bool {
		if agg.Customers[i].TotalSpend != agg.Customers[j].TotalSpend {
			return agg.Customers[i].TotalSpend > agg.Customers[j].TotalSpend
		}
		return agg.Customers[i].Email < agg.Customers[j].Email
	})

	return agg
}

// TrailingDaily expands the daily stats into one row per calendar day for
// the trailing window ending at now, zero-filling days without orders.
func (a *Aggregates) TrailingDaily(now time.Time, days int) []DailyStat {
	byDate := make(map[string]DailyStat, len(a.Daily))
	for _, d := range a.Daily {
		byDate[d.Date] = d
	}

	out := make([]DailyStat, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format(dateLayout)
		if stat, ok := byDate[day]; ok {
			out = append(out, stat)
		} else {
			out = append(out, DailyStat{Date: day})
		}
	}
	return out
}
