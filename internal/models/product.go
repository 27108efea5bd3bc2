package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JSON type for PostgreSQL JSONB (object/map)
type JSON map[string]interface{}

func (j JSON) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// StringArray type for PostgreSQL JSONB (array of strings)
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		a = StringArray{}
	}
	return json.Marshal(a)
}

func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = make(StringArray, 0)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// CanonicalProduct is the authoritative catalog representation of one
// product, independent of the source spreadsheet format. ProductID is the
// stable external identifier the sync pipeline upserts by; it is never
// reassigned for an existing row. DateAdded is immutable after creation,
// LastUpdated is refreshed on every successful upsert.
type CanonicalProduct struct {
	ID               uuid.UUID   `json:"-" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID        string      `json:"productId" gorm:"column:product_id;not null;uniqueIndex:idx_products_product_id"`
	Name             string      `json:"name" gorm:"not null"`
	Category         string      `json:"category" gorm:"index"`
	Section          string      `json:"section" gorm:"index"`
	Price            float64     `json:"price" gorm:"type:decimal(10,2);not null"`
	OriginalPrice    float64     `json:"originalPrice" gorm:"type:decimal(10,2);default:0"`
	DiscountPercent  int         `json:"discountPercent" gorm:"default:0"`
	Image            string      `json:"image"`
	Image2           string      `json:"image2"`
	Image3           string      `json:"image3"`
	Image4           string      `json:"image4"`
	Description      string      `json:"description" gorm:"type:text"`
	Material         string      `json:"material"`
	Weight           string      `json:"weight"`
	Colors           StringArray `json:"colors" gorm:"type:jsonb"`
	Sizes            StringArray `json:"sizes" gorm:"type:jsonb"`
	Variants         StringArray `json:"variants" gorm:"type:jsonb"`
	Style            string      `json:"style"`
	Occasion         string      `json:"occasion"`
	Features         StringArray `json:"features" gorm:"type:jsonb"`
	Rating           float64     `json:"rating" gorm:"default:0"`
	ReviewsCount     int         `json:"reviewsCount" gorm:"default:0"`
	InStock          bool        `json:"inStock" gorm:"default:true;index"`
	IsNew            bool        `json:"isNew" gorm:"default:false;index"`
	IsSale           bool        `json:"isSale" gorm:"default:false;index"`
	CareInstructions string      `json:"careInstructions" gorm:"type:text"`
	SKU              string      `json:"sku"`
	Brand            string      `json:"brand"`
	Collection       string      `json:"collection"`
	Tags             StringArray `json:"tags" gorm:"type:jsonb"`
	SeoTitle         string      `json:"seoTitle" gorm:"column:seo_title;type:text"`
	SeoDescription   string      `json:"seoDescription" gorm:"column:seo_description;type:text"`
	SeoKeywords      StringArray `json:"seoKeywords" gorm:"column:seo_keywords;type:jsonb"`
	StockQuantity    int         `json:"stockQuantity" gorm:"default:0"`
	MinimumStock     int         `json:"minimumStock" gorm:"default:0"`
	CostPrice        float64     `json:"costPrice" gorm:"type:decimal(10,2);default:0"`
	DateAdded        time.Time   `json:"dateAdded" gorm:"column:date_added"`
	LastUpdated      time.Time   `json:"lastUpdated" gorm:"column:last_updated"`
}

// TableName returns the table name for the CanonicalProduct model
func (CanonicalProduct) TableName() string {
	return "products"
}

// ApplyUpdate merges the supplied record's catalog fields over the existing
// one. Identity and creation time are preserved: ID, ProductID and DateAdded
// never change on update.
func (p *CanonicalProduct) ApplyUpdate(in *CanonicalProduct, now time.Time) {
	id, productID, dateAdded := p.ID, p.ProductID, p.DateAdded
	*p = *in
	p.ID = id
	p.ProductID = productID
	p.DateAdded = dateAdded
	p.LastUpdated = now
}

// ContentEqual reports whether two records carry identical catalog content,
// ignoring the row identity and timestamp columns.
func (p *CanonicalProduct) ContentEqual(other *CanonicalProduct) bool {
	a, b := *p, *other
	a.ID, b.ID = uuid.Nil, uuid.Nil
	a.DateAdded, b.DateAdded = time.Time{}, time.Time{}
	a.LastUpdated, b.LastUpdated = time.Time{}, time.Time{}
	aj, _ := json.Marshal(a)
	bj, _ := json.Marshal(b)
	return string(aj) == string(bj)
}
