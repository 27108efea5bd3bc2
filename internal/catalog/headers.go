package catalog

import "strings"

// Canonical field names produced by the header mapper. SourceRow values are
// keyed by these; raw headers never leak past this boundary.
const (
	FieldProductID        = "product_id"
	FieldName             = "name"
	FieldCategory         = "category"
	FieldSection          = "section"
	FieldPrice            = "price"
	FieldOriginalPrice    = "original_price"
	FieldDiscountPercent  = "discount_percent"
	FieldImage            = "image"
	FieldImage2           = "image2"
	FieldImage3           = "image3"
	FieldImage4           = "image4"
	FieldDescription      = "description"
	FieldMaterial         = "material"
	FieldWeight           = "weight"
	FieldColors           = "colors"
	FieldSizes            = "sizes"
	FieldVariants         = "variants"
	FieldStyle            = "style"
	FieldOccasion         = "occasion"
	FieldFeatures         = "features"
	FieldRating           = "rating"
	FieldReviewsCount     = "reviews_count"
	FieldInStock          = "in_stock"
	FieldIsNew            = "is_new"
	FieldIsSale           = "is_sale"
	FieldCareInstructions = "care_instructions"
	FieldSKU              = "sku"
	FieldBrand            = "brand"
	FieldCollection       = "collection"
	FieldTags             = "tags"
	FieldSeoTitle         = "seo_title"
	FieldSeoDescription   = "seo_description"
	FieldSeoKeywords      = "seo_keywords"
	FieldStockQuantity    = "stock_quantity"
	FieldMinimumStock     = "minimum_stock"
	FieldCostPrice        = "cost_price"
)

// RowKey tracks the source row number inside a SourceRow for error reporting
const RowKey = "_row"

// headerSynonyms maps normalized raw headers to canonical field names. The
// catalog spreadsheets arrive with inconsistent naming (spaces vs
// underscores) and occasionally mojibake headers where the authoring tool
// mangled the currency symbol or Cyrillic labels; the known corrupted
// variants are listed verbatim.
var headerSynonyms = map[string]string{
	"product_id": FieldProductID,
	"productid":  FieldProductID,
	"id":         FieldProductID,
	"article":    FieldProductID,

	"name":         FieldName,
	"product_name": FieldName,
	"title":        FieldName,

	"category":     FieldCategory,
	"product_type": FieldCategory,
	"type":         FieldCategory,

	"section":    FieldSection,
	"department": FieldSection,

	"price":        FieldPrice,
	"price_(rub)":  FieldPrice,
	"price_(₽)":    FieldPrice,
	"price_(â‚½)":  FieldPrice,
	"цена":         FieldPrice,
	"ð¦ðµð½ð°":     FieldPrice,

	"original_price": FieldOriginalPrice,
	"old_price":      FieldOriginalPrice,
	"compare_price":  FieldOriginalPrice,

	"discount_percent": FieldDiscountPercent,
	"discount":         FieldDiscountPercent,
	"discount_%":       FieldDiscountPercent,

	"image":       FieldImage,
	"image_url":   FieldImage,
	"photo":       FieldImage,
	"image2":      FieldImage2,
	"image_2":     FieldImage2,
	"image3":      FieldImage3,
	"image_3":     FieldImage3,
	"image4":      FieldImage4,
	"image_4":     FieldImage4,

	"description": FieldDescription,
	"material":    FieldMaterial,
	"metal":       FieldMaterial,
	"weight":      FieldWeight,

	"colors": FieldColors,
	"color":  FieldColors,
	"sizes":  FieldSizes,
	"size":   FieldSizes,

	"variants": FieldVariants,
	"style":    FieldStyle,
	"occasion": FieldOccasion,
	"features": FieldFeatures,

	"rating":        FieldRating,
	"reviews_count": FieldReviewsCount,
	"reviews":       FieldReviewsCount,

	"in_stock":     FieldInStock,
	"availability": FieldInStock,
	"is_new":       FieldIsNew,
	"new":          FieldIsNew,
	"is_sale":      FieldIsSale,
	"sale":         FieldIsSale,

	"care_instructions": FieldCareInstructions,
	"care":              FieldCareInstructions,

	"sku":        FieldSKU,
	"brand":      FieldBrand,
	"collection": FieldCollection,
	"tags":       FieldTags,

	"seo_title":       FieldSeoTitle,
	"seo_description": FieldSeoDescription,
	"seo_keywords":    FieldSeoKeywords,

	"stock_quantity": FieldStockQuantity,
	"quantity":       FieldStockQuantity,
	"stock":          FieldStockQuantity,
	"minimum_stock":  FieldMinimumStock,
	"min_stock":      FieldMinimumStock,

	"cost_price": FieldCostPrice,
	"cost":       FieldCostPrice,
}

// ResolveHeader maps one raw spreadsheet header to its canonical field name.
// Returns "" when the header is unknown; unmapped headers are dropped, never
// propagated into the canonical record.
func ResolveHeader(raw string) string {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.TrimSuffix(norm, " *")
	if field, ok := headerSynonyms[norm]; ok {
		return field
	}
	norm = strings.ReplaceAll(norm, " ", "_")
	return headerSynonyms[norm]
}

// MapHeaders resolves a full header row. The result is positional: entry i
// holds the canonical field for column i, or "" when column i is unmapped.
func MapHeaders(raw []string) []string {
	mapped := make([]string, len(raw))
	for i, h := range raw {
		mapped[i] = ResolveHeader(h)
	}
	return mapped
}
