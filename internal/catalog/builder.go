package catalog

import (
	"time"

	"catalog-sync-service/internal/models"
)

// Builder assembles validated CanonicalProduct records from coerced source
// rows.
type Builder struct {
	Policy    PricePolicy
	Delimiter string
}

// Build converts one source row into a canonical record. Identifier and
// name are re-checked defensively even though the validator runs first; a
// row failing here yields a diagnostic, not an error. DateAdded/LastUpdated
// are stamped with now; the store preserves DateAdded on update.
func (b Builder) Build(row SourceRow, now time.Time) (*models.CanonicalProduct, *models.SyncRowError) {
	if diag := ValidateRow(row); diag != nil {
		return nil, diag
	}

	price := b.Policy.ResolvePrice(ParseFloat(row[FieldPrice]), row[FieldCategory])
	isSale := ParseBool(row[FieldIsSale])
	originalPrice := b.Policy.ResolveOriginalPrice(price, ParseFloat(row[FieldOriginalPrice]), isSale)

	colorsCell, sizesCell := ResolveColorSizeCells(row[FieldColors], row[FieldSizes], b.Delimiter)

	product := &models.CanonicalProduct{
		ProductID:        row[FieldProductID],
		Name:             row[FieldName],
		Category:         row[FieldCategory],
		Section:          row[FieldSection],
		Price:            price,
		OriginalPrice:    originalPrice,
		DiscountPercent:  ParseInt(row[FieldDiscountPercent]),
		Image:            row[FieldImage],
		Image2:           row[FieldImage2],
		Image3:           row[FieldImage3],
		Image4:           row[FieldImage4],
		Description:      row[FieldDescription],
		Material:         row[FieldMaterial],
		Weight:           row[FieldWeight],
		Colors:           SplitList(colorsCell, b.Delimiter),
		Sizes:            SplitList(sizesCell, b.Delimiter),
		Variants:         SplitList(row[FieldVariants], b.Delimiter),
		Style:            row[FieldStyle],
		Occasion:         row[FieldOccasion],
		Features:         SplitList(row[FieldFeatures], b.Delimiter),
		Rating:           ParseFloat(row[FieldRating]),
		ReviewsCount:     ParseInt(row[FieldReviewsCount]),
		InStock:          ParseBool(row[FieldInStock]),
		IsNew:            ParseBool(row[FieldIsNew]),
		IsSale:           isSale,
		CareInstructions: row[FieldCareInstructions],
		SKU:              row[FieldSKU],
		Brand:            row[FieldBrand],
		Collection:       row[FieldCollection],
		Tags:             SplitList(row[FieldTags], b.Delimiter),
		SeoTitle:         row[FieldSeoTitle],
		SeoDescription:   row[FieldSeoDescription],
		SeoKeywords:      SplitList(row[FieldSeoKeywords], b.Delimiter),
		StockQuantity:    ParseInt(row[FieldStockQuantity]),
		MinimumStock:     ParseInt(row[FieldMinimumStock]),
		CostPrice:        ParseFloat(row[FieldCostPrice]),
		DateAdded:        now,
		LastUpdated:      now,
	}

	return product, nil
}
