package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveHeader_CanonicalNames(t *testing.T) {
	assert.Equal(t, FieldProductID, ResolveHeader("product_id"))
	assert.Equal(t, FieldName, ResolveHeader("name"))
	assert.Equal(t, FieldStockQuantity, ResolveHeader("stock_quantity"))
}

func TestResolveHeader_Synonyms(t *testing.T) {
	assert.Equal(t, FieldProductID, ResolveHeader("Article"))
	assert.Equal(t, FieldName, ResolveHeader("Product Name"))
	assert.Equal(t, FieldOriginalPrice, ResolveHeader("Old Price"))
	assert.Equal(t, FieldStockQuantity, ResolveHeader("Quantity"))
	assert.Equal(t, FieldReviewsCount, ResolveHeader("reviews"))
}

func TestResolveHeader_NormalizesWhitespaceAndMarkers(t *testing.T) {
	assert.Equal(t, FieldName, ResolveHeader("  Name  "))
	assert.Equal(t, FieldProductID, ResolveHeader("Product ID *"))
	assert.Equal(t, FieldCareInstructions, ResolveHeader("Care Instructions"))
}

func TestResolveHeader_MojibakeVariants(t *testing.T) {
	assert.Equal(t, FieldPrice, ResolveHeader("Price (₽)"))
	assert.Equal(t, FieldPrice, ResolveHeader("Price (â‚½)"))
	assert.Equal(t, FieldPrice, ResolveHeader("Цена"))
}

func TestResolveHeader_UnknownReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", ResolveHeader("warehouse_shelf"))
	assert.Equal(t, "", ResolveHeader(""))
}

func TestMapHeaders_Positional(t *testing.T) {
	mapped := MapHeaders([]string{"ID", "Product Name", "Mystery Column", "Price"})
	assert.Equal(t, []string{FieldProductID, FieldName, "", FieldPrice}, mapped)
}
