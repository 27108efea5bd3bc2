package catalog

import (
	"testing"

	"catalog-sync-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRow(id, name string) SourceRow {
	return SourceRow{
		FieldProductID: id,
		FieldName:      name,
		RowKey:         "5",
	}
}

func TestValidateRow_Valid(t *testing.T) {
	assert.Nil(t, ValidateRow(makeRow("JW-001", "Gold Ring")))
}

func TestValidateRow_MissingID(t *testing.T) {
	diag := ValidateRow(makeRow("", "Gold Ring"))
	require.NotNil(t, diag)
	assert.Equal(t, models.ErrCodeMissingID, diag.Code)
	assert.Equal(t, 5, diag.Row)
}

func TestValidateRow_CommentRow(t *testing.T) {
	diag := ValidateRow(makeRow("# disabled until restock", "Gold Ring"))
	require.NotNil(t, diag)
	assert.Equal(t, models.ErrCodeCommentRow, diag.Code)
}

func TestValidateRow_SentinelRows(t *testing.T) {
	for _, id := range []string{"--- SECTION: Rings ---", "SUMMARY", "Note: check prices"} {
		diag := ValidateRow(makeRow(id, "anything"))
		require.NotNil(t, diag, "id %q should be skipped", id)
		assert.Equal(t, models.ErrCodeSentinelRow, diag.Code)
	}
}

func TestValidateRow_MissingName(t *testing.T) {
	diag := ValidateRow(makeRow("JW-001", ""))
	require.NotNil(t, diag)
	assert.Equal(t, models.ErrCodeMissingName, diag.Code)
	assert.Equal(t, FieldName, diag.Field)
}
