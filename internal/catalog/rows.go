package catalog

import (
	"fmt"
	"strings"

	"catalog-sync-service/internal/models"
)

const commentMarker = "#"

// sentinelSubstrings mark section dividers and summary rows the catalog
// authors mix into the data area.
var sentinelSubstrings = []string{"SECTION", "SUMMARY", "Note:"}

// ValidateRow decides whether a source row can become a product. A nil
// return means the row is usable; otherwise the returned diagnostic explains
// the skip. Skips are recorded, never fatal: the batch continues.
func ValidateRow(row SourceRow) *models.SyncRowError {
	id := row[FieldProductID]
	rowNum := row.RowNumber()

	if id == "" {
		return &models.SyncRowError{
			Row:     rowNum,
			Field:   FieldProductID,
			Code:    models.ErrCodeMissingID,
			Message: "row has no product identifier",
		}
	}
	if strings.HasPrefix(id, commentMarker) {
		return &models.SyncRowError{
			Row:     rowNum,
			Field:   FieldProductID,
			Code:    models.ErrCodeCommentRow,
			Message: fmt.Sprintf("identifier %q is a comment row", id),
		}
	}
	for _, sentinel := range sentinelSubstrings {
		if strings.Contains(id, sentinel) {
			return &models.SyncRowError{
				Row:     rowNum,
				Field:   FieldProductID,
				Code:    models.ErrCodeSentinelRow,
				Message: fmt.Sprintf("identifier %q matches sentinel %q", id, sentinel),
			}
		}
	}
	if row[FieldName] == "" {
		return &models.SyncRowError{
			Row:     rowNum,
			Field:   FieldName,
			Code:    models.ErrCodeMissingName,
			Message: fmt.Sprintf("product %q has no name", id),
		}
	}
	return nil
}
