package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOrderLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.jsonl")
	content := `{"orderNumber":"ORD-1","customerName":"Anna","total":100,"status":"PLACED","createdAt":"2026-08-20T10:00:00Z"}
{"orderNumber":"ORD-2","customerName":"Boris","total":200,"status":"DELIVERED","createdAt":"2026-08-21T10:00:00Z"}

`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	orders, err := ReadOrderLog(path)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD-1", orders[0].OrderNumber)
	assert.Equal(t, 200.0, orders[1].Total)
}

func TestReadOrderLog_MissingFileIsEmpty(t *testing.T) {
	orders, err := ReadOrderLog(filepath.Join(t.TempDir(), "absent.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestReadOrderLog_MalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{not json}\n"), 0644))

	_, err := ReadOrderLog(path)
	assert.Error(t, err)
}
