package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTableMissingFile(t *testing.T) {
	rows, err := readTable(filepath.Join(t.TempDir(), "absent.csv"))
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestReadTableToleratesRaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.csv")
	require.NoError(t, writeTable(path, [][]string{
		{"a", "b", "c"},
		{"1"},
		{"2", "3", "4", "5"},
	}))

	rows, err := readTable(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1"}, rows[1])
	assert.Equal(t, []string{"2", "3", "4", "5"}, rows[2])
}

func TestWriteTableRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.csv")
	in := [][]string{
		{"vehicle_id", "comments"},
		{"TRUCK-1", "quoted, field"},
		{"VAN-2", "line\nbreak"},
	}
	require.NoError(t, writeTable(path, in))

	out, err := readTable(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestWriteTableReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.csv")
	require.NoError(t, writeTable(path, [][]string{{"old"}}))
	require.NoError(t, writeTable(path, [][]string{{"new"}}))

	out, err := readTable(path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"new"}}, out)

	// No stray temp files left behind.
	leftovers, err := filepath.Glob(filepath.Join(dir, ".csv-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestPadRow(t *testing.T) {
	assert.Equal(t, []string{"a", "", ""}, padRow([]string{"a"}, 3))
	assert.Equal(t, []string{"a", "b"}, padRow([]string{"a", "b"}, 2))
	assert.Equal(t, []string{"a", "b", "c"}, padRow([]string{"a", "b", "c"}, 2))
}
