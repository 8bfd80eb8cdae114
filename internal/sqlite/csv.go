// Package sqlite implements the storage backend for the Vehicle Manager.
// This file provides CSV read/write helpers with atomic persistence.
package sqlite

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// readTable reads an entire CSV file. A missing file yields no rows and no
// error; every store starts out empty. Ragged rows are returned as-is and
// padded by the loader.
func readTable(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}

// writeTable atomically rewrites a CSV file using the temp-file, fsync,
// rename pattern. A failed write leaves the previous file untouched.
func writeTable(path string, rows [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".csv-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing rows: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// padRow extends a row with empty fields up to width. Hand-edited files may
// carry short rows; the original data tolerated them.
func padRow(row []string, width int) []string {
	for len(row) < width {
		row = append(row, "")
	}
	return row
}
