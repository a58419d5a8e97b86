// Package csvfile reads raw GSOD station CSVs from the input directory.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/couchcryptid/gsod-archive-etl/internal/domain"
)

// Extension is the input file extension the pipeline accepts.
const Extension = ".csv"

// Source lists and reads station CSVs from a fixed input directory.
// It implements pipeline.Source.
type Source struct {
	dir string
}

// NewSource creates a Source over the given input directory.
func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

// List returns the station CSV files directly under the input directory,
// sorted by name for deterministic processing order. Subdirectories and
// files with other extensions are ignored. A missing directory is an error;
// the caller treats it as a fatal misconfiguration for the run.
func (s *Source) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list input directory %s: %w", s.dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Extension) {
			continue
		}
		files = append(files, filepath.Join(s.dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Read parses one station CSV into a raw table keyed by header name.
// Rows shorter than the header leave the tail columns unset; extra cells
// past the header are dropped.
func (s *Source) Read(file string) (domain.RawTable, error) {
	f, err := os.Open(file)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("read csv %s: %w", file, err)
	}
	if len(rows) == 0 {
		return domain.RawTable{}, nil
	}

	header := rows[0]
	table := domain.RawTable{Columns: header}
	for _, row := range rows[1:] {
		rec := make(domain.RawRecord, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		table.Rows = append(table.Rows, rec)
	}
	return table, nil
}
