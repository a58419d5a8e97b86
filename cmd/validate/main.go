// Command validate cross-checks a processed Parquet directory against the
// raw CSV directory it was produced from. It re-normalizes every raw file
// with the same domain package the ETL uses and compares the result to the
// Parquet contents: station coverage, row counts, and field values.
//
// Usage:
//
//	go run ./cmd/validate -raw-dir data/raw/2025 -processed-dir data/processed/2025
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/gsod-archive-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/gsod-archive-etl/internal/adapter/parquetfile"
	"github.com/couchcryptid/gsod-archive-etl/internal/domain"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	rawDir := flag.String("raw-dir", "", "directory containing raw GSOD station CSVs")
	processedDir := flag.String("processed-dir", "", "directory containing processed Parquet files")
	flag.Parse()

	if *rawDir == "" || *processedDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*rawDir, *processedDir))
}

func run(rawDir, processedDir string) int {
	fmt.Println("=== GSOD Archive Integrity Validation ===")
	fmt.Println()

	tables, err := normalizeRawDir(rawDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: normalize raw directory: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateStationCoverage(tables, processedDir),
		validateRowParity(tables, processedDir),
		validateValues(tables, processedDir),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-36s %s\n", p.name, status)
		for _, e := range p.errors {
			fmt.Printf("      - %s\n", e)
		}
	}

	if !allPassed {
		return 1
	}
	fmt.Println()
	fmt.Println("All phases passed.")
	return 0
}

// normalizeRawDir replays normalization over every raw CSV, keyed by
// station id. Files that fail to read or normalize are skipped the same way
// the ETL skips them.
func normalizeRawDir(rawDir string) (map[string]domain.StationTable, error) {
	source := csvfile.NewSource(rawDir)
	files, err := source.List()
	if err != nil {
		return nil, err
	}

	tables := make(map[string]domain.StationTable, len(files))
	for _, file := range files {
		station := strings.TrimSuffix(filepath.Base(file), csvfile.Extension)
		raw, err := source.Read(file)
		if err != nil {
			fmt.Printf("  skipping %s: %v\n", station, err)
			continue
		}
		table, err := domain.Normalize(raw, station)
		if err != nil {
			fmt.Printf("  skipping %s: %v\n", station, err)
			continue
		}
		tables[station] = table
	}
	fmt.Printf("  normalized %d raw station files\n", len(tables))
	return tables, nil
}

// validateStationCoverage checks that every non-empty normalized table has
// a Parquet file, and that no Parquet file exists for an unknown station.
func validateStationCoverage(tables map[string]domain.StationTable, processedDir string) *phase {
	p := &phase{name: "station coverage"}

	for station, table := range tables {
		path := filepath.Join(processedDir, station+parquetfile.Extension)
		_, err := os.Stat(path)
		switch {
		case table.Empty() && err == nil:
			p.errorf("station %s: parquet exists but normalization yields no rows", station)
		case !table.Empty() && err != nil:
			p.errorf("station %s: missing parquet %s", station, path)
		}
	}

	entries, err := os.ReadDir(processedDir)
	if err != nil {
		p.errorf("read processed dir: %v", err)
		return p
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), parquetfile.Extension) {
			continue
		}
		station := strings.TrimSuffix(e.Name(), parquetfile.Extension)
		if _, ok := tables[station]; !ok {
			p.errorf("parquet %s has no raw counterpart", e.Name())
		}
	}
	return p
}

// validateRowParity checks row counts per station.
func validateRowParity(tables map[string]domain.StationTable, processedDir string) *phase {
	p := &phase{name: "row parity"}

	for station, table := range tables {
		if table.Empty() {
			continue
		}
		rows, err := parquetfile.ReadTable(filepath.Join(processedDir, station+parquetfile.Extension))
		if err != nil {
			p.errorf("station %s: %v", station, err)
			continue
		}
		if len(rows) != len(table.Rows) {
			p.errorf("station %s: %d parquet rows, %d normalized rows", station, len(rows), len(table.Rows))
		}
	}
	return p
}

// validateValues compares every field of every row, in order.
func validateValues(tables map[string]domain.StationTable, processedDir string) *phase {
	p := &phase{name: "field values"}

	for station, table := range tables {
		if table.Empty() {
			continue
		}
		rows, err := parquetfile.ReadTable(filepath.Join(processedDir, station+parquetfile.Extension))
		if err != nil || len(rows) != len(table.Rows) {
			continue // already reported by row parity
		}
		for i, want := range table.Rows {
			got := rows[i]
			if !got.Date.Equal(want.Date) {
				p.errorf("station %s row %d: date %s != %s", station, i, got.Date, want.Date)
			}
			if got.StationID != station {
				p.errorf("station %s row %d: station_id %q", station, i, got.StationID)
			}
			if !readingsEqual(got.Temp, want.Temp) ||
				!readingsEqual(got.MaxTemp, want.MaxTemp) ||
				!readingsEqual(got.MinTemp, want.MinTemp) {
				p.errorf("station %s row %d: reading mismatch", station, i)
			}
		}
	}
	return p
}

func readingsEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
