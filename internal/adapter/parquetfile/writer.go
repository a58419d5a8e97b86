// Package parquetfile serializes station tables to Parquet, one file per
// station, and reads them back for verification.
package parquetfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/couchcryptid/gsod-archive-etl/internal/domain"
)

// Extension is the output file extension.
const Extension = ".parquet"

// Writer serializes normalized station tables into the output directory.
// It implements pipeline.TableWriter.
type Writer struct {
	dir string
}

// NewWriter creates a Writer targeting the given output directory.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// PathFor returns the deterministic output path for a station. One file per
// station per run; a rerun overwrites it.
func (w *Writer) PathFor(stationID string) string {
	return filepath.Join(w.dir, stationID+Extension)
}

// Write serializes the table to PathFor(stationID), creating the output
// directory if absent. Column order and row order follow the table. On
// success the file is a complete Parquet file; any failure is returned
// wrapped with the station id and the partial file is left for the next
// run to overwrite.
func (w *Writer) Write(table domain.StationTable, stationID string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("station %s: create output directory: %w", stationID, err)
	}

	path := w.PathFor(stationID)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("station %s: create %s: %w", stationID, path, err)
	}

	pw := parquet.NewGenericWriter[domain.Observation](f)
	if _, err := pw.Write(table.Rows); err != nil {
		f.Close()
		return "", fmt.Errorf("station %s: write parquet: %w", stationID, err)
	}
	if err := pw.Close(); err != nil {
		f.Close()
		return "", fmt.Errorf("station %s: finalize parquet: %w", stationID, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("station %s: close %s: %w", stationID, path, err)
	}
	return path, nil
}

// ReadTable reads a station Parquet file back into observations, preserving
// row order. Used by cmd/validate and the round-trip tests.
func ReadTable(path string) ([]domain.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet %s: %w", path, err)
	}

	reader := parquet.NewGenericReader[domain.Observation](pf)
	defer reader.Close()

	var out []domain.Observation
	buf := make([]domain.Observation, 256)
	for {
		n, err := reader.Read(buf)
		out = append(out, buf[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read parquet %s: %w", path, err)
		}
		if n == 0 {
			break
		}
	}
	return out, nil
}
