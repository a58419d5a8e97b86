// Package pipeline drives the sequential batch run: discover station CSVs,
// normalize each one, write it to local Parquet, and publish it to the
// archive bucket. One file is fully processed before the next begins, and
// no file's failure aborts the batch.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/gsod-archive-etl/internal/domain"
	"github.com/couchcryptid/gsod-archive-etl/internal/observability"
)

// Source lists and reads raw station files from the input directory.
type Source interface {
	List() ([]string, error)
	Read(file string) (domain.RawTable, error)
}

// TableWriter serializes a normalized station table to local columnar
// storage and returns the written path.
type TableWriter interface {
	Write(table domain.StationTable, stationID string) (string, error)
}

// Publisher transfers a local file to the archive under the given key.
type Publisher interface {
	Publish(ctx context.Context, localPath, key string) error
}

// Terminal per-file outcomes. Used as the metrics label and summary keys.
const (
	OutcomePublished      = "published"
	OutcomeSkippedEmpty   = "skipped_empty"
	OutcomeReadError      = "read_error"
	OutcomeSchemaError    = "schema_error"
	OutcomeNormalizeError = "normalize_error"
	OutcomeWriteError     = "write_error"
	OutcomePublishError   = "publish_error"
)

// Summary reports the totals for one batch run.
type Summary struct {
	Discovered int
	Selected   int
	Outcomes   map[string]int
}

// Failed returns the number of files that ended in any error outcome.
// Skipped-empty files are not failures.
func (s Summary) Failed() int {
	return s.Outcomes[OutcomeReadError] +
		s.Outcomes[OutcomeSchemaError] +
		s.Outcomes[OutcomeNormalizeError] +
		s.Outcomes[OutcomeWriteError] +
		s.Outcomes[OutcomePublishError]
}

// Runner executes one batch pass over the input directory.
type Runner struct {
	source    Source
	writer    TableWriter
	publisher Publisher
	keyPrefix string
	fileLimit int
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
}

// New creates a Runner. fileLimit caps how many name-sorted files one run
// processes; zero disables the cap.
func New(source Source, writer TableWriter, publisher Publisher, keyPrefix string, fileLimit int, logger *slog.Logger, metrics *observability.Metrics) *Runner {
	return &Runner{
		source:    source,
		writer:    writer,
		publisher: publisher,
		keyPrefix: keyPrefix,
		fileLimit: fileLimit,
		logger:    logger,
		metrics:   metrics,
		clock:     clockwork.NewRealClock(),
	}
}

// SetClock swaps the time source. Tests inject a fake clock for
// deterministic durations; passing nil resets to real time.
func (r *Runner) SetClock(c clockwork.Clock) {
	if c == nil {
		r.clock = clockwork.NewRealClock()
		return
	}
	r.clock = c
}

// Run discovers input files, applies the cap, and processes each file
// sequentially. Only an unavailable input directory returns an error; every
// per-file failure is logged, counted in the summary, and skipped over.
// Cancellation stops the run between files.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	start := r.clock.Now()

	files, err := r.source.List()
	if err != nil {
		return Summary{}, fmt.Errorf("input directory unavailable: %w", err)
	}

	summary := Summary{Discovered: len(files), Outcomes: map[string]int{}}
	if r.fileLimit > 0 && len(files) > r.fileLimit {
		files = files[:r.fileLimit]
	}
	summary.Selected = len(files)

	r.metrics.FilesDiscovered.Set(float64(summary.Discovered))
	r.metrics.FilesSelected.Set(float64(summary.Selected))
	r.logger.Info("batch started",
		"discovered", summary.Discovered,
		"selected", summary.Selected,
	)

	for _, file := range files {
		select {
		case <-ctx.Done():
			r.logger.Info("batch cancelled", "reason", ctx.Err())
			return summary, nil
		default:
		}

		outcome := r.processFile(ctx, file)
		summary.Outcomes[outcome]++
		r.metrics.FileOutcomes.WithLabelValues(outcome).Inc()
		r.metrics.FilesProcessed.Inc()
	}

	r.logger.Info("batch finished",
		"discovered", summary.Discovered,
		"selected", summary.Selected,
		"published", summary.Outcomes[OutcomePublished],
		"skipped_empty", summary.Outcomes[OutcomeSkippedEmpty],
		"failed", summary.Failed(),
		"duration", r.clock.Since(start),
	)
	return summary, nil
}

// processFile runs one file through parse, normalize, write, and publish,
// and returns the terminal outcome. Failures are handled here, at the
// per-file boundary, so a bad station never aborts the batch.
func (r *Runner) processFile(ctx context.Context, file string) string {
	stationID := stationID(file)
	start := r.clock.Now()
	r.logger.Info("processing station", "station_id", stationID, "file", file)

	raw, err := r.source.Read(file)
	if err != nil {
		r.logger.Error("read failed", "station_id", stationID, "error", err)
		return OutcomeReadError
	}

	table, err := domain.Normalize(raw, stationID)
	if err != nil {
		var schemaErr *domain.SchemaError
		if errors.As(err, &schemaErr) {
			r.logger.Error("schema mismatch",
				"station_id", stationID,
				"missing_columns", strings.Join(schemaErr.Missing, ","),
			)
			return OutcomeSchemaError
		}
		r.logger.Error("normalize failed", "station_id", stationID, "error", err)
		return OutcomeNormalizeError
	}

	r.metrics.RowsNormalized.Add(float64(len(table.Rows)))
	r.metrics.RowsDropped.Add(float64(len(raw.Rows) - len(table.Rows)))

	if table.Empty() {
		r.logger.Warn("no valid rows, skipping station", "station_id", stationID)
		return OutcomeSkippedEmpty
	}

	localPath, err := r.writer.Write(table, stationID)
	if err != nil {
		r.logger.Error("write failed", "station_id", stationID, "error", err)
		return OutcomeWriteError
	}
	r.logger.Info("saved parquet",
		"station_id", stationID,
		"path", localPath,
		"rows", len(table.Rows),
	)

	key := path.Join(r.keyPrefix, filepath.Base(localPath))
	pubStart := r.clock.Now()
	if err := r.publisher.Publish(ctx, localPath, key); err != nil {
		r.logger.Error("publish failed", "station_id", stationID, "key", key, "error", err)
		return OutcomePublishError
	}
	r.metrics.PublishDuration.Observe(r.clock.Since(pubStart).Seconds())
	r.metrics.FileDuration.Observe(r.clock.Since(start).Seconds())

	r.logger.Info("published station archive", "station_id", stationID, "key", key)
	return OutcomePublished
}

// stationID derives the station identifier from a source file path: the
// base name minus its extension.
func stationID(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
