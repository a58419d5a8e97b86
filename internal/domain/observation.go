package domain

import "time"

// RawRecord is one row of a source CSV, keyed by column name. Values are
// untyped text exactly as read from the file.
type RawRecord map[string]string

// RawTable is the untyped contents of one station CSV: the header columns
// in file order plus every data row.
type RawTable struct {
	Columns []string
	Rows    []RawRecord
}

// Observation is one normalized daily reading for a station. Numeric fields
// are pointers so that an unparseable reading is an explicit null rather
// than a sentinel value; parquet-go maps pointer fields to optional columns,
// so nulls survive a round trip through the archive format.
type Observation struct {
	Date      time.Time `parquet:"date,timestamp"`
	Temp      *float64  `parquet:"temp,optional"`
	MaxTemp   *float64  `parquet:"max_temp,optional"`
	MinTemp   *float64  `parquet:"min_temp,optional"`
	StationID string    `parquet:"station_id"`
}

// StationTable is the ordered set of observations normalized from one
// station file. It is built once by Normalize and never mutated after.
type StationTable struct {
	StationID string
	Rows      []Observation
}

// Empty reports whether the table has no retained rows. An empty table
// means "nothing to persist", not an error.
func (t StationTable) Empty() bool {
	return len(t.Rows) == 0
}
