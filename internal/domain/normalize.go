package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Source column names in GSOD daily CSV exports.
const (
	colDate = "DATE"
	colTemp = "TEMP"
	colMax  = "MAX"
	colMin  = "MIN"
)

var requiredColumns = []string{colDate, colTemp, colMax, colMin}

// dateLayouts lists the date encodings observed in GSOD exports.
var dateLayouts = []string{"2006-01-02", "20060102"}

// SchemaError reports required columns absent from a source file. The whole
// file is rejected before any row is processed.
type SchemaError struct {
	StationID string
	Missing   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("station %s: source file missing required columns: %s",
		e.StationID, strings.Join(e.Missing, ", "))
}

// Normalize converts a raw station table into a typed StationTable.
//
// A row is retained iff its DATE parses; unparseable numeric readings
// become nil and do not drop the row. Output order equals input order minus
// the dropped rows. Every retained row is stamped with stationID.
func Normalize(raw RawTable, stationID string) (StationTable, error) {
	if missing := missingColumns(raw.Columns); len(missing) > 0 {
		return StationTable{}, &SchemaError{StationID: stationID, Missing: missing}
	}

	table := StationTable{StationID: stationID}
	for _, row := range raw.Rows {
		date, ok := parseDate(row[colDate])
		if !ok {
			continue
		}
		table.Rows = append(table.Rows, Observation{
			Date:      date,
			Temp:      parseReading(row[colTemp]),
			MaxTemp:   parseReading(row[colMax]),
			MinTemp:   parseReading(row[colMin]),
			StationID: stationID,
		})
	}
	return table, nil
}

func missingColumns(columns []string) []string {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}

	var missing []string
	for _, c := range requiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// parseDate parses a calendar date, trying each known GSOD layout.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseReading parses a numeric field, returning nil when the value is
// blank or malformed. nil is the missing-value marker, distinct from zero.
func parseReading(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
