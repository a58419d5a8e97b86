package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gsodColumns() []string {
	return []string{"STATION", "DATE", "TEMP", "MAX", "MIN", "PRCP"}
}

func row(date, temp, maxT, minT string) RawRecord {
	return RawRecord{
		"STATION": "ignored",
		"DATE":    date,
		"TEMP":    temp,
		"MAX":     maxT,
		"MIN":     minT,
		"PRCP":    "0.00",
	}
}

func f(v float64) *float64 { return &v }

func TestNormalize(t *testing.T) {
	t.Run("valid rows", func(t *testing.T) {
		raw := RawTable{
			Columns: gsodColumns(),
			Rows: []RawRecord{
				row("2025-01-01", "5.0", "8.0", "2.0"),
				row("2025-01-02", "6.5", "9.1", "3.2"),
			},
		}

		table, err := Normalize(raw, "ABC123")
		require.NoError(t, err)
		require.Len(t, table.Rows, 2)

		first := table.Rows[0]
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), first.Date)
		assert.Equal(t, f(5.0), first.Temp)
		assert.Equal(t, f(8.0), first.MaxTemp)
		assert.Equal(t, f(2.0), first.MinTemp)
		assert.Equal(t, "ABC123", first.StationID)
	})

	t.Run("drops rows with unparseable dates", func(t *testing.T) {
		raw := RawTable{
			Columns: gsodColumns(),
			Rows: []RawRecord{
				row("2025-01-01", "5.0", "8.0", "2.0"),
				row("N/A", "6.0", "9.0", "3.0"),
				row("", "6.0", "9.0", "3.0"),
				row("2025-01-04", "7.0", "10.0", "4.0"),
			},
		}

		table, err := Normalize(raw, "ABC123")
		require.NoError(t, err)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), table.Rows[0].Date)
		assert.Equal(t, time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC), table.Rows[1].Date)
	})

	t.Run("retains rows with unparseable readings as nulls", func(t *testing.T) {
		raw := RawTable{
			Columns: gsodColumns(),
			Rows: []RawRecord{
				row("2025-01-01", "junk", "8.0", ""),
			},
		}

		table, err := Normalize(raw, "ABC123")
		require.NoError(t, err)
		require.Len(t, table.Rows, 1)

		obs := table.Rows[0]
		assert.Nil(t, obs.Temp)
		assert.Equal(t, f(8.0), obs.MaxTemp)
		assert.Nil(t, obs.MinTemp)
	})

	t.Run("accepts compact date layout", func(t *testing.T) {
		raw := RawTable{
			Columns: gsodColumns(),
			Rows:    []RawRecord{row("20250101", "5.0", "8.0", "2.0")},
		}

		table, err := Normalize(raw, "ABC123")
		require.NoError(t, err)
		require.Len(t, table.Rows, 1)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), table.Rows[0].Date)
	})

	t.Run("preserves input order", func(t *testing.T) {
		// Dates deliberately out of calendar order: the normalizer filters,
		// it never sorts.
		raw := RawTable{
			Columns: gsodColumns(),
			Rows: []RawRecord{
				row("2025-01-03", "1.0", "2.0", "0.0"),
				row("bogus", "1.0", "2.0", "0.0"),
				row("2025-01-01", "1.0", "2.0", "0.0"),
				row("2025-01-02", "1.0", "2.0", "0.0"),
			},
		}

		table, err := Normalize(raw, "ABC123")
		require.NoError(t, err)
		require.Len(t, table.Rows, 3)
		assert.Equal(t, 3, table.Rows[0].Date.Day())
		assert.Equal(t, 1, table.Rows[1].Date.Day())
		assert.Equal(t, 2, table.Rows[2].Date.Day())
	})

	t.Run("stamps station id on every row", func(t *testing.T) {
		raw := RawTable{
			Columns: gsodColumns(),
			Rows: []RawRecord{
				row("2025-01-01", "1.0", "2.0", "0.0"),
				row("2025-01-02", "1.0", "2.0", "0.0"),
			},
		}

		table, err := Normalize(raw, "010010-99999")
		require.NoError(t, err)
		assert.Equal(t, "010010-99999", table.StationID)
		for _, obs := range table.Rows {
			assert.Equal(t, "010010-99999", obs.StationID)
		}
	})

	t.Run("empty input yields empty table", func(t *testing.T) {
		table, err := Normalize(RawTable{Columns: gsodColumns()}, "ABC123")
		require.NoError(t, err)
		assert.True(t, table.Empty())
	})

	t.Run("all dates invalid yields empty table", func(t *testing.T) {
		raw := RawTable{
			Columns: gsodColumns(),
			Rows:    []RawRecord{row("N/A", "1.0", "2.0", "0.0")},
		}

		table, err := Normalize(raw, "ABC123")
		require.NoError(t, err)
		assert.True(t, table.Empty())
	})

	t.Run("sentinel 9999.9 passes through", func(t *testing.T) {
		raw := RawTable{
			Columns: gsodColumns(),
			Rows:    []RawRecord{row("2025-01-01", "9999.9", "8.0", "2.0")},
		}

		table, err := Normalize(raw, "ABC123")
		require.NoError(t, err)
		require.Len(t, table.Rows, 1)
		assert.Equal(t, f(9999.9), table.Rows[0].Temp)
	})
}

func TestNormalize_SchemaError(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		missing []string
	}{
		{"no DATE", []string{"STATION", "TEMP", "MAX", "MIN"}, []string{"DATE"}},
		{"no TEMP", []string{"DATE", "MAX", "MIN"}, []string{"TEMP"}},
		{"no MAX", []string{"DATE", "TEMP", "MIN"}, []string{"MAX"}},
		{"no MIN", []string{"DATE", "TEMP", "MAX"}, []string{"MIN"}},
		{"empty header", nil, []string{"DATE", "TEMP", "MAX", "MIN"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := RawTable{
				Columns: tt.columns,
				Rows:    []RawRecord{row("2025-01-01", "1.0", "2.0", "0.0")},
			}

			table, err := Normalize(raw, "ABC123")
			require.Error(t, err)

			var schemaErr *SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Equal(t, "ABC123", schemaErr.StationID)
			assert.Equal(t, tt.missing, schemaErr.Missing)
			assert.True(t, table.Empty())
		})
	}
}

func TestParseReading(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *float64
	}{
		{"plain float", "5.0", f(5.0)},
		{"negative", "-12.3", f(-12.3)},
		{"integer", "42", f(42)},
		{"surrounding whitespace", " 7.5 ", f(7.5)},
		{"empty", "", nil},
		{"junk", "abc", nil},
		{"partial number", "5.0C", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseReading(tt.input))
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"iso", "2025-01-01", true},
		{"compact", "20250101", true},
		{"whitespace", " 2025-01-01 ", true},
		{"literal N/A", "N/A", false},
		{"empty", "", false},
		{"garbage", "yesterday", false},
		{"impossible date", "2025-13-40", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := parseDate(tt.input)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
