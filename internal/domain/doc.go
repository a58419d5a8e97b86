// Package domain models NOAA Global Surface Summary of the Day (GSOD)
// station observations.
//
// # Data Source
//
// GSOD daily files are published per station and year by NOAA NCEI at
// https://www.ncei.noaa.gov/data/global-summary-of-the-day/. Each CSV holds
// one row per calendar day for a single station. The file's base name
// (minus the .csv extension) is the station identifier, a USAF-WBAN pair
// such as "01001099999" or "010010-99999" depending on the export vintage.
//
// # Column Conventions
//
// The pipeline consumes exactly four source columns and ignores the rest
// (STATION, LATITUDE, PRCP, and so on):
//
//	DATE  calendar date, "2006-01-02" in current exports, "20060102" in
//	      some older ones. A row whose DATE does not parse is dropped.
//	TEMP  mean temperature for the day.
//	MAX   maximum temperature for the day.
//	MIN   minimum temperature for the day.
//
// Numeric fields that are blank or malformed become null observations; the
// row itself is kept as long as its date is valid.
//
// GSOD encodes "no reading" for temperature columns as the sentinel 9999.9.
// The sentinel parses as a legitimate float and is retained as-is; filtering
// sentinel readings is a query-time concern, not a normalization concern.
//
// # Output Schema
//
// Normalized tables carry five columns in fixed order: date, temp,
// max_temp, min_temp, station_id. The station_id value is constant across
// a table and comes from the source file name, never from file contents.
package domain
