// Package types defines TypeID, the closed set of DuckDB logical type ids.
//
// TypeID values are numerically identical to the duckdb_type enumeration of
// the DuckDB C API so they can cross the foreign boundary without mapping.
package types
