// Package errors provides structured error types for duckdb-value.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes context: element path, Go/SQL type names, and cause chain.
//
// Value itself never returns errors. They appear at the fallible edges: loading
// libduckdb, binding its symbols, and turning Go values or literals into values.
//
//	err := errors.New(errors.PhaseConstruct, errors.KindTypeMismatch).
//		Path("2").
//		GoType("string").
//		SQLType("BIGINT").
//		Detail("list elements must share one type").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Overflow(errors.PhaseParse, nil, "300", "TINYINT")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
