package value

// Scalar accessors are generated from the table in internal/genaccessors.
// Each accessor assumes the value already has the matching type, which the
// caller establishes with LogicalTypeID or by construction. On a mismatch
// the result is defined by the foreign layer: DuckDB casts when it can and
// otherwise returns the minimum of the target type (the lowest finite
// value for floats, false for bool).
// Accessors on an empty Value return the zero value without a foreign call.

//go:generate go run ./internal/genaccessors -out accessors_gen.go
