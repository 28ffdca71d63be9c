// Package duckdbvalue provides owned, leak-free access to DuckDB values
// through the DuckDB C API.
//
// A DuckDB value (duckdb_value) is an opaque, dynamically typed handle that
// must be released with duckdb_destroy_value exactly once. This module wraps
// such handles in value.Value, which owns the handle, exposes typed
// accessors and releases it on Close.
//
// # Architecture Overview
//
//	duckdbvalue/         Handle types and the foreign layer interfaces
//	├── value/           Value: ownership, accessors, lists, rendering
//	├── types/           TypeID, the duckdb_type enumeration
//	├── engine/          Foreign layers: libduckdb via purego, in-memory Local
//	├── resource/        Handle table used for tracking and the Local engine
//	├── build/           Go values to DuckDB values
//	├── errors/          Structured error types
//	└── cmd/duckval/     Inspection CLI
//
// # Quick Start
//
//	lib, err := engine.Open(engine.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer lib.Close()
//
//	v := value.Wrap(lib, lib.CreateInt64(42))
//	defer v.Close()
//
//	if v.LogicalTypeID() == types.BigInt {
//	    fmt.Println(v.Int64()) // 42
//	}
//	fmt.Println(v) // "42"
//
// # Ownership
//
// value.Wrap takes ownership of the handle. The caller must not use or
// destroy the handle afterwards. List children returned by ToSlice are
// independent values and must be closed separately:
//
//	children := list.ToSlice()
//	defer value.CloseAll(children)
//
// Values are not safe for concurrent use.
package duckdbvalue
