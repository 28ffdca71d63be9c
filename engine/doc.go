// Package engine provides the foreign layers behind value.Value.
//
// # Engines
//
//	DuckDB  - libduckdb loaded at runtime through purego, no cgo required
//	Local   - in-memory engine with DuckDB's ownership contract
//	Tracker - wraps any engine and keeps a ledger of live handles
//
// All three implement duckdbvalue.Library.
//
// # Loading libduckdb
//
// Open resolves every required symbol before binding any of them. A library
// missing functions fails with *errors.MissingSymbolsError listing all of
// them:
//
//	db, err := engine.Open(engine.Config{Path: "/opt/duckdb/libduckdb.so"})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
// # Ownership Contract
//
//	create_*, get_list_child   returns a value the caller must destroy
//	get_value_type             returns a type borrowed from the value
//	get_varchar                returns a buffer the caller must free
//	create_list_value          copies its inputs; they stay with the caller
//
// Local and Tracker record releases of unknown handles as violations and
// do not forward them.
package engine
