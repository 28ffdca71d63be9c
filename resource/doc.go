// Package resource provides handle tables for native resources.
//
// A table maps small integer handles to Go values, optionally keyed by a
// foreign representation (rep) such as a pointer returned by libduckdb. It
// backs the in-memory engine, where handles stand in for duckdb_value
// pointers, and the tracker, which records every handle a native library
// hands out so leaks and double releases can be reported.
//
// # Handle Table
//
//	table := resource.NewTable(resource.Options{})
//
//	// Insert a value, get a handle
//	handle := table.Insert(typeID, myValue)
//
//	// Register a foreign pointer
//	handle = table.InsertRep(typeID, uintptr(ptr), nil)
//	handle, ok := table.Lookup(uintptr(ptr))
//
//	// Remove and get value
//	value, ok := table.Remove(handle)
//
// # Borrows
//
// A borrowed resource cannot be removed until every borrow is returned.
// Remove on a borrowed handle fails and leaves the resource in place:
//
//	table.Borrow(handle)
//	_, ok := table.Remove(handle) // false
//	table.ReturnBorrow(handle)
//
// # Handle Reuse
//
// By default dropped handles are never handed out again, so a stale handle
// stays invalid forever. Options.ReuseHandles recycles slots instead.
//
// # Observers
//
// Register observers to track resource lifecycle events:
//
//	table.Subscribe(observer) // OnResourceEvent(resource.Event)
//
// Observers run synchronously on the goroutine that changed the table.
package resource
