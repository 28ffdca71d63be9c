package engine

import (
	"unsafe"
)

// symbols holds the C API functions bound from libduckdb. Handles travel as
// uintptr; pointers that C writes through or frees use unsafe.Pointer.
type symbols struct {
	libraryVersion func() string

	destroyValue func(v unsafe.Pointer) // duckdb_value*
	free         func(p unsafe.Pointer)

	getBool   func(v uintptr) bool
	getInt8   func(v uintptr) int8
	getUint8  func(v uintptr) uint8
	getInt16  func(v uintptr) int16
	getUint16 func(v uintptr) uint16
	getInt32  func(v uintptr) int32
	getUint32 func(v uintptr) uint32
	getInt64  func(v uintptr) int64
	getUint64 func(v uintptr) uint64
	getFloat  func(v uintptr) float32
	getDouble func(v uintptr) float64

	getListSize  func(v uintptr) uint64
	getListChild func(v uintptr, index uint64) uintptr
	isNullValue  func(v uintptr) bool
	getValueType func(v uintptr) uintptr
	getTypeID    func(t uintptr) int32
	getVarchar   func(v uintptr) unsafe.Pointer // char*

	createBool          func(b bool) uintptr
	createInt8          func(x int8) uintptr
	createUint8         func(x uint8) uintptr
	createInt16         func(x int16) uintptr
	createUint16        func(x uint16) uintptr
	createInt32         func(x int32) uintptr
	createUint32        func(x uint32) uintptr
	createInt64         func(x int64) uintptr
	createUint64        func(x uint64) uintptr
	createFloat         func(x float32) uintptr
	createDouble        func(x float64) uintptr
	createVarcharLength func(s string, n uint64) uintptr
	createNullValue     func() uintptr
	createLogicalType   func(id int32) uintptr
	destroyLogicalType  func(t unsafe.Pointer) // duckdb_logical_type*
	createListValue     func(t uintptr, values unsafe.Pointer, n uint64) uintptr
}

type binding struct {
	fptr any
	name string
}

func (s *symbols) bindings() []binding {
	return []binding{
		{&s.libraryVersion, "duckdb_library_version"},
		{&s.destroyValue, "duckdb_destroy_value"},
		{&s.free, "duckdb_free"},
		{&s.getBool, "duckdb_get_bool"},
		{&s.getInt8, "duckdb_get_int8"},
		{&s.getUint8, "duckdb_get_uint8"},
		{&s.getInt16, "duckdb_get_int16"},
		{&s.getUint16, "duckdb_get_uint16"},
		{&s.getInt32, "duckdb_get_int32"},
		{&s.getUint32, "duckdb_get_uint32"},
		{&s.getInt64, "duckdb_get_int64"},
		{&s.getUint64, "duckdb_get_uint64"},
		{&s.getFloat, "duckdb_get_float"},
		{&s.getDouble, "duckdb_get_double"},
		{&s.getListSize, "duckdb_get_list_size"},
		{&s.getListChild, "duckdb_get_list_child"},
		{&s.isNullValue, "duckdb_is_null_value"},
		{&s.getValueType, "duckdb_get_value_type"},
		{&s.getTypeID, "duckdb_get_type_id"},
		{&s.getVarchar, "duckdb_get_varchar"},
		{&s.createBool, "duckdb_create_bool"},
		{&s.createInt8, "duckdb_create_int8"},
		{&s.createUint8, "duckdb_create_uint8"},
		{&s.createInt16, "duckdb_create_int16"},
		{&s.createUint16, "duckdb_create_uint16"},
		{&s.createInt32, "duckdb_create_int32"},
		{&s.createUint32, "duckdb_create_uint32"},
		{&s.createInt64, "duckdb_create_int64"},
		{&s.createUint64, "duckdb_create_uint64"},
		{&s.createFloat, "duckdb_create_float"},
		{&s.createDouble, "duckdb_create_double"},
		{&s.createVarcharLength, "duckdb_create_varchar_length"},
		{&s.createNullValue, "duckdb_create_null_value"},
		{&s.createLogicalType, "duckdb_create_logical_type"},
		{&s.destroyLogicalType, "duckdb_destroy_logical_type"},
		{&s.createListValue, "duckdb_create_list_value"},
	}
}
