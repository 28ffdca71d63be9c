package duckdbvalue

import (
	"unsafe"

	"github.com/wippyai/duckdb-value/types"
)

// ValueHandle is a duckdb_value. Zero is the empty handle.
type ValueHandle uintptr

// LogicalTypeHandle is a duckdb_logical_type. Zero is the empty handle.
type LogicalTypeHandle uintptr

// API is the part of the DuckDB C API that value.Value calls into.
// Method names follow the C functions without the duckdb_ prefix.
type API interface {
	// DestroyValue releases *v and sets it to zero.
	DestroyValue(v *ValueHandle)
	// Free releases memory allocated by the library, such as GetVarchar results.
	Free(p unsafe.Pointer)

	GetBool(v ValueHandle) bool
	GetInt8(v ValueHandle) int8
	GetUint8(v ValueHandle) uint8
	GetInt16(v ValueHandle) int16
	GetUint16(v ValueHandle) uint16
	GetInt32(v ValueHandle) int32
	GetUint32(v ValueHandle) uint32
	GetInt64(v ValueHandle) int64
	GetUint64(v ValueHandle) uint64
	GetFloat(v ValueHandle) float32
	GetDouble(v ValueHandle) float64

	GetListSize(v ValueHandle) uint64
	// GetListChild returns a new value that the caller must destroy.
	GetListChild(v ValueHandle, index uint64) ValueHandle

	IsNullValue(v ValueHandle) bool
	// GetValueType returns a logical type borrowed from v. It stays valid
	// while v lives and must not be destroyed.
	GetValueType(v ValueHandle) LogicalTypeHandle
	GetTypeID(t LogicalTypeHandle) types.TypeID

	// GetVarchar renders v into a NUL-terminated buffer that must be
	// released with Free.
	GetVarchar(v ValueHandle) unsafe.Pointer
}

// Constructor creates values. Every returned handle is owned by the caller.
type Constructor interface {
	CreateBool(b bool) ValueHandle
	CreateInt8(x int8) ValueHandle
	CreateUint8(x uint8) ValueHandle
	CreateInt16(x int16) ValueHandle
	CreateUint16(x uint16) ValueHandle
	CreateInt32(x int32) ValueHandle
	CreateUint32(x uint32) ValueHandle
	CreateInt64(x int64) ValueHandle
	CreateUint64(x uint64) ValueHandle
	CreateFloat(x float32) ValueHandle
	CreateDouble(x float64) ValueHandle
	CreateVarchar(s string) ValueHandle
	CreateNullValue() ValueHandle

	CreateLogicalType(id types.TypeID) LogicalTypeHandle
	DestroyLogicalType(t *LogicalTypeHandle)
	// CreateListValue copies values into a new LIST of elem. The inputs
	// remain owned by the caller.
	CreateListValue(elem LogicalTypeHandle, values []ValueHandle) ValueHandle
}

// Library is a complete foreign layer.
type Library interface {
	API
	Constructor
}
