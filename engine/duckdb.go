package engine

import (
	"runtime"
	"unsafe"

	"go.uber.org/zap"

	duckdbvalue "github.com/wippyai/duckdb-value"
	"github.com/wippyai/duckdb-value/errors"
	"github.com/wippyai/duckdb-value/types"
)

// DuckDB is the C API of a loaded libduckdb. It implements
// duckdbvalue.Library; every call goes straight to the native function.
type DuckDB struct {
	sym     symbols
	path    string
	version string
	lib     uintptr
}

var _ duckdbvalue.Library = (*DuckDB)(nil)

// Open loads libduckdb and binds the value API. All symbols are checked
// before any is bound, so a library that is too old fails with a
// *errors.MissingSymbolsError naming every absent function.
func Open(cfg Config) (*DuckDB, error) {
	path := cfg.path()

	lib, err := dlopen(path)
	if err != nil {
		return nil, err
	}

	d := &DuckDB{path: path, lib: lib}
	bindings := d.sym.bindings()

	var missing []string
	for _, b := range bindings {
		if !dlsym(lib, b.name) {
			missing = append(missing, b.name)
		}
	}
	if len(missing) > 0 {
		if closeErr := dlclose(lib); closeErr != nil {
			Logger().Warn("close library after bind failure",
				zap.String("path", path),
				zap.Error(closeErr))
		}
		return nil, errors.NewMissingSymbolsError(path, missing)
	}

	for _, b := range bindings {
		register(b.fptr, lib, b.name)
		debugf("bound %s", b.name)
	}

	d.version = d.sym.libraryVersion()
	Logger().Info("loaded libduckdb",
		zap.String("path", path),
		zap.String("version", d.version),
		zap.Int("symbols", len(bindings)))

	return d, nil
}

// Close unloads the library. No value created by it may be used afterwards.
func (d *DuckDB) Close() error {
	if d.lib == 0 {
		return nil
	}
	lib := d.lib
	d.lib = 0
	return dlclose(lib)
}

// Version returns duckdb_library_version.
func (d *DuckDB) Version() string { return d.version }

// Path returns the library path passed to dlopen.
func (d *DuckDB) Path() string { return d.path }

func (d *DuckDB) DestroyValue(v *duckdbvalue.ValueHandle) {
	if v == nil || *v == 0 {
		return
	}
	d.sym.destroyValue(unsafe.Pointer(v))
}

func (d *DuckDB) Free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	d.sym.free(p)
}

func (d *DuckDB) GetBool(v duckdbvalue.ValueHandle) bool     { return d.sym.getBool(uintptr(v)) }
func (d *DuckDB) GetInt8(v duckdbvalue.ValueHandle) int8     { return d.sym.getInt8(uintptr(v)) }
func (d *DuckDB) GetUint8(v duckdbvalue.ValueHandle) uint8   { return d.sym.getUint8(uintptr(v)) }
func (d *DuckDB) GetInt16(v duckdbvalue.ValueHandle) int16   { return d.sym.getInt16(uintptr(v)) }
func (d *DuckDB) GetUint16(v duckdbvalue.ValueHandle) uint16 { return d.sym.getUint16(uintptr(v)) }
func (d *DuckDB) GetInt32(v duckdbvalue.ValueHandle) int32   { return d.sym.getInt32(uintptr(v)) }
func (d *DuckDB) GetUint32(v duckdbvalue.ValueHandle) uint32 { return d.sym.getUint32(uintptr(v)) }
func (d *DuckDB) GetInt64(v duckdbvalue.ValueHandle) int64   { return d.sym.getInt64(uintptr(v)) }
func (d *DuckDB) GetUint64(v duckdbvalue.ValueHandle) uint64 { return d.sym.getUint64(uintptr(v)) }
func (d *DuckDB) GetFloat(v duckdbvalue.ValueHandle) float32 { return d.sym.getFloat(uintptr(v)) }
func (d *DuckDB) GetDouble(v duckdbvalue.ValueHandle) float64 {
	return d.sym.getDouble(uintptr(v))
}

func (d *DuckDB) GetListSize(v duckdbvalue.ValueHandle) uint64 {
	return d.sym.getListSize(uintptr(v))
}

func (d *DuckDB) GetListChild(v duckdbvalue.ValueHandle, index uint64) duckdbvalue.ValueHandle {
	return duckdbvalue.ValueHandle(d.sym.getListChild(uintptr(v), index))
}

func (d *DuckDB) IsNullValue(v duckdbvalue.ValueHandle) bool {
	return d.sym.isNullValue(uintptr(v))
}

func (d *DuckDB) GetValueType(v duckdbvalue.ValueHandle) duckdbvalue.LogicalTypeHandle {
	return duckdbvalue.LogicalTypeHandle(d.sym.getValueType(uintptr(v)))
}

func (d *DuckDB) GetTypeID(t duckdbvalue.LogicalTypeHandle) types.TypeID {
	return types.TypeID(d.sym.getTypeID(uintptr(t)))
}

func (d *DuckDB) GetVarchar(v duckdbvalue.ValueHandle) unsafe.Pointer {
	return d.sym.getVarchar(uintptr(v))
}

func (d *DuckDB) CreateBool(b bool) duckdbvalue.ValueHandle {
	return duckdbvalue.ValueHandle(d.sym.createBool(b))
}

func (d *DuckDB) CreateInt8(x int8) duckdbvalue.ValueHandle {
	return duckdbvalue.ValueHandle(d.sym.createInt8(x))
}

func (d *DuckDB) CreateUint8(x uint8) duckdbvalue.ValueHandle {
	return duckdbvalue.ValueHandle(d.sym.createUint8(x))
}

func (d *DuckDB) CreateInt16(x int16) duckdbvalue.ValueHandle {
	return duckdbvalue.ValueHandle(d.sym.createInt16(x))
}

func (d *DuckDB) CreateUint16(x uint16) duckdbvalue.ValueHandle {
	return duckdbvalue.ValueHandle(d.sym.createUint16(x))
}

func (d *DuckDB) CreateInt32(x int32) duckdbvalue.ValueHandle {
	return duckdbvalue.ValueHandle(d.sym.createInt32(x))
}

func (d *DuckDB) CreateUint32(x uint32) duckdbvalue.ValueHandle {
	return duckdbvalue.ValueHandle(d.sym.createUint32(x))
}

func (d *DuckDB) CreateInt64(x int64) duckdbvalue.ValueHandle {
	return duckdbvalue.ValueHandle(d.sym.createInt64(x))
}

func (d *DuckDB) CreateUint64(x uint64) duckdbvalue.ValueHandle {
	return duckdbvalue.ValueHandle(d.sym.createUint64(x))
}

func (d *DuckDB) CreateFloat(x float32) duckdbvalue.ValueHandle {
	return duckdbvalue.ValueHandle(d.sym.createFloat(x))
}

func (d *DuckDB) CreateDouble(x float64) duckdbvalue.ValueHandle {
	return duckdbvalue.ValueHandle(d.sym.createDouble(x))
}

// CreateVarchar passes an explicit length so embedded NUL bytes survive.
func (d *DuckDB) CreateVarchar(s string) duckdbvalue.ValueHandle {
	return duckdbvalue.ValueHandle(d.sym.createVarcharLength(s, uint64(len(s))))
}

func (d *DuckDB) CreateNullValue() duckdbvalue.ValueHandle {
	return duckdbvalue.ValueHandle(d.sym.createNullValue())
}

func (d *DuckDB) CreateLogicalType(id types.TypeID) duckdbvalue.LogicalTypeHandle {
	return duckdbvalue.LogicalTypeHandle(d.sym.createLogicalType(int32(id)))
}

func (d *DuckDB) DestroyLogicalType(t *duckdbvalue.LogicalTypeHandle) {
	if t == nil || *t == 0 {
		return
	}
	d.sym.destroyLogicalType(unsafe.Pointer(t))
}

func (d *DuckDB) CreateListValue(elem duckdbvalue.LogicalTypeHandle, values []duckdbvalue.ValueHandle) duckdbvalue.ValueHandle {
	// duckdb_create_list_value rejects a NULL array even for zero elements
	var empty duckdbvalue.ValueHandle
	ptr := unsafe.Pointer(&empty)
	if len(values) > 0 {
		ptr = unsafe.Pointer(&values[0])
	}
	h := d.sym.createListValue(uintptr(elem), ptr, uint64(len(values)))
	runtime.KeepAlive(values)
	return duckdbvalue.ValueHandle(h)
}
