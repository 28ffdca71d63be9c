package value

import (
	"runtime"
	"strings"
	"unsafe"

	"go.uber.org/zap"

	duckdbvalue "github.com/wippyai/duckdb-value"
	"github.com/wippyai/duckdb-value/types"
)

// Value holds a single DuckDB value of any type and owns its handle.
//
// A Value must not be copied; use Move to hand ownership to another Value.
// It is not safe for concurrent use.
type Value struct {
	_       noCopy
	api     duckdbvalue.API
	ptr     duckdbvalue.ValueHandle
	cleanup runtime.Cleanup
	armed   bool
}

// noCopy lets go vet's copylocks check flag copies of Value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

type leaked struct {
	api duckdbvalue.API
	ptr duckdbvalue.ValueHandle
}

// Wrap takes ownership of h. The caller must not use or destroy h afterwards.
// h is not validated; passing a dangling handle is a caller error.
func Wrap(api duckdbvalue.API, h duckdbvalue.ValueHandle) *Value {
	v := &Value{api: api, ptr: h}
	if h != 0 {
		v.cleanup = runtime.AddCleanup(v, releaseLeaked, leaked{api: api, ptr: h})
		v.armed = true
	}
	return v
}

// releaseLeaked runs when a Value becomes unreachable without Close.
func releaseLeaked(l leaked) {
	Logger().Warn("value released by garbage collector, missing Close",
		zap.Uintptr("handle", uintptr(l.ptr)))
	l.api.DestroyValue(&l.ptr)
}

func (v *Value) disarm() {
	if v.armed {
		v.cleanup.Stop()
		v.armed = false
	}
}

// Close destroys the handle. It is idempotent and safe on a zero or nil Value.
// The error is always nil.
func (v *Value) Close() error {
	if v == nil || v.ptr == 0 {
		return nil
	}
	v.disarm()
	v.api.DestroyValue(&v.ptr)
	v.ptr = 0
	return nil
}

// Move transfers ownership to a new Value and leaves v empty.
func (v *Value) Move() *Value {
	if v == nil || v.ptr == 0 {
		return &Value{}
	}
	v.disarm()
	h := v.ptr
	v.ptr = 0
	return Wrap(v.api, h)
}

// Valid reports whether v still owns a handle.
func (v *Value) Valid() bool {
	return v != nil && v.ptr != 0
}

// ToSlice decomposes a LIST value into its elements, in order. Each element
// is an independent Value that the caller must Close. v must be a LIST.
func (v *Value) ToSlice() []*Value {
	if v == nil || v.ptr == 0 {
		return []*Value{}
	}
	size := v.api.GetListSize(v.ptr)
	out := make([]*Value, 0, size)
	for i := uint64(0); i < size; i++ {
		out = append(out, Wrap(v.api, v.api.GetListChild(v.ptr, i)))
	}
	return out
}

// CloseAll closes every value in vs.
func CloseAll(vs []*Value) {
	for _, v := range vs {
		v.Close()
	}
}

// IsNull reports whether v is SQL NULL. An empty Value is not NULL.
func (v *Value) IsNull() bool {
	if v == nil || v.ptr == 0 {
		return false
	}
	return v.api.IsNullValue(v.ptr)
}

// LogicalTypeID classifies v. An empty Value reports types.Invalid.
func (v *Value) LogicalTypeID() types.TypeID {
	if v == nil || v.ptr == 0 {
		return types.Invalid
	}
	// borrowed from the value, not destroyed here
	lt := v.api.GetValueType(v.ptr)
	return v.api.GetTypeID(lt)
}

// String renders v as text. Invalid UTF-8 is replaced with U+FFFD.
func (v *Value) String() string {
	if v == nil || v.ptr == 0 {
		return ""
	}
	buf := v.api.GetVarchar(v.ptr)
	if buf == nil {
		return ""
	}
	defer v.api.Free(buf)
	return strings.ToValidUTF8(string(cBytes(buf)), "�")
}

// cBytes views the NUL-terminated buffer at p without copying.
func cBytes(p unsafe.Pointer) []byte {
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return unsafe.Slice((*byte)(p), n)
}
