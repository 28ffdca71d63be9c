package engine

import (
	"fmt"
	"sort"
	"sync"
	"unsafe"

	"go.uber.org/zap"

	duckdbvalue "github.com/wippyai/duckdb-value"
	"github.com/wippyai/duckdb-value/resource"
	"github.com/wippyai/duckdb-value/types"
)

// Tracker wraps a Library and keeps a ledger of every value, logical type
// and varchar buffer it hands out. Releasing something the ledger does not
// know is a violation; the call is not forwarded, so a double release
// against a real library is reported instead of crashing the process.
type Tracker struct {
	duckdbvalue.Library
	table      *resource.UnifiedTable
	violations []string
	mu         sync.Mutex
}

// Leak describes a resource that is still live.
type Leak struct {
	Kind   string
	Origin string
	Handle uintptr
}

func (l Leak) String() string {
	return fmt.Sprintf("%s %#x from %s", l.Kind, l.Handle, l.Origin)
}

type tracked struct {
	origin string
	rep    uintptr
}

var kindNames = map[uint32]string{
	kindValue:       "value",
	kindLogicalType: "logical_type",
	kindBuffer:      "buffer",
}

// Tracked returns a Tracker forwarding to lib.
func Tracked(lib duckdbvalue.Library) *Tracker {
	t := &Tracker{
		Library: lib,
		table:   resource.NewTable(resource.Options{}),
	}
	t.table.Subscribe(debugObserver{})
	return t
}

type debugObserver struct{}

func (debugObserver) OnResourceEvent(e resource.Event) {
	if ce := Logger().Check(zap.DebugLevel, "tracked resource"); ce != nil {
		ce.Write(
			zap.Stringer("event", e.Type),
			zap.String("kind", kindNames[e.TypeID]),
			zap.Uintptr("rep", e.Rep))
	}
}

// Table exposes the ledger, mainly so callers can subscribe to it.
func (t *Tracker) Table() *resource.UnifiedTable { return t.table }

// Leaks lists every tracked resource not yet released, in creation order.
func (t *Tracker) Leaks() []Leak {
	type item struct {
		h resource.Handle
		l Leak
	}
	var items []item
	t.table.Each(func(h resource.Handle, kind uint32, v any) bool {
		tr := v.(*tracked)
		items = append(items, item{h, Leak{Kind: kindNames[kind], Origin: tr.origin, Handle: tr.rep}})
		return true
	})
	sort.Slice(items, func(i, j int) bool { return items[i].h < items[j].h })
	out := make([]Leak, len(items))
	for i, it := range items {
		out[i] = it.l
	}
	return out
}

// Violations returns a description of every rejected release.
func (t *Tracker) Violations() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.violations))
	copy(out, t.violations)
	return out
}

func (t *Tracker) track(kind uint32, origin string, rep uintptr) {
	if rep == 0 {
		return
	}
	t.table.InsertRep(kind, rep, &tracked{origin: origin, rep: rep})
}

// release drops rep from the ledger and reports whether it was live.
func (t *Tracker) release(kind uint32, op string, rep uintptr) bool {
	h, ok := t.table.Lookup(rep)
	if ok {
		_, ok = t.table.GetTyped(h, kind)
	}
	if !ok {
		msg := fmt.Sprintf("%s: untracked %s %#x", op, kindNames[kind], rep)
		t.mu.Lock()
		t.violations = append(t.violations, msg)
		t.mu.Unlock()
		Logger().Warn("ownership violation",
			zap.String("op", op),
			zap.String("kind", kindNames[kind]),
			zap.Uintptr("handle", rep))
		return false
	}
	t.table.Remove(h)
	return true
}

func (t *Tracker) value(origin string, h duckdbvalue.ValueHandle) duckdbvalue.ValueHandle {
	t.track(kindValue, origin, uintptr(h))
	return h
}

func (t *Tracker) DestroyValue(v *duckdbvalue.ValueHandle) {
	if v == nil || *v == 0 {
		return
	}
	if !t.release(kindValue, "destroy_value", uintptr(*v)) {
		*v = 0
		return
	}
	t.Library.DestroyValue(v)
}

func (t *Tracker) Free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	if t.release(kindBuffer, "free", uintptr(p)) {
		t.Library.Free(p)
	}
}

func (t *Tracker) GetVarchar(v duckdbvalue.ValueHandle) unsafe.Pointer {
	p := t.Library.GetVarchar(v)
	t.track(kindBuffer, "get_varchar", uintptr(p))
	return p
}

func (t *Tracker) GetListChild(v duckdbvalue.ValueHandle, index uint64) duckdbvalue.ValueHandle {
	return t.value("get_list_child", t.Library.GetListChild(v, index))
}

func (t *Tracker) CreateBool(b bool) duckdbvalue.ValueHandle {
	return t.value("create_bool", t.Library.CreateBool(b))
}

func (t *Tracker) CreateInt8(x int8) duckdbvalue.ValueHandle {
	return t.value("create_int8", t.Library.CreateInt8(x))
}

func (t *Tracker) CreateUint8(x uint8) duckdbvalue.ValueHandle {
	return t.value("create_uint8", t.Library.CreateUint8(x))
}

func (t *Tracker) CreateInt16(x int16) duckdbvalue.ValueHandle {
	return t.value("create_int16", t.Library.CreateInt16(x))
}

func (t *Tracker) CreateUint16(x uint16) duckdbvalue.ValueHandle {
	return t.value("create_uint16", t.Library.CreateUint16(x))
}

func (t *Tracker) CreateInt32(x int32) duckdbvalue.ValueHandle {
	return t.value("create_int32", t.Library.CreateInt32(x))
}

func (t *Tracker) CreateUint32(x uint32) duckdbvalue.ValueHandle {
	return t.value("create_uint32", t.Library.CreateUint32(x))
}

func (t *Tracker) CreateInt64(x int64) duckdbvalue.ValueHandle {
	return t.value("create_int64", t.Library.CreateInt64(x))
}

func (t *Tracker) CreateUint64(x uint64) duckdbvalue.ValueHandle {
	return t.value("create_uint64", t.Library.CreateUint64(x))
}

func (t *Tracker) CreateFloat(x float32) duckdbvalue.ValueHandle {
	return t.value("create_float", t.Library.CreateFloat(x))
}

func (t *Tracker) CreateDouble(x float64) duckdbvalue.ValueHandle {
	return t.value("create_double", t.Library.CreateDouble(x))
}

func (t *Tracker) CreateVarchar(s string) duckdbvalue.ValueHandle {
	return t.value("create_varchar", t.Library.CreateVarchar(s))
}

func (t *Tracker) CreateNullValue() duckdbvalue.ValueHandle {
	return t.value("create_null_value", t.Library.CreateNullValue())
}

func (t *Tracker) CreateListValue(elem duckdbvalue.LogicalTypeHandle, values []duckdbvalue.ValueHandle) duckdbvalue.ValueHandle {
	return t.value("create_list_value", t.Library.CreateListValue(elem, values))
}

func (t *Tracker) CreateLogicalType(id types.TypeID) duckdbvalue.LogicalTypeHandle {
	lt := t.Library.CreateLogicalType(id)
	t.track(kindLogicalType, "create_logical_type", uintptr(lt))
	return lt
}

func (t *Tracker) DestroyLogicalType(lt *duckdbvalue.LogicalTypeHandle) {
	if lt == nil || *lt == 0 {
		return
	}
	if t.release(kindLogicalType, "destroy_logical_type", uintptr(*lt)) {
		t.Library.DestroyLogicalType(lt)
	}
}
