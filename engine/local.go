package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"unsafe"

	"go.uber.org/zap"

	duckdbvalue "github.com/wippyai/duckdb-value"
	"github.com/wippyai/duckdb-value/resource"
	"github.com/wippyai/duckdb-value/types"
)

// Resource kinds stored in a Local table.
const (
	kindValue uint32 = iota + 1
	kindLogicalType
	kindBuffer
)

// Local is an in-memory engine with the ownership contract of the DuckDB
// value API. Values, logical types and rendered buffers each occupy a slot
// in a resource table; handles are never reused, so a stale or repeated
// release is detected and recorded as a violation instead of corrupting
// memory.
//
// Scalar getters cast the way DuckDB does. A failed cast yields the
// minimum value of the target type (false, the lowest integer, or the
// lowest finite float).
type Local struct {
	table      *resource.UnifiedTable
	violations []string
	mu         sync.Mutex
}

var _ duckdbvalue.Library = (*Local)(nil)

// Stats counts live resources held by a Local engine.
type Stats struct {
	Values       int
	LogicalTypes int
	Buffers      int
	Violations   int
}

type localValue struct {
	// x is bool, int64, uint64, float64 or string for scalars
	x    any
	list []*localValue
	typ  types.TypeID
	elem types.TypeID
	null bool
	// typeHandle is the borrowed logical type handed out by GetValueType
	typeHandle resource.Handle
}

type localType struct {
	id types.TypeID
}

type localBuffer struct {
	data []byte
}

// NewLocal creates an empty engine.
func NewLocal() *Local {
	return &Local{table: resource.NewTable(resource.Options{})}
}

// Table exposes the resource table, mainly so tests can subscribe to it.
func (l *Local) Table() *resource.UnifiedTable { return l.table }

// Stats returns the current live resource counts.
func (l *Local) Stats() Stats {
	l.mu.Lock()
	n := len(l.violations)
	l.mu.Unlock()
	return Stats{
		Values:       l.table.Count(kindValue),
		LogicalTypes: l.table.Count(kindLogicalType),
		Buffers:      l.table.Count(kindBuffer),
		Violations:   n,
	}
}

// Violations returns a description of every contract violation seen so far.
func (l *Local) Violations() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.violations))
	copy(out, l.violations)
	return out
}

// Close releases everything still live. Outstanding values become invalid.
func (l *Local) Close() error {
	l.table.Clear()
	return l.table.Close()
}

func (l *Local) violate(op string, handle uintptr) {
	msg := fmt.Sprintf("%s: invalid handle %#x", op, handle)
	l.mu.Lock()
	l.violations = append(l.violations, msg)
	l.mu.Unlock()
	Logger().Warn("ownership violation",
		zap.String("op", op),
		zap.Uintptr("handle", handle))
}

func toHandle(h uintptr) resource.Handle {
	if h > math.MaxUint32 {
		return 0
	}
	return resource.Handle(h)
}

func (l *Local) insert(lv *localValue) duckdbvalue.ValueHandle {
	return duckdbvalue.ValueHandle(l.table.Insert(kindValue, lv))
}

func (l *Local) value(op string, v duckdbvalue.ValueHandle) (*localValue, bool) {
	x, ok := l.table.GetTyped(toHandle(uintptr(v)), kindValue)
	if !ok {
		l.violate(op, uintptr(v))
		return nil, false
	}
	return x.(*localValue), true
}

func (l *Local) DestroyValue(v *duckdbvalue.ValueHandle) {
	if v == nil || *v == 0 {
		return
	}
	h := toHandle(uintptr(*v))
	x, ok := l.table.GetTyped(h, kindValue)
	if !ok {
		l.violate("destroy_value", uintptr(*v))
		*v = 0
		return
	}
	lv := x.(*localValue)

	l.mu.Lock()
	th := lv.typeHandle
	lv.typeHandle = 0
	l.mu.Unlock()
	if th != 0 {
		l.table.ReturnBorrow(th)
		l.table.Remove(th)
	}

	l.table.Remove(h)
	*v = 0
}

func (l *Local) Free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	h, ok := l.table.Lookup(uintptr(p))
	if ok {
		_, ok = l.table.GetTyped(h, kindBuffer)
	}
	if !ok {
		l.violate("free", uintptr(p))
		return
	}
	l.table.Remove(h)
}

func (l *Local) GetBool(v duckdbvalue.ValueHandle) bool {
	lv, ok := l.value("get_bool", v)
	if !ok {
		return false
	}
	b, _ := lv.toBool()
	return b
}

func (l *Local) GetInt8(v duckdbvalue.ValueHandle) int8 {
	return int8(l.getInt("get_int8", v, 8))
}

func (l *Local) GetInt16(v duckdbvalue.ValueHandle) int16 {
	return int16(l.getInt("get_int16", v, 16))
}

func (l *Local) GetInt32(v duckdbvalue.ValueHandle) int32 {
	return int32(l.getInt("get_int32", v, 32))
}

func (l *Local) GetInt64(v duckdbvalue.ValueHandle) int64 {
	return l.getInt("get_int64", v, 64)
}

func (l *Local) GetUint8(v duckdbvalue.ValueHandle) uint8 {
	return uint8(l.getUint("get_uint8", v, 8))
}

func (l *Local) GetUint16(v duckdbvalue.ValueHandle) uint16 {
	return uint16(l.getUint("get_uint16", v, 16))
}

func (l *Local) GetUint32(v duckdbvalue.ValueHandle) uint32 {
	return uint32(l.getUint("get_uint32", v, 32))
}

func (l *Local) GetUint64(v duckdbvalue.ValueHandle) uint64 {
	return l.getUint("get_uint64", v, 64)
}

func (l *Local) GetFloat(v duckdbvalue.ValueHandle) float32 {
	lv, ok := l.value("get_float", v)
	if !ok {
		return -math.MaxFloat32
	}
	f, ok := lv.toFloat64()
	if !ok || (!math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32) {
		return -math.MaxFloat32
	}
	return float32(f)
}

func (l *Local) GetDouble(v duckdbvalue.ValueHandle) float64 {
	lv, ok := l.value("get_double", v)
	if !ok {
		return -math.MaxFloat64
	}
	f, ok := lv.toFloat64()
	if !ok {
		return -math.MaxFloat64
	}
	return f
}

func (l *Local) getInt(op string, v duckdbvalue.ValueHandle, bits int) int64 {
	lo := int64(-1) << (bits - 1)
	lv, ok := l.value(op, v)
	if !ok {
		return lo
	}
	n, ok := lv.toInt(bits)
	if !ok {
		return lo
	}
	return n
}

func (l *Local) getUint(op string, v duckdbvalue.ValueHandle, bits int) uint64 {
	lv, ok := l.value(op, v)
	if !ok {
		return 0
	}
	n, _ := lv.toUint(bits)
	return n
}

func (l *Local) GetListSize(v duckdbvalue.ValueHandle) uint64 {
	lv, ok := l.value("get_list_size", v)
	if !ok || lv.typ != types.List || lv.null {
		return 0
	}
	return uint64(len(lv.list))
}

func (l *Local) GetListChild(v duckdbvalue.ValueHandle, index uint64) duckdbvalue.ValueHandle {
	lv, ok := l.value("get_list_child", v)
	if !ok || lv.typ != types.List || index >= uint64(len(lv.list)) {
		return 0
	}
	return l.insert(lv.list[index].clone())
}

func (l *Local) IsNullValue(v duckdbvalue.ValueHandle) bool {
	lv, ok := l.value("is_null_value", v)
	return ok && lv.null
}

// GetValueType hands out a logical type owned by v. It is released with v;
// destroying it directly is recorded as a violation.
func (l *Local) GetValueType(v duckdbvalue.ValueHandle) duckdbvalue.LogicalTypeHandle {
	lv, ok := l.value("get_value_type", v)
	if !ok {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if lv.typeHandle == 0 {
		h := l.table.Insert(kindLogicalType, &localType{id: lv.typ})
		l.table.Borrow(h)
		lv.typeHandle = h
	}
	return duckdbvalue.LogicalTypeHandle(lv.typeHandle)
}

func (l *Local) GetTypeID(t duckdbvalue.LogicalTypeHandle) types.TypeID {
	x, ok := l.table.GetTyped(toHandle(uintptr(t)), kindLogicalType)
	if !ok {
		l.violate("get_type_id", uintptr(t))
		return types.Invalid
	}
	return x.(*localType).id
}

func (l *Local) GetVarchar(v duckdbvalue.ValueHandle) unsafe.Pointer {
	lv, ok := l.value("get_varchar", v)
	if !ok {
		return nil
	}
	var sb strings.Builder
	lv.render(&sb)
	buf := make([]byte, sb.Len()+1)
	copy(buf, sb.String())
	p := unsafe.Pointer(&buf[0])
	l.table.InsertRep(kindBuffer, uintptr(p), &localBuffer{data: buf})
	return p
}

func (l *Local) CreateBool(b bool) duckdbvalue.ValueHandle {
	return l.insert(&localValue{typ: types.Boolean, x: b})
}

func (l *Local) CreateInt8(x int8) duckdbvalue.ValueHandle {
	return l.insert(&localValue{typ: types.TinyInt, x: int64(x)})
}

func (l *Local) CreateUint8(x uint8) duckdbvalue.ValueHandle {
	return l.insert(&localValue{typ: types.UTinyInt, x: uint64(x)})
}

func (l *Local) CreateInt16(x int16) duckdbvalue.ValueHandle {
	return l.insert(&localValue{typ: types.SmallInt, x: int64(x)})
}

func (l *Local) CreateUint16(x uint16) duckdbvalue.ValueHandle {
	return l.insert(&localValue{typ: types.USmallInt, x: uint64(x)})
}

func (l *Local) CreateInt32(x int32) duckdbvalue.ValueHandle {
	return l.insert(&localValue{typ: types.Integer, x: int64(x)})
}

func (l *Local) CreateUint32(x uint32) duckdbvalue.ValueHandle {
	return l.insert(&localValue{typ: types.UInteger, x: uint64(x)})
}

func (l *Local) CreateInt64(x int64) duckdbvalue.ValueHandle {
	return l.insert(&localValue{typ: types.BigInt, x: x})
}

func (l *Local) CreateUint64(x uint64) duckdbvalue.ValueHandle {
	return l.insert(&localValue{typ: types.UBigInt, x: x})
}

func (l *Local) CreateFloat(x float32) duckdbvalue.ValueHandle {
	return l.insert(&localValue{typ: types.Float, x: float64(x)})
}

func (l *Local) CreateDouble(x float64) duckdbvalue.ValueHandle {
	return l.insert(&localValue{typ: types.Double, x: x})
}

// CreateVarchar stores s as given. Unlike DuckDB it accepts invalid UTF-8,
// which lets callers exercise lossy rendering.
func (l *Local) CreateVarchar(s string) duckdbvalue.ValueHandle {
	return l.insert(&localValue{typ: types.Varchar, x: s})
}

func (l *Local) CreateNullValue() duckdbvalue.ValueHandle {
	return l.insert(&localValue{typ: types.SQLNull, null: true})
}

func (l *Local) CreateLogicalType(id types.TypeID) duckdbvalue.LogicalTypeHandle {
	return duckdbvalue.LogicalTypeHandle(l.table.Insert(kindLogicalType, &localType{id: id}))
}

func (l *Local) DestroyLogicalType(t *duckdbvalue.LogicalTypeHandle) {
	if t == nil || *t == 0 {
		return
	}
	h := toHandle(uintptr(*t))
	if _, ok := l.table.GetTyped(h, kindLogicalType); !ok || l.table.Borrowed(h) {
		l.violate("destroy_logical_type", uintptr(*t))
		return
	}
	l.table.Remove(h)
	*t = 0
}

// CreateListValue copies values into a new list. It returns 0 when the
// element type is unknown or a non-NULL element has a different type.
func (l *Local) CreateListValue(elem duckdbvalue.LogicalTypeHandle, values []duckdbvalue.ValueHandle) duckdbvalue.ValueHandle {
	x, ok := l.table.GetTyped(toHandle(uintptr(elem)), kindLogicalType)
	if !ok {
		l.violate("create_list_value", uintptr(elem))
		return 0
	}
	elemID := x.(*localType).id

	items := make([]*localValue, 0, len(values))
	for _, v := range values {
		lv, ok := l.value("create_list_value", v)
		if !ok {
			return 0
		}
		if !lv.null && lv.typ != elemID {
			return 0
		}
		item := lv.clone()
		if item.null {
			item.typ = elemID
		}
		items = append(items, item)
	}
	return l.insert(&localValue{typ: types.List, elem: elemID, list: items})
}

func (lv *localValue) clone() *localValue {
	c := &localValue{x: lv.x, typ: lv.typ, elem: lv.elem, null: lv.null}
	if lv.list != nil {
		c.list = make([]*localValue, len(lv.list))
		for i, child := range lv.list {
			c.list[i] = child.clone()
		}
	}
	return c
}

func (lv *localValue) toBool() (bool, bool) {
	if lv.null {
		return false, false
	}
	switch x := lv.x.(type) {
	case bool:
		return x, true
	case int64:
		return x != 0, true
	case uint64:
		return x != 0, true
	case float64:
		return x != 0, true
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "t", "1":
			return true, true
		case "false", "f", "0":
			return false, true
		}
	}
	return false, false
}

func (lv *localValue) toInt(bits int) (int64, bool) {
	lo := int64(-1) << (bits - 1)
	hi := -(lo + 1)
	if lv.null {
		return lo, false
	}
	switch x := lv.x.(type) {
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case int64:
		if x < lo || x > hi {
			return lo, false
		}
		return x, true
	case uint64:
		if x > uint64(hi) {
			return lo, false
		}
		return int64(x), true
	case float64:
		return floatToInt(x, bits)
	case string:
		s := strings.TrimSpace(x)
		if n, err := strconv.ParseInt(s, 10, bits); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return floatToInt(f, bits)
		}
	}
	return lo, false
}

func floatToInt(f float64, bits int) (int64, bool) {
	lo := int64(-1) << (bits - 1)
	limit := math.Ldexp(1, bits-1)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return lo, false
	}
	r := math.RoundToEven(f)
	if r < -limit || r >= limit {
		return lo, false
	}
	return int64(r), true
}

func (lv *localValue) toUint(bits int) (uint64, bool) {
	hi := uint64(math.MaxUint64) >> (64 - bits)
	if lv.null {
		return 0, false
	}
	switch x := lv.x.(type) {
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case int64:
		if x < 0 || uint64(x) > hi {
			return 0, false
		}
		return uint64(x), true
	case uint64:
		if x > hi {
			return 0, false
		}
		return x, true
	case float64:
		return floatToUint(x, bits)
	case string:
		s := strings.TrimSpace(x)
		if n, err := strconv.ParseUint(s, 10, bits); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return floatToUint(f, bits)
		}
	}
	return 0, false
}

func floatToUint(f float64, bits int) (uint64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	r := math.RoundToEven(f)
	if r < 0 || r >= math.Ldexp(1, bits) {
		return 0, false
	}
	return uint64(r), true
}

func (lv *localValue) toFloat64() (float64, bool) {
	if lv.null {
		return 0, false
	}
	switch x := lv.x.(type) {
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float64:
		return x, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err == nil {
			return f, true
		}
	}
	return 0, false
}

// render writes the VARCHAR cast of lv.
func (lv *localValue) render(sb *strings.Builder) {
	if lv.null {
		sb.WriteString("NULL")
		return
	}
	if lv.typ == types.List {
		sb.WriteByte('[')
		for i, child := range lv.list {
			if i > 0 {
				sb.WriteString(", ")
			}
			child.render(sb)
		}
		sb.WriteByte(']')
		return
	}
	switch x := lv.x.(type) {
	case bool:
		sb.WriteString(strconv.FormatBool(x))
	case int64:
		sb.WriteString(strconv.FormatInt(x, 10))
	case uint64:
		sb.WriteString(strconv.FormatUint(x, 10))
	case float64:
		bits := 64
		if lv.typ == types.Float {
			bits = 32
		}
		sb.WriteString(formatFloat(x, bits))
	case string:
		sb.WriteString(x)
	}
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
