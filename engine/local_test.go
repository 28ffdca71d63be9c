package engine

import (
	"math"
	"strings"
	"testing"
	"unsafe"

	duckdbvalue "github.com/wippyai/duckdb-value"
	"github.com/wippyai/duckdb-value/types"
)

// varchar renders h and frees the buffer.
func varchar(t *testing.T, api duckdbvalue.API, h duckdbvalue.ValueHandle) string {
	t.Helper()
	p := api.GetVarchar(h)
	if p == nil {
		t.Fatal("GetVarchar returned nil")
	}
	defer api.Free(p)
	var b []byte
	for i := 0; ; i++ {
		c := *(*byte)(unsafe.Add(p, i))
		if c == 0 {
			break
		}
		b = append(b, c)
	}
	return string(b)
}

func typeOf(api duckdbvalue.API, h duckdbvalue.ValueHandle) types.TypeID {
	return api.GetTypeID(api.GetValueType(h))
}

func TestLocal_ScalarRoundTrip(t *testing.T) {
	l := NewLocal()
	defer l.Close()

	tests := []struct {
		name   string
		create func() duckdbvalue.ValueHandle
		typ    types.TypeID
		check  func(h duckdbvalue.ValueHandle) bool
	}{
		{"bool", func() duckdbvalue.ValueHandle { return l.CreateBool(true) }, types.Boolean,
			func(h duckdbvalue.ValueHandle) bool { return l.GetBool(h) }},
		{"int8 min", func() duckdbvalue.ValueHandle { return l.CreateInt8(math.MinInt8) }, types.TinyInt,
			func(h duckdbvalue.ValueHandle) bool { return l.GetInt8(h) == math.MinInt8 }},
		{"uint8 max", func() duckdbvalue.ValueHandle { return l.CreateUint8(math.MaxUint8) }, types.UTinyInt,
			func(h duckdbvalue.ValueHandle) bool { return l.GetUint8(h) == math.MaxUint8 }},
		{"int16 min", func() duckdbvalue.ValueHandle { return l.CreateInt16(math.MinInt16) }, types.SmallInt,
			func(h duckdbvalue.ValueHandle) bool { return l.GetInt16(h) == math.MinInt16 }},
		{"uint16 max", func() duckdbvalue.ValueHandle { return l.CreateUint16(math.MaxUint16) }, types.USmallInt,
			func(h duckdbvalue.ValueHandle) bool { return l.GetUint16(h) == math.MaxUint16 }},
		{"int32 max", func() duckdbvalue.ValueHandle { return l.CreateInt32(math.MaxInt32) }, types.Integer,
			func(h duckdbvalue.ValueHandle) bool { return l.GetInt32(h) == math.MaxInt32 }},
		{"uint32 max", func() duckdbvalue.ValueHandle { return l.CreateUint32(math.MaxUint32) }, types.UInteger,
			func(h duckdbvalue.ValueHandle) bool { return l.GetUint32(h) == math.MaxUint32 }},
		{"int64 min", func() duckdbvalue.ValueHandle { return l.CreateInt64(math.MinInt64) }, types.BigInt,
			func(h duckdbvalue.ValueHandle) bool { return l.GetInt64(h) == math.MinInt64 }},
		{"uint64 max", func() duckdbvalue.ValueHandle { return l.CreateUint64(math.MaxUint64) }, types.UBigInt,
			func(h duckdbvalue.ValueHandle) bool { return l.GetUint64(h) == math.MaxUint64 }},
		{"float", func() duckdbvalue.ValueHandle { return l.CreateFloat(3.14) }, types.Float,
			func(h duckdbvalue.ValueHandle) bool { return l.GetFloat(h) == float32(3.14) }},
		{"double", func() duckdbvalue.ValueHandle { return l.CreateDouble(2.71828) }, types.Double,
			func(h duckdbvalue.ValueHandle) bool { return l.GetDouble(h) == 2.71828 }},
		{"varchar", func() duckdbvalue.ValueHandle { return l.CreateVarchar("hello") }, types.Varchar,
			func(h duckdbvalue.ValueHandle) bool { return varchar(t, l, h) == "hello" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := tt.create()
			if h == 0 {
				t.Fatal("create returned 0")
			}
			defer l.DestroyValue(&h)

			if got := typeOf(l, h); got != tt.typ {
				t.Errorf("type = %v, want %v", got, tt.typ)
			}
			if l.IsNullValue(h) {
				t.Error("IsNullValue = true")
			}
			if !tt.check(h) {
				t.Error("value did not round trip")
			}
		})
	}

	if v := l.Violations(); len(v) != 0 {
		t.Fatalf("violations: %v", v)
	}
}

func TestLocal_Casts(t *testing.T) {
	l := NewLocal()
	defer l.Close()

	tests := []struct {
		name string
		got  func() any
		want any
	}{
		{"int64 to int8 overflow", func() any {
			h := l.CreateInt64(300)
			defer l.DestroyValue(&h)
			return l.GetInt8(h)
		}, int8(math.MinInt8)},
		{"varchar to int32", func() any {
			h := l.CreateVarchar(" 42 ")
			defer l.DestroyValue(&h)
			return l.GetInt32(h)
		}, int32(42)},
		{"double to int64 ties to even", func() any {
			h := l.CreateDouble(2.5)
			defer l.DestroyValue(&h)
			return l.GetInt64(h)
		}, int64(2)},
		{"double to int64 rounds", func() any {
			h := l.CreateDouble(3.5)
			defer l.DestroyValue(&h)
			return l.GetInt64(h)
		}, int64(4)},
		{"bool to int32", func() any {
			h := l.CreateBool(true)
			defer l.DestroyValue(&h)
			return l.GetInt32(h)
		}, int32(1)},
		{"negative to uint8", func() any {
			h := l.CreateInt32(-1)
			defer l.DestroyValue(&h)
			return l.GetUint8(h)
		}, uint8(0)},
		{"int to bool", func() any {
			h := l.CreateInt16(7)
			defer l.DestroyValue(&h)
			return l.GetBool(h)
		}, true},
		{"bad varchar to bool", func() any {
			h := l.CreateVarchar("maybe")
			defer l.DestroyValue(&h)
			return l.GetBool(h)
		}, false},
		{"bad varchar to double", func() any {
			h := l.CreateVarchar("abc")
			defer l.DestroyValue(&h)
			return l.GetDouble(h)
		}, -math.MaxFloat64},
		{"large double to float", func() any {
			h := l.CreateDouble(1e300)
			defer l.DestroyValue(&h)
			return l.GetFloat(h)
		}, float32(-math.MaxFloat32)},
		{"uint64 to int64 overflow", func() any {
			h := l.CreateUint64(math.MaxUint64)
			defer l.DestroyValue(&h)
			return l.GetInt64(h)
		}, int64(math.MinInt64)},
		{"null to int16", func() any {
			h := l.CreateNullValue()
			defer l.DestroyValue(&h)
			return l.GetInt16(h)
		}, int16(math.MinInt16)},
		{"int to double", func() any {
			h := l.CreateInt8(-5)
			defer l.DestroyValue(&h)
			return l.GetDouble(h)
		}, float64(-5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.got(); got != tt.want {
				t.Errorf("got %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}

	if s := l.Stats(); s.Values != 0 || s.Violations != 0 {
		t.Fatalf("stats = %+v", s)
	}
}

func TestLocal_Render(t *testing.T) {
	l := NewLocal()
	defer l.Close()

	list := func(elem types.TypeID, hs ...duckdbvalue.ValueHandle) duckdbvalue.ValueHandle {
		lt := l.CreateLogicalType(elem)
		defer l.DestroyLogicalType(&lt)
		out := l.CreateListValue(lt, hs)
		for i := range hs {
			l.DestroyValue(&hs[i])
		}
		return out
	}

	tests := []struct {
		name string
		h    func() duckdbvalue.ValueHandle
		want string
	}{
		{"true", func() duckdbvalue.ValueHandle { return l.CreateBool(true) }, "true"},
		{"int8", func() duckdbvalue.ValueHandle { return l.CreateInt8(-128) }, "-128"},
		{"uint64", func() duckdbvalue.ValueHandle { return l.CreateUint64(math.MaxUint64) }, "18446744073709551615"},
		{"float", func() duckdbvalue.ValueHandle { return l.CreateFloat(3.14) }, "3.14"},
		{"whole double", func() duckdbvalue.ValueHandle { return l.CreateDouble(1) }, "1.0"},
		{"inf", func() duckdbvalue.ValueHandle { return l.CreateDouble(math.Inf(-1)) }, "-inf"},
		{"nan", func() duckdbvalue.ValueHandle { return l.CreateDouble(math.NaN()) }, "nan"},
		{"null", func() duckdbvalue.ValueHandle { return l.CreateNullValue() }, "NULL"},
		{"list", func() duckdbvalue.ValueHandle {
			return list(types.Integer, l.CreateInt32(1), l.CreateNullValue(), l.CreateInt32(3))
		}, "[1, NULL, 3]"},
		{"empty list", func() duckdbvalue.ValueHandle { return list(types.Varchar) }, "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := tt.h()
			defer l.DestroyValue(&h)
			if got := varchar(t, l, h); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if s := l.Stats(); s != (Stats{}) {
		t.Fatalf("stats = %+v", s)
	}
}

func TestLocal_ListChildrenAreCopies(t *testing.T) {
	l := NewLocal()
	defer l.Close()

	lt := l.CreateLogicalType(types.Varchar)
	a, b := l.CreateVarchar("a"), l.CreateVarchar("b")
	list := l.CreateListValue(lt, []duckdbvalue.ValueHandle{a, b})
	l.DestroyLogicalType(&lt)
	l.DestroyValue(&a)
	l.DestroyValue(&b)

	if n := l.GetListSize(list); n != 2 {
		t.Fatalf("size = %d", n)
	}
	c0 := l.GetListChild(list, 0)
	c1 := l.GetListChild(list, 1)
	if c0 == list || c0 == c1 {
		t.Fatal("children must be fresh handles")
	}
	if l.GetListChild(list, 2) != 0 {
		t.Fatal("out of range child should be 0")
	}

	l.DestroyValue(&list)
	if got := varchar(t, l, c1); got != "b" {
		t.Fatalf("child after parent release = %q", got)
	}
	l.DestroyValue(&c0)
	l.DestroyValue(&c1)

	if s := l.Stats(); s != (Stats{}) {
		t.Fatalf("stats = %+v", s)
	}
}

func TestLocal_CreateListValueRejectsMismatch(t *testing.T) {
	l := NewLocal()
	defer l.Close()

	lt := l.CreateLogicalType(types.BigInt)
	defer l.DestroyLogicalType(&lt)
	x := l.CreateVarchar("x")
	defer l.DestroyValue(&x)

	if h := l.CreateListValue(lt, []duckdbvalue.ValueHandle{x}); h != 0 {
		t.Fatalf("expected 0, got %d", h)
	}
}

func TestLocal_DoubleDestroyIsViolation(t *testing.T) {
	l := NewLocal()
	defer l.Close()

	h := l.CreateInt64(1)
	stale := h
	l.DestroyValue(&h)
	if h != 0 {
		t.Fatal("DestroyValue must zero the handle")
	}
	l.DestroyValue(&stale)

	v := l.Violations()
	if len(v) != 1 || !strings.HasPrefix(v[0], "destroy_value") {
		t.Fatalf("violations = %v", v)
	}
}

func TestLocal_VarcharBuffer(t *testing.T) {
	l := NewLocal()
	defer l.Close()

	h := l.CreateVarchar("abc")
	defer l.DestroyValue(&h)

	p := l.GetVarchar(h)
	if got := l.Stats().Buffers; got != 1 {
		t.Fatalf("buffers = %d", got)
	}
	l.Free(p)
	if got := l.Stats().Buffers; got != 0 {
		t.Fatalf("buffers after free = %d", got)
	}

	l.Free(p)
	if got := l.Stats().Violations; got != 1 {
		t.Fatalf("double free violations = %d", got)
	}
}

func TestLocal_ValueTypeIsBorrowed(t *testing.T) {
	l := NewLocal()
	defer l.Close()

	h := l.CreateDouble(1)
	lt := l.GetValueType(h)
	if lt2 := l.GetValueType(h); lt2 != lt {
		t.Fatal("repeated GetValueType should return the same type")
	}

	alias := lt
	l.DestroyLogicalType(&alias)
	if got := l.Stats().Violations; got != 1 {
		t.Fatalf("destroying a borrowed type must be a violation, got %d", got)
	}
	if l.GetTypeID(lt) != types.Double {
		t.Fatal("borrowed type should still be live")
	}

	l.DestroyValue(&h)
	if s := l.Stats(); s.LogicalTypes != 0 || s.Values != 0 {
		t.Fatalf("stats = %+v", s)
	}
}

func TestLocal_Close(t *testing.T) {
	l := NewLocal()
	l.CreateInt8(1)
	h := l.CreateInt8(2)
	l.GetValueType(h)
	l.GetVarchar(h)

	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	if n := l.Table().Len(); n != 0 {
		t.Fatalf("len after close = %d", n)
	}
}
