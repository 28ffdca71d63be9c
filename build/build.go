package build

import (
	"reflect"
	"strconv"

	duckdbvalue "github.com/wippyai/duckdb-value"
	"github.com/wippyai/duckdb-value/errors"
	"github.com/wippyai/duckdb-value/types"
	"github.com/wippyai/duckdb-value/value"
)

// New creates a DuckDB value holding x. The returned Value owns the handle
// and releases it through api.
func New(c duckdbvalue.Constructor, api duckdbvalue.API, x any) (*value.Value, error) {
	h, err := create(c, api, reflect.ValueOf(x), nil)
	if err != nil {
		return nil, err
	}
	return value.Wrap(api, h), nil
}

// TypeOf reports the logical type New would give a value of Go type t.
func TypeOf(t reflect.Type) (types.TypeID, bool) {
	switch t.Kind() {
	case reflect.Bool:
		return types.Boolean, true
	case reflect.Int8:
		return types.TinyInt, true
	case reflect.Int16:
		return types.SmallInt, true
	case reflect.Int32:
		return types.Integer, true
	case reflect.Int64, reflect.Int:
		return types.BigInt, true
	case reflect.Uint8:
		return types.UTinyInt, true
	case reflect.Uint16:
		return types.USmallInt, true
	case reflect.Uint32:
		return types.UInteger, true
	case reflect.Uint64, reflect.Uint:
		return types.UBigInt, true
	case reflect.Float32:
		return types.Float, true
	case reflect.Float64:
		return types.Double, true
	case reflect.String:
		return types.Varchar, true
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return types.Varchar, true
		}
		return types.List, true
	case reflect.Pointer:
		return TypeOf(t.Elem())
	}
	return types.Invalid, false
}

func create(c duckdbvalue.Constructor, api duckdbvalue.API, rv reflect.Value, path []string) (duckdbvalue.ValueHandle, error) {
	if !rv.IsValid() {
		return created(c.CreateNullValue(), path, types.SQLNull)
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return created(c.CreateNullValue(), path, types.SQLNull)
		}
		return create(c, api, rv.Elem(), path)
	case reflect.Bool:
		return created(c.CreateBool(rv.Bool()), path, types.Boolean)
	case reflect.Int8:
		return created(c.CreateInt8(int8(rv.Int())), path, types.TinyInt)
	case reflect.Int16:
		return created(c.CreateInt16(int16(rv.Int())), path, types.SmallInt)
	case reflect.Int32:
		return created(c.CreateInt32(int32(rv.Int())), path, types.Integer)
	case reflect.Int64, reflect.Int:
		return created(c.CreateInt64(rv.Int()), path, types.BigInt)
	case reflect.Uint8:
		return created(c.CreateUint8(uint8(rv.Uint())), path, types.UTinyInt)
	case reflect.Uint16:
		return created(c.CreateUint16(uint16(rv.Uint())), path, types.USmallInt)
	case reflect.Uint32:
		return created(c.CreateUint32(uint32(rv.Uint())), path, types.UInteger)
	case reflect.Uint64, reflect.Uint:
		return created(c.CreateUint64(rv.Uint()), path, types.UBigInt)
	case reflect.Float32:
		return created(c.CreateFloat(float32(rv.Float())), path, types.Float)
	case reflect.Float64:
		return created(c.CreateDouble(rv.Float()), path, types.Double)
	case reflect.String:
		return created(c.CreateVarchar(rv.String()), path, types.Varchar)
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return created(c.CreateVarchar(string(bytesOf(rv))), path, types.Varchar)
		}
		return createList(c, api, rv, path)
	}

	return 0, errors.New(errors.PhaseConstruct, errors.KindUnsupported).
		Path(path...).
		GoType(rv.Type().String()).
		Detail("no DuckDB type for %s", rv.Kind()).
		Build()
}

func bytesOf(rv reflect.Value) []byte {
	if rv.Kind() == reflect.Slice {
		return rv.Bytes()
	}
	b := make([]byte, rv.Len())
	for i := range b {
		b[i] = byte(rv.Index(i).Uint())
	}
	return b
}

func created(h duckdbvalue.ValueHandle, path []string, id types.TypeID) (duckdbvalue.ValueHandle, error) {
	if h == 0 {
		return 0, errors.New(errors.PhaseConstruct, errors.KindInvalidInput).
			Path(path...).
			SQLType(id.String()).
			Detail("library rejected the value").
			Build()
	}
	return h, nil
}

func createList(c duckdbvalue.Constructor, api duckdbvalue.API, rv reflect.Value, path []string) (duckdbvalue.ValueHandle, error) {
	elem, err := elementType(rv, path)
	if err != nil {
		return 0, err
	}

	s := newScratch()
	defer s.destroyAndRelease(api)

	for i := 0; i < rv.Len(); i++ {
		h, err := create(c, api, rv.Index(i), appendPath(path, i))
		if err != nil {
			return 0, err
		}
		s.add(h)
	}

	lt := c.CreateLogicalType(elem)
	defer c.DestroyLogicalType(&lt)

	h := c.CreateListValue(lt, s.handles)
	return created(h, path, types.List)
}

// elementType picks the element type of a list. Typed slices use their
// element type; interface slices take the type of the first non-NULL
// element and every other non-NULL element must agree. A list with no
// typed element is a list of SQLNULL.
func elementType(rv reflect.Value, path []string) (types.TypeID, error) {
	et := rv.Type().Elem()
	if et.Kind() != reflect.Interface {
		id, ok := TypeOf(et)
		if !ok {
			return types.Invalid, errors.New(errors.PhaseConstruct, errors.KindUnsupported).
				Path(path...).
				GoType(et.String()).
				Detail("unsupported list element").
				Build()
		}
		if id == types.List {
			return types.Invalid, nestedList(path, et)
		}
		return id, nil
	}

	elem := types.SQLNull
	for i := 0; i < rv.Len(); i++ {
		x := rv.Index(i)
		for x.Kind() == reflect.Interface || x.Kind() == reflect.Pointer {
			if x.IsNil() {
				break
			}
			x = x.Elem()
		}
		if !x.IsValid() || ((x.Kind() == reflect.Interface || x.Kind() == reflect.Pointer) && x.IsNil()) {
			continue
		}

		id, ok := TypeOf(x.Type())
		if !ok {
			return types.Invalid, errors.New(errors.PhaseConstruct, errors.KindUnsupported).
				Path(appendPath(path, i)...).
				GoType(x.Type().String()).
				Detail("unsupported list element").
				Build()
		}
		if id == types.List {
			return types.Invalid, nestedList(appendPath(path, i), x.Type())
		}
		if elem == types.SQLNull {
			elem = id
			continue
		}
		if id != elem {
			e := errors.TypeMismatch(errors.PhaseConstruct, appendPath(path, i), x.Type().String(), elem.String())
			e.Detail = "list elements must share one type"
			return types.Invalid, e
		}
	}
	return elem, nil
}

func nestedList(path []string, t reflect.Type) error {
	return errors.New(errors.PhaseConstruct, errors.KindUnsupported).
		Path(path...).
		GoType(t.String()).
		Detail("nested lists").
		Build()
}

func appendPath(path []string, i int) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, strconv.Itoa(i))
}
