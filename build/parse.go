package build

import (
	stderrors "errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/wippyai/duckdb-value/errors"
	"github.com/wippyai/duckdb-value/types"
)

var goTypes = map[types.TypeID]reflect.Type{
	types.Boolean:   reflect.TypeOf(false),
	types.TinyInt:   reflect.TypeOf(int8(0)),
	types.SmallInt:  reflect.TypeOf(int16(0)),
	types.Integer:   reflect.TypeOf(int32(0)),
	types.BigInt:    reflect.TypeOf(int64(0)),
	types.UTinyInt:  reflect.TypeOf(uint8(0)),
	types.USmallInt: reflect.TypeOf(uint16(0)),
	types.UInteger:  reflect.TypeOf(uint32(0)),
	types.UBigInt:   reflect.TypeOf(uint64(0)),
	types.Float:     reflect.TypeOf(float32(0)),
	types.Double:    reflect.TypeOf(float64(0)),
	types.Varchar:   reflect.TypeOf(""),
}

// Parse converts literal into the Go value New maps to kind. SQLNULL
// yields nil for any literal.
func Parse(kind types.TypeID, literal string) (any, error) {
	s := strings.TrimSpace(literal)
	var (
		x   any
		err error
	)

	switch kind {
	case types.SQLNull:
		return nil, nil
	case types.Varchar:
		return literal, nil
	case types.Boolean:
		x, err = strconv.ParseBool(s)
	case types.TinyInt:
		var n int64
		n, err = strconv.ParseInt(s, 10, 8)
		x = int8(n)
	case types.SmallInt:
		var n int64
		n, err = strconv.ParseInt(s, 10, 16)
		x = int16(n)
	case types.Integer:
		var n int64
		n, err = strconv.ParseInt(s, 10, 32)
		x = int32(n)
	case types.BigInt:
		x, err = strconv.ParseInt(s, 10, 64)
	case types.UTinyInt:
		var n uint64
		n, err = strconv.ParseUint(s, 10, 8)
		x = uint8(n)
	case types.USmallInt:
		var n uint64
		n, err = strconv.ParseUint(s, 10, 16)
		x = uint16(n)
	case types.UInteger:
		var n uint64
		n, err = strconv.ParseUint(s, 10, 32)
		x = uint32(n)
	case types.UBigInt:
		x, err = strconv.ParseUint(s, 10, 64)
	case types.Float:
		var f float64
		f, err = strconv.ParseFloat(s, 32)
		x = float32(f)
	case types.Double:
		x, err = strconv.ParseFloat(s, 64)
	default:
		return nil, errors.Unsupported(errors.PhaseParse, "literals of type "+kind.String())
	}

	if err != nil {
		if stderrors.Is(err, strconv.ErrRange) {
			return nil, errors.Overflow(errors.PhaseParse, nil, s, kind.String())
		}
		return nil, errors.ParseFailed(kind.String()+" literal "+strconv.Quote(s), err)
	}
	return x, nil
}

// ParseList splits a comma separated literal and parses each trimmed
// element as kind. The result is a slice of pointers, with nil for elements
// spelled NULL, ready for New. An empty literal is an empty list.
func ParseList(kind types.TypeID, literal string) (any, error) {
	gt, ok := goTypes[kind]
	if !ok {
		return nil, errors.Unsupported(errors.PhaseParse, "lists of type "+kind.String())
	}
	pt := reflect.PointerTo(gt)

	var parts []string
	if strings.TrimSpace(literal) != "" {
		parts = strings.Split(literal, ",")
	}

	out := reflect.MakeSlice(reflect.SliceOf(pt), 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if strings.EqualFold(part, "NULL") {
			out = reflect.Append(out, reflect.Zero(pt))
			continue
		}
		x, err := Parse(kind, part)
		if err != nil {
			var e *errors.Error
			if stderrors.As(err, &e) {
				e.Path = []string{strconv.Itoa(i)}
			}
			return nil, err
		}
		p := reflect.New(gt)
		p.Elem().Set(reflect.ValueOf(x))
		out = reflect.Append(out, p)
	}
	return out.Interface(), nil
}
