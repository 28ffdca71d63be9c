package build

import (
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/wippyai/duckdb-value/errors"
	"github.com/wippyai/duckdb-value/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		kind    types.TypeID
		literal string
		want    any
	}{
		{types.Boolean, "true", true},
		{types.Boolean, " 0 ", false},
		{types.TinyInt, "-128", int8(-128)},
		{types.UTinyInt, "255", uint8(255)},
		{types.SmallInt, "-32768", int16(-32768)},
		{types.USmallInt, "65535", uint16(65535)},
		{types.Integer, "2147483647", int32(2147483647)},
		{types.UInteger, "4294967295", uint32(4294967295)},
		{types.BigInt, "-9223372036854775808", int64(-9223372036854775808)},
		{types.UBigInt, "18446744073709551615", uint64(18446744073709551615)},
		{types.Float, "3.14", float32(3.14)},
		{types.Double, "2.71828", 2.71828},
		{types.Varchar, " keep spaces ", " keep spaces "},
		{types.SQLNull, "anything", nil},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.literal, func(t *testing.T) {
			got, err := Parse(tt.kind, tt.literal)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		kind    types.TypeID
		literal string
		want    errors.Kind
	}{
		{types.TinyInt, "128", errors.KindOverflow},
		{types.UTinyInt, "256", errors.KindOverflow},
		{types.UBigInt, "18446744073709551616", errors.KindOverflow},
		{types.Float, "1e40", errors.KindOverflow},
		{types.UInteger, "-1", errors.KindInvalidInput},
		{types.Integer, "twelve", errors.KindInvalidInput},
		{types.Boolean, "yes", errors.KindInvalidInput},
		{types.Date, "2024-01-01", errors.KindUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.literal, func(t *testing.T) {
			_, err := Parse(tt.kind, tt.literal)
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("expected *errors.Error, got %v", err)
			}
			if e.Phase != errors.PhaseParse || e.Kind != tt.want {
				t.Errorf("got [%s] %s, want [parse] %s", e.Phase, e.Kind, tt.want)
			}
		})
	}
}

func TestParseList(t *testing.T) {
	got, err := ParseList(types.Integer, "1, NULL ,3")
	if err != nil {
		t.Fatal(err)
	}
	list, ok := got.([]*int32)
	if !ok {
		t.Fatalf("got %T", got)
	}
	if len(list) != 3 || *list[0] != 1 || list[1] != nil || *list[2] != 3 {
		t.Fatalf("got %v", list)
	}

	empty, err := ParseList(types.Varchar, "  ")
	if err != nil {
		t.Fatal(err)
	}
	if s, ok := empty.([]*string); !ok || len(s) != 0 {
		t.Fatalf("got %#v", empty)
	}

	strs, err := ParseList(types.Varchar, "a, b")
	if err != nil {
		t.Fatal(err)
	}
	if s := strs.([]*string); *s[0] != "a" || *s[1] != "b" {
		t.Fatalf("got %q %q", *s[0], *s[1])
	}
}

func TestParseList_Errors(t *testing.T) {
	_, err := ParseList(types.TinyInt, "1,2,999")
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("expected *errors.Error, got %v", err)
	}
	if e.Kind != errors.KindOverflow || !reflect.DeepEqual(e.Path, []string{"2"}) {
		t.Fatalf("got %v", e)
	}

	if _, err := ParseList(types.List, "1"); !stderrors.Is(err, errors.Unsupported(errors.PhaseParse, "")) {
		t.Fatalf("got %v", err)
	}
}

func TestParseList_FeedsNew(t *testing.T) {
	l := newEngine(t)

	x, err := ParseList(types.UTinyInt, "7,NULL")
	if err != nil {
		t.Fatal(err)
	}
	v, err := New(l, l, x)
	if err != nil {
		t.Fatal(err)
	}
	defer v.Close()

	if got := v.String(); got != "[7, NULL]" {
		t.Fatalf("String() = %q", got)
	}
}
