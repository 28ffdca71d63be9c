// Command genaccessors writes the scalar accessors of value.Value.
//
// Each row of the table maps an accessor method to the C API getter it
// delegates to and the logical type it expects.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"text/template"
)

type accessor struct {
	Method string // Value method
	GoType string
	Call   string // duckdbvalue.API method
	TypeID string // types constant
	Zero   string
}

var accessors = []accessor{
	{"Bool", "bool", "GetBool", "Boolean", "false"},
	{"Int8", "int8", "GetInt8", "TinyInt", "0"},
	{"Uint8", "uint8", "GetUint8", "UTinyInt", "0"},
	{"Int16", "int16", "GetInt16", "SmallInt", "0"},
	{"Uint16", "uint16", "GetUint16", "USmallInt", "0"},
	{"Int32", "int32", "GetInt32", "Integer", "0"},
	{"Uint32", "uint32", "GetUint32", "UInteger", "0"},
	{"Int64", "int64", "GetInt64", "BigInt", "0"},
	{"Uint64", "uint64", "GetUint64", "UBigInt", "0"},
	{"Float32", "float32", "GetFloat", "Float", "0"},
	{"Float64", "float64", "GetDouble", "Double", "0"},
}

var tmpl = template.Must(template.New("accessors").Parse(`// Code generated by genaccessors. DO NOT EDIT.

package value

import "github.com/wippyai/duckdb-value/types"
{{range .}}
// {{.Method}} reads a types.{{.TypeID}} value.
func (v *Value) {{.Method}}() {{.GoType}} {
	if v == nil || v.ptr == 0 {
		return {{.Zero}}
	}
	return v.api.{{.Call}}(v.ptr)
}
{{end}}
// scalar reads v with the accessor registered for id.
func (v *Value) scalar(id types.TypeID) (any, bool) {
	switch id {
{{- range .}}
	case types.{{.TypeID}}:
		return v.{{.Method}}(), true
{{- end}}
	}
	return nil, false
}

// HasAccessor reports whether a scalar accessor exists for id.
func HasAccessor(id types.TypeID) bool {
	switch id {
	case {{range $i, $a := .}}{{if $i}}, {{end}}types.{{$a.TypeID}}{{end}}:
		return true
	}
	return false
}
`))

func main() {
	out := flag.String("out", "accessors_gen.go", "output file")
	flag.Parse()

	if err := run(*out); err != nil {
		fmt.Fprintf(os.Stderr, "genaccessors: %v\n", err)
		os.Exit(1)
	}
}

func run(out string) error {
	src, err := generate()
	if err != nil {
		return err
	}
	return os.WriteFile(out, src, 0o644)
}

func generate() ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, accessors); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	return src, nil
}
