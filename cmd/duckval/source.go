package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/segmentio/parquet-go"

	duckdbvalue "github.com/wippyai/duckdb-value"
	"github.com/wippyai/duckdb-value/build"
	"github.com/wippyai/duckdb-value/types"
	"github.com/wippyai/duckdb-value/value"
)

// entry is a named value to display.
type entry struct {
	name string
	v    *value.Value
}

func closeEntries(entries []entry) {
	for _, e := range entries {
		e.v.Close()
	}
}

// collect builds the values requested by opts.
func collect(lib duckdbvalue.Library, opts options) ([]entry, error) {
	if opts.parquetFile != "" {
		return parquetRow(lib, opts.parquetFile, opts.row)
	}

	if opts.null {
		v, err := build.New(lib, lib, nil)
		if err != nil {
			return nil, err
		}
		return []entry{{name: "value", v: v}}, nil
	}

	kind, ok := types.Parse(opts.typeName)
	if !ok {
		return nil, fmt.Errorf("unknown type %q", opts.typeName)
	}
	v, err := fromLiteral(lib, kind, opts.literal, opts.list, opts.hasList)
	if err != nil {
		return nil, err
	}
	return []entry{{name: "value", v: v}}, nil
}

// fromLiteral parses literal, or list when isList is set, as kind.
func fromLiteral(lib duckdbvalue.Library, kind types.TypeID, literal, list string, isList bool) (*value.Value, error) {
	var (
		x   any
		err error
	)
	if isList {
		x, err = build.ParseList(kind, list)
	} else {
		x, err = build.Parse(kind, literal)
	}
	if err != nil {
		return nil, err
	}
	return build.New(lib, lib, x)
}

// parseInput reads an interactive literal. A bracketed literal is a list.
func parseInput(lib duckdbvalue.Library, typeName, literal string) (*value.Value, error) {
	kind, ok := types.Parse(typeName)
	if !ok {
		return nil, fmt.Errorf("unknown type %q", typeName)
	}
	s := strings.TrimSpace(literal)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return fromLiteral(lib, kind, "", s[1:len(s)-1], true)
	}
	if strings.EqualFold(s, "NULL") {
		return build.New(lib, lib, nil)
	}
	return fromLiteral(lib, kind, literal, "", false)
}

// parquetRow builds one value per top level column of row n.
func parquetRow(lib duckdbvalue.Library, path string, n int64) ([]entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	if n < 0 || n >= pqFile.NumRows() {
		return nil, fmt.Errorf("row %d out of range, file has %d rows", n, pqFile.NumRows())
	}

	reader := parquet.NewReader(pqFile)
	defer reader.Close()

	if err := reader.SeekToRow(n); err != nil {
		return nil, fmt.Errorf("seek to row %d: %w", n, err)
	}
	row := make(map[string]any)
	if err := reader.Read(&row); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	var entries []entry
	for _, field := range pqFile.Schema().Fields() {
		name := field.Name()
		v, err := build.New(lib, lib, row[name])
		if err != nil {
			closeEntries(entries)
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		entries = append(entries, entry{name: name, v: v})
	}
	return entries, nil
}
