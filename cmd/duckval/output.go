package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"github.com/wippyai/duckdb-value/types"
	"github.com/wippyai/duckdb-value/value"
)

var header = []string{"NAME", "TYPE", "NULL", "VALUE"}

// describe lists v and, for lists, every element below it.
func describe(name string, v *value.Value) [][]string {
	id := v.LogicalTypeID()
	null := v.IsNull()
	rows := [][]string{{name, id.String(), strconv.FormatBool(null), v.String()}}
	if id != types.List || null {
		return rows
	}

	children := v.ToSlice()
	defer value.CloseAll(children)
	for i, c := range children {
		rows = append(rows, describe(fmt.Sprintf("%s[%d]", name, i), c)...)
	}
	return rows
}

func describeAll(entries []entry) [][]string {
	var rows [][]string
	for _, e := range entries {
		rows = append(rows, describe(e.name, e.v)...)
	}
	return rows
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printEntries writes a table to a terminal and tab separated lines
// otherwise.
func printEntries(w io.Writer, entries []entry) error {
	rows := describeAll(entries)
	if isTerminal(w) {
		renderTable(w, rows)
		return nil
	}
	return writeTSV(w, rows)
}

func renderTable(w io.Writer, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(rows)
	table.Render()
}

func writeTSV(w io.Writer, rows [][]string) error {
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, strings.Join(r, "\t")); err != nil {
			return err
		}
	}
	return nil
}
