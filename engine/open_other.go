//go:build !(darwin || freebsd || linux)

package engine

import (
	"runtime"

	"github.com/wippyai/duckdb-value/errors"
)

// DefaultLibrary is the file name loaded when Config.Path is empty.
var DefaultLibrary = "duckdb.dll"

func dlopen(string) (uintptr, error) {
	return 0, errors.Unsupported(errors.PhaseLoad, "loading libduckdb on "+runtime.GOOS)
}

func dlsym(uintptr, string) bool { return false }

func dlclose(uintptr) error { return nil }

func register(any, uintptr, string) {}
