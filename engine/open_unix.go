//go:build darwin || freebsd || linux

package engine

import (
	"runtime"

	"github.com/ebitengine/purego"

	"github.com/wippyai/duckdb-value/errors"
)

// DefaultLibrary is the file name loaded when Config.Path is empty.
var DefaultLibrary = func() string {
	if runtime.GOOS == "darwin" {
		return "libduckdb.dylib"
	}
	return "libduckdb.so"
}()

func dlopen(path string) (uintptr, error) {
	lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, errors.Load("open "+path, err)
	}
	return lib, nil
}

func dlsym(lib uintptr, name string) bool {
	_, err := purego.Dlsym(lib, name)
	return err == nil
}

func dlclose(lib uintptr) error {
	return purego.Dlclose(lib)
}

func register(fptr any, lib uintptr, name string) {
	purego.RegisterLibFunc(fptr, lib, name)
}
