// Command duckval builds DuckDB values and shows how they decompose.
//
//	duckval -type BIGINT -value 42
//	duckval -type INTEGER -list 1,NULL,3
//	duckval -parquet data.parquet -row 2
//	duckval -engine local -i
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	duckdbvalue "github.com/wippyai/duckdb-value"
	"github.com/wippyai/duckdb-value/engine"
	"github.com/wippyai/duckdb-value/errors"
	"github.com/wippyai/duckdb-value/value"
)

type options struct {
	libPath     string
	engineName  string
	typeName    string
	literal     string
	list        string
	parquetFile string
	logLevel    string
	row         int64
	hasList     bool
	null        bool
	track       bool
	interactive bool
}

func main() {
	var opts options
	flag.StringVar(&opts.libPath, "lib", "", "Path to libduckdb (default: "+engine.DefaultLibrary+")")
	flag.StringVar(&opts.engineName, "engine", "duckdb", "Value engine: duckdb or local")
	flag.StringVar(&opts.typeName, "type", "VARCHAR", "Logical type of -value or -list elements")
	flag.StringVar(&opts.literal, "value", "", "Literal to build")
	flag.StringVar(&opts.list, "list", "", "Comma separated list elements (NULL for null)")
	flag.BoolVar(&opts.null, "null", false, "Build a NULL value")
	flag.StringVar(&opts.parquetFile, "parquet", "", "Build one value per column of a parquet row")
	flag.Int64Var(&opts.row, "row", 0, "Row index for -parquet")
	flag.BoolVar(&opts.track, "track", false, "Report leaked handles on exit")
	flag.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	flag.BoolVar(&opts.interactive, "i", false, "Interactive mode with TUI")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "list" {
			opts.hasList = true
		}
	})

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	logger, err := newLogger(opts.logLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()
	engine.SetLogger(logger)
	value.SetLogger(logger)

	lib, closeLib, err := openEngine(opts.engineName, opts.libPath)
	if err != nil {
		return err
	}
	defer closeLib()

	if opts.track {
		tr := engine.Tracked(lib)
		lib = tr
		defer reportLeaks(logger, tr)
	}

	if opts.interactive {
		return runInteractive(lib, opts.engineName)
	}

	entries, err := collect(lib, opts)
	if err != nil {
		return err
	}
	defer closeEntries(entries)

	return printEntries(os.Stdout, entries)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func openEngine(name, libPath string) (duckdbvalue.Library, func(), error) {
	switch name {
	case "duckdb":
		db, err := engine.Open(engine.Config{Path: libPath})
		if err != nil {
			return nil, nil, fmt.Errorf("open libduckdb: %w", err)
		}
		return db, func() { db.Close() }, nil
	case "local":
		l := engine.NewLocal()
		return l, func() { l.Close() }, nil
	}
	return nil, nil, errors.NotFound(errors.PhaseLoad, "engine", name)
}

func reportLeaks(logger *zap.Logger, tr *engine.Tracker) {
	leaks := tr.Leaks()
	for _, l := range leaks {
		logger.Warn("leaked", zap.Stringer("resource", l))
	}
	for _, v := range tr.Violations() {
		logger.Warn("violation", zap.String("detail", v))
	}
	fmt.Fprintf(os.Stderr, "tracked: %d leaked, %d violations\n", len(leaks), len(tr.Violations()))
}
