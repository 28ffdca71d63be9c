package engine

import (
	stderrors "errors"
	"math"
	"os"
	"testing"

	duckdbvalue "github.com/wippyai/duckdb-value"
	"github.com/wippyai/duckdb-value/errors"
	"github.com/wippyai/duckdb-value/types"
)

// openDuckDB opens the library named by DUCKDB_LIB, or the default one,
// and skips the test when it is not installed.
func openDuckDB(t *testing.T) *DuckDB {
	t.Helper()
	db, err := Open(Config{Path: os.Getenv("DUCKDB_LIB")})
	if err != nil {
		t.Skipf("libduckdb not available: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return db
}

func TestOpen_MissingLibrary(t *testing.T) {
	_, err := Open(Config{Path: "/nonexistent/libduckdb.so"})
	if err == nil {
		t.Fatal("expected error")
	}
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if e.Phase != errors.PhaseLoad {
		t.Fatalf("phase = %s", e.Phase)
	}
}

func TestConfig_DefaultPath(t *testing.T) {
	if got := (Config{}).path(); got != DefaultLibrary {
		t.Fatalf("path = %q", got)
	}
	if got := (Config{Path: "x.so"}).path(); got != "x.so" {
		t.Fatalf("path = %q", got)
	}
}

func TestDuckDB_Scalars(t *testing.T) {
	db := openDuckDB(t)
	if db.Version() == "" {
		t.Error("empty version")
	}

	h := db.CreateInt64(math.MinInt64)
	if got := db.GetInt64(h); got != math.MinInt64 {
		t.Errorf("int64 = %d", got)
	}
	if got := typeOf(db, h); got != types.BigInt {
		t.Errorf("type = %v", got)
	}
	db.DestroyValue(&h)
	if h != 0 {
		t.Error("DestroyValue must zero the handle")
	}

	f := db.CreateFloat(3.14)
	defer db.DestroyValue(&f)
	if got := db.GetFloat(f); got != float32(3.14) {
		t.Errorf("float = %v", got)
	}

	s := db.CreateVarchar("hello")
	defer db.DestroyValue(&s)
	if got := varchar(t, db, s); got != "hello" {
		t.Errorf("varchar = %q", got)
	}

	n := db.CreateNullValue()
	defer db.DestroyValue(&n)
	if !db.IsNullValue(n) {
		t.Error("null value not null")
	}
}

func TestDuckDB_Lists(t *testing.T) {
	db := openDuckDB(t)

	lt := db.CreateLogicalType(types.Integer)
	defer db.DestroyLogicalType(&lt)

	items := []duckdbvalue.ValueHandle{db.CreateInt32(1), db.CreateInt32(2), db.CreateInt32(3)}
	list := db.CreateListValue(lt, items)
	for i := range items {
		db.DestroyValue(&items[i])
	}
	if list == 0 {
		t.Fatal("create_list_value failed")
	}
	defer db.DestroyValue(&list)

	if n := db.GetListSize(list); n != 3 {
		t.Fatalf("size = %d", n)
	}
	for i := uint64(0); i < 3; i++ {
		c := db.GetListChild(list, i)
		if got := db.GetInt32(c); got != int32(i+1) {
			t.Errorf("child %d = %d", i, got)
		}
		db.DestroyValue(&c)
	}

	empty := db.CreateListValue(lt, nil)
	if empty == 0 {
		t.Fatal("empty list creation failed")
	}
	defer db.DestroyValue(&empty)
	if n := db.GetListSize(empty); n != 0 {
		t.Fatalf("empty size = %d", n)
	}
}

func TestDuckDB_TrackedNoLeaks(t *testing.T) {
	tr := Tracked(openDuckDB(t))

	h := tr.CreateVarchar("x")
	tr.Free(tr.GetVarchar(h))
	tr.DestroyValue(&h)

	if leaks := tr.Leaks(); len(leaks) != 0 {
		t.Fatalf("leaks = %v", leaks)
	}
}
