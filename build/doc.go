// Package build creates DuckDB values from Go values.
//
// New dispatches on the reflect kind of its argument:
//
//	Go                         DuckDB
//	──────────────────────────────────────
//	nil, nil pointer           NULL
//	bool                       BOOLEAN
//	int8 / uint8               TINYINT / UTINYINT
//	int16 / uint16             SMALLINT / USMALLINT
//	int32 / uint32             INTEGER / UINTEGER
//	int64, int / uint64, uint  BIGINT / UBIGINT
//	float32 / float64          FLOAT / DOUBLE
//	string, []byte             VARCHAR
//	slice or array of above    LIST
//
// Named types are accepted through their underlying kind. Pointers are
// dereferenced, so []*int32 is how a list with NULL elements is spelled.
// Lists of lists are not supported.
//
// Parse and ParseList turn command line literals into values New accepts.
package build
