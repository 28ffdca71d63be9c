package types

import (
	"strconv"
	"strings"
)

// TypeID classifies a value. Numbering follows duckdb_type.
type TypeID int32

const (
	Invalid        TypeID = 0
	Boolean        TypeID = 1
	TinyInt        TypeID = 2
	SmallInt       TypeID = 3
	Integer        TypeID = 4
	BigInt         TypeID = 5
	UTinyInt       TypeID = 6
	USmallInt      TypeID = 7
	UInteger       TypeID = 8
	UBigInt        TypeID = 9
	Float          TypeID = 10
	Double         TypeID = 11
	Timestamp      TypeID = 12
	Date           TypeID = 13
	Time           TypeID = 14
	Interval       TypeID = 15
	HugeInt        TypeID = 16
	Varchar        TypeID = 17
	Blob           TypeID = 18
	Decimal        TypeID = 19
	TimestampS     TypeID = 20
	TimestampMS    TypeID = 21
	TimestampNS    TypeID = 22
	Enum           TypeID = 23
	List           TypeID = 24
	Struct         TypeID = 25
	Map            TypeID = 26
	UUID           TypeID = 27
	Union          TypeID = 28
	Bit            TypeID = 29
	TimeTZ         TypeID = 30
	TimestampTZ    TypeID = 31
	UHugeInt       TypeID = 32
	Array          TypeID = 33
	Any            TypeID = 34
	VarInt         TypeID = 35
	SQLNull        TypeID = 36
	StringLiteral  TypeID = 37
	IntegerLiteral TypeID = 38
)

var typeNames = [...]string{
	Invalid:        "INVALID",
	Boolean:        "BOOLEAN",
	TinyInt:        "TINYINT",
	SmallInt:       "SMALLINT",
	Integer:        "INTEGER",
	BigInt:         "BIGINT",
	UTinyInt:       "UTINYINT",
	USmallInt:      "USMALLINT",
	UInteger:       "UINTEGER",
	UBigInt:        "UBIGINT",
	Float:          "FLOAT",
	Double:         "DOUBLE",
	Timestamp:      "TIMESTAMP",
	Date:           "DATE",
	Time:           "TIME",
	Interval:       "INTERVAL",
	HugeInt:        "HUGEINT",
	Varchar:        "VARCHAR",
	Blob:           "BLOB",
	Decimal:        "DECIMAL",
	TimestampS:     "TIMESTAMP_S",
	TimestampMS:    "TIMESTAMP_MS",
	TimestampNS:    "TIMESTAMP_NS",
	Enum:           "ENUM",
	List:           "LIST",
	Struct:         "STRUCT",
	Map:            "MAP",
	UUID:           "UUID",
	Union:          "UNION",
	Bit:            "BIT",
	TimeTZ:         "TIME_TZ",
	TimestampTZ:    "TIMESTAMP_TZ",
	UHugeInt:       "UHUGEINT",
	Array:          "ARRAY",
	Any:            "ANY",
	VarInt:         "VARINT",
	SQLNull:        "SQLNULL",
	StringLiteral:  "STRING_LITERAL",
	IntegerLiteral: "INTEGER_LITERAL",
}

func (t TypeID) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "UNKNOWN(" + strconv.Itoa(int(t)) + ")"
}

// Parse resolves a type name as printed by String. Matching is case
// insensitive and accepts the common SQL aliases.
func Parse(name string) (TypeID, bool) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if id, ok := aliases[upper]; ok {
		return id, true
	}
	for i, n := range typeNames {
		if n == upper {
			return TypeID(i), true
		}
	}
	return Invalid, false
}

var aliases = map[string]TypeID{
	"BOOL":   Boolean,
	"INT1":   TinyInt,
	"INT2":   SmallInt,
	"INT4":   Integer,
	"INT":    Integer,
	"INT8":   BigInt,
	"LONG":   BigInt,
	"REAL":   Float,
	"FLOAT4": Float,
	"FLOAT8": Double,
	"TEXT":   Varchar,
	"STRING": Varchar,
	"NULL":   SQLNull,
}

// IsInteger reports whether t is one of the fixed-width integer kinds.
func (t TypeID) IsInteger() bool {
	switch t {
	case TinyInt, SmallInt, Integer, BigInt,
		UTinyInt, USmallInt, UInteger, UBigInt:
		return true
	}
	return false
}

// IsSigned reports whether t is a signed integer kind.
func (t TypeID) IsSigned() bool {
	switch t {
	case TinyInt, SmallInt, Integer, BigInt:
		return true
	}
	return false
}

func (t TypeID) IsFloat() bool {
	return t == Float || t == Double
}

func (t TypeID) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat()
}

// IsPrimitive reports whether a scalar accessor exists for t.
func (t TypeID) IsPrimitive() bool {
	return t == Boolean || t.IsNumeric()
}

// IsNested reports whether values of t contain child values.
func (t TypeID) IsNested() bool {
	switch t {
	case List, Struct, Map, Union, Array:
		return true
	}
	return false
}

// BitWidth returns the storage width of primitive kinds, 0 otherwise.
func (t TypeID) BitWidth() int {
	switch t {
	case Boolean, TinyInt, UTinyInt:
		return 8
	case SmallInt, USmallInt:
		return 16
	case Integer, UInteger, Float:
		return 32
	case BigInt, UBigInt, Double:
		return 64
	}
	return 0
}
