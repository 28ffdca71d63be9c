package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLoad      Phase = "load"      // opening the native library
	PhaseBind      Phase = "bind"      // resolving C symbols
	PhaseConstruct Phase = "construct" // Go to DuckDB value
	PhaseParse     Phase = "parse"     // literal parsing
	PhaseRender    Phase = "render"    // presenting values
)

// Kind categorizes the error
type Kind string

const (
	KindNotFound      Kind = "not_found"
	KindMissingSymbol Kind = "missing_symbol"
	KindUnsupported   Kind = "unsupported"
	KindInvalidInput  Kind = "invalid_input"
	KindTypeMismatch  Kind = "type_mismatch"
	KindOverflow      Kind = "overflow"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	GoType  string
	SQLType string
	Detail  string
	Path    []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.SQLType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.SQLType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", SQL type ")
			b.WriteString(e.SQLType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("SQL type ")
			b.WriteString(e.SQLType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.SQLType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the element path, e.g. list indexes or column names
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// SQLType sets the DuckDB type name
func (b *Builder) SQLType(t string) *Builder {
	b.err.SQLType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, sqlType string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindTypeMismatch,
		Path:    path,
		GoType:  goType,
		SQLType: sqlType,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindOverflow,
		Path:    path,
		SQLType: targetType,
		Detail:  fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:   value,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Load creates a library loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindNotFound,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a literal parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidInput,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// MissingSymbolsError is returned when a loaded library lacks C API functions
type MissingSymbolsError struct {
	Library string
	Symbols []string
}

// NewMissingSymbolsError creates an error for the given library and symbols
func NewMissingSymbolsError(library string, symbols []string) *MissingSymbolsError {
	return &MissingSymbolsError{
		Library: library,
		Symbols: append([]string(nil), symbols...),
	}
}

func (e *MissingSymbolsError) Error() string {
	if len(e.Symbols) == 0 {
		return "[bind] missing_symbol: no symbols specified"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("missing %d symbol(s) in %s:", len(e.Symbols), e.Library))
	for _, s := range e.Symbols {
		b.WriteString("\n  - ")
		b.WriteString(s)
	}
	return b.String()
}

// Is reports whether target matches this error type
func (e *MissingSymbolsError) Is(target error) bool {
	switch t := target.(type) {
	case *MissingSymbolsError:
		return true
	case *Error:
		return t.Phase == PhaseBind && t.Kind == KindMissingSymbol
	}
	return false
}
