package value

import "github.com/wippyai/duckdb-value/types"

// Any converts v into a Go value: nil for NULL, the accessor's type for
// primitives, []any for lists, and the rendered text for everything else.
func (v *Value) Any() any {
	if !v.Valid() || v.IsNull() {
		return nil
	}

	id := v.LogicalTypeID()
	if x, ok := v.scalar(id); ok {
		return x
	}

	if id == types.List {
		children := v.ToSlice()
		defer CloseAll(children)

		out := make([]any, len(children))
		for i, c := range children {
			out[i] = c.Any()
		}
		return out
	}

	return v.String()
}
