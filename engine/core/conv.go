package core

import (
	"maps"
	"reflect"
	"sort"
	"strconv"
)

// IsScalar reports whether v is a plain scalar value as produced by a YAML or
// JSON decoder (string, bool, or one of the common numeric kinds).
func IsScalar(v any) bool {
	_, ok := ScalarToString(v)
	return ok
}

// ScalarToString converts a decoded scalar into its canonical string form.
// Returns false when v is nil or not a scalar.
//
// Numeric formatting notes:
//   - float64/float32 use the shortest representation that round-trips
//     (strconv 'g' with precision -1), so 1.15 renders as "1.15".
//   - Values whose literal spelling matters (e.g. "1.10") must be carried as
//     strings by the caller; a decoded float cannot recover a trailing zero.
func ScalarToString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int8:
		return strconv.FormatInt(int64(t), 10), true
	case int16:
		return strconv.FormatInt(int64(t), 10), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint:
		return strconv.FormatUint(uint64(t), 10), true
	case uint8:
		return strconv.FormatUint(uint64(t), 10), true
	case uint16:
		return strconv.FormatUint(uint64(t), 10), true
	case uint32:
		return strconv.FormatUint(uint64(t), 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), true
	default:
		return "", false
	}
}

// ToAnyMap converts supported mapping forms into map[string]any. Keys of
// map[any]any inputs are stringified; entries with non-scalar keys are
// skipped. Unsupported inputs return false.
func ToAnyMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, vv := range m {
			out[k] = vv
		}
		return out, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, vv := range m {
			ks, ok := ScalarToString(k)
			if !ok {
				continue
			}
			out[ks] = vv
		}
		return out, true
	default:
		return nil, false
	}
}

// ToAnySlice converts supported sequence forms into []any. Unsupported inputs
// return false.
func ToAnySlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// CloneStringMap returns a shallow copy of m to avoid aliasing. A nil input
// returns nil.
func CloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	maps.Copy(out, m)
	return out
}

// SortedKeys returns the keys of m in lexicographic order. Map iteration
// order is random in Go; sorting keeps multi-entry processing deterministic.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
