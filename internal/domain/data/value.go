package data

import (
	"fmt"
	"reflect"
	"strconv"
)

// Text converts a cell value to its string form.
// nil becomes the empty string; floats use the shortest representation.
func Text(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Equal compares two cell values. "1" and 1 are different values.
func Equal(a, b interface{}) bool {
	return reflect.DeepEqual(a, b)
}

// HashKey returns a value usable as a map key for v.
// Comparable values are returned as-is; slices, maps and other
// non-comparable values are replaced by their Go-syntax representation.
func HashKey(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	if reflect.TypeOf(v).Comparable() {
		return v
	}
	return fmt.Sprintf("%#v", v)
}
