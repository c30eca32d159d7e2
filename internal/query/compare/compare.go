// Package compare defines the total order used to sort and group cell values.
//
// Values of the same kind compare naturally: numbers numerically (ints and
// floats are mixed freely), strings lexicographically by byte, false before
// true. Values of different kinds are ordered by kind rank:
//
//	nil < bool < number < string < anything else
//
// Anything else falls back to comparing fmt's %v rendering, so Compare never
// panics.
package compare

import (
	"cmp"
	"fmt"
	"strings"
	"time"
)

type rank int

const (
	rankNil rank = iota
	rankBool
	rankNumber
	rankString
	rankTime
	rankOther
)

func classify(v interface{}) (rank, float64) {
	switch val := v.(type) {
	case nil:
		return rankNil, 0
	case bool:
		if val {
			return rankBool, 1
		}
		return rankBool, 0
	case int:
		return rankNumber, float64(val)
	case int8:
		return rankNumber, float64(val)
	case int16:
		return rankNumber, float64(val)
	case int32:
		return rankNumber, float64(val)
	case int64:
		return rankNumber, float64(val)
	case uint:
		return rankNumber, float64(val)
	case uint32:
		return rankNumber, float64(val)
	case uint64:
		return rankNumber, float64(val)
	case float32:
		return rankNumber, float64(val)
	case float64:
		return rankNumber, val
	case string:
		return rankString, 0
	case time.Time:
		return rankTime, 0
	default:
		return rankOther, 0
	}
}

// Values returns -1, 0 or +1 depending on whether a sorts before, equal to
// or after b.
func Values(a, b interface{}) int {
	ra, fa := classify(a)
	rb, fb := classify(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case rankNil:
		return 0
	case rankBool, rankNumber:
		// exact comparison for two int64 beyond float precision
		if ia, ok := a.(int64); ok {
			if ib, ok := b.(int64); ok {
				return cmp.Compare(ia, ib)
			}
		}
		return cmp.Compare(fa, fb)
	case rankString:
		return strings.Compare(a.(string), b.(string))
	case rankTime:
		return a.(time.Time).Compare(b.(time.Time))
	default:
		return strings.Compare(fmt.Sprintf("%v", a), fmt.Sprintf("%v", b))
	}
}

// Tuples compares two keys element by element, lexicographically.
// A shorter key that is a prefix of a longer one sorts first.
func Tuples(a, b []interface{}) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if c := Values(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}
