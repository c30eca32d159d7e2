// Package aggregate provides the built-in aggregate functions used by
// group-by operations and by name in pipeline recipes.
//
// Every function receives the values of one column across a partition, in
// partition order, and returns a single value.
package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/leengari/recordlib/internal/domain/data"
	"github.com/leengari/recordlib/internal/query/compare"
)

// Func computes one value from the values of a partition
type Func func(values []interface{}) interface{}

// Sum adds every numeric value. Blank and non-numeric values are skipped.
// The result is an int64 when every contributing value was a whole number
// without a fractional part in its source, otherwise a float64.
func Sum(values []interface{}) interface{} {
	total := decimal.Zero
	allInts := true
	for _, v := range values {
		d, isInt, ok := Number(v)
		if !ok {
			continue
		}
		total = total.Add(d)
		allInts = allInts && isInt
	}
	if allInts {
		return total.IntPart()
	}
	return total.InexactFloat64()
}

// Count returns the number of values, blank ones included
func Count(values []interface{}) interface{} {
	return len(values)
}

// CountDistinct returns the number of distinct values
func CountDistinct(values []interface{}) interface{} {
	seen := make(map[interface{}]struct{}, len(values))
	for _, v := range values {
		seen[data.HashKey(v)] = struct{}{}
	}
	return len(seen)
}

// Mean returns the arithmetic mean of the numeric values as a float64,
// or nil when there are none.
func Mean(values []interface{}) interface{} {
	total := decimal.Zero
	n := 0
	for _, v := range values {
		d, _, ok := Number(v)
		if !ok {
			continue
		}
		total = total.Add(d)
		n++
	}
	if n == 0 {
		return nil
	}
	return total.Div(decimal.NewFromInt(int64(n))).InexactFloat64()
}

// Min returns the smallest value under compare.Values, or nil
func Min(values []interface{}) interface{} {
	if len(values) == 0 {
		return nil
	}
	best := values[0]
	for _, v := range values[1:] {
		if compare.Values(v, best) < 0 {
			best = v
		}
	}
	return best
}

// Max returns the largest value under compare.Values, or nil
func Max(values []interface{}) interface{} {
	if len(values) == 0 {
		return nil
	}
	best := values[0]
	for _, v := range values[1:] {
		if compare.Values(v, best) > 0 {
			best = v
		}
	}
	return best
}

// First returns the first value of the partition
func First(values []interface{}) interface{} {
	if len(values) == 0 {
		return nil
	}
	return values[0]
}

// Last returns the last value of the partition
func Last(values []interface{}) interface{} {
	if len(values) == 0 {
		return nil
	}
	return values[len(values)-1]
}

// Concat joins the text of every value with ","
func Concat(values []interface{}) interface{} {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = data.Text(v)
	}
	return strings.Join(parts, ",")
}

var registry = map[string]Func{
	"sum":     Sum,
	"count":   Count,
	"nunique": CountDistinct,
	"mean":    Mean,
	"avg":     Mean,
	"min":     Min,
	"max":     Max,
	"first":   First,
	"last":    Last,
	"concat":  Concat,
}

// Lookup returns the built-in function registered under name
func Lookup(name string) (Func, error) {
	fn, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown aggregate function %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return fn, nil
}

// Names lists the registered function names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
