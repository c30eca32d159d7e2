package compare

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValues(t *testing.T) {
	tests := []struct {
		name string
		a, b interface{}
		want int
	}{
		{"equal strings", "a", "a", 0},
		{"string order", "a", "b", -1},
		{"byte order not numeric", "10", "9", -1},
		{"ints", 2, 10, -1},
		{"int and float", 2, 1.5, 1},
		{"int64 and int equal", int64(3), 3, 0},
		{"large int64 exact", int64(math.MaxInt64), int64(math.MaxInt64 - 1), 1},
		{"bools", false, true, -1},
		{"nil first", nil, "", -1},
		{"nil equal", nil, nil, 0},
		{"bool before number", true, 0, -1},
		{"number before string", 100, "1", -1},
		{"string before other", "z", []int{1}, -1},
		{"other by rendering", []int{1}, []int{2}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Values(tt.a, tt.b))
			assert.Equal(t, -tt.want, Values(tt.b, tt.a))
		})
	}
}

func TestValues_Time(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)
	assert.Equal(t, -1, Values(early, late))
	assert.Equal(t, 0, Values(early, early))
}

func TestTuples(t *testing.T) {
	assert.Equal(t, 0, Tuples([]interface{}{"a", 1}, []interface{}{"a", 1}))
	assert.Equal(t, -1, Tuples([]interface{}{"a", 1}, []interface{}{"a", 2}))
	assert.Equal(t, 1, Tuples([]interface{}{"b"}, []interface{}{"a", 9}))
	assert.Equal(t, -1, Tuples([]interface{}{"a"}, []interface{}{"a", 0}))
}
