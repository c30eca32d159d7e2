package recordset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/leengari/recordlib/internal/domain/data"
	"github.com/leengari/recordlib/internal/validation"
)

// Kind is the target type of a Format coercion
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
	KindBool
	KindDate
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a kind name to a Kind
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text", "string", "str":
		return KindText, nil
	case "int", "integer":
		return KindInt, nil
	case "float", "number", "decimal":
		return KindFloat, nil
	case "bool", "boolean":
		return KindBool, nil
	case "date":
		return KindDate, nil
	case "time":
		return KindTime, nil
	default:
		return KindText, fmt.Errorf("unknown kind %q", name)
	}
}

// Coercion converts Column to Kind. Default replaces values that cannot be
// converted and is itself converted to Kind when possible; a nil Default
// means the zero value of the kind.
type Coercion struct {
	Column  string
	Kind    Kind
	Default interface{}
}

func (c Coercion) defaultValue() interface{} {
	if c.Default != nil {
		if v, ok := c.Kind.coerce(c.Default); ok {
			return v
		}
		return c.Default
	}
	switch c.Kind {
	case KindInt:
		return int64(0)
	case KindFloat:
		return 0.0
	case KindBool:
		return false
	default:
		return ""
	}
}

// coerce converts v. Ints are int64, floats float64. Dates and times are
// text in their canonical layouts so they sort chronologically.
func (k Kind) coerce(v interface{}) (interface{}, bool) {
	if v == nil {
		return nil, false
	}
	switch k {
	case KindText:
		return data.Text(v), true
	case KindInt:
		return toInt(v)
	case KindFloat:
		return toFloat(v)
	case KindBool:
		return toBool(v)
	case KindDate:
		return toLayout(v, validation.ParseDate, validation.DateLayout)
	case KindTime:
		return toLayout(v, validation.ParseTime, validation.TimeLayout)
	default:
		return nil, false
	}
}

func toInt(v interface{}) (interface{}, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int32:
		return int64(val), true
	case int64:
		return val, true
	case float32:
		return floatToInt(float64(val))
	case float64:
		return floatToInt(val)
	case bool:
		if val {
			return int64(1), true
		}
		return int64(0), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return nil, false
		}
		return n, true
	default:
		return nil, false
	}
}

func floatToInt(f float64) (interface{}, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return nil, false
	}
	return int64(f), true
}

func toFloat(v interface{}) (interface{}, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	case bool:
		if val {
			return 1.0, true
		}
		return 0.0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, false
		}
		return f, true
	default:
		return nil, false
	}
}

func toBool(v interface{}) (interface{}, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case int:
		return val != 0, true
	case int64:
		return val != 0, true
	case float64:
		return val != 0, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return nil, false
		}
		return b, true
	default:
		return nil, false
	}
}

func toLayout(v interface{}, parse func(string) (time.Time, error), layout string) (interface{}, bool) {
	switch val := v.(type) {
	case time.Time:
		return val.Format(layout), true
	case string:
		t, err := parse(val)
		if err != nil {
			return nil, false
		}
		return t.Format(layout), true
	default:
		return nil, false
	}
}
