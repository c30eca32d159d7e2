package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/leengari/recordlib/internal/query/aggregate"
	"github.com/leengari/recordlib/internal/recordset"
)

// Recipe is a declarative list of table operations read from YAML
type Recipe struct {
	// Name identifies the recipe in logs
	Name string `yaml:"name"`

	// Input is the table the steps run against
	Input Source `yaml:"input"`

	// Lookups are foreign tables referenced by vlookup steps, by name
	Lookups map[string]Source `yaml:"lookups,omitempty"`

	// Steps run in order; each names exactly one operation
	Steps []Step `yaml:"steps"`

	// Output is where the result is saved; the result is only returned
	// when it is nil
	Output *Source `yaml:"output,omitempty"`
}

// Source locates a table file
type Source struct {
	Path      string `yaml:"path"`
	Sheet     int    `yaml:"sheet,omitempty"`
	HeaderRow int    `yaml:"header_row,omitempty"`
}

// Step holds one operation. Exactly one field must be set.
type Step struct {
	Select    *SelectStep    `yaml:"select,omitempty"`
	Filter    *Condition     `yaml:"filter,omitempty"`
	Rename    []RenameSpec   `yaml:"rename,omitempty"`
	Drop      []string       `yaml:"drop,omitempty"`
	ValueMap  *ValueMapStep  `yaml:"value_map,omitempty"`
	Format    *FormatStep    `yaml:"format,omitempty"`
	Round     []RoundSpec    `yaml:"round,omitempty"`
	OrderBy   []string       `yaml:"order_by,omitempty"`
	Distinct  *DistinctStep  `yaml:"distinct,omitempty"`
	GroupBy   *GroupByStep   `yaml:"group_by,omitempty"`
	SetPK     *SetPKStep     `yaml:"set_pk,omitempty"`
	VLookup   *VLookupStep   `yaml:"vlookup,omitempty"`
	NLargest  *TopNStep      `yaml:"nlargest,omitempty"`
	NSmallest *TopNStep      `yaml:"nsmallest,omitempty"`
}

// SelectStep projects onto Columns, keeping rows matching Where
type SelectStep struct {
	Columns []string   `yaml:"columns"`
	Where   *Condition `yaml:"where,omitempty"`
}

// Condition compares the text of Column with Value.
// Op is one of eq, ne, contains, prefix.
type Condition struct {
	Column string `yaml:"column"`
	Op     string `yaml:"op"`
	Value  string `yaml:"value"`
}

type RenameSpec struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type ValueMapStep struct {
	Column  string                 `yaml:"column"`
	Mapping map[string]interface{} `yaml:"mapping"`
	Default interface{}            `yaml:"default,omitempty"`
}

type FormatStep struct {
	Columns    []FormatColumn `yaml:"columns"`
	DropIfFail bool           `yaml:"drop_if_fail,omitempty"`
}

type FormatColumn struct {
	Name    string      `yaml:"name"`
	Kind    string      `yaml:"kind"`
	Default interface{} `yaml:"default,omitempty"`
}

type RoundSpec struct {
	Column string `yaml:"column"`
	Digits int    `yaml:"digits"`
}

type DistinctStep struct {
	Columns   []string `yaml:"columns"`
	Eliminate bool     `yaml:"eliminate,omitempty"`
}

type GroupByStep struct {
	Columns []string  `yaml:"columns"`
	Aggs    []AggSpec `yaml:"aggs"`
	Selects []string  `yaml:"selects,omitempty"`
}

// AggSpec names a built-in aggregate function, see aggregate.Names
type AggSpec struct {
	Source string `yaml:"source"`
	Func   string `yaml:"func"`
	Alias  string `yaml:"alias"`
}

type SetPKStep struct {
	Columns []string `yaml:"columns"`
	Name    string   `yaml:"name,omitempty"`
}

type VLookupStep struct {
	Table   string         `yaml:"table"`
	FK      string         `yaml:"fk"`
	PK      string         `yaml:"pk"`
	Columns []LookupColumn `yaml:"columns"`
}

type LookupColumn struct {
	Name    string      `yaml:"name"`
	Default interface{} `yaml:"default,omitempty"`
}

type TopNStep struct {
	N       int      `yaml:"n"`
	Columns []string `yaml:"columns"`
}

// ParseRecipe decodes a recipe, rejecting unknown fields, and validates it
func ParseRecipe(r io.Reader) (*Recipe, error) {
	var rc Recipe
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&rc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := rc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recipe: %w", err)
	}
	return &rc, nil
}

// LoadRecipe reads a recipe file. Relative table paths are resolved
// against the directory of the recipe.
func LoadRecipe(path string) (*Recipe, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}
	rc, err := ParseRecipe(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	rc.resolvePaths(filepath.Dir(path))
	return rc, nil
}

func (rc *Recipe) resolvePaths(base string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	rc.Input.Path = resolve(rc.Input.Path)
	for name, src := range rc.Lookups {
		src.Path = resolve(src.Path)
		rc.Lookups[name] = src
	}
	if rc.Output != nil {
		rc.Output.Path = resolve(rc.Output.Path)
	}
}

// Validate checks that every step names exactly one known operation with
// usable arguments
func (rc *Recipe) Validate() error {
	if rc.Name == "" {
		return fmt.Errorf("name is required")
	}
	for i, s := range rc.Steps {
		if err := s.validate(rc.Lookups); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// Op returns the name of the operation the step holds, or "" when it
// holds none
func (s Step) Op() string {
	ops := s.ops()
	if len(ops) != 1 {
		return ""
	}
	return ops[0]
}

func (s Step) ops() []string {
	var ops []string
	add := func(set bool, name string) {
		if set {
			ops = append(ops, name)
		}
	}
	add(s.Select != nil, "select")
	add(s.Filter != nil, "filter")
	add(s.Rename != nil, "rename")
	add(s.Drop != nil, "drop")
	add(s.ValueMap != nil, "value_map")
	add(s.Format != nil, "format")
	add(s.Round != nil, "round")
	add(s.OrderBy != nil, "order_by")
	add(s.Distinct != nil, "distinct")
	add(s.GroupBy != nil, "group_by")
	add(s.SetPK != nil, "set_pk")
	add(s.VLookup != nil, "vlookup")
	add(s.NLargest != nil, "nlargest")
	add(s.NSmallest != nil, "nsmallest")
	return ops
}

func (s Step) validate(lookups map[string]Source) error {
	ops := s.ops()
	switch len(ops) {
	case 0:
		return fmt.Errorf("no operation given")
	case 1:
	default:
		return fmt.Errorf("more than one operation given: %v", ops)
	}

	switch {
	case s.Select != nil && s.Select.Where != nil:
		return s.Select.Where.validate()
	case s.Filter != nil:
		return s.Filter.validate()
	case s.Format != nil:
		for _, c := range s.Format.Columns {
			if _, err := recordset.ParseKind(c.Kind); err != nil {
				return err
			}
		}
	case s.GroupBy != nil:
		if len(s.GroupBy.Columns) == 0 {
			return fmt.Errorf("group_by needs at least one column")
		}
		for _, a := range s.GroupBy.Aggs {
			if _, err := aggregate.Lookup(a.Func); err != nil {
				return err
			}
			if a.Alias == "" {
				return fmt.Errorf("aggregation of %q needs an alias", a.Source)
			}
		}
	case s.SetPK != nil:
		if len(s.SetPK.Columns) == 0 {
			return fmt.Errorf("set_pk needs at least one column")
		}
	case s.VLookup != nil:
		if _, ok := lookups[s.VLookup.Table]; !ok {
			return fmt.Errorf("vlookup table %q is not declared in lookups", s.VLookup.Table)
		}
	case s.NLargest != nil && s.NLargest.N < 0, s.NSmallest != nil && s.NSmallest.N < 0:
		return fmt.Errorf("n must be non-negative")
	}
	return nil
}

func (c *Condition) validate() error {
	switch c.Op {
	case "eq", "ne", "contains", "prefix":
		return nil
	default:
		return fmt.Errorf("unknown condition op %q (want eq, ne, contains or prefix)", c.Op)
	}
}
