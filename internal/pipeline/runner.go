// Package pipeline runs YAML recipes: a declared input table, optional
// lookup tables and an ordered list of operations, with lifecycle events
// reported to observers.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/leengari/recordlib/internal/recordset"
	"github.com/leengari/recordlib/internal/storage"
)

// Runner executes recipes and notifies its observers
type Runner struct {
	observers []Observer
}

// NewRunner creates a runner with the given observers
func NewRunner(observers ...Observer) *Runner {
	return &Runner{observers: append([]Observer(nil), observers...)}
}

// AddObserver registers an observer
func (r *Runner) AddObserver(observer Observer) {
	r.observers = append(r.observers, observer)
}

// RemoveObserver unregisters an observer
func (r *Runner) RemoveObserver(observer Observer) {
	for i, o := range r.observers {
		if o == observer {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (r *Runner) notify(event Event) {
	event.Timestamp = time.Now()
	for _, observer := range r.observers {
		observer.OnEvent(event)
	}
}

// Result is the outcome of a run
type Result struct {
	RunID string
	Table *recordset.Table
	Steps int
}

// Run loads the recipe's tables, applies its steps and saves the result
// when the recipe has an output
func (r *Runner) Run(ctx context.Context, rc *Recipe) (*Result, error) {
	return r.run(ctx, rc, func(res *Result) error {
		t, err := storage.Open(ctx, rc.Input.Path, readOptions(rc.Input))
		if err != nil {
			return fmt.Errorf("load input: %w", err)
		}
		lookups, err := loadLookups(ctx, rc.Lookups)
		if err != nil {
			return err
		}

		res.Table, err = r.apply(ctx, res, rc.Steps, t, lookups)
		if err != nil {
			return err
		}

		if rc.Output != nil && rc.Output.Path != "" {
			if err := storage.Save(res.Table, rc.Output.Path); err != nil {
				return fmt.Errorf("save output: %w", err)
			}
		}
		return nil
	})
}

// Apply runs the recipe steps against in-memory tables. The recipe's
// input, lookup paths and output are ignored; lookups are given by name.
func (r *Runner) Apply(ctx context.Context, rc *Recipe, t *recordset.Table, lookups map[string]*recordset.Table) (*Result, error) {
	return r.run(ctx, rc, func(res *Result) error {
		var err error
		res.Table, err = r.apply(ctx, res, rc.Steps, t, lookups)
		return err
	})
}

func (r *Runner) run(ctx context.Context, rc *Recipe, body func(*Result) error) (*Result, error) {
	res := &Result{RunID: uuid.New().String()}
	start := time.Now()
	r.notify(Event{Type: EventRunStart, RunID: res.RunID, Data: rc.Name})

	err := body(res)

	stats := RunStats{Steps: res.Steps, Elapsed: time.Since(start), Err: err}
	if res.Table != nil {
		stats.Rows = res.Table.Len()
	}
	r.notify(Event{Type: EventRunEnd, RunID: res.RunID, Data: stats})

	if err != nil {
		return res, fmt.Errorf("recipe %s: %w", rc.Name, err)
	}
	return res, nil
}

func (r *Runner) apply(ctx context.Context, res *Result, steps []Step, t *recordset.Table, lookups map[string]*recordset.Table) (*recordset.Table, error) {
	for i, s := range steps {
		if err := ctx.Err(); err != nil {
			return t, err
		}

		n, op := i+1, s.Op()
		before := t.Len()
		start := time.Now()
		r.notify(Event{Type: EventStepStart, RunID: res.RunID, Step: n, Op: op, Data: before})

		out, err := s.apply(t, lookups)
		if err != nil {
			return t, fmt.Errorf("step %d (%s): %w", n, op, err)
		}
		t = out
		res.Steps = n

		r.notify(Event{Type: EventStepEnd, RunID: res.RunID, Step: n, Op: op, Data: StepStats{
			RowsBefore: before,
			RowsAfter:  t.Len(),
			Elapsed:    time.Since(start),
		}})
	}
	return t, nil
}

func readOptions(src Source) storage.ReadOptions {
	return storage.ReadOptions{Sheet: src.Sheet, HeaderRow: src.HeaderRow}
}

func loadLookups(ctx context.Context, sources map[string]Source) (map[string]*recordset.Table, error) {
	lookups := make(map[string]*recordset.Table, len(sources))
	for name, src := range sources {
		opts := readOptions(src)
		opts.Name = name
		t, err := storage.Open(ctx, src.Path, opts)
		if err != nil {
			return nil, fmt.Errorf("load lookup %s: %w", name, err)
		}
		lookups[name] = t
	}
	return lookups, nil
}
