package pipeline

import (
	"log/slog"
	"time"
)

// EventType represents the lifecycle phases of a pipeline run
type EventType string

const (
	EventRunStart  EventType = "run_start"
	EventStepStart EventType = "step_start"
	EventStepEnd   EventType = "step_end"
	EventRunEnd    EventType = "run_end"
)

// Event represents a lifecycle event of a run
type Event struct {
	Type      EventType   // Type of event
	RunID     string      // Run ID for tracing
	Timestamp time.Time   // When the event occurred
	Step      int         // 1-based step number, 0 for run events
	Op        string      // Operation name for step events
	Data      interface{} // Phase-specific data (recipe name, row counts, error)
}

// Observer receives events as a run progresses
type Observer interface {
	OnEvent(event Event)
}

// StepStats is the Data of a step_end event
type StepStats struct {
	RowsBefore int
	RowsAfter  int
	Elapsed    time.Duration
}

// RunStats is the Data of a run_end event
type RunStats struct {
	Rows    int
	Steps   int
	Elapsed time.Duration
	Err     error
}

// LoggingObserver logs every event using structured logging
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a logging observer writing to the default logger
func NewLoggingObserver() *LoggingObserver {
	return &LoggingObserver{
		logger: slog.Default(),
	}
}

// OnEvent implements the Observer interface. Step events log at debug,
// run events at info, failed runs at error.
func (lo *LoggingObserver) OnEvent(event Event) {
	attrs := []any{
		slog.String("event", string(event.Type)),
		slog.String("run_id", event.RunID),
	}
	if event.Op != "" {
		attrs = append(attrs, slog.Int("step", event.Step), slog.String("op", event.Op))
	}

	switch data := event.Data.(type) {
	case StepStats:
		attrs = append(attrs,
			slog.Int("rows_before", data.RowsBefore),
			slog.Int("rows_after", data.RowsAfter),
			slog.Duration("elapsed", data.Elapsed),
		)
	case RunStats:
		attrs = append(attrs,
			slog.Int("rows", data.Rows),
			slog.Int("steps", data.Steps),
			slog.Duration("elapsed", data.Elapsed),
		)
		if data.Err != nil {
			lo.logger.Error("pipeline_lifecycle", append(attrs, slog.Any("error", data.Err))...)
			return
		}
	case nil:
	default:
		attrs = append(attrs, slog.Any("data", data))
	}

	switch event.Type {
	case EventStepStart, EventStepEnd:
		lo.logger.Debug("pipeline_lifecycle", attrs...)
	default:
		lo.logger.Info("pipeline_lifecycle", attrs...)
	}
}
