package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/feedfold/feedfold/internal/model"
)

// Run is the state threaded through the pipeline: the current item
// sequence plus the counters the stages accumulate.
type Run struct {
	// Items is the item sequence as of the last completed step.
	Items []model.Item

	// Stats holds the per-run counters.
	Stats model.RunStats
}

// NewRun creates an empty Run.
func NewRun() *Run {
	return &Run{}
}

// Step is one pipeline stage. Steps are executed in sequence, each
// receiving the Run as left by its predecessor.
type Step interface {
	// Do executes the stage. Any returned error is fatal for the
	// whole run; stages perform no retries or local recovery.
	Do(ctx context.Context, run *Run) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes an ordered list of steps over one Run.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a Pipeline with the given options. Steps are added with
// AddSteps after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{steps: make([]Step, 0)}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddSteps appends steps to the pipeline. Steps run in the order they
// are added.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// StepCount returns the number of configured steps.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, 0, len(p.steps))
	for _, s := range p.steps {
		names = append(names, s.Name())
	}
	return names
}

// Execute runs all steps in sequence. Cancellation is checked between
// steps; steps that block (the fetch join) also honor the context
// themselves. The first error aborts the run.
func (p *Pipeline) Execute(ctx context.Context, run *Run) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("run cancelled", "step", step.Name(), "reason", ctx.Err())
			return ctx.Err()
		default:
		}

		p.logger.Debug("step starting", "step", step.Name(), "items", len(run.Items))

		if err := step.Do(ctx, run); err != nil {
			p.logger.Error("step failed", "step", step.Name(), "error", err)
			return fmt.Errorf("%s: %w", step.Name(), err)
		}

		p.logger.Debug("step complete", "step", step.Name(), "items", len(run.Items))
	}

	return nil
}
