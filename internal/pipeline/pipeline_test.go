package pipeline

import (
	"context"
	"errors"
	"testing"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, run *Run) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, run *Run) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, run)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	p := New()

	if p == nil {
		t.Fatal("expected non-nil pipeline")
	}
	if p.StepCount() != 0 {
		t.Errorf("expected 0 steps, got %d", p.StepCount())
	}
}

// TestPipelineAddSteps tests step registration and ordering.
func TestPipelineAddSteps(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddSteps(&mockStep{name: "first"}, &mockStep{name: "second"})
	p.AddSteps(&mockStep{name: "third"})

	if p.StepCount() != 3 {
		t.Fatalf("expected 3 steps, got %d", p.StepCount())
	}

	names := p.StepNames()
	expected := []string{"first", "second", "third"}
	for i, name := range names {
		if name != expected[i] {
			t.Errorf("step %d: got %q, expected %q", i, name, expected[i])
		}
	}
}

// TestPipelineExecute tests sequential execution and failure handling.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order", func(t *testing.T) {
		t.Parallel()

		executionOrder := make([]string, 0)
		order := func(name string) *mockStep {
			return &mockStep{name: name, doFunc: func(context.Context, *Run) error {
				executionOrder = append(executionOrder, name)
				return nil
			}}
		}

		p := New()
		p.AddSteps(order("fetch"), order("filter"), order("dedup"))

		if err := p.Execute(context.Background(), NewRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"fetch", "filter", "dedup"}
		for i, name := range want {
			if executionOrder[i] != name {
				t.Errorf("position %d: got %q, want %q", i, executionOrder[i], name)
			}
		}
	})

	t.Run("first error aborts and skips later steps", func(t *testing.T) {
		t.Parallel()

		sentinel := errors.New("source unreachable")
		failing := &mockStep{name: "fetch", doFunc: func(context.Context, *Run) error {
			return sentinel
		}}
		skipped := &mockStep{name: "filter"}

		p := New()
		p.AddSteps(failing, skipped)

		err := p.Execute(context.Background(), NewRun())
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected wrapped sentinel, got %v", err)
		}
		if skipped.callCount != 0 {
			t.Errorf("expected later step skipped, called %d times", skipped.callCount)
		}
	})

	t.Run("error is wrapped with the step name", func(t *testing.T) {
		t.Parallel()

		failing := &mockStep{name: "write", doFunc: func(context.Context, *Run) error {
			return errors.New("disk full")
		}}

		p := New()
		p.AddSteps(failing)

		err := p.Execute(context.Background(), NewRun())
		if err == nil || err.Error() != "write: disk full" {
			t.Errorf("expected step-prefixed error, got %v", err)
		}
	})

	t.Run("cancelled context stops before the next step", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		first := &mockStep{name: "first", doFunc: func(context.Context, *Run) error {
			cancel()
			return nil
		}}
		second := &mockStep{name: "second"}

		p := New()
		p.AddSteps(first, second)

		if err := p.Execute(ctx, NewRun()); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if second.callCount != 0 {
			t.Errorf("expected second step skipped, called %d times", second.callCount)
		}
	})

	t.Run("steps share the same run state", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(
			&mockStep{name: "produce", doFunc: func(_ context.Context, run *Run) error {
				run.Stats.Fetched = 7
				return nil
			}},
			&mockStep{name: "consume", doFunc: func(_ context.Context, run *Run) error {
				if run.Stats.Fetched != 7 {
					return errors.New("state not shared")
				}
				return nil
			}},
		)

		if err := p.Execute(context.Background(), NewRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
