package provision

import (
	"context"
	"fmt"
)

// Status of a Step after a run.
type Status string

const (
	// StatusOk means the desired state already held; nothing was done.
	StatusOk Status = "ok"

	// StatusChanged means the step applied its changes.
	StatusChanged Status = "changed"

	// StatusWouldChange means the step is unsatisfied but ran in check
	// mode, so nothing was done.
	StatusWouldChange Status = "would-change"

	// StatusFailed means the step errored. The run stops there.
	StatusFailed Status = "failed"
)

// StepResult is the outcome of one Step.
type StepResult struct {
	Name   string
	Status Status
	Err    error
}

type runOption struct {
	checkMode bool
	notify    func(StepResult)
}

type RunOption func(*runOption)

// WithCheckMode makes the run a dry run. Unsatisfied steps are
// reported as StatusWouldChange, and nothing is applied.
func WithCheckMode() RunOption {
	return func(o *runOption) { o.checkMode = true }
}

// WithNotify registers a hook called after each step, as it finishes.
func WithNotify(f func(StepResult)) RunOption {
	return func(o *runOption) { o.notify = f }
}

// Apply runs the playbook's steps in order, stopping at the first failure.
//
// Each step's Check decides whether its Apply runs. The slice returned
// holds the outcome of every step reached, the failed one included.
func Apply(ctx context.Context, h *Host, pb Playbook, options ...RunOption) ([]StepResult, error) {
	opt := runOption{notify: func(StepResult) {}}
	for _, o := range options {
		o(&opt)
	}

	results := make([]StepResult, 0, len(pb.Steps))
	for _, step := range pb.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := opt.run(ctx, h, step)
		results = append(results, result)
		opt.notify(result)

		if result.Err != nil {
			return results, fmt.Errorf("step %s: %w", step.Name, result.Err)
		}
	}
	return results, nil
}

func (o *runOption) run(ctx context.Context, h *Host, step Step) StepResult {
	ok, err := step.Task.Check(ctx, h)
	if err != nil {
		return StepResult{Name: step.Name, Status: StatusFailed, Err: err}
	}
	if ok {
		return StepResult{Name: step.Name, Status: StatusOk}
	}
	if o.checkMode {
		return StepResult{Name: step.Name, Status: StatusWouldChange}
	}

	if err := step.Task.Apply(ctx, h); err != nil {
		return StepResult{Name: step.Name, Status: StatusFailed, Err: err}
	}
	return StepResult{Name: step.Name, Status: StatusChanged}
}
