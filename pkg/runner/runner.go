// Package runner provides the probe execution engine. Probes run
// strictly one after another; the first probe that does not pass
// stops the run.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"digital.vasic.reflectprobe/pkg/metrics"
	"digital.vasic.reflectprobe/pkg/probe"
	"digital.vasic.reflectprobe/pkg/registry"
)

// ErrProbeFailed is returned, wrapped with the failure description,
// when a probe finishes with any status other than passed.
var ErrProbeFailed = errors.New("probe failed")

// Runner defines the interface for probe execution.
type Runner interface {
	// Run executes a single probe by ID.
	Run(
		ctx context.Context,
		id probe.ID,
		config *probe.Config,
	) (*probe.Result, error)

	// RunAll executes all probes in dependency order.
	RunAll(
		ctx context.Context,
		config *probe.Config,
	) ([]*probe.Result, error)

	// RunSequence executes the given probes in order, checking
	// that dependencies have been met.
	RunSequence(
		ctx context.Context,
		ids []probe.ID,
		config *probe.Config,
	) ([]*probe.Result, error)

	// RunPlan validates a plan against the registry and runs it.
	RunPlan(
		ctx context.Context,
		plan *registry.Plan,
		config *probe.Config,
	) ([]*probe.Result, error)
}

// Hook is a function invoked before or after probe execution. It
// receives the probe and its config.
type Hook func(
	ctx context.Context,
	p probe.Probe,
	cfg *probe.Config,
) error

// DefaultRunner is the standard Runner implementation.
type DefaultRunner struct {
	registry  registry.Registry
	logger    probe.Logger
	metrics   metrics.ProbeMetrics
	newRunID  func() string
	preHooks  []Hook
	postHooks []Hook
}

// NewRunner creates a DefaultRunner with the supplied options.
func NewRunner(opts ...RunnerOption) *DefaultRunner {
	r := &DefaultRunner{
		registry: registry.Default,
		metrics:  metrics.NoopMetrics{},
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes a single probe by ID, ignoring its dependencies.
func (r *DefaultRunner) Run(
	ctx context.Context,
	id probe.ID,
	config *probe.Config,
) (*probe.Result, error) {
	p, err := r.registry.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get probe: %w", err)
	}
	r.metrics.IncrementRunTotal()

	result := r.executeProbe(ctx, p, r.configFor(config, id), r.newRunID())
	if result.Status != probe.StatusPassed {
		return result, fmt.Errorf(
			"%w: %s", ErrProbeFailed, result.Describe(),
		)
	}
	return result, nil
}

// RunAll executes all probes in dependency order.
func (r *DefaultRunner) RunAll(
	ctx context.Context,
	config *probe.Config,
) ([]*probe.Result, error) {
	ordered, err := r.registry.GetDependencyOrder()
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get dependency order: %w", err,
		)
	}

	ids := make([]probe.ID, len(ordered))
	for i, p := range ordered {
		ids[i] = p.ID()
	}
	return r.RunSequence(ctx, ids, config)
}

// RunPlan checks that every probe of the plan is registered and
// ordered after its dependencies, then runs it.
func (r *DefaultRunner) RunPlan(
	ctx context.Context,
	plan *registry.Plan,
	config *probe.Config,
) ([]*probe.Result, error) {
	if err := plan.Validate(r.registry); err != nil {
		return nil, err
	}
	return r.RunSequence(ctx, plan.Probes, config)
}

// RunSequence executes probes in the given order, verifying that
// each probe's dependencies have already passed within this
// sequence. It stops at the first probe that does not pass.
func (r *DefaultRunner) RunSequence(
	ctx context.Context,
	ids []probe.ID,
	config *probe.Config,
) ([]*probe.Result, error) {
	runID := r.newRunID()
	r.metrics.IncrementRunTotal()

	var results []*probe.Result
	passed := make(map[probe.ID]bool, len(ids))

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		p, err := r.registry.Get(id)
		if err != nil {
			return results, fmt.Errorf(
				"failed to get probe %s: %w", id, err,
			)
		}

		for _, dep := range p.Dependencies() {
			if !passed[dep] {
				return results, fmt.Errorf(
					"probe %s has unmet dependency: %s",
					id, dep,
				)
			}
		}

		result := r.executeProbe(ctx, p, r.configFor(config, id), runID)
		results = append(results, result)

		if result.Status != probe.StatusPassed {
			return results, fmt.Errorf(
				"%w: %s", ErrProbeFailed, result.Describe(),
			)
		}
		passed[id] = true
	}

	r.logInfo("run_completed",
		"run_id", runID,
		"probes", len(results),
	)
	return results, nil
}

func (r *DefaultRunner) configFor(
	config *probe.Config, id probe.ID,
) *probe.Config {
	if config == nil {
		return probe.NewConfig(id)
	}
	cfg := *config
	cfg.ProbeID = id
	return &cfg
}

// executeProbe runs a single probe through its full lifecycle:
// pre-hooks -> configure -> validate -> execute -> post-hooks ->
// cleanup. It always returns a result; failures are expressed in
// its status.
func (r *DefaultRunner) executeProbe(
	ctx context.Context,
	p probe.Probe,
	config *probe.Config,
	runID string,
) *probe.Result {
	result := &probe.Result{
		RunID:     runID,
		ProbeID:   p.ID(),
		ProbeName: p.Name(),
		Status:    probe.StatusRunning,
		StartTime: time.Now(),
		Outputs:   make(map[string]string),
	}
	defer func() {
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(result.StartTime)
		r.metrics.RecordExecution(
			string(p.ID()), result.Status, result.Duration,
		)
		r.logInfo("probe_completed",
			"run_id", runID,
			"probe_id", p.ID(),
			"status", result.Status,
			"duration", result.Duration,
		)
	}()

	r.logDebug("probe_started",
		"run_id", runID,
		"probe_id", p.ID(),
		"probe_name", p.Name(),
	)

	for _, hook := range r.preHooks {
		if err := hook(ctx, p, config); err != nil {
			result.Status = probe.StatusError
			result.Error = fmt.Sprintf("pre-hook failed: %v", err)
			return result
		}
	}

	if err := p.Configure(config); err != nil {
		result.Status = probe.StatusError
		result.Error = fmt.Sprintf("configuration failed: %v", err)
		r.logError("probe_error",
			"probe_id", p.ID(), "error", result.Error)
		return result
	}

	if err := p.Validate(ctx); err != nil {
		result.Status = probe.StatusSkipped
		result.Error = fmt.Sprintf("validation failed: %v", err)
		r.logWarn("probe_skipped",
			"probe_id", p.ID(), "reason", result.Error)
		r.finish(ctx, p, config, false)
		return result
	}

	execResult, execErr := p.Execute(ctx)
	if execErr != nil {
		result.Status = probe.StatusError
		result.Error = fmt.Sprintf("execution failed: %v", execErr)
		r.logError("probe_error",
			"probe_id", p.ID(), "error", result.Error)
		r.finish(ctx, p, config, false)
		return result
	}

	if execResult != nil {
		result.Assertions = execResult.Assertions
		if execResult.Outputs != nil {
			result.Outputs = execResult.Outputs
		}
	}

	result.Status = probe.StatusPassed
	for _, a := range result.Assertions {
		r.metrics.RecordAssertion(string(p.ID()), a.Type, a.Passed)
		if !a.Passed {
			result.Status = probe.StatusFailed
		}
	}
	if result.Status == probe.StatusFailed {
		r.logError("probe_failed",
			"probe_id", p.ID(), "failure", result.Describe())
	}

	r.finish(ctx, p, config, true)
	return result
}

// finish runs post-hooks (only after an execution) and cleanup.
// Their errors never change the result; they are logged together.
func (r *DefaultRunner) finish(
	ctx context.Context,
	p probe.Probe,
	config *probe.Config,
	executed bool,
) {
	var warnings error
	if executed {
		for _, hook := range r.postHooks {
			warnings = multierr.Append(warnings, hook(ctx, p, config))
		}
	}
	warnings = multierr.Append(warnings, p.Cleanup(ctx))

	if warnings != nil {
		r.logWarn("post_run_warning",
			"probe_id", p.ID(),
			"count", len(multierr.Errors(warnings)),
			"warning", warnings.Error(),
		)
	}
}

func (r *DefaultRunner) logInfo(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Info(msg, args...)
	}
}

func (r *DefaultRunner) logWarn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}

func (r *DefaultRunner) logError(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Error(msg, args...)
	}
}

func (r *DefaultRunner) logDebug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
