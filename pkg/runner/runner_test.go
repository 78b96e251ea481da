package runner

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"digital.vasic.reflectprobe/pkg/metrics"
	"digital.vasic.reflectprobe/pkg/probe"
	"digital.vasic.reflectprobe/pkg/registry"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// --- stub probe ---

type stubProbe struct {
	id           probe.ID
	deps         []probe.ID
	configureErr error
	validateErr  error
	executeErr   error
	cleanupErr   error
	execResult   *probe.Result

	mu           sync.Mutex
	executeCalls int
	cleanupCalls int
	seenConfig   *probe.Config
}

func (s *stubProbe) ID() probe.ID             { return s.id }
func (s *stubProbe) Name() string             { return string(s.id) }
func (s *stubProbe) Description() string      { return "stub" }
func (s *stubProbe) Category() string         { return "test" }
func (s *stubProbe) Dependencies() []probe.ID { return s.deps }

func (s *stubProbe) Configure(cfg *probe.Config) error {
	s.mu.Lock()
	s.seenConfig = cfg
	s.mu.Unlock()
	return s.configureErr
}

func (s *stubProbe) Validate(_ context.Context) error {
	return s.validateErr
}

func (s *stubProbe) Execute(
	_ context.Context,
) (*probe.Result, error) {
	s.mu.Lock()
	s.executeCalls++
	s.mu.Unlock()
	return s.execResult, s.executeErr
}

func (s *stubProbe) Cleanup(_ context.Context) error {
	s.mu.Lock()
	s.cleanupCalls++
	s.mu.Unlock()
	return s.cleanupErr
}

func newStub(id string, deps ...string) *stubProbe {
	depIDs := make([]probe.ID, len(deps))
	for i, d := range deps {
		depIDs[i] = probe.ID(d)
	}
	return &stubProbe{
		id:   probe.ID(id),
		deps: depIDs,
		execResult: &probe.Result{
			Assertions: []probe.AssertionResult{
				{Type: "equals", Target: "v", Passed: true},
			},
			Outputs: map[string]string{"v": "130"},
		},
	}
}

func failing(id string, deps ...string) *stubProbe {
	s := newStub(id, deps...)
	s.execResult = &probe.Result{
		Assertions: []probe.AssertionResult{
			{
				Type:     "equals",
				Target:   "sum",
				Expected: "130",
				Actual:   "131",
				Message:  "expected 130, got 131",
			},
		},
	}
	return s
}

func setupRegistry(
	t *testing.T, stubs ...*stubProbe,
) registry.Registry {
	t.Helper()
	reg := registry.NewRegistry()
	for _, s := range stubs {
		require.NoError(t, reg.Register(s))
	}
	return reg
}

// --- stub logger ---

type logEntry struct {
	level string
	msg   string
}

type stubLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *stubLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level, msg})
}

func (l *stubLogger) Info(msg string, _ ...any)  { l.add("info", msg) }
func (l *stubLogger) Warn(msg string, _ ...any)  { l.add("warn", msg) }
func (l *stubLogger) Error(msg string, _ ...any) { l.add("error", msg) }
func (l *stubLogger) Debug(msg string, _ ...any) { l.add("debug", msg) }
func (l *stubLogger) Close() error               { return nil }

func (l *stubLogger) has(level, msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.level == level && e.msg == msg {
			return true
		}
	}
	return false
}

func fixedRunID() string { return "run-1" }

// --- tests ---

func TestRunSequence_AllPass(t *testing.T) {
	a, b := newStub("a"), newStub("b", "a")
	m := metrics.NewCollector()
	r := NewRunner(
		WithRegistry(setupRegistry(t, a, b)),
		WithMetrics(m),
		WithRunIDGenerator(fixedRunID),
	)

	results, err := r.RunSequence(
		context.Background(),
		[]probe.ID{"a", "b"},
		&probe.Config{ResultsDir: ""},
	)

	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, res := range results {
		assert.Equal(t, probe.StatusPassed, res.Status)
		assert.Equal(t, "run-1", res.RunID)
		assert.Equal(t, "130", res.Outputs["v"])
	}
	assert.Equal(t, probe.ID("b"), b.seenConfig.ProbeID)
	assert.Equal(t, 1, a.cleanupCalls)
	assert.Equal(t, 1, m.ExecutionCount("a", probe.StatusPassed))
	assert.Equal(t, 1, m.AssertionCount("b", "equals", true))
	assert.Equal(t, 1, m.RunTotal())
}

func TestRunSequence_FailFast(t *testing.T) {
	a := newStub("a")
	b := failing("b", "a")
	c := newStub("c", "b")
	r := NewRunner(WithRegistry(setupRegistry(t, a, b, c)))

	results, err := r.RunSequence(
		context.Background(), []probe.ID{"a", "b", "c"}, nil,
	)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProbeFailed))
	assert.Contains(t, err.Error(), "expected: 130")
	assert.Contains(t, err.Error(), "actual:   131")
	require.Len(t, results, 2)
	assert.Equal(t, probe.StatusFailed, results[1].Status)
	assert.Equal(t, 0, c.executeCalls)
}

func TestRunSequence_UnmetDependency(t *testing.T) {
	r := NewRunner(WithRegistry(setupRegistry(
		t, newStub("a"), newStub("b", "a"),
	)))

	results, err := r.RunSequence(
		context.Background(), []probe.ID{"b"}, nil,
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmet dependency: a")
	assert.Empty(t, results)
}

func TestRunSequence_UnknownProbe(t *testing.T) {
	r := NewRunner(WithRegistry(registry.NewRegistry()))

	_, err := r.RunSequence(
		context.Background(), []probe.ID{"ghost"}, nil,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probe not found")
}

func TestRunSequence_CancelledContext(t *testing.T) {
	a := newStub("a")
	r := NewRunner(WithRegistry(setupRegistry(t, a)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.RunSequence(ctx, []probe.ID{"a"}, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, a.executeCalls)
}

func TestExecuteProbe_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *stubProbe)
		status  string
		errText string
		cleanup int
	}{
		{
			name:    "configure error",
			mutate:  func(s *stubProbe) { s.configureErr = errors.New("bad config") },
			status:  probe.StatusError,
			errText: "configuration failed: bad config",
		},
		{
			name:    "validate error",
			mutate:  func(s *stubProbe) { s.validateErr = errors.New("no assertions") },
			status:  probe.StatusSkipped,
			errText: "validation failed: no assertions",
			cleanup: 1,
		},
		{
			name:    "execute error",
			mutate:  func(s *stubProbe) { s.executeErr = errors.New("setup broke") },
			status:  probe.StatusError,
			errText: "execution failed: setup broke",
			cleanup: 1,
		},
		{
			name:    "cleanup error is only a warning",
			mutate:  func(s *stubProbe) { s.cleanupErr = errors.New("close") },
			status:  probe.StatusPassed,
			cleanup: 1,
		},
		{
			name:    "nil result passes",
			mutate:  func(s *stubProbe) { s.execResult = nil },
			status:  probe.StatusPassed,
			cleanup: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStub("p")
			tt.mutate(s)
			r := NewRunner(WithRegistry(setupRegistry(t, s)))

			res, err := r.Run(context.Background(), "p", nil)

			require.NotNil(t, res)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.errText, res.Error)
			assert.Equal(t, tt.cleanup, s.cleanupCalls)
			if tt.status == probe.StatusPassed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrProbeFailed)
			}
		})
	}
}

func TestRun_UnknownProbe(t *testing.T) {
	r := NewRunner(WithRegistry(registry.NewRegistry()))
	_, err := r.Run(context.Background(), "ghost", nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProbeFailed)
}

func TestHooks(t *testing.T) {
	var calls []string
	pre := func(_ context.Context, p probe.Probe, _ *probe.Config) error {
		calls = append(calls, "pre:"+string(p.ID()))
		return nil
	}
	post := func(_ context.Context, p probe.Probe, _ *probe.Config) error {
		calls = append(calls, "post:"+string(p.ID()))
		return errors.New("post warning")
	}
	logger := &stubLogger{}
	r := NewRunner(
		WithRegistry(setupRegistry(t, newStub("a"))),
		WithPreHook(pre),
		WithPostHook(post),
		WithLogger(logger),
	)

	_, err := r.Run(context.Background(), "a", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"pre:a", "post:a"}, calls)
	assert.True(t, logger.has("warn", "post_run_warning"))
	assert.True(t, logger.has("info", "probe_completed"))
}

func TestPreHookFailureStopsProbe(t *testing.T) {
	s := newStub("a")
	r := NewRunner(
		WithRegistry(setupRegistry(t, s)),
		WithPreHook(func(context.Context, probe.Probe, *probe.Config) error {
			return errors.New("denied")
		}),
	)

	res, err := r.Run(context.Background(), "a", nil)

	require.ErrorIs(t, err, ErrProbeFailed)
	assert.Equal(t, probe.StatusError, res.Status)
	assert.Equal(t, "pre-hook failed: denied", res.Error)
	assert.Equal(t, 0, s.executeCalls)
}

func TestRunAll_DependencyOrder(t *testing.T) {
	c := newStub("c", "b")
	a := newStub("a")
	b := newStub("b", "a")
	r := NewRunner(WithRegistry(setupRegistry(t, c, a, b)))

	results, err := r.RunAll(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, probe.ID("a"), results[0].ProbeID)
	assert.Equal(t, probe.ID("b"), results[1].ProbeID)
	assert.Equal(t, probe.ID("c"), results[2].ProbeID)
}

func TestRunAll_Cycle(t *testing.T) {
	r := NewRunner(WithRegistry(setupRegistry(
		t, newStub("a", "b"), newStub("b", "a"),
	)))

	_, err := r.RunAll(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get dependency order")
}

func TestRunPlan_RejectsBadOrder(t *testing.T) {
	a, b := newStub("a"), newStub("b", "a")
	r := NewRunner(WithRegistry(setupRegistry(t, a, b)))

	_, err := r.RunPlan(
		context.Background(), registry.NewPlan("bad", "b", "a"), nil,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "runs before its dependency")
	assert.Equal(t, 0, a.executeCalls)
}

func TestRunIDsDifferPerRun(t *testing.T) {
	r := NewRunner(WithRegistry(setupRegistry(t, newStub("a"))))

	first, err := r.RunSequence(context.Background(), []probe.ID{"a"}, nil)
	require.NoError(t, err)
	second, err := r.RunSequence(context.Background(), []probe.ID{"a"}, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, first[0].RunID)
	assert.NotEqual(t, first[0].RunID, second[0].RunID)
}
