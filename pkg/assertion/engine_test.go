package assertion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.reflectprobe/pkg/object"
	"digital.vasic.reflectprobe/pkg/probe"
)

func TestNewEngine_RegistersAllBuiltins(t *testing.T) {
	e := NewEngine()

	builtins := []string{
		"equals", "not_equals", "is_true", "is_false",
		"is_undefined", "throws", "no_error", "not_empty",
		"contains", "min_count", "exact_count", "no_duplicates",
	}

	for _, name := range builtins {
		assert.True(t, e.HasEvaluator(name),
			"missing built-in evaluator: %s", name)
	}
}

func TestDefaultEngine_Register_Success(t *testing.T) {
	e := NewEngine()

	err := e.Register("custom", func(
		_ Definition, _ any,
	) (bool, string) {
		return true, "custom ok"
	})

	require.NoError(t, err)
	assert.True(t, e.HasEvaluator("custom"))
}

func TestDefaultEngine_Register_Duplicate(t *testing.T) {
	e := NewEngine()

	err := e.Register("equals", func(
		_ Definition, _ any,
	) (bool, string) {
		return true, "dup"
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestDefaultEngine_Evaluate_UnknownType(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(Definition{
		Type:   "nonexistent",
		Target: "x",
	}, "hello")

	assert.False(t, r.Passed)
	assert.Contains(t, r.Message, "unknown assertion type")
}

func TestDefaultEngine_Evaluate_SetsFields(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(Definition{
		Type:   "equals",
		Target: "sum",
		Value:  130,
	}, object.NumberValue(130))

	assert.True(t, r.Passed)
	assert.Equal(t, "equals", r.Type)
	assert.Equal(t, "sum", r.Target)
	assert.Equal(t, object.NumberValue(130), r.Actual)
}

func TestDefaultEngine_Evaluate_PrefixesFailureMessage(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(Definition{
		Type:    "is_true",
		Target:  "flag",
		Message: "flag must be set",
	}, object.BoolValue(false))

	assert.False(t, r.Passed)
	assert.Equal(t, "flag must be set: value is false", r.Message)
}

func TestDefaultEngine_EvaluateAll_MissingTarget(t *testing.T) {
	e := NewEngine()

	results := e.EvaluateAll(
		[]Definition{
			{Type: "not_empty", Target: "missing"},
		},
		map[string]any{"other": "value"},
	)

	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.Contains(t, results[0].Message, "target not found")
}

func TestDefaultEngine_EvaluateAll_MultipleAssertions(t *testing.T) {
	e := NewEngine()
	user := object.NewSymbol("user")
	keys := object.Keys("id", user)

	results := e.EvaluateAll(
		[]Definition{
			{Type: "equals", Target: "keys", Value: object.Keys("id", user)},
			{Type: "exact_count", Target: "keys", Value: 2},
			{Type: "no_duplicates", Target: "keys"},
			{Type: "no_error", Target: "err"},
		},
		map[string]any{"keys": keys, "err": nil},
	)

	require.Len(t, results, 4)
	for _, r := range results {
		assert.True(t, r.Passed, "assertion %s failed: %s", r.Type, r.Message)
	}
}

func TestProbeAdapter_RendersValues(t *testing.T) {
	a := NewProbeAdapter(NewEngine())

	results := a.EvaluateAll(
		[]probe.AssertionDef{
			{Type: "equals", Target: "sum", Value: 130},
			{Type: "throws", Target: "err", Value: "TypeError"},
		},
		map[string]any{
			"sum": object.NumberValue(131),
			"err": object.NewTypeError("OMG!"),
		},
	)

	require.Len(t, results, 2)
	assert.False(t, results[0].Passed)
	assert.Equal(t, "130", results[0].Expected)
	assert.Equal(t, "131", results[0].Actual)
	assert.True(t, results[1].Passed)
	assert.Equal(t, "TypeError: OMG!", results[1].Actual)

	single := a.Evaluate(
		probe.AssertionDef{Type: "is_undefined", Target: "v"},
		object.Undefined,
	)
	assert.True(t, single.Passed)
}

func TestDefaultEngine_EvaluateAll_ResolvesRefs(t *testing.T) {
	e := NewEngine()
	user := object.NewSymbol("user")

	results := e.EvaluateAll(
		[]Definition{
			{Type: "equals", Target: "keys", Value: Ref("expected")},
			{Type: "not_equals", Target: "keys", Value: Ref("impostor")},
			{Type: "equals", Target: "keys", Value: Ref("missing")},
		},
		map[string]any{
			"keys":     object.Keys("id", user),
			"expected": object.Keys("id", user),
			"impostor": object.Keys("id", object.NewSymbol("user")),
		},
	)

	require.Len(t, results, 3)
	assert.True(t, results[0].Passed, results[0].Message)
	assert.Equal(t, object.Keys("id", user), results[0].Expected)
	assert.True(t, results[1].Passed, results[1].Message)
	assert.False(t, results[2].Passed)
	assert.Contains(t, results[2].Message, "reference not found")
}
