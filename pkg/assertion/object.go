package assertion

import (
	"errors"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"digital.vasic.reflectprobe/pkg/object"
)

// equalOpts compares object-model values by SameValue (identity for
// symbols, objects and functions) and keys by Key.Equal.
var equalOpts = cmp.Options{
	cmp.Comparer(object.SameValue),
	cmp.Comparer(func(a, b object.Key) bool { return a.Equal(b) }),
	cmpopts.EquateEmpty(),
}

// Equal reports whether expected and actual are equal under the
// object-model comparison rules. Plain Go scalars on the expected
// side are lifted into object values when actual is one.
func Equal(expected, actual any) bool {
	if _, ok := actual.(object.Value); ok {
		if v, ok := liftValue(expected); ok {
			expected = v
		}
	}
	return cmp.Equal(expected, actual, equalOpts)
}

// evaluateEquals checks deep equality between the expected and
// observed values.
func evaluateEquals(
	assertion Definition,
	value any,
) (bool, string) {
	if Equal(assertion.Value, value) {
		return true, fmt.Sprintf(
			"equals %s", describe(assertion.Value),
		)
	}
	return false, fmt.Sprintf(
		"expected %s, got %s",
		describe(assertion.Value), describe(value),
	)
}

// evaluateNotEquals is the negation of evaluateEquals.
func evaluateNotEquals(
	assertion Definition,
	value any,
) (bool, string) {
	if Equal(assertion.Value, value) {
		return false, fmt.Sprintf(
			"unexpectedly equals %s", describe(value),
		)
	}
	return true, fmt.Sprintf(
		"differs from %s", describe(assertion.Value),
	)
}

// evaluateIsTrue checks for a true boolean.
func evaluateIsTrue(_ Definition, value any) (bool, string) {
	b, ok := toBool(value)
	if !ok {
		return false, fmt.Sprintf(
			"value %s is not a boolean", describe(value),
		)
	}
	if !b {
		return false, "value is false"
	}
	return true, "value is true"
}

// evaluateIsFalse checks for a false boolean.
func evaluateIsFalse(_ Definition, value any) (bool, string) {
	b, ok := toBool(value)
	if !ok {
		return false, fmt.Sprintf(
			"value %s is not a boolean", describe(value),
		)
	}
	if b {
		return false, "value is true"
	}
	return true, "value is false"
}

// evaluateIsUndefined checks that an observed value is Undefined.
func evaluateIsUndefined(_ Definition, value any) (bool, string) {
	v, ok := value.(object.Value)
	if ok && v.Kind() == object.KindUndefined {
		return true, "value is undefined"
	}
	return false, fmt.Sprintf(
		"expected undefined, got %s", describe(value),
	)
}

// evaluateThrows checks that the observed value is an error of the
// expected kind and, when given, the exact message. The expected
// value is either a kind name or a map with "name" and "message".
func evaluateThrows(
	assertion Definition,
	value any,
) (bool, string) {
	err, ok := value.(error)
	if !ok || err == nil {
		return false, fmt.Sprintf(
			"expected an error, got %s", describe(value),
		)
	}

	wantName, wantMessage, hasMessage, ok := errorExpectation(
		assertion.Value,
	)
	if !ok {
		return false, "expected value is not an error expectation"
	}

	name, message := errorParts(err)
	if wantName != "" && name != wantName {
		return false, fmt.Sprintf(
			"expected %s, got %s: %s", wantName, name, message,
		)
	}
	if hasMessage && message != wantMessage {
		return false, fmt.Sprintf(
			"expected message %q, got %q", wantMessage, message,
		)
	}
	return true, fmt.Sprintf("raised %s: %s", name, message)
}

// evaluateNoError checks that the observed value is not an error.
func evaluateNoError(_ Definition, value any) (bool, string) {
	if err, ok := value.(error); ok && err != nil {
		return false, fmt.Sprintf("unexpected error: %v", err)
	}
	return true, "no error raised"
}

func errorExpectation(
	v any,
) (name, message string, hasMessage, ok bool) {
	switch e := v.(type) {
	case nil:
		return "", "", false, true
	case string:
		return e, "", false, true
	case map[string]any:
		if n, found := e["name"]; found {
			name, ok = n.(string)
			if !ok {
				return "", "", false, false
			}
		}
		if m, found := e["message"]; found {
			message, ok = m.(string)
			if !ok {
				return "", "", false, false
			}
			hasMessage = true
		}
		return name, message, hasMessage, true
	}
	return "", "", false, false
}

// errorParts extracts the kind name and bare message of an error.
func errorParts(err error) (name, message string) {
	var thrown *object.Error
	if errors.As(err, &thrown) {
		return thrown.Name(), thrown.Message
	}
	var named interface{ Name() string }
	if errors.As(err, &named) {
		return named.Name(), err.Error()
	}
	return "Error", err.Error()
}

func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case object.BoolValue:
		return bool(b), true
	}
	return false, false
}

// liftValue converts plain Go scalars into object values.
func liftValue(v any) (object.Value, bool) {
	switch tv := v.(type) {
	case nil:
		return object.Undefined, true
	case object.Value:
		return tv, true
	case bool:
		return object.BoolValue(tv), true
	case string:
		return object.StringValue(tv), true
	case int:
		return object.NumberValue(tv), true
	case int64:
		return object.NumberValue(tv), true
	case float64:
		return object.NumberValue(tv), true
	}
	return nil, false
}

func describe(v any) string {
	switch tv := v.(type) {
	case nil:
		return "<nil>"
	case object.StringValue:
		return fmt.Sprintf("%q", string(tv))
	case string:
		return fmt.Sprintf("%q", tv)
	case error:
		return tv.Error()
	case fmt.Stringer:
		return tv.String()
	}
	return fmt.Sprintf("%v", v)
}
