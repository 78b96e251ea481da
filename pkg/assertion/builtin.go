package assertion

import (
	"fmt"
	"strconv"
	"strings"

	"digital.vasic.reflectprobe/pkg/object"
)

// length reports the number of elements of a list or map value.
func length(v any) (int, bool) {
	switch val := v.(type) {
	case []any:
		return len(val), true
	case []object.Key:
		return len(val), true
	case []object.Value:
		return len(val), true
	case map[string]any:
		return len(val), true
	}
	return 0, false
}

// evaluateNotEmpty rejects nil, blank strings and empty
// collections. Any other value counts as present.
func evaluateNotEmpty(_ Definition, value any) (bool, string) {
	if value == nil {
		return false, "value is nil"
	}
	if s, ok := toString(value); ok {
		if strings.TrimSpace(s) == "" {
			return false, "string is empty"
		}
		return true, "value is not empty"
	}
	if n, ok := length(value); ok && n == 0 {
		return false, fmt.Sprintf("%T is empty", value)
	}
	return true, "value is not empty"
}

// evaluateContains is a case-insensitive substring check.
func evaluateContains(assertion Definition, value any) (bool, string) {
	str, ok := toString(value)
	if !ok {
		return false, "value is not a string"
	}
	expected, ok := assertion.Value.(string)
	if !ok {
		return false, "expected value is not a string"
	}

	if strings.Contains(strings.ToLower(str), strings.ToLower(expected)) {
		return true, fmt.Sprintf("contains %q", expected)
	}
	return false, fmt.Sprintf("does not contain %q", expected)
}

// countEvaluator builds an evaluator comparing the size of a value
// with the expected number using cmp, rendered as op.
func countEvaluator(op string, cmp func(got, want int) bool) Evaluator {
	return func(assertion Definition, value any) (bool, string) {
		got, ok := toCount(value)
		if !ok {
			return false, "value is not countable"
		}
		want, ok := toInt(assertion.Value)
		if !ok {
			return false, "expected value is not a number"
		}
		if cmp(got, want) {
			return true, fmt.Sprintf("count %d %s %d", got, op, want)
		}
		return false, fmt.Sprintf("count %d, want %s %d", got, op, want)
	}
}

var (
	evaluateMinCount = countEvaluator(">=", func(got, want int) bool {
		return got >= want
	})
	evaluateExactCount = countEvaluator("==", func(got, want int) bool {
		return got == want
	})
)

// evaluateNoDuplicates checks a list for repeated entries. Keys
// compare by identity, so two distinct symbols with the same
// description are not duplicates.
func evaluateNoDuplicates(_ Definition, value any) (bool, string) {
	switch items := value.(type) {
	case []object.Key:
		if k, dup := firstDuplicate(items, func(k object.Key) object.Key {
			return k
		}); dup {
			return false, fmt.Sprintf("duplicate found: %s", k)
		}
	case []any:
		if s, dup := firstDuplicate(items, func(v any) string {
			return fmt.Sprintf("%v", v)
		}); dup {
			return false, fmt.Sprintf("duplicate found: %s", s)
		}
	default:
		return false, "value is not a list"
	}
	return true, "no duplicates found"
}

func firstDuplicate[T any, K comparable](items []T, key func(T) K) (K, bool) {
	seen := make(map[K]struct{}, len(items))
	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			return k, true
		}
		seen[k] = struct{}{}
	}
	var zero K
	return zero, false
}

func toString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case object.StringValue:
		return string(s), true
	}
	return "", false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case object.NumberValue:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	}
	return 0, false
}

// toCount is a number as-is or the length of a collection.
func toCount(v any) (int, bool) {
	if n, ok := length(v); ok {
		return n, true
	}
	if _, isString := v.(string); isString {
		return 0, false
	}
	return toInt(v)
}
