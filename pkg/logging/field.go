package logging

import "fmt"

// Keys shared by the runner, the probes and the CLI so that log
// entries of one run can be correlated.
const (
	KeyPlan   = "plan"
	KeyProbe  = "probe_id"
	KeyRunID  = "run_id"
	KeyStatus = "status"
	KeyError  = "error"
)

// LogField creates a Field from a key-value pair.
func LogField(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// StringField creates a Field with a string value.
func StringField(key, value string) Field {
	return Field{Key: key, Value: value}
}

// IntField creates a Field with an integer value.
func IntField(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// PlanField names the plan being run.
func PlanField(name string) Field { return StringField(KeyPlan, name) }

// ProbeField names a probe. Any string-kinded ID type is accepted.
func ProbeField[T ~string](id T) Field {
	return StringField(KeyProbe, string(id))
}

// RunIDField tags an entry with the run it belongs to.
func RunIDField(id string) Field { return StringField(KeyRunID, id) }

// ErrorField records err's message, or "<nil>".
func ErrorField(err error) Field {
	if err == nil {
		return Field{Key: KeyError, Value: "<nil>"}
	}
	return Field{Key: KeyError, Value: err.Error()}
}

// Fields turns alternating key/value arguments into Fields. A
// non-string key becomes "argN" and a trailing key without a value
// is recorded as "<missing>".
func Fields(args ...any) []Field {
	fields := make([]Field, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("arg%d", i)
		}
		if i+1 < len(args) {
			fields = append(fields, LogField(key, args[i+1]))
		} else {
			fields = append(fields, LogField(key, "<missing>"))
		}
	}
	return fields
}

func mergeFields(base, extra []Field) []Field {
	out := make([]Field, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}
