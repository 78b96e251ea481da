package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.reflectprobe/pkg/probe"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPlan_YAML(t *testing.T) {
	path := writeFile(t, "smoke.yaml", `
probes:
  - apply-equivalence
  - apply-shadowing
`)

	plan, err := LoadPlan(path)
	require.NoError(t, err)
	assert.Equal(t, "smoke", plan.Name)
	assert.Equal(t,
		[]probe.ID{"apply-equivalence", "apply-shadowing"},
		plan.Probes,
	)
}

func TestLoadPlan_JSON(t *testing.T) {
	path := writeFile(t, "plan.json",
		`{"name": "keys", "probes": ["own-keys"]}`)

	plan, err := LoadPlan(path)
	require.NoError(t, err)
	assert.Equal(t, "keys", plan.Name)
	assert.Equal(t, []probe.ID{"own-keys"}, plan.Probes)
}

func TestLoadPlan_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"unknown extension", "plan.toml", "probes = []", "unsupported plan file extension"},
		{"bad yaml", "plan.yml", "probes: [", "failed to parse plan"},
		{"bad json", "plan.json", "{", "failed to parse plan"},
		{"empty plan", "plan.yaml", "name: empty\n", "plan lists no probes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPlan(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := LoadPlan(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read plan file")
}

func TestParsePlan_UnknownFormat(t *testing.T) {
	_, err := ParsePlan([]byte("x"), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported plan format")
}

func TestPlan_Validate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newStub("a")))
	require.NoError(t, r.Register(newStub("b", "a")))

	require.NoError(t, NewPlan("ok", "a", "b").Validate(r))

	err := NewPlan("reversed", "b", "a").Validate(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "runs before its dependency a")

	err = NewPlan("dup", "a", "a").Validate(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lists a twice")

	err = NewPlan("unknown", "zzz").Validate(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "probe not found")
}
