package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLoader returns a loader whose process environment is the
// given map.
func newTestLoader(environ map[string]string) *Loader {
	l := NewLoader()
	l.lookup = func(k string) (string, bool) {
		v, ok := environ[k]
		return v, ok
	}
	return l
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := `# Comment
REFLECTPROBE_FORMAT=json
REFLECTPROBE_PLAN="plans/keys.yaml"
export REFLECTPROBE_RESULTS_DIR='results'
REFLECTPROBE_EMPTY=
NOT A PAIR
REFLECTPROBE_QUOTE="half
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	l := newTestLoader(nil)
	require.NoError(t, l.Load(path))

	assert.Equal(t, "json", l.Get("format"))
	assert.Equal(t, "plans/keys.yaml", l.Get("plan"))
	assert.Equal(t, "results", l.Get("results-dir"))
	assert.Equal(t, `"half`, l.Get("quote"))

	v, ok := l.Lookup("empty")
	assert.True(t, ok)
	assert.Empty(t, v)
	assert.Len(t, l.All(), 5)
}

func TestLoader_Load_FileNotFound(t *testing.T) {
	l := NewLoader()
	require.Error(t, l.Load("/nonexistent/.env"))
	require.NoError(t, l.LoadOptional("/nonexistent/.env"))
}

func TestLoader_ProcessEnvironmentWins(t *testing.T) {
	l := newTestLoader(map[string]string{
		"REFLECTPROBE_FORMAT": "yaml",
	})
	l.Set("format", "json")
	l.Set("plan", "p.yaml")

	assert.Equal(t, "yaml", l.Get("format"))
	assert.Equal(t, "p.yaml", l.Get("plan"))
	assert.Equal(t, "md", l.GetWithDefault("missing", "md"))
}

func TestLoader_AllIsACopy(t *testing.T) {
	l := newTestLoader(nil)
	l.Set("a", "1")

	all := l.All()
	all["REFLECTPROBE_B"] = "2"
	assert.Empty(t, l.Get("b"))
}

func TestVarName(t *testing.T) {
	assert.Equal(t, "REFLECTPROBE_RESULTS_DIR", VarName("results-dir"))
	assert.Equal(t, "REFLECTPROBE_VERBOSE", VarName("verbose"))
}

func TestLoader_BindFlags(t *testing.T) {
	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	format := fs.String("format", "", "")
	dir := fs.String("results-dir", "", "")
	verbose := fs.Bool("verbose", false, "")
	require.NoError(t, fs.Parse([]string{"--results-dir", "cli"}))

	l := newTestLoader(map[string]string{
		"REFLECTPROBE_FORMAT":      "markdown",
		"REFLECTPROBE_RESULTS_DIR": "env",
		"REFLECTPROBE_VERBOSE":     "true",
	})
	require.NoError(t, l.BindFlags(fs))

	assert.Equal(t, "markdown", *format)
	assert.Equal(t, "cli", *dir)
	assert.True(t, *verbose)
}

func TestLoader_BindFlags_InvalidValue(t *testing.T) {
	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	fs.Bool("verbose", false, "")

	l := newTestLoader(map[string]string{"REFLECTPROBE_VERBOSE": "maybe"})
	err := l.BindFlags(fs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFLECTPROBE_VERBOSE")
}
