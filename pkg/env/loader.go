// Package env resolves reflectprobe settings from the process
// environment and optional dotenv files.
package env

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/pflag"
)

// Prefix is prepended to every setting name to form the variable
// name, e.g. REFLECTPROBE_RESULTS_DIR.
const Prefix = "REFLECTPROBE_"

// Loader holds variables read from dotenv files. Variables set in
// the process environment take precedence over loaded ones.
type Loader struct {
	mu     sync.RWMutex
	vars   map[string]string
	lookup func(string) (string, bool)
}

// NewLoader creates a Loader backed by the process environment.
func NewLoader() *Loader {
	return &Loader{
		vars:   make(map[string]string),
		lookup: os.LookupEnv,
	}
}

// Load reads KEY=VALUE lines from a dotenv file. Blank lines,
// comments and lines without '=' are skipped. An optional "export "
// prefix is accepted and one pair of matching quotes is removed.
func (l *Loader) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open env file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	l.mu.Lock()
	defer l.mu.Unlock()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		l.vars[strings.TrimSpace(key)] = unquote(strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read env file %s: %w", path, err)
	}
	return nil
}

// LoadOptional is Load, except that a missing file is not an error.
func (l *Loader) LoadOptional(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return l.Load(path)
}

func unquote(v string) string {
	if len(v) >= 2 {
		if q := v[0]; (q == '"' || q == '\'') && v[len(v)-1] == q {
			return v[1 : len(v)-1]
		}
	}
	return v
}

// Lookup returns the value of a setting, without the prefix, and
// whether it was set at all.
func (l *Loader) Lookup(name string) (string, bool) {
	key := VarName(name)
	if v, ok := l.lookup(key); ok {
		return v, true
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, ok := l.vars[key]
	return v, ok
}

// Get returns the value of a setting or "".
func (l *Loader) Get(name string) string {
	v, _ := l.Lookup(name)
	return v
}

// GetWithDefault returns the value of a setting or def when it is
// unset or empty.
func (l *Loader) GetWithDefault(name, def string) string {
	if v := l.Get(name); v != "" {
		return v
	}
	return def
}

// Set records a setting in the loader without touching the process
// environment.
func (l *Loader) Set(name, value string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.vars[VarName(name)] = value
}

// All returns a copy of the loaded variables.
func (l *Loader) All() map[string]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]string, len(l.vars))
	for k, v := range l.vars {
		out[k] = v
	}
	return out
}

// VarName maps a setting or flag name to its variable name:
// "results-dir" becomes REFLECTPROBE_RESULTS_DIR.
func VarName(name string) string {
	return Prefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// BindFlags assigns every flag the user did not set on the command
// line from its variable, if present. Invalid values are reported
// with the variable name.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	var firstErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if firstErr != nil || f.Changed {
			return
		}
		v, ok := l.Lookup(f.Name)
		if !ok || v == "" {
			return
		}
		if err := fs.Set(f.Name, v); err != nil {
			firstErr = fmt.Errorf("%s: %w", VarName(f.Name), err)
		}
	})
	return firstErr
}
