package probe

// Config holds runtime configuration for a probe execution.
type Config struct {
	// ProbeID identifies which probe this config is for.
	ProbeID ID `json:"probe_id" yaml:"probe_id"`

	// ResultsDir is the directory where per-probe result files
	// are written. Empty disables result files.
	ResultsDir string `json:"results_dir" yaml:"results_dir"`

	// Verbose enables detailed logging output.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// NewConfig creates a Config that writes no files.
func NewConfig(id ID) *Config {
	return &Config{ProbeID: id}
}
