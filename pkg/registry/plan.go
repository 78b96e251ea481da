package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"digital.vasic.reflectprobe/pkg/probe"
)

// Plan is an ordered list of probes to run.
type Plan struct {
	Name   string     `json:"name" yaml:"name"`
	Probes []probe.ID `json:"probes" yaml:"probes"`
}

// NewPlan creates a plan running ids in the given order.
func NewPlan(name string, ids ...probe.ID) *Plan {
	return &Plan{Name: name, Probes: ids}
}

// LoadPlan reads a plan file. Files ending in .json are parsed as
// JSON; .yaml and .yml as YAML.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to read plan file %s: %w", path, err,
		)
	}

	var format string
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		format = "json"
	case ".yaml", ".yml":
		format = "yaml"
	default:
		return nil, fmt.Errorf(
			"unsupported plan file extension %q: %s", ext, path,
		)
	}

	plan, err := ParsePlan(data, format)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	if plan.Name == "" {
		plan.Name = strings.TrimSuffix(
			filepath.Base(path), filepath.Ext(path),
		)
	}
	return plan, nil
}

// ParsePlan decodes a plan in the given format ("json" or "yaml").
func ParsePlan(data []byte, format string) (*Plan, error) {
	var plan Plan
	switch format {
	case "json":
		if err := json.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("failed to parse plan: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("failed to parse plan: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported plan format: %s", format)
	}

	if len(plan.Probes) == 0 {
		return nil, fmt.Errorf("plan lists no probes")
	}
	return &plan, nil
}

// Validate checks that every probe in the plan is registered, is
// listed once, and comes after the probes it depends on.
func (p *Plan) Validate(reg Registry) error {
	seen := make(map[probe.ID]bool, len(p.Probes))
	for _, id := range p.Probes {
		if seen[id] {
			return fmt.Errorf(
				"plan %s lists %s twice", p.Name, id,
			)
		}
		pr, err := reg.Get(id)
		if err != nil {
			return fmt.Errorf("plan %s: %w", p.Name, err)
		}
		for _, dep := range pr.Dependencies() {
			if !seen[dep] {
				return fmt.Errorf(
					"plan %s: probe %s runs before its "+
						"dependency %s",
					p.Name, id, dep,
				)
			}
		}
		seen[id] = true
	}
	return nil
}
