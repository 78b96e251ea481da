package checks

import (
	"fmt"

	"digital.vasic.reflectprobe/pkg/probe"
	"digital.vasic.reflectprobe/pkg/registry"
)

// Default returns fresh instances of the eight default probes in
// execution order.
func Default() []probe.Probe {
	return []probe.Probe{
		NewApplyEquivalence(),
		NewApplyShadowing(),
		NewReflectApply(),
		NewDefineProperty(),
		NewDeleteProperty(),
		NewGetPrimitive(),
		NewHasMembership(),
		NewOwnKeys(),
	}
}

// All returns the default probes followed by the prototype-level
// apply override scenario.
func All() []probe.Probe {
	return append(Default(), NewApplyPrototypeOverride())
}

// DefaultPlan lists the default probes in execution order.
func DefaultPlan() *registry.Plan {
	return registry.NewPlan("default", ids(Default())...)
}

// FullPlan lists every probe, including the prototype override.
func FullPlan() *registry.Plan {
	return registry.NewPlan("full", ids(All())...)
}

func ids(probes []probe.Probe) []probe.ID {
	out := make([]probe.ID, len(probes))
	for i, p := range probes {
		out[i] = p.ID()
	}
	return out
}

// Register adds probes and their definitions to reg. When logger is
// non-nil it is attached to every probe.
func Register(
	reg registry.Registry,
	logger probe.Logger,
	probes ...probe.Probe,
) error {
	for _, p := range probes {
		if logger != nil {
			if l, ok := p.(interface{ SetLogger(probe.Logger) }); ok {
				l.SetLogger(logger)
			}
		}
		if err := reg.Register(p); err != nil {
			return fmt.Errorf("register %s: %w", p.ID(), err)
		}
		d, ok := p.(interface{ Definition() *probe.Definition })
		if !ok {
			continue
		}
		if err := reg.RegisterDefinition(d.Definition()); err != nil {
			return fmt.Errorf("register %s: %w", p.ID(), err)
		}
	}
	return nil
}
