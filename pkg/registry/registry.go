// Package registry provides probe registration, discovery,
// dependency-ordered retrieval and execution plans.
package registry

import (
	"fmt"
	"sync"

	"digital.vasic.reflectprobe/pkg/probe"
)

// Registry defines the interface for managing probes and their
// definitions.
type Registry interface {
	// Register adds a probe implementation.
	Register(p probe.Probe) error

	// RegisterDefinition adds a declarative definition.
	RegisterDefinition(def *probe.Definition) error

	// Get retrieves a probe by ID.
	Get(id probe.ID) (probe.Probe, error)

	// GetDefinition retrieves a definition by ID.
	GetDefinition(id probe.ID) (*probe.Definition, error)

	// List returns all registered probes in registration order.
	List() []probe.Probe

	// ListDefinitions returns all registered definitions in
	// registration order.
	ListDefinitions() []*probe.Definition

	// ListByCategory returns probes of the given category.
	ListByCategory(category string) []probe.Probe

	// GetDependencyOrder returns probes in topological
	// (dependency) order.
	GetDependencyOrder() ([]probe.Probe, error)

	// ValidateDependencies checks that every dependency
	// referenced by a probe is also registered.
	ValidateDependencies() error

	// Clear removes all probes and definitions.
	Clear()

	// Count returns the number of registered probes.
	Count() int
}

// DefaultRegistry is the standard Registry implementation. It
// remembers registration order, which breaks ties between
// independent probes. It is safe for concurrent use.
type DefaultRegistry struct {
	mu          sync.RWMutex
	probes      map[probe.ID]probe.Probe
	order       []probe.ID
	definitions map[probe.ID]*probe.Definition
	defOrder    []probe.ID
}

// NewRegistry creates a new, empty DefaultRegistry.
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{
		probes:      make(map[probe.ID]probe.Probe),
		definitions: make(map[probe.ID]*probe.Definition),
	}
}

// Default is the package-level default registry instance.
var Default = NewRegistry()

// Register adds a probe to the registry. Returns an error if a
// probe with the same ID is already registered.
func (r *DefaultRegistry) Register(p probe.Probe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := p.ID()
	if _, exists := r.probes[id]; exists {
		return fmt.Errorf("probe already registered: %s", id)
	}

	r.probes[id] = p
	r.order = append(r.order, id)
	return nil
}

// RegisterDefinition adds a declarative probe definition. Returns
// an error if a definition with the same ID already exists.
func (r *DefaultRegistry) RegisterDefinition(
	def *probe.Definition,
) error {
	if def == nil {
		return fmt.Errorf("definition must not be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.definitions[def.ID]; exists {
		return fmt.Errorf(
			"probe definition already registered: %s", def.ID,
		)
	}

	r.definitions[def.ID] = def
	r.defOrder = append(r.defOrder, def.ID)
	return nil
}

// Get retrieves a probe by ID.
func (r *DefaultRegistry) Get(id probe.ID) (probe.Probe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.probes[id]
	if !exists {
		return nil, fmt.Errorf("probe not found: %s", id)
	}
	return p, nil
}

// GetDefinition retrieves a definition by ID.
func (r *DefaultRegistry) GetDefinition(
	id probe.ID,
) (*probe.Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, exists := r.definitions[id]
	if !exists {
		return nil, fmt.Errorf(
			"probe definition not found: %s", id,
		)
	}
	return def, nil
}

// List returns all registered probes in registration order.
func (r *DefaultRegistry) List() []probe.Probe {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]probe.Probe, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.probes[id])
	}
	return out
}

// ListDefinitions returns all registered definitions in
// registration order.
func (r *DefaultRegistry) ListDefinitions() []*probe.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*probe.Definition, 0, len(r.defOrder))
	for _, id := range r.defOrder {
		out = append(out, r.definitions[id])
	}
	return out
}

// ListByCategory returns probes whose category matches, in
// registration order.
func (r *DefaultRegistry) ListByCategory(
	category string,
) []probe.Probe {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []probe.Probe
	for _, id := range r.order {
		if p := r.probes[id]; p.Category() == category {
			out = append(out, p)
		}
	}
	return out
}

// GetDependencyOrder returns probes in topological order using
// Kahn's algorithm. Returns an error if a dependency cycle is
// detected.
func (r *DefaultRegistry) GetDependencyOrder() (
	[]probe.Probe, error,
) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return topologicalSort(r.probes, r.order)
}

// ValidateDependencies checks that every dependency referenced by
// a registered probe is also registered. Returns the first missing
// dependency found, in registration order.
func (r *DefaultRegistry) ValidateDependencies() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		for _, dep := range r.probes[id].Dependencies() {
			if _, exists := r.probes[dep]; !exists {
				return fmt.Errorf(
					"probe %s has unregistered "+
						"dependency: %s",
					id, dep,
				)
			}
		}
	}
	return nil
}

// Clear removes all probes and definitions.
func (r *DefaultRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.probes = make(map[probe.ID]probe.Probe)
	r.order = nil
	r.definitions = make(map[probe.ID]*probe.Definition)
	r.defOrder = nil
}

// Count returns the number of registered probes.
func (r *DefaultRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.probes)
}
