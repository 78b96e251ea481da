package registry

import (
	"fmt"
	"strings"

	"digital.vasic.reflectprobe/pkg/probe"
)

// topologicalSort orders probes using Kahn's algorithm. Among the
// probes that are ready at any step, the earliest registered one
// goes first. Dependencies on unregistered probes are ignored
// here; ValidateDependencies reports them.
func topologicalSort(
	probes map[probe.ID]probe.Probe,
	order []probe.ID,
) ([]probe.Probe, error) {
	inDegree := make(map[probe.ID]int, len(probes))
	dependents := make(map[probe.ID][]probe.ID, len(probes))

	for _, id := range order {
		inDegree[id] += 0
		for _, dep := range probes[id].Dependencies() {
			if _, exists := probes[dep]; !exists {
				continue
			}
			inDegree[id]++
			dependents[dep] = append(dependents[dep], id)
		}
	}

	done := make(map[probe.ID]bool, len(probes))
	ordered := make([]probe.Probe, 0, len(probes))

	for len(ordered) < len(probes) {
		next, found := probe.ID(""), false
		for _, id := range order {
			if !done[id] && inDegree[id] == 0 {
				next, found = id, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf(
				"circular dependency detected: %s",
				detectCycle(probes, order, done),
			)
		}

		done[next] = true
		ordered = append(ordered, probes[next])
		for _, dependent := range dependents[next] {
			inDegree[dependent]--
		}
	}

	return ordered, nil
}

// detectCycle returns a human-readable description of a dependency
// cycle among the probes not yet ordered. It uses iterative DFS
// with three colouring states.
func detectCycle(
	probes map[probe.ID]probe.Probe,
	order []probe.ID,
	done map[probe.ID]bool,
) string {
	const (
		white = 0 // unvisited
		gray  = 1 // in current path
		black = 2 // finished
	)

	colour := make(map[probe.ID]int, len(probes))

	type frame struct {
		id    probe.ID
		deps  []probe.ID
		index int
	}

	for _, startID := range order {
		if done[startID] || colour[startID] != white {
			continue
		}

		stack := []frame{
			{id: startID, deps: probes[startID].Dependencies()},
		}
		colour[startID] = gray

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			if top.index >= len(top.deps) {
				colour[top.id] = black
				stack = stack[:len(stack)-1]
				continue
			}

			dep := top.deps[top.index]
			top.index++

			p, exists := probes[dep]
			if !exists || done[dep] {
				continue
			}

			switch colour[dep] {
			case gray:
				var path []string
				for i := len(stack) - 1; i >= 0; i-- {
					path = append(path, string(stack[i].id))
					if stack[i].id == dep {
						break
					}
				}
				// path runs from the dependent back to dep;
				// reverse it to read in dependency order.
				for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}
				path = append(path, string(dep))
				return strings.Join(path, " -> ")
			case white:
				colour[dep] = gray
				stack = append(stack, frame{
					id:   dep,
					deps: p.Dependencies(),
				})
			}
		}
	}

	return "unknown cycle"
}
