// Package services holds the process-wide table of platform variants.
// The registry is built once at startup and read-only afterwards; there
// is no ambient global, callers receive the registry explicitly.
package services

import (
	"fmt"
	"sort"
	"strings"

	"chatmux/contract"
)

// Registry maps lowercase service names to their live Sources.
type Registry struct {
	sources map[string]contract.Source
}

var _ contract.IServiceRegistry = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]contract.Source)}
}

// Register adds a platform variant under its lowercase name. Registering
// the same name twice is a wiring bug and fails loudly.
func (r *Registry) Register(name string, source contract.Source) error {
	key := strings.ToLower(name)
	if _, ok := r.sources[key]; ok {
		return fmt.Errorf("service %q registered twice", key)
	}
	r.sources[key] = source
	return nil
}

// ByName resolves a service by name, case-insensitively. Unknown names
// return ok=false, never a crash.
func (r *Registry) ByName(name string) (contract.Source, bool) {
	source, ok := r.sources[strings.ToLower(name)]
	return source, ok
}

// Names lists the registered service names in stable order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
