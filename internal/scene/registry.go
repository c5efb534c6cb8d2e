// Package scene holds the named starting layouts the hosts can load.
package scene

import (
	"fmt"
	"sort"

	"github.com/san-kum/verletsim/internal/config"
	"github.com/san-kum/verletsim/internal/physics"
)

// Builder populates an empty engine. Layout may depend on the configured
// bounds and spring stiffness.
type Builder func(e *physics.Engine, cfg *config.Config) error

type Registry struct {
	scenes map[string]Builder
}

func NewRegistry() *Registry {
	r := &Registry{scenes: make(map[string]Builder)}

	r.scenes["tower"] = Tower
	r.scenes["rectangles"] = Rectangles
	r.scenes["chain"] = Chain
	r.scenes["bridge"] = Bridge
	r.scenes["empty"] = func(*physics.Engine, *config.Config) error { return nil }

	return r
}

// Register adds or replaces a scene.
func (r *Registry) Register(name string, b Builder) {
	r.scenes[name] = b
}

func (r *Registry) Build(name string, e *physics.Engine, cfg *config.Config) error {
	fn, ok := r.scenes[name]
	if !ok {
		return fmt.Errorf("unknown scene: %s", name)
	}
	if err := fn(e, cfg); err != nil {
		return fmt.Errorf("build scene %s: %w", name, err)
	}
	return nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
