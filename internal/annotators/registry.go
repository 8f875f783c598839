package annotators

import (
	"fmt"
	"sort"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driven"
)

// BuilderFunc creates an Annotator from generic config.
// Config is a map of annotator-specific settings taken from runtime
// parameters or the config file.
type BuilderFunc func(cfg map[string]any) (driven.Annotator, error)

// Registry maps annotator names to their builders.
// It allows dynamic construction of annotators from configuration.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates a new annotator registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds an annotator builder to the registry.
// Name should be unique and match the annotator's Name() return value.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates an annotator by name with the given config.
// Returns an error wrapping domain.ErrUnsupportedType if the name is not
// registered.
func (r *Registry) Build(name string, cfg map[string]any) (driven.Annotator, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown annotator: %s", domain.ErrUnsupportedType, name)
	}
	return builder(cfg)
}

// Has returns true if an annotator with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered annotator names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
