package annotators

import (
	"github.com/clamsproject/app-datimex-extraction/internal/annotators/bounds"
	"github.com/clamsproject/app-datimex-extraction/internal/annotators/extractor"
	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.AnnotatorFactory = (*Factory)(nil)

// DefaultChain is the annotator chain used when none is configured.
var DefaultChain = []string{extractor.Name, bounds.Name}

// Factory builds a fresh pipeline per run from registered annotators.
type Factory struct {
	registry *Registry
	chain    []string
	defaults domain.Parameters
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithChain sets the annotator names run, in order.
func WithChain(names ...string) FactoryOption {
	return func(f *Factory) {
		if len(names) > 0 {
			f.chain = names
		}
	}
}

// WithDefaults sets parameter values used when a run does not supply them,
// such as a pattern from the config file.
func WithDefaults(params domain.Parameters) FactoryOption {
	return func(f *Factory) {
		f.defaults = params.Clone()
	}
}

// NewFactory creates a factory over the registry.
func NewFactory(registry *Registry, opts ...FactoryOption) *Factory {
	f := &Factory{
		registry: registry,
		chain:    DefaultChain,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Build creates the pipeline for one run. Every annotator is built before
// any document is processed, so unusable parameters fail here.
func (f *Factory) Build(params domain.Parameters) (driven.AnnotatorPipeline, error) {
	cfg := make(map[string]any, len(f.defaults)+len(params))
	for k, v := range f.defaults {
		cfg[k] = v
	}
	for k, v := range params {
		if v != "" {
			cfg[k] = v
		}
	}
	// A run's "regex" must win over a default "pattern".
	if p := params.Get(ParamPattern, ParamRegex); p != "" {
		cfg[ParamPattern] = p
	}

	pipeline := NewPipeline()
	for _, name := range f.chain {
		annotator, err := f.registry.Build(name, cfg)
		if err != nil {
			return nil, err
		}
		pipeline.Add(annotator)
	}
	return pipeline, nil
}

// Chain returns the annotator names run by built pipelines.
func (f *Factory) Chain() []string {
	out := make([]string, len(f.chain))
	copy(out, f.chain)
	return out
}
