package annotators

import (
	"github.com/clamsproject/app-datimex-extraction/internal/annotators/bounds"
	"github.com/clamsproject/app-datimex-extraction/internal/annotators/extractor"
	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driven"
	"github.com/clamsproject/app-datimex-extraction/internal/dates"
	"github.com/clamsproject/app-datimex-extraction/internal/logger"
)

// Parameter names understood by the built-in annotators.
const (
	ParamPattern = "pattern"
	ParamRegex   = "regex"
	ParamAfter   = "after"
	ParamBefore  = "before"
)

// RegisterDefaults registers all built-in annotators with the registry.
// Call this during application initialisation to enable standard annotators.
// The logger receives per-span warnings from the date extractor.
func RegisterDefaults(r *Registry, log *logger.Logger) {
	if log == nil {
		log = logger.Default()
	}
	r.Register(extractor.Name, func(cfg map[string]any) (driven.Annotator, error) {
		return buildExtractor(cfg, log)
	})
	r.Register(bounds.Name, buildBounds)
}

// buildExtractor creates a date extractor from generic config.
// Supported config keys:
//   - pattern (string): override date pattern (alias: regex). Empty uses the default.
func buildExtractor(cfg map[string]any, log *logger.Logger) (driven.Annotator, error) {
	expr := getStringFromConfig(cfg, ParamPattern, ParamRegex)

	pattern, err := dates.Compile(expr)
	if err != nil {
		return nil, err
	}

	return extractor.New(
		extractor.WithPattern(pattern),
		extractor.WithLogger(log),
	), nil
}

// buildBounds creates a date range filter from generic config.
// Supported config keys:
//   - after (string): earliest date kept, YYYY-MM-DD
//   - before (string): latest date kept, YYYY-MM-DD
func buildBounds(cfg map[string]any) (driven.Annotator, error) {
	return bounds.New(
		getStringFromConfig(cfg, ParamAfter),
		getStringFromConfig(cfg, ParamBefore),
	)
}

// getStringFromConfig returns the first non-empty string among keys.
// Handles string and fmt.Stringer values that may come from TOML/JSON parsing.
func getStringFromConfig(cfg map[string]any, keys ...string) string {
	for _, key := range keys {
		val, ok := cfg[key]
		if !ok {
			continue
		}
		switch v := val.(type) {
		case string:
			if v != "" {
				return v
			}
		case interface{ String() string }:
			if s := v.String(); s != "" {
				return s
			}
		}
	}
	return ""
}
