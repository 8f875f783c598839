package dates

import (
	"fmt"
	"regexp"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

// DefaultPattern recognises four raw shapes, tried left to right within one
// alternation:
//
//  1. D/M/Y or D-M-Y with 1-2 digit day and month and a 2-4 digit year
//  2. D Month Y
//  3. ISO Y-M-D
//  4. Month D, Y
const DefaultPattern = `\b(\d{1,2}[-/]\d{1,2}[-/]\d{2,4}|\d{1,2}\s+\w+\s+\d{4}|\d{4}-\d{2}-\d{2}|\w+\s+\d{1,2},\s+\d{4})\b`

// Pattern is an immutable compiled date pattern.
type Pattern struct {
	source string
	re     *regexp.Regexp
}

var defaultPattern = &Pattern{
	source: DefaultPattern,
	re:     regexp.MustCompile(DefaultPattern),
}

// Default returns the built-in pattern.
func Default() *Pattern {
	return defaultPattern
}

// Compile compiles a caller-supplied pattern.
// An empty expression yields the default pattern. An expression that does
// not compile returns an error wrapping domain.ErrConfiguration.
func Compile(expr string) (*Pattern, error) {
	if expr == "" {
		return defaultPattern, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %v", domain.ErrConfiguration, expr, err)
	}
	return &Pattern{source: expr, re: re}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string) *Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source expression.
func (p *Pattern) String() string {
	return p.source
}

// IsDefault reports whether p is the built-in pattern.
func (p *Pattern) IsDefault() bool {
	return p.source == DefaultPattern
}
